// Package repository contains the MongoDB data access layer. Each entity
// gets its own repository over a *mongo.Collection. Sentinel errors defined
// here let handlers distinguish failure scenarios without inspecting driver
// errors: a malformed or unknown identifier on a targeted operation is
// reported as not-found rather than silently succeeding with no effect.
package repository

import "errors"

// ErrPromotionNotFound is returned when a promotion id is malformed or
// matches no document. Handlers translate this into an HTTP 404 response.
var ErrPromotionNotFound = errors.New("promotion not found")

// ErrAnnouncementNotFound is returned when an announcement id is malformed
// or matches no document. Handlers translate this into an HTTP 404 response.
var ErrAnnouncementNotFound = errors.New("announcement not found")
