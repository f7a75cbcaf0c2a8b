package model

import "time"

// Notification types used by the dispatcher and the inbox API.
const (
    NotificationTypeBookingCreated   = "BOOKING_CREATED"
    NotificationTypeBookingCancelled = "BOOKING_CANCELLED"
)

// Notification is an advisory inbox message for a user, typically the
// operator of a flight that was just booked.  Notifications carry no
// invariant beyond correlation: losing or duplicating one never affects
// booking correctness.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient account.
//  Title     – short headline.
//  Message   – human-readable body.
//  Type      – notification type constant.
//  ReadAt    – when the recipient read it (null while unread).
//  CreatedAt – creation timestamp.
type Notification struct {
    ID        uint64     // notifications.id
    UserID    uint64     // notifications.user_id
    Title     string     // notifications.title
    Message   string     // notifications.message
    Type      string     // notifications.type
    ReadAt    *time.Time // notifications.read_at (nullable)
    CreatedAt time.Time  // notifications.created_at
}
