package model

import "time"

// Customer is a lightweight profile keyed to an authenticated account.
// It is created lazily on the first booking attempt; the unique index
// on UserID guarantees one customer per account no matter how many
// concurrent booking requests race on the first creation.
//
// Fields:
//  ID        – primary key identifier.
//  Reference – human-readable display id ("CU-…"), unique.
//  UserID    – owning account (unique).
//  FullName  – display name captured from the first booking.
//  Phone     – optional contact phone.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Customer struct {
    ID        uint64    // customers.id
    Reference string    // customers.reference
    UserID    uint64    // customers.user_id
    FullName  string    // customers.full_name
    Phone     string    // customers.phone
    CreatedAt time.Time // customers.created_at
    UpdatedAt time.Time // customers.updated_at
}

// Operator represents a charter company selling empty legs.  Each
// operator account maps to exactly one operator row.
//
// Fields:
//  ID           – primary key identifier.
//  Reference    – human-readable display id ("OP-…"), unique.
//  UserID       – owning account (unique).
//  CompanyName  – legal or trading name.
//  ContactEmail – operations contact for booking notifications.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Operator struct {
    ID           uint64    // operators.id
    Reference    string    // operators.reference
    UserID       uint64    // operators.user_id
    CompanyName  string    // operators.company_name
    ContactEmail string    // operators.contact_email
    CreatedAt    time.Time // operators.created_at
    UpdatedAt    time.Time // operators.updated_at
}
