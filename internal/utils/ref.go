package utils

import (
    "crypto/rand"
    "fmt"
)

// Entity prefixes for display references.  The database surrogate key
// remains the authoritative identifier; references exist so support
// staff and customers have something short to quote.
const (
    RefPrefixBooking  = "BK"
    RefPrefixCustomer = "CU"
    RefPrefixFlight   = "FL"
    RefPrefixOperator = "OP"
)

// refAlphabet excludes 0/1/I/O to keep references unambiguous when
// read aloud or typed from a printed itinerary.
const refAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const refLength = 10

// NewRef returns a display reference of the form "<PREFIX>-XXXXXXXXXX"
// with a random suffix drawn from refAlphabet.  Randomness comes from
// crypto/rand, so concurrent callers across any number of processes
// collide with negligible probability; the unique index on the
// reference column catches the rest.
func NewRef(prefix string) (string, error) {
    buf := make([]byte, refLength)
    if _, err := rand.Read(buf); err != nil {
        return "", fmt.Errorf("read random bytes: %w", err)
    }
    for i, b := range buf {
        buf[i] = refAlphabet[int(b)%len(refAlphabet)]
    }
    return prefix + "-" + string(buf), nil
}
