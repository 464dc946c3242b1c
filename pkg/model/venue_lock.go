package model

import "time"

// VenueLock is an advisory lock serializing admission attempts per venue.
// The lock document's _id is derived from the venue ID, so a unique-index
// violation on insert means another admission holds the critical section.
// A TTL index on expires_at reaps locks abandoned by a crashed writer.
type VenueLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
