package model

import "time"

// AdmissionToken is a single-use credential bound to exactly one approved
// AccessRequest. It is never deleted and never reissued; redemption flips
// Used exactly once.
type AdmissionToken struct {
	ID        string
	Token     string // opaque unguessable string (UUIDv4)
	RequestID string
	Used      bool
	UsedAt    *time.Time // set iff Used
	CreatedAt time.Time
}
