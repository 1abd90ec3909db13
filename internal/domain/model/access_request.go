package model

import (
	"strings"
	"time"
)

// AccessRequest is a guest's submission asking to be admitted. It is created
// unauthenticated and mutated exactly once, when an administrator approves it.
type AccessRequest struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	ContactHandle string
	Approved      bool
	CreatedAt     time.Time
	ApprovedAt    *time.Time // set iff Approved
}

// DisplayName is what the checkpoint screen and the invitation greeting show.
func (r *AccessRequest) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}
