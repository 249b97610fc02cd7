package models

import (
	"strings"
)

// User owns envelopes and transactions. The hash is an opaque credential
// digest produced outside of this package, it is only stored and looked up.
type User struct {
	ID    uint64 `json:"id" gorm:"primaryKey" example:"1"`
	Name  string `json:"name" example:"Jane"`
	Email string `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	Hash  string `json:"-"`
	Timestamps
}

// Validate checks all fields and accumulates every violation.
func (u User) Validate() error {
	verr := &ValidationError{}

	if u.Email == "" {
		verr.Add("email", "email address is mandatory")
	} else if !strings.Contains(u.Email, "@") {
		verr.Add("email", "%q is not a valid email address", u.Email)
	}

	return verr.orNil()
}
