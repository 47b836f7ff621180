// Package principal defines the profile mirror of identity-provider subjects.
package principal

import "time"

// Profile is the directory store's record for an authenticated subject.
// The super-admin flag is read here, never from the identity token.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	SuperAdmin   bool      `json:"is_super_admin"`
	PasswordHash string    `json:"-"` // set only in local identity mode
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
