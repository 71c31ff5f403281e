package domain

import "time"

// User is a registered credential. PasswordHash is the bcrypt output and never
// leaves the service layer.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
