package models

import "time"

// User is the persisted shape of a credential row in the users table.
type User struct {
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
