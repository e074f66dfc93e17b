package models

import "time"

// User is the persisted user row. PasswordHash never crosses into the domain
// layer except through the auth flow.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
