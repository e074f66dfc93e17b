package models

import "time"

// Contact is the persisted contact row.
type Contact struct {
	ContactID      string `db:"contact_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	Phone          string `db:"phone"`
	Address        string `db:"address"`
	Notes          string `db:"notes"`
	AuditFields
}

// Engagement is one persisted interaction with a contact.
type Engagement struct {
	EngagementID string    `db:"engagement_id"`
	ContactID    string    `db:"contact_id"`
	Date         time.Time `db:"date"`
	Kind         string    `db:"kind"`
	Note         string    `db:"note"`
	AuditFields
}
