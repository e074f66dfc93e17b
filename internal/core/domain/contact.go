package domain

import "time"

// Contact is a donor, vendor or other party an organization interacts with.
type Contact struct {
	ContactID      string `json:"contactID"`      // Primary Key (UUID)
	OrganizationID string `json:"organizationID"` // FK -> organizations (NOT NULL)
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Notes          string `json:"notes"`
	AuditFields
}

// Engagement records one interaction with a contact (call, meeting, mailing).
type Engagement struct {
	EngagementID string    `json:"engagementID"` // Primary Key (UUID)
	ContactID    string    `json:"contactID"`    // FK -> contacts (NOT NULL)
	Date         time.Time `json:"date"`
	Kind         string    `json:"kind"` // Free-form: CALL, MEETING, EMAIL, ...
	Note         string    `json:"note"`
	AuditFields
}
