package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    domain.ReimbursementStatus
		to      domain.ReimbursementStatus
		allowed bool
	}{
		{"pending to approved", domain.ReimbursementPending, domain.ReimbursementApproved, true},
		{"pending to rejected", domain.ReimbursementPending, domain.ReimbursementRejected, true},
		{"pending to void", domain.ReimbursementPending, domain.ReimbursementVoid, true},
		{"approved reopened", domain.ReimbursementApproved, domain.ReimbursementPending, true},
		{"rejected reopened", domain.ReimbursementRejected, domain.ReimbursementPending, true},
		{"void reopened", domain.ReimbursementVoid, domain.ReimbursementPending, true},
		{"approved to rejected", domain.ReimbursementApproved, domain.ReimbursementRejected, false},
		{"rejected to void", domain.ReimbursementRejected, domain.ReimbursementVoid, false},
		{"void to approved", domain.ReimbursementVoid, domain.ReimbursementApproved, false},
		{"self transition", domain.ReimbursementPending, domain.ReimbursementPending, false},
		{"unknown source", domain.ReimbursementStatus("DRAFT"), domain.ReimbursementPending, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}
