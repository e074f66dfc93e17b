package services

import (
	"context"

	"github.com/grovefund/fund_portal_app/internal/core/domain"
)

// Notifier delivers status-change notifications to requesters. Delivery is
// best-effort and happens outside any atomic unit: callers log failures and
// never roll back on them.
type Notifier interface {
	SendStatusChangeNotification(ctx context.Context, email string, requestID string, status domain.ReimbursementStatus) error
}
