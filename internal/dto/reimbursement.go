package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/grovefund/fund_portal_app/internal/core/domain"
	"github.com/grovefund/fund_portal_app/internal/utils"
)

// CreateReimbursementRequest defines the payload for opening a request.
// Amount is a dollar string parsed at the edge.
type CreateReimbursementRequest struct {
	AccountID   string   `json:"accountID" binding:"required"`
	Amount      string   `json:"amount" binding:"required"`
	Description string   `json:"description" binding:"required"`
	ReceiptIDs  []string `json:"receiptIDs"`
}

// CreateReimbursementInput is the parsed form consumed by the service.
type CreateReimbursementInput struct {
	AccountID     string
	AmountInCents int64
	Description   string
	ReceiptIDs    []string
}

// ToInput parses the dollar-string amount into cents.
func (r CreateReimbursementRequest) ToInput() (CreateReimbursementInput, error) {
	cents, err := utils.ParseDollarsToCents(r.Amount)
	if err != nil {
		return CreateReimbursementInput{}, err
	}
	return CreateReimbursementInput{
		AccountID:     r.AccountID,
		AmountInCents: cents,
		Description:   r.Description,
		ReceiptIDs:    r.ReceiptIDs,
	}, nil
}

// TransitionReimbursementRequest defines a status transition. The submitted
// status IS the target state. Amount, category and account are required only
// when approving; that cross-field rule is enforced by structlevel validation,
// not by the schema.
type TransitionReimbursementRequest struct {
	Status     string  `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED VOID"`
	Amount     *string `json:"amount"`
	CategoryID *string `json:"categoryID"`
	AccountID  *string `json:"accountID"`
	Note       string  `json:"note"`
}

// TransitionValidator validates the approval cross-field rule on
// TransitionReimbursementRequest values.
func TransitionValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(TransitionReimbursementRequest)
		if req.Status != string(domain.ReimbursementApproved) {
			return
		}
		if req.Amount == nil || *req.Amount == "" {
			sl.ReportError(req.Amount, "Amount", "amount", "required_for_approval", "")
		}
		if req.CategoryID == nil || *req.CategoryID == "" {
			sl.ReportError(req.CategoryID, "CategoryID", "categoryID", "required_for_approval", "")
		}
		if req.AccountID == nil || *req.AccountID == "" {
			sl.ReportError(req.AccountID, "AccountID", "accountID", "required_for_approval", "")
		}
	}, TransitionReimbursementRequest{})
	return v
}

// TransitionReimbursementInput is the parsed transition consumed by the service.
type TransitionReimbursementInput struct {
	Status        domain.ReimbursementStatus
	AmountInCents int64 // only meaningful for APPROVED
	CategoryID    string
	AccountID     string
	Note          string
}

// ToInput parses the transition request; the amount is only parsed when the
// target status requires one.
func (r TransitionReimbursementRequest) ToInput() (TransitionReimbursementInput, error) {
	input := TransitionReimbursementInput{
		Status: domain.ReimbursementStatus(r.Status),
		Note:   r.Note,
	}
	if r.Status == string(domain.ReimbursementApproved) {
		cents, err := utils.ParseDollarsToCents(*r.Amount)
		if err != nil {
			return TransitionReimbursementInput{}, err
		}
		input.AmountInCents = cents
		input.CategoryID = *r.CategoryID
		input.AccountID = *r.AccountID
	}
	return input, nil
}

// ReceiptResponse references an uploaded receipt.
type ReceiptResponse struct {
	ReceiptID  string `json:"receiptID"`
	StorageKey string `json:"storageKey"`
	FileName   string `json:"fileName"`
}

// ReimbursementResponse defines the data returned for a request.
type ReimbursementResponse struct {
	RequestID      string            `json:"requestID"`
	OrganizationID string            `json:"organizationID"`
	AccountID      string            `json:"accountID"`
	UserID         string            `json:"userID"`
	AmountInCents  int64             `json:"amountInCents"`
	Description    string            `json:"description"`
	ApproverNote   string            `json:"approverNote,omitempty"`
	Status         string            `json:"status"`
	Receipts       []ReceiptResponse `json:"receipts,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// ToReimbursementResponse converts a domain request to its response DTO.
func ToReimbursementResponse(req *domain.ReimbursementRequest) ReimbursementResponse {
	receipts := make([]ReceiptResponse, len(req.Receipts))
	for i, receipt := range req.Receipts {
		receipts[i] = ReceiptResponse{
			ReceiptID:  receipt.ReceiptID,
			StorageKey: receipt.StorageKey,
			FileName:   receipt.FileName,
		}
	}
	return ReimbursementResponse{
		RequestID:      req.RequestID,
		OrganizationID: req.OrganizationID,
		AccountID:      req.AccountID,
		UserID:         req.UserID,
		AmountInCents:  req.AmountInCents,
		Description:    req.Description,
		ApproverNote:   req.ApproverNote,
		Status:         string(req.Status),
		Receipts:       receipts,
		CreatedAt:      req.CreatedAt,
	}
}

// ListReimbursementsParams filters a reimbursement listing.
type ListReimbursementsParams struct {
	Status *string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED VOID"`
	Limit  int     `form:"limit"`
	Offset int     `form:"offset"`
}
