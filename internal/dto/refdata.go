package dto

import "github.com/grovefund/fund_portal_app/internal/core/domain"

// CreateItemTypeRequest defines the payload for an org-scoped item type.
type CreateItemTypeRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Direction string `json:"direction" binding:"required,oneof=IN OUT"`
}

// CreateItemMethodRequest defines the payload for an org-scoped item method.
type CreateItemMethodRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// CreateCategoryRequest defines the payload for an org-scoped category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// ItemTypeResponse is one item type visible to the organization.
type ItemTypeResponse struct {
	TypeID    string `json:"typeID"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	IsGlobal  bool   `json:"isGlobal"`
}

// ItemMethodResponse is one item method visible to the organization.
type ItemMethodResponse struct {
	MethodID string `json:"methodID"`
	Name     string `json:"name"`
	IsGlobal bool   `json:"isGlobal"`
}

// CategoryResponse is one category visible to the organization.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	IsGlobal   bool   `json:"isGlobal"`
}

// ToItemTypeResponses converts domain item types.
func ToItemTypeResponses(types []domain.TransactionItemType) []ItemTypeResponse {
	responses := make([]ItemTypeResponse, len(types))
	for i, t := range types {
		responses[i] = ItemTypeResponse{
			TypeID:    t.TypeID,
			Name:      t.Name,
			Direction: string(t.Direction),
			IsGlobal:  t.OrganizationID == nil,
		}
	}
	return responses
}

// ToItemMethodResponses converts domain item methods.
func ToItemMethodResponses(methods []domain.TransactionItemMethod) []ItemMethodResponse {
	responses := make([]ItemMethodResponse, len(methods))
	for i, m := range methods {
		responses[i] = ItemMethodResponse{
			MethodID: m.MethodID,
			Name:     m.Name,
			IsGlobal: m.OrganizationID == nil,
		}
	}
	return responses
}

// ToCategoryResponses converts domain categories.
func ToCategoryResponses(categories []domain.TransactionCategory) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = CategoryResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			IsGlobal:   c.OrganizationID == nil,
		}
	}
	return responses
}
