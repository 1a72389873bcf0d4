package category

import "github.com/frahmantamala/finance-chatbot/internal"

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" || dto.Type == "" {
		return internal.NewValidationError("Name and type are required for creating a category.", internal.ErrCodeValidationFailed)
	}
	if !IsValidType(dto.Type) {
		return internal.NewValidationError("Invalid category type: "+dto.Type, internal.ErrCodeInvalidType)
	}
	return nil
}

// UpdateCategoryDTO allows partial updates; at least one field must be set.
type UpdateCategoryDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (dto UpdateCategoryDTO) Validate() error {
	if dto.Name == "" && dto.Type == "" {
		return internal.NewValidationError("At least name or type is required for updating a category.", internal.ErrCodeValidationFailed)
	}
	if dto.Type != "" && !IsValidType(dto.Type) {
		return internal.NewValidationError("Invalid category type: "+dto.Type, internal.ErrCodeInvalidType)
	}
	return nil
}
