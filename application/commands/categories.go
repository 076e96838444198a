package commands

import (
	"notes-backend/domain/core/valueobjects"
	"notes-backend/pkg/utils"
)

// CreateCategoryCommand creates a category for a user
type CreateCategoryCommand struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name" validate:"required,max=50"`
	Color  string `json:"color" validate:"omitempty,hexcolor"`
	Icon   string `json:"icon" validate:"max=16"`
}

// Validate validates the CreateCategoryCommand
func (c CreateCategoryCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateCategoryCommand renames or restyles a category
type UpdateCategoryCommand struct {
	UserID     string
	CategoryID string
	Name       *string
	Color      *string
	Icon       *string
}

// Validate validates the UpdateCategoryCommand
func (c UpdateCategoryCommand) Validate() error {
	if err := valueobjects.ValidateID("userId", c.UserID); err != nil {
		return err
	}
	return valueobjects.ValidateID("categoryId", c.CategoryID)
}

// DeleteCategoryCommand removes a category; notes keep their category name
type DeleteCategoryCommand struct {
	UserID     string
	CategoryID string
}

// Validate validates the DeleteCategoryCommand
func (c DeleteCategoryCommand) Validate() error {
	if err := valueobjects.ValidateID("userId", c.UserID); err != nil {
		return err
	}
	return valueobjects.ValidateID("categoryId", c.CategoryID)
}
