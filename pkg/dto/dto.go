// Package dto defines the data-transfer shapes used at the service
// boundary. One inbound request and one outbound response shape exist per
// entity; none carry behavior beyond validation.
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

var validate = validator.New()

// UserRequest is the inbound shape for user create-or-update. A nil ID
// selects the create path; a non-nil ID selects update.
type UserRequest struct {
	ID       *uint  `json:"id,omitempty"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname,omitempty" validate:"max=64"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// Validate validates the request fields
func (r UserRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// UserResponse is the outbound user shape. It never carries the password.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchUserRequest carries the criteria applied when listing users.
type SearchUserRequest struct {
	// Username narrows the listing to usernames containing this fragment.
	Username string `json:"username,omitempty"`
}

// UserPage is one page of user responses plus total-count metadata.
type UserPage struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// AuthorityRequest is the inbound authority shape.
type AuthorityRequest struct {
	ID          *uint  `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

// Validate validates the request fields
func (r AuthorityRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// AuthorityResponse is the outbound authority shape.
type AuthorityResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ScopeRequest is the inbound scope shape.
type ScopeRequest struct {
	ID          *uint  `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

// Validate validates the request fields
func (r ScopeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// ScopeResponse is the outbound scope shape.
type ScopeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
