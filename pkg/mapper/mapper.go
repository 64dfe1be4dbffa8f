// Package mapper provides the pure, stateless transformations between
// persisted entities and their request/response shapes. Mapping copies
// matching fields only; no validation or side effects happen here, and
// responses never receive the password column.
package mapper

import (
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/dto"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
)

// UserRequestToEntity maps an inbound user request onto an entity. The
// password is carried as received; hashing happens in the service layer
// before persistence.
func UserRequestToEntity(req dto.UserRequest) storage.User {
	user := storage.User{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
	}
	if req.ID != nil {
		user.ID = *req.ID
	}
	return user
}

// UserEntityToResponse maps a user entity to its outbound shape.
func UserEntityToResponse(user storage.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthorityRequestToEntity maps an inbound authority request onto an entity.
func AuthorityRequestToEntity(req dto.AuthorityRequest) storage.Authority {
	authority := storage.Authority{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ID != nil {
		authority.ID = *req.ID
	}
	return authority
}

// AuthorityEntityToResponse maps an authority entity to its outbound shape.
func AuthorityEntityToResponse(authority storage.Authority) dto.AuthorityResponse {
	return dto.AuthorityResponse{
		ID:          authority.ID,
		Name:        authority.Name,
		Description: authority.Description,
	}
}

// ScopeRequestToEntity maps an inbound scope request onto an entity.
func ScopeRequestToEntity(req dto.ScopeRequest) storage.Scope {
	scope := storage.Scope{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ID != nil {
		scope.ID = *req.ID
	}
	return scope
}

// ScopeEntityToResponse maps a scope entity to its outbound shape.
func ScopeEntityToResponse(scope storage.Scope) dto.ScopeResponse {
	return dto.ScopeResponse{
		ID:          scope.ID,
		Name:        scope.Name,
		Description: scope.Description,
	}
}
