package storage

import (
	"fmt"

	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

// Scope operations

// FindScope retrieves a scope by ID. Absent scopes yield (nil, nil).
func (s *Store) FindScope(id uint) (*Scope, error) {
	var scope Scope
	if err := s.db.First(&scope, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get scope", err)
	}
	return &scope, nil
}

// FindScopeByName retrieves a scope by exact name. Absent scopes yield
// (nil, nil).
func (s *Store) FindScopeByName(name string) (*Scope, error) {
	var scope Scope
	if err := s.db.Where("name = ?", name).First(&scope).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get scope by name", err)
	}
	return &scope, nil
}

// SaveScope upserts a scope by identifier presence. A duplicate name
// surfaces as a typed Conflict.
func (s *Store) SaveScope(scope *Scope) error {
	if err := s.db.Save(scope).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.NewConflictError(
				fmt.Sprintf("scope[name=%s] already exists", scope.Name))
		}
		return apperrors.NewDatabaseErrorWithCause("failed to save scope", err)
	}
	return nil
}

// DeleteScope removes a scope by ID. Deleting an absent scope is a no-op.
func (s *Store) DeleteScope(id uint) error {
	if err := s.db.Delete(&Scope{}, id).Error; err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to delete scope", err)
	}
	return nil
}
