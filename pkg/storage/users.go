package storage

import (
	"fmt"

	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/types"
)

// User operations

// FindUser retrieves a user by ID. Absent users yield (nil, nil).
func (s *Store) FindUser(id uint) (*User, error) {
	var user User
	if err := s.db.First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get user", err)
	}
	return &user, nil
}

// FindUserByUsername retrieves a user by exact, case-sensitive username.
// Absent users yield (nil, nil).
func (s *Store) FindUserByUsername(username string) (*User, error) {
	var user User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get user by username", err)
	}
	return &user, nil
}

// FindUsers returns one page of users ordered by identifier, optionally
// narrowed to usernames containing the given fragment, plus the total count
// for the same filter.
func (s *Store) FindUsers(usernameLike string, page types.PageRequest) ([]User, int64, error) {
	query := s.db.Model(&User{})
	if usernameLike != "" {
		query = query.Where("username LIKE ?", "%"+usernameLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseErrorWithCause("failed to count users", err)
	}

	var users []User
	if err := query.Order("id").Limit(page.Limit).Offset(page.Offset).Find(&users).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseErrorWithCause("failed to list users", err)
	}

	return users, total, nil
}

// SaveUser upserts a user: a zero identifier inserts and receives a
// store-assigned ID, a non-zero identifier updates. A violated username
// uniqueness constraint surfaces as a typed Conflict, so concurrent creates
// that slip past the service pre-check still fail cleanly.
func (s *Store) SaveUser(user *User) error {
	if err := s.db.Save(user).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.NewConflictError(
				fmt.Sprintf("user[username=%s] already exists", user.Username))
		}
		return apperrors.NewDatabaseErrorWithCause("failed to save user", err)
	}
	return nil
}

// DeleteUser removes a user by ID
func (s *Store) DeleteUser(id uint) error {
	if err := s.db.Delete(&User{}, id).Error; err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to delete user", err)
	}
	return nil
}
