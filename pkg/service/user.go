package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/config"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/dto"
	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/interfaces"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/mapper"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/types"
)

// UserService orchestrates user CRUD. It enforces the two user invariants:
// username uniqueness on create and existence on update/delete, and it
// hashes every password before persistence.
type UserService struct {
	base
	hasher     interfaces.PasswordHasher
	pagination config.PaginationConfig
}

// NewUserService creates a new user service
func NewUserService(store *storage.Store, h interfaces.PasswordHasher, cfg *config.Config, log interfaces.Logger, m interfaces.Metrics) *UserService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &UserService{
		base:       newBase(store, log, m, cfg.EnableAuditLog),
		hasher:     h,
		pagination: cfg.Pagination,
	}
}

// CreateOrUpdate creates a user when the request carries no identifier and
// updates the referenced user otherwise.
func (s *UserService) CreateOrUpdate(req dto.UserRequest) (dto.UserResponse, error) {
	start := time.Now()
	var resp dto.UserResponse
	var err error
	if req.ID == nil {
		resp, err = s.create(req)
		s.observe("user_create", start, err)
	} else {
		resp, err = s.update(req)
		s.observe("user_update", start, err)
	}
	return resp, err
}

// create persists a new user after checking username availability. The
// check-then-write sequence runs inside one transaction; a concurrent
// create that races past the check is still rejected by the store's unique
// index, which SaveUser surfaces as the same Conflict.
func (s *UserService) create(req dto.UserRequest) (dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.UserResponse{}, err
	}

	var resp dto.UserResponse
	err := s.store.Transaction(func(tx *storage.Store) error {
		existing, err := tx.FindUserByUsername(req.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewConflictError(
				fmt.Sprintf("user[username=%s] already exists", req.Username))
		}

		user := mapper.UserRequestToEntity(req)
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		user.Password = hashed

		if err := tx.SaveUser(&user); err != nil {
			return err
		}
		resp = mapper.UserEntityToResponse(user)
		return nil
	})
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.auditEvent("user_create", "users", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("created user %s", resp.Username), true)
	s.logger.Info("user created", map[string]interface{}{"id": resp.ID, "username": resp.Username})
	return resp, nil
}

// update overwrites only the password of an existing user. Other request
// fields are deliberately not applied: the persisted entity keeps its
// username, nickname and email, matching the long-standing behavior callers
// rely on for password rotation.
func (s *UserService) update(req dto.UserRequest) (dto.UserResponse, error) {
	if req.Password == "" {
		return dto.UserResponse{}, apperrors.NewMissingFieldError("password")
	}

	var resp dto.UserResponse
	err := s.store.Transaction(func(tx *storage.Store) error {
		user, err := tx.FindUser(*req.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("user[id=%d]", *req.ID))
		}

		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return err
		}
		user.Password = hashed

		if err := tx.SaveUser(user); err != nil {
			return err
		}
		resp = mapper.UserEntityToResponse(*user)
		return nil
	})
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.auditEvent("user_update", "users", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("updated password for user %s", resp.Username), true)
	return resp, nil
}

// GetAll returns one page of users matching the search criteria, with
// total-count metadata.
func (s *UserService) GetAll(search dto.SearchUserRequest, page types.PageRequest) (dto.UserPage, error) {
	start := time.Now()
	page = page.Normalize(s.pagination.DefaultLimit, s.pagination.MaxLimit)

	users, total, err := s.store.FindUsers(search.Username, page)
	s.observe("user_list", start, err)
	if err != nil {
		return dto.UserPage{}, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, mapper.UserEntityToResponse(user))
	}

	return dto.UserPage{
		Users:  responses,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

// GetEntity retrieves a user entity by ID. Absent users yield (nil, nil).
func (s *UserService) GetEntity(id uint) (*storage.User, error) {
	return s.store.FindUser(id)
}

// GetEntityByUsername retrieves a user entity by exact username. Absent
// users yield (nil, nil).
func (s *UserService) GetEntityByUsername(username string) (*storage.User, error) {
	return s.store.FindUserByUsername(username)
}

// GetResponse retrieves a user by ID and maps it to the outbound shape.
// Absent users yield a typed NotFound, never a zero-value response.
func (s *UserService) GetResponse(id uint) (dto.UserResponse, error) {
	start := time.Now()
	user, err := s.store.FindUser(id)
	if err == nil && user == nil {
		err = apperrors.NewNotFoundError(fmt.Sprintf("user[id=%d]", id))
	}
	s.observe("user_get", start, err)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return mapper.UserEntityToResponse(*user), nil
}

// GetResponseByUsername retrieves a user by username and maps it to the
// outbound shape. Absent users yield a typed NotFound.
func (s *UserService) GetResponseByUsername(username string) (dto.UserResponse, error) {
	start := time.Now()
	user, err := s.store.FindUserByUsername(username)
	if err == nil && user == nil {
		err = apperrors.NewNotFoundError(fmt.Sprintf("user[username=%s]", username))
	}
	s.observe("user_get", start, err)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return mapper.UserEntityToResponse(*user), nil
}

// Delete removes a user by ID, failing with NotFound when it does not
// exist.
func (s *UserService) Delete(id uint) error {
	start := time.Now()
	err := s.store.Transaction(func(tx *storage.Store) error {
		user, err := tx.FindUser(id)
		if err != nil {
			return err
		}
		if user == nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("user[id=%d]", id))
		}
		return tx.DeleteUser(id)
	})
	s.observe("user_delete", start, err)
	if err != nil {
		return err
	}

	s.auditEvent("user_delete", "users", strconv.FormatUint(uint64(id), 10), "deleted user", true)
	return nil
}
