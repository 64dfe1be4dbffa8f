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
)

// ScopeService orchestrates scope CRUD. Scope names are unique; the store
// surfaces violations as typed Conflicts.
type ScopeService struct {
	base
}

// NewScopeService creates a new scope service
func NewScopeService(store *storage.Store, cfg *config.Config, log interfaces.Logger, m interfaces.Metrics) *ScopeService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ScopeService{
		base: newBase(store, log, m, cfg.EnableAuditLog),
	}
}

// Get retrieves a scope by ID, failing with NotFound when absent.
func (s *ScopeService) Get(id uint) (*storage.Scope, error) {
	start := time.Now()
	scope, err := s.store.FindScope(id)
	if err == nil && scope == nil {
		err = apperrors.NewNotFoundError(fmt.Sprintf("scope[id=%d]", id))
	}
	s.observe("scope_get", start, err)
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// GetByName retrieves a scope by exact name, failing with NotFound when
// absent.
func (s *ScopeService) GetByName(name string) (*storage.Scope, error) {
	start := time.Now()
	scope, err := s.store.FindScopeByName(name)
	if err == nil && scope == nil {
		err = apperrors.NewNotFoundError(fmt.Sprintf("scope[name=%s]", name))
	}
	s.observe("scope_get", start, err)
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// Create persists a new scope. A duplicate name yields a Conflict.
func (s *ScopeService) Create(req dto.ScopeRequest) (dto.ScopeResponse, error) {
	start := time.Now()
	resp, err := s.save(req)
	s.observe("scope_create", start, err)
	if err != nil {
		return dto.ScopeResponse{}, err
	}

	s.auditEvent("scope_create", "scopes", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("created scope %s", resp.Name), true)
	return resp, nil
}

// Modify replaces the scope referenced by the request identifier with the
// entity mapped from the request. Like Create, a request without an
// identifier creates a new record.
func (s *ScopeService) Modify(req dto.ScopeRequest) (dto.ScopeResponse, error) {
	start := time.Now()
	resp, err := s.save(req)
	s.observe("scope_modify", start, err)
	if err != nil {
		return dto.ScopeResponse{}, err
	}

	s.auditEvent("scope_modify", "scopes", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("modified scope %s", resp.Name), true)
	return resp, nil
}

func (s *ScopeService) save(req dto.ScopeRequest) (dto.ScopeResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ScopeResponse{}, err
	}

	var resp dto.ScopeResponse
	err := s.store.Transaction(func(tx *storage.Store) error {
		scope := mapper.ScopeRequestToEntity(req)
		if err := tx.SaveScope(&scope); err != nil {
			return err
		}
		resp = mapper.ScopeEntityToResponse(scope)
		return nil
	})
	if err != nil {
		return dto.ScopeResponse{}, err
	}
	return resp, nil
}

// Delete removes a scope by ID. Deleting an absent scope is an idempotent
// no-op.
func (s *ScopeService) Delete(id uint) error {
	start := time.Now()
	err := s.store.DeleteScope(id)
	s.observe("scope_delete", start, err)
	if err != nil {
		return err
	}

	s.auditEvent("scope_delete", "scopes", strconv.FormatUint(uint64(id), 10),
		"deleted scope", true)
	return nil
}
