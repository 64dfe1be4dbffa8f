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

// AuthorityService orchestrates authority CRUD. It carries no domain
// invariants beyond entity existence.
type AuthorityService struct {
	base
}

// NewAuthorityService creates a new authority service
func NewAuthorityService(store *storage.Store, cfg *config.Config, log interfaces.Logger, m interfaces.Metrics) *AuthorityService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &AuthorityService{
		base: newBase(store, log, m, cfg.EnableAuditLog),
	}
}

// Get retrieves an authority by ID, failing with NotFound when absent.
func (s *AuthorityService) Get(id uint) (*storage.Authority, error) {
	start := time.Now()
	authority, err := s.store.FindAuthority(id)
	if err == nil && authority == nil {
		err = apperrors.NewNotFoundError(fmt.Sprintf("authority[id=%d]", id))
	}
	s.observe("authority_get", start, err)
	if err != nil {
		return nil, err
	}
	return authority, nil
}

// Create maps the request to an entity, persists it and maps it back. No
// uniqueness check is performed.
func (s *AuthorityService) Create(req dto.AuthorityRequest) (dto.AuthorityResponse, error) {
	start := time.Now()
	resp, err := s.save(req)
	s.observe("authority_create", start, err)
	if err != nil {
		return dto.AuthorityResponse{}, err
	}

	s.auditEvent("authority_create", "authorities", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("created authority %s", resp.Name), true)
	return resp, nil
}

// Modify follows the same save path as Create: the entity mapped from the
// request unconditionally replaces whatever the identifier referenced, and
// a request without an identifier creates a new record rather than failing.
func (s *AuthorityService) Modify(req dto.AuthorityRequest) (dto.AuthorityResponse, error) {
	start := time.Now()
	resp, err := s.save(req)
	s.observe("authority_modify", start, err)
	if err != nil {
		return dto.AuthorityResponse{}, err
	}

	s.auditEvent("authority_modify", "authorities", strconv.FormatUint(uint64(resp.ID), 10),
		fmt.Sprintf("modified authority %s", resp.Name), true)
	return resp, nil
}

func (s *AuthorityService) save(req dto.AuthorityRequest) (dto.AuthorityResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.AuthorityResponse{}, err
	}

	var resp dto.AuthorityResponse
	err := s.store.Transaction(func(tx *storage.Store) error {
		authority := mapper.AuthorityRequestToEntity(req)
		if err := tx.SaveAuthority(&authority); err != nil {
			return err
		}
		resp = mapper.AuthorityEntityToResponse(authority)
		return nil
	})
	if err != nil {
		return dto.AuthorityResponse{}, err
	}
	return resp, nil
}

// Delete removes an authority by ID. Deleting an absent authority is an
// idempotent no-op.
func (s *AuthorityService) Delete(id uint) error {
	start := time.Now()
	err := s.store.DeleteAuthority(id)
	s.observe("authority_delete", start, err)
	if err != nil {
		return err
	}

	s.auditEvent("authority_delete", "authorities", strconv.FormatUint(uint64(id), 10),
		"deleted authority", true)
	return nil
}

// GetByIDs returns the subset of authorities whose identifiers exist.
// Missing identifiers are silently omitted; no ordering is guaranteed.
func (s *AuthorityService) GetByIDs(ids []uint) ([]storage.Authority, error) {
	start := time.Now()
	authorities, err := s.store.FindAuthoritiesByIDs(ids)
	s.observe("authority_get_by_ids", start, err)
	return authorities, err
}
