package storage

import (
	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
)

// Authority operations

// FindAuthority retrieves an authority by ID. Absent authorities yield
// (nil, nil).
func (s *Store) FindAuthority(id uint) (*Authority, error) {
	var authority Authority
	if err := s.db.First(&authority, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get authority", err)
	}
	return &authority, nil
}

// FindAuthoritiesByIDs returns the subset of authorities whose identifiers
// are in ids. Missing identifiers are silently omitted; no ordering is
// guaranteed.
func (s *Store) FindAuthoritiesByIDs(ids []uint) ([]Authority, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var authorities []Authority
	if err := s.db.Where("id IN ?", ids).Find(&authorities).Error; err != nil {
		return nil, apperrors.NewDatabaseErrorWithCause("failed to get authorities by ids", err)
	}
	return authorities, nil
}

// SaveAuthority upserts an authority by identifier presence.
func (s *Store) SaveAuthority(authority *Authority) error {
	if err := s.db.Save(authority).Error; err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to save authority", err)
	}
	return nil
}

// DeleteAuthority removes an authority by ID. Deleting an absent authority
// is a no-op.
func (s *Store) DeleteAuthority(id uint) error {
	if err := s.db.Delete(&Authority{}, id).Error; err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to delete authority", err)
	}
	return nil
}
