package storage

import (
	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/types"
)

// Audit operations

// CreateAuditEntry persists a new audit entry
func (s *Store) CreateAuditEntry(entry *AuditEntry) error {
	if err := s.db.Create(entry).Error; err != nil {
		return apperrors.NewDatabaseErrorWithCause("failed to create audit entry", err)
	}
	return nil
}

// FindAuditEntries returns one page of audit entries, newest first,
// optionally filtered by action and resource, plus the total count for the
// same filter.
func (s *Store) FindAuditEntries(action, resource string, page types.PageRequest) ([]AuditEntry, int64, error) {
	query := s.db.Model(&AuditEntry{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseErrorWithCause("failed to count audit entries", err)
	}

	var entries []AuditEntry
	if err := query.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&entries).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseErrorWithCause("failed to list audit entries", err)
	}

	return entries, total, nil
}
