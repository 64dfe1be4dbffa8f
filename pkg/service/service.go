// Package service implements the CRUD orchestration layer over the entity
// store: an authority service, a user service and a scope service. Services
// hold no entity state of their own; every call reads or writes the store
// directly, and every mutating operation runs inside a single store
// transaction.
package service

import (
	"time"

	apperrors "github.com/Chenxicheng/mcloud-oauth2-server/pkg/errors"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/interfaces"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/logger"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/metrics"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
)

// base carries the collaborators shared by all services.
type base struct {
	store        *storage.Store
	logger       interfaces.Logger
	metrics      interfaces.Metrics
	auditEnabled bool
}

func newBase(store *storage.Store, log interfaces.Logger, m interfaces.Metrics, auditEnabled bool) base {
	if log == nil {
		log = logger.NewLogger()
	}
	if m == nil {
		m = metrics.NewNoOpMetrics()
	}
	return base{
		store:        store,
		logger:       log,
		metrics:      m,
		auditEnabled: auditEnabled,
	}
}

// observe records one counter increment and one duration sample for a
// service operation, labelled with its outcome.
func (b base) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		result = "not_found"
	case apperrors.IsConflict(err):
		result = "conflict"
	case apperrors.IsValidation(err):
		result = "invalid"
	default:
		result = "error"
	}
	b.metrics.Counter(op, 1, map[string]string{"result": result})
	b.metrics.Timer(op+"_seconds", time.Since(start).Seconds(), nil)
}

// auditEvent writes a best-effort audit entry. Audit failures are logged
// and never fail the operation they describe.
func (b base) auditEvent(action, resource, resourceID, details string, success bool) {
	if !b.auditEnabled {
		return
	}

	entry := &storage.AuditEntry{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		Success:    success,
	}
	if err := b.store.CreateAuditEntry(entry); err != nil {
		b.logger.Warn("failed to write audit entry", map[string]interface{}{
			"action":   action,
			"resource": resource,
			"error":    err.Error(),
		})
	}
}
