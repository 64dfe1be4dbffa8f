package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/config"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/hasher"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/metrics"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
)

// testEnv bundles the collaborators shared by service tests: a temp-dir
// SQLite store, a fast min-cost hasher and an in-memory metrics recorder.
type testEnv struct {
	store   *storage.Store
	cfg     *config.Config
	hasher  *hasher.BcryptHasher
	metrics *metrics.InMemoryMetrics
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Security.BcryptCost = bcrypt.MinCost

	store, err := storage.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &testEnv{
		store:   store,
		cfg:     cfg,
		hasher:  hasher.NewBcryptHasher(cfg.Security.BcryptCost),
		metrics: metrics.NewTestMetrics(),
	}
}

func (e *testEnv) userService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(e.store, e.hasher, e.cfg, nil, e.metrics)
}

func (e *testEnv) authorityService(t *testing.T) *AuthorityService {
	t.Helper()
	return NewAuthorityService(e.store, e.cfg, nil, e.metrics)
}

func (e *testEnv) scopeService(t *testing.T) *ScopeService {
	t.Helper()
	return NewScopeService(e.store, e.cfg, nil, e.metrics)
}
