package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/dto"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
)

func TestUserRequestToEntity(t *testing.T) {
	t.Run("without id", func(t *testing.T) {
		req := dto.UserRequest{
			Username: "alice",
			Password: "pw123",
			Nickname: "Alice",
			Email:    "alice@example.com",
		}

		user := UserRequestToEntity(req)
		assert.Zero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "pw123", user.Password)
		assert.Equal(t, "Alice", user.Nickname)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("with id", func(t *testing.T) {
		id := uint(7)
		user := UserRequestToEntity(dto.UserRequest{ID: &id, Username: "alice", Password: "pw123"})
		assert.Equal(t, uint(7), user.ID)
	})

	t.Run("unmapped fields stay zero", func(t *testing.T) {
		user := UserRequestToEntity(dto.UserRequest{Username: "alice", Password: "pw123"})
		assert.True(t, user.CreatedAt.IsZero())
		assert.True(t, user.UpdatedAt.IsZero())
	})
}

func TestUserEntityToResponse(t *testing.T) {
	now := time.Now()
	user := storage.User{
		ID:        3,
		Username:  "alice",
		Password:  "$2a$10$hash",
		Nickname:  "Alice",
		Email:     "alice@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := UserEntityToResponse(user)
	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Alice", resp.Nickname)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, now, resp.CreatedAt)
}

func TestUserRoundTrip(t *testing.T) {
	// Fields shared between request and entity survive unchanged through
	// request -> entity -> response.
	req := dto.UserRequest{
		Username: "bob",
		Password: "secret",
		Nickname: "Bob",
		Email:    "bob@example.com",
	}

	resp := UserEntityToResponse(UserRequestToEntity(req))
	assert.Equal(t, req.Username, resp.Username)
	assert.Equal(t, req.Nickname, resp.Nickname)
	assert.Equal(t, req.Email, resp.Email)
}

func TestAuthorityMapping(t *testing.T) {
	t.Run("request to entity", func(t *testing.T) {
		id := uint(11)
		authority := AuthorityRequestToEntity(dto.AuthorityRequest{
			ID:          &id,
			Name:        "ROLE_ADMIN",
			Description: "administrators",
		})
		assert.Equal(t, uint(11), authority.ID)
		assert.Equal(t, "ROLE_ADMIN", authority.Name)
		assert.Equal(t, "administrators", authority.Description)
	})

	t.Run("round trip", func(t *testing.T) {
		req := dto.AuthorityRequest{Name: "ROLE_USER", Description: "regular users"}
		resp := AuthorityEntityToResponse(AuthorityRequestToEntity(req))
		assert.Equal(t, req.Name, resp.Name)
		assert.Equal(t, req.Description, resp.Description)
	})
}

func TestScopeMapping(t *testing.T) {
	req := dto.ScopeRequest{Name: "read", Description: "read access"}
	resp := ScopeEntityToResponse(ScopeRequestToEntity(req))
	assert.Equal(t, req.Name, resp.Name)
	assert.Equal(t, req.Description, resp.Description)
	assert.Zero(t, resp.ID)
}
