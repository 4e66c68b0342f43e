package identity

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateloan/lms-auth/pkg/token"
)

func TestFromClaims(t *testing.T) {
	claims := &token.Claims{
		UserID:      7,
		Authorities: []string{"LOAN:READ", "ROLE_USER"},
	}
	claims.Subject = "alice"

	id := FromClaims(claims)

	assert.Equal(t, uint(7), id.UserID)
	assert.Equal(t, "alice", id.Username)
	assert.True(t, id.HasRole("USER"))
	assert.True(t, id.HasAuthority("LOAN:READ"))
	assert.False(t, id.HasRole("ADMIN"))
}

func TestContextRoundTrip(t *testing.T) {
	id := &Identity{UserID: 1, Username: "admin"}

	ctx := Set(context.Background(), id)
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = Get(context.Background())
	assert.False(t, ok)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.9:54321"
	assert.Equal(t, "10.0.0.9", ClientIP(r).String())

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", ClientIP(r).String())
}
