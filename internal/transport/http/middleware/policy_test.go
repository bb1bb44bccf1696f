package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAction_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireAction(domain.ActionManageUsers)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAction_DeniedRole(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rr := httptest.NewRecorder()
	Auth(p)(RequireAction(domain.ActionManageUsers)(http.HandlerFunc(okHandler))).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireAction_AllowedRole(t *testing.T) {
	p := newTestProvider(t)
	pair, err := p.IssuePair("u1", domain.RoleOperator)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rr := httptest.NewRecorder()
	Auth(p)(RequireAction(domain.ActionManageUsers)(http.HandlerFunc(okHandler))).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAction_AllowListRequiresSuperuser(t *testing.T) {
	p := newTestProvider(t)
	operator, err := p.IssuePair("u1", domain.RoleOperator)
	require.NoError(t, err)
	superuser, err := p.IssuePair("u2", domain.RoleSuperuser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+operator.Access)
	rr := httptest.NewRecorder()
	Auth(p)(RequireAction(domain.ActionManageAllowList)(http.HandlerFunc(okHandler))).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+superuser.Access)
	rr = httptest.NewRecorder()
	Auth(p)(RequireAction(domain.ActionManageAllowList)(http.HandlerFunc(okHandler))).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
