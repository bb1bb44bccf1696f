package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	jwtinfra "github.com/otp-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testMobile = "09121234567"

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockAllowList struct{ mock.Mock }

func (m *mockAllowList) IsAllowed(ctx context.Context, mobile string) (bool, error) {
	args := m.Called(ctx, mobile)
	return args.Bool(0), args.Error(1)
}

// fakeBlacklist is an in-memory revocation list.
type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist { return &fakeBlacklist{revoked: map[string]bool{}} }

func (f *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}
func (f *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

// --- helpers ---

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSigningKey:   "test-signing-key",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func verifiedUser(t *testing.T) *domain.User {
	return &domain.User{
		UserID:       "u1",
		Mobile:       testMobile,
		PasswordHash: hashOf(t, "correct-horse"),
		Role:         domain.RoleUser,
		Verified:     true,
		Active:       true,
	}
}

type testEnv struct {
	users *mockUserStore
	allow *mockAllowList
	jwt   *jwtinfra.Provider
	bl    *fakeBlacklist
	svc   Service
}

func newEnv(t *testing.T) *testEnv {
	e := &testEnv{
		users: &mockUserStore{},
		allow: &mockAllowList{},
		jwt:   newTestProvider(t),
		bl:    newFakeBlacklist(),
	}
	e.svc = NewService(ServiceDeps{
		UserRepo:    e.users,
		AllowList:   e.allow,
		JWTProvider: e.jwt,
		Blacklist:   e.bl,
	})
	return e
}

// --- Login ---

func TestLogin_UnknownMobile(t *testing.T) {
	e := newEnv(t)
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(nil, domain.ErrNotFound)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_NotVerified_RejectedRegardlessOfAllowList(t *testing.T) {
	e := newEnv(t)
	u := verifiedUser(t)
	u.Verified = false
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(u, nil)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "correct-horse"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	e.allow.AssertNotCalled(t, "IsAllowed", mock.Anything, mock.Anything)
}

func TestLogin_InactiveNotAllowListed(t *testing.T) {
	e := newEnv(t)
	u := verifiedUser(t)
	u.Active = false
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(u, nil)
	e.allow.On("IsAllowed", mock.Anything, testMobile).Return(false, nil)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "correct-horse"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_InactiveAllowListed_ActivatedAsSideEffect(t *testing.T) {
	e := newEnv(t)
	u := verifiedUser(t)
	u.Active = false
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(u, nil)
	e.allow.On("IsAllowed", mock.Anything, testMobile).Return(true, nil)
	e.users.On("Update", mock.Anything, "u1", map[string]interface{}{fieldIsActive: true}).Return(nil)

	got, pair, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "correct-horse"})

	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.NotEmpty(t, pair.Access)
	e.users.AssertCalled(t, "Update", mock.Anything, "u1", map[string]interface{}{fieldIsActive: true})
}

func TestLogin_StoreFailure_Propagated(t *testing.T) {
	e := newEnv(t)
	boom := errors.New("dynamo: connection refused")
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(nil, boom)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "correct-horse"})

	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_WrongPassword_DoesNotActivate(t *testing.T) {
	e := newEnv(t)
	u := verifiedUser(t)
	u.Active = false
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(u, nil)
	e.allow.On("IsAllowed", mock.Anything, testMobile).Return(true, nil)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	e.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(verifiedUser(t), nil)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_PasswordlessAccount(t *testing.T) {
	e := newEnv(t)
	u := verifiedUser(t)
	u.PasswordHash = "" // implicitly provisioned
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(u, nil)

	_, _, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "anything"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_HappyPath(t *testing.T) {
	e := newEnv(t)
	e.users.On("GetByMobile", mock.Anything, testMobile).Return(verifiedUser(t), nil)

	u, pair, err := e.svc.Login(context.Background(), LoginRequest{Mobile: testMobile, Password: "correct-horse"})

	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)

	claims, err := e.jwt.Verify(pair.Access, jwtinfra.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

// --- Refresh ---

func TestRefresh_RotatesAndRevokesOldToken(t *testing.T) {
	e := newEnv(t)
	pair, err := e.jwt.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	newPair, err := e.svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, newPair.Refresh)

	// The rotated-out token is dead.
	_, err = e.svc.Refresh(context.Background(), pair.Refresh)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// The replacement still works.
	_, err = e.svc.Refresh(context.Background(), newPair.Refresh)
	assert.NoError(t, err)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	e := newEnv(t)
	pair, err := e.jwt.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	_, err = e.svc.Refresh(context.Background(), pair.Access)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_Garbage(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Refresh(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

// --- Logout ---

func TestLogout_BlocksSubsequentRefresh(t *testing.T) {
	e := newEnv(t)
	pair, err := e.jwt.IssuePair("u1", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, e.svc.Logout(context.Background(), pair.Refresh))

	_, err = e.svc.Refresh(context.Background(), pair.Refresh)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogout_InvalidToken(t *testing.T) {
	e := newEnv(t)
	err := e.svc.Logout(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
