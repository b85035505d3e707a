package service

import (
	"context"
	"testing"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (AuthService, *docstore.MemoryStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	docs := docstore.NewMemoryStore()
	svc := NewAuthService(docs, store.NewRedisKV(client), 12*time.Hour, zap.NewNop())
	return svc, docs, mr
}

func seedUser(t *testing.T, docs *docstore.MemoryStore, doc docstore.Document) {
	id, _ := doc["userId"].(string)
	require.NoError(t, docs.Set(context.Background(), ColUsers, id, doc))
}

func TestLogin_Success(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	tenant := domain.Tenant{
		UserID:       "s-100",
		Email:        "ana@dorm.io",
		PasswordHash: domain.HashPassword("secret"),
		FullName:     "Ana Lovelace",
	}
	seedUser(t, docs, tenant.ToDoc())

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleTenant, resp.Account.Role)
	require.NotNil(t, resp.Account.Tenant)
	assert.Equal(t, "s-100", resp.Account.Tenant.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	tenant := domain.Tenant{UserID: "s-100", Email: "ana@dorm.io", PasswordHash: domain.HashPassword("secret")}
	seedUser(t, docs, tenant.ToDoc())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io", Password: "nope"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@dorm.io", Password: "secret"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSession_RoundTrip(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	admin := domain.Admin{
		UserID:       "staff-1",
		Email:        "boss@dorm.io",
		PasswordHash: domain.HashPassword("secret"),
		StaffRole:    "Manager",
	}
	seedUser(t, docs, admin.ToDoc())

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "boss@dorm.io", Password: "secret"})
	require.NoError(t, err)

	account, err := svc.Session(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	require.NotNil(t, account.Admin)
	assert.Equal(t, "Manager", account.Admin.StaffRole)
}

func TestSession_ExpiredToken(t *testing.T) {
	svc, docs, mr := newAuthFixture(t)
	tenant := domain.Tenant{UserID: "s-100", Email: "ana@dorm.io", PasswordHash: domain.HashPassword("secret")}
	seedUser(t, docs, tenant.ToDoc())

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io", Password: "secret"})
	require.NoError(t, err)

	mr.FastForward(13 * time.Hour)

	_, err = svc.Session(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	tenant := domain.Tenant{UserID: "s-100", Email: "ana@dorm.io", PasswordHash: domain.HashPassword("secret")}
	seedUser(t, docs, tenant.ToDoc())

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	_, err = svc.Session(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestLogin_UnknownRoleRejected(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	seedUser(t, docs, docstore.Document{
		"userId":       "x-1",
		"email":        "odd@dorm.io",
		"passwordHash": domain.HashPassword("secret"),
		"userType":     "Doctor",
	})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "odd@dorm.io", Password: "secret"})
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, docs, _ := newAuthFixture(t)
	tenant := domain.Tenant{UserID: "s-100", Email: "ana@dorm.io", PasswordHash: domain.HashPassword("old")}
	seedUser(t, docs, tenant.ToDoc())

	err := svc.ChangePassword(context.Background(), ChangePasswordRequest{
		UserID:      "s-100",
		OldPassword: "wrong",
		NewPassword: "new",
	})
	assert.ErrorIs(t, err, ErrBadCredentials)

	err = svc.ChangePassword(context.Background(), ChangePasswordRequest{
		UserID:      "s-100",
		OldPassword: "old",
		NewPassword: "new",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ana@dorm.io", Password: "new"})
	assert.NoError(t, err)
}
