package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadCredentials is returned for an unknown email or a wrong password.
var ErrBadCredentials = errors.New("invalid email or password")

// ErrSessionExpired is returned for missing or expired session tokens.
var ErrSessionExpired = errors.New("session expired")

// AuthService signs users in and resolves session tokens back to accounts.
// Sessions live in the KV store with a TTL.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*domain.Account, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

type authService struct {
	docs       docstore.Store
	sessions   store.KV
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(docs docstore.Store, sessions store.KV, sessionTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{docs: docs, sessions: sessions, sessionTTL: sessionTTL, logger: logger}
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Account domain.Account `json:"account"`
}

type ChangePasswordRequest struct {
	UserID      string
	OldPassword string
	NewPassword string
}

// session is what we persist under session:<token>.
type session struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, validationf("email and password are required")
	}

	docs, err := s.docs.Query(ctx, ColUsers, "email", req.Email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrBadCredentials
	}
	doc := docs[0]

	want := domain.HashPassword(req.Password)
	got, _ := doc["passwordHash"].(string)
	if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return nil, ErrBadCredentials
	}

	account, err := accountFromDoc(doc)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	payload, _ := json.Marshal(session{UserID: account.UserID(), Role: account.Role})
	if err := s.sessions.Set(ctx, sessionKey(token), string(payload), s.sessionTTL); err != nil {
		return nil, persistence("store session", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", account.UserID()),
		zap.String("role", string(account.Role)))
	return &LoginResponse{Token: token, Account: account}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Del(ctx, sessionKey(token))
}

func (s *authService) Session(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}
	raw, err := s.sessions.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	doc, err := s.docs.Get(ctx, ColUsers, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	account, err := accountFromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *authService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return validationf("new password is required")
	}
	doc, err := s.docs.Get(ctx, ColUsers, req.UserID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	got, _ := doc["passwordHash"].(string)
	if got != domain.HashPassword(req.OldPassword) {
		return ErrBadCredentials
	}
	err = s.docs.Update(ctx, ColUsers, req.UserID, docstore.Document{
		"passwordHash": domain.HashPassword(req.NewPassword),
	})
	if err != nil {
		return persistence("update password", err)
	}
	s.logger.Info("password changed", zap.String("user_id", req.UserID))
	return nil
}

// accountFromDoc is the routing point between the tenant and admin workflows:
// it matches exhaustively on the role enum.
func accountFromDoc(doc docstore.Document) (domain.Account, error) {
	role, err := domain.ParseRole(docStringField(doc, "userType"))
	if err != nil {
		return domain.Account{}, err
	}
	switch role {
	case domain.RoleTenant:
		t := domain.TenantFromDoc(doc)
		return domain.Account{Role: domain.RoleTenant, Tenant: &t}, nil
	case domain.RoleAdmin:
		a := domain.AdminFromDoc(doc)
		return domain.Account{Role: domain.RoleAdmin, Admin: &a}, nil
	default:
		return domain.Account{}, fmt.Errorf("unhandled role %q", role)
	}
}

func sessionKey(token string) string { return "session:" + token }

func docStringField(doc docstore.Document, key string) string {
	v, _ := doc[key].(string)
	return v
}
