package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/sahanmw/wrenchworks-backend/pkg/auth"
	"github.com/sahanmw/wrenchworks-backend/pkg/auth/session"
	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	"github.com/sahanmw/wrenchworks-backend/pkg/enums"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
	"github.com/sahanmw/wrenchworks-backend/pkg/security"
)

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    32768,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var testJWTCfg = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "wrenchworks",
	ExpirationMinutes: 30,
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTCfg,
		PasswordConfig: testPasswordCfg,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Email:        "owner@workshop.lk",
		PasswordHash: hash,
		FullName:     "Sunil Perera",
		Role:         enums.MemberRoleOwner,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{byEmail: user}
	sessions := &stubSessionManager{refreshToken: "refresh-1"}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Owner@Workshop.LK", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected token pair %+v", resp)
	}
	if resp.User.Email != user.Email {
		t.Fatalf("expected user dto, got %+v", resp.User)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("minted token does not parse: %v", err)
	}
	if claims.TenantID != user.TenantID {
		t.Fatalf("tenant not embedded into token")
	}
	if sessions.generatedFor != claims.ID {
		t.Fatalf("session stored under %q, token carries jti %q", sessions.generatedFor, claims.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "correct-horse")
	svc := newTestService(t, &stubUserRepo{byEmail: user}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{emailErr: gorm.ErrRecordNotFound}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@workshop.lk", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, "correct-horse")
	user.IsActive = false
	svc := newTestService(t, &stubUserRepo{byEmail: user}, &stubSessionManager{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: user.Email, Password: "correct-horse"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for disabled account, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := activeUser(t, "correct-horse")
	repo := &stubUserRepo{byID: user}
	sessions := &stubSessionManager{rotatedAccessID: session.NewAccessID(), rotatedRefresh: "refresh-2"}
	svc := newTestService(t, repo, sessions)

	claims := &pkgauth.AccessTokenClaims{UserID: user.ID, TenantID: user.TenantID, Role: user.Role}
	claims.ID = "old-access-id"

	resp, err := svc.Refresh(context.Background(), claims, RefreshRequest{RefreshToken: "refresh-1"})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if resp.RefreshToken != "refresh-2" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}

	parsed, err := pkgauth.ParseAccessToken(testJWTCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("new access token does not parse: %v", err)
	}
	if parsed.ID != sessions.rotatedAccessID {
		t.Fatalf("new token must carry the rotated access id")
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	user := activeUser(t, "correct-horse")
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc := newTestService(t, &stubUserRepo{byID: user}, sessions)

	claims := &pkgauth.AccessTokenClaims{UserID: user.ID, TenantID: user.TenantID, Role: user.Role}
	claims.ID = "old-access-id"

	_, err := svc.Refresh(context.Background(), claims, RefreshRequest{RefreshToken: "stolen"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	user := activeUser(t, "old-password")
	repo := &stubUserRepo{byID: user}
	svc := newTestService(t, repo, &stubSessionManager{})

	err := svc.ResetPassword(context.Background(), user.ID, ResetPasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if repo.updatedHash == "" {
		t.Fatal("expected password hash to be updated")
	}
	ok, err := security.VerifyPassword("brand-new-password", repo.updatedHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify new password: %v", err)
	}

	err = svc.ResetPassword(context.Background(), user.ID, ResetPasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "whatever-else",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong current password, got %v", err)
	}
}

type stubUserRepo struct {
	byEmail     *models.User
	byID        *models.User
	emailErr    error
	updatedHash string
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.emailErr != nil {
		return nil, s.emailErr
	}
	return s.byEmail, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byID, nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.updatedHash = hash
	return nil
}

type stubSessionManager struct {
	refreshToken    string
	generatedFor    string
	rotatedAccessID string
	rotatedRefresh  string
	rotateErr       error
	revoked         []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generatedFor = accessID
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.rotatedAccessID, s.rotatedRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}
