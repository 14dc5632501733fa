package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
	"github.com/broday/transportes/internal/pkg/token"
)

func registerInput(email string, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Usuário Teste",
		Email:    email,
		Password: "pass123",
		Phone:    "41999990000",
		Role:     string(role),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), registerInput("  Alice@Example.com ", domain.RoleCliente))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleCliente || !user.Active {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	missing := registerInput("", domain.RoleCliente)
	if _, err := svc.Register(context.Background(), missing); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	badRole := registerInput("bob@example.com", "gerente")
	if _, err := svc.Register(context.Background(), badRole); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), registerInput("bob@example.com", domain.RoleMotorista))
	if _, err := svc.Register(context.Background(), registerInput("BOB@example.com", domain.RoleCliente)); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	raw, user, err := svc.Login(context.Background(), "Carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := token.NewSigner("secret", time.Hour).Parse(raw)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != string(domain.RoleAdmin) || claims.Subject != registered.ID {
		t.Fatalf("unexpected claims: role=%s sub=%s", claims.Role, claims.Subject)
	}
	if claims.Email != "carol@example.com" {
		t.Fatalf("expected normalised email claim, got %s", claims.Email)
	}
	if _, err := token.NewSigner("other-secret", time.Hour).Parse(raw); err == nil {
		t.Fatalf("token must not verify under another secret")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", domain.RoleCliente))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.MinCost)
	_, _ = repo.Create(context.Background(), &domain.User{
		Email:        "eve@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleMotorista,
		Active:       false,
	})
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "pass123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
