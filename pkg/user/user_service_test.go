package user

import (
	"context"
	"errors"
	"testing"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/entities"
	jwtlib "github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type mockUserRepository struct {
	byEmail map[string]*entities.User
	byID    map[string]*entities.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byEmail: make(map[string]*entities.User),
		byID:    make(map[string]*entities.User),
	}
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	m.byEmail[user.Email] = user
	m.byID[user.ID.String()] = user
	return nil
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubJWT struct{}

func (stubJWT) GenerateTokenUser(userID, email, role string) string { return "token-" + userID }
func (stubJWT) ValidateTokenUser(token string) (*jwtlib.Token, error) {
	return nil, nil
}
func (stubJWT) GetClaimsByToken(token string) (string, string, string, error) {
	return "", "", "", nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newMockUserRepository(), stubJWT{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{
		Name:     "Goutham",
		Email:    "user@mail.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Email != "user@mail.com" {
		t.Errorf("registered email = %q", reg.Email)
	}

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "user@mail.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("login must return a token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newMockUserRepository(), stubJWT{})
	ctx := context.Background()

	req := domain.RegisterRequest{Name: "A", Email: "user@mail.com", Password: "secret123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Errorf("duplicate Register error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewUserService(newMockUserRepository(), stubJWT{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Name: "A", Email: "user@mail.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "user@mail.com", Password: "wrong"}); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("wrong password error = %v, want ErrCredentialsInvalid", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "nobody@mail.com", Password: "secret123"}); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("unknown email error = %v, want ErrCredentialsInvalid", err)
	}
}
