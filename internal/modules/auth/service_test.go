package auth

import (
	"context"
	"testing"

	"bhavan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	u.ID = 1
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestRegister(t *testing.T) {
	users, issuer := &mockUserRepo{}, &mockIssuer{}
	svc := NewService(users, issuer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "asel@example.com").Return(nil, nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	issuer.On("GenerateToken", int64(1), "user").Return("tok", nil)

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asel",
		Email:    "  Asel@Example.com ", // normalized before lookup
		Password: "supersecret",
	})
	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "asel@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotEqual(t, "supersecret", resp.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	users, issuer := &mockUserRepo{}, &mockIssuer{}
	svc := NewService(users, issuer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "asel@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asel", Email: "asel@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "asel@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}

	users, issuer := &mockUserRepo{}, &mockIssuer{}
	svc := NewService(users, issuer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "asel@example.com").Return(stored, nil)
	issuer.On("GenerateToken", int64(7), "admin").Return("tok", nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "asel@example.com", Password: "supersecret"})
	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "asel@example.com", PasswordHash: string(hash)}

	users, issuer := &mockUserRepo{}, &mockIssuer{}
	svc := NewService(users, issuer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "asel@example.com").Return(stored, nil)

	_, err = svc.Login(ctx, LoginRequest{Email: "asel@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users, issuer := &mockUserRepo{}, &mockIssuer{}
	svc := NewService(users, issuer)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
