package user

import (
	"FoodBridge-Backend/domain"
	"FoodBridge-Backend/entities"
	"context"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*entities.User{}}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetUserByEmailOrUsername(_ context.Context, emailOrUsername string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == emailOrUsername || u.Username == emailOrUsername {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) EmailOrUsernameExists(_ context.Context, email, username string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepository) GetUsersByRoles(_ context.Context, roles []string) ([]*entities.User, error) {
	var result []*entities.User
	for _, u := range f.users {
		for _, role := range roles {
			if u.Role == role {
				result = append(result, u)
			}
		}
	}
	return result, nil
}

type staticJWTService struct{}

func (staticJWTService) GenerateTokenUser(string, string) string { return "token" }
func (staticJWTService) ValidateTokenUser(string) (*jwtlib.Token, error) {
	return nil, domain.ErrTokenInvalid
}
func (staticJWTService) GetUserIDByToken(string) (string, string, error) {
	return "", "", domain.ErrTokenInvalid
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Username:  "giver",
		Email:     "giver@example.com",
		Password:  "secret123",
		FirstName: "Gina",
		LastName:  "Ver",
		Role:      domain.RoleDonor,
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	res, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "token", res.Token)
	assert.Equal(t, domain.RoleDonor, res.User.Role)
	assert.Len(t, repo.users, 1)

	t.Run("password is stored hashed", func(t *testing.T) {
		stored := repo.users[res.User.ID]
		assert.NotEqual(t, "secret123", stored.PasswordHash)
		assert.NotEmpty(t, stored.PasswordHash)
	})

	t.Run("duplicate email or username is rejected", func(t *testing.T) {
		_, err := service.Register(context.Background(), registerRequest())
		assert.ErrorIs(t, err, domain.ErrEmailOrUsernameTaken)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		req := registerRequest()
		req.Username = "boss"
		req.Email = "boss@example.com"
		req.Role = domain.RoleAdmin
		_, err := service.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		res, err := service.Login(context.Background(), domain.LoginRequest{
			EmailOrUsername: "giver@example.com",
			Password:        "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "token", res.Token)
	})

	t.Run("by username", func(t *testing.T) {
		_, err := service.Login(context.Background(), domain.LoginRequest{
			EmailOrUsername: "giver",
			Password:        "secret123",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), domain.LoginRequest{
			EmailOrUsername: "giver",
			Password:        "nope",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := service.Login(context.Background(), domain.LoginRequest{
			EmailOrUsername: "ghost",
			Password:        "secret123",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	res, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	userID := res.User.ID

	t.Run("too short", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), domain.ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "short",
		}, userID)
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("wrong current password", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), domain.ChangePasswordRequest{
			CurrentPassword: "nope",
			NewPassword:     "fresh-secret",
		}, userID)
		assert.ErrorIs(t, err, domain.ErrWrongCurrentPassword)
	})

	t.Run("new password takes effect", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), domain.ChangePasswordRequest{
			CurrentPassword: "secret123",
			NewPassword:     "fresh-secret",
		}, userID)
		require.NoError(t, err)

		_, err = service.Login(context.Background(), domain.LoginRequest{
			EmailOrUsername: "giver",
			Password:        "fresh-secret",
		})
		assert.NoError(t, err)
	})
}

func TestMe(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewUserService(repo, staticJWTService{})

	res, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	me, err := service.Me(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "giver", me.Username)

	_, err = service.Me(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
