package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
)

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RegisterRequest
		existing bool
		createFn func(user *domain.User) error
		wantErr  string
		wantRole domain.Role
	}{
		{
			name:     "성공: 기본 역할 EMPLOYEE",
			req:      dto.RegisterRequest{Name: "Kim", Email: " Kim@Example.com ", Password: "secret1"},
			wantRole: domain.RoleEmployee,
		},
		{
			name:     "성공: ADMIN 가입",
			req:      dto.RegisterRequest{Name: "Lee", Email: "lee@example.com", Password: "secret1", Role: "ADMIN"},
			wantRole: domain.RoleAdmin,
		},
		{
			name:     "실패: 이미 존재하는 이메일",
			req:      dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "secret1"},
			existing: true,
			wantErr:  response.ErrCodeAlreadyExists,
		},
		{
			name: "실패: 동시 가입으로 인한 unique 위반",
			req:  dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "secret1"},
			createFn: func(user *domain.User) error {
				return gorm.ErrDuplicatedKey
			},
			wantErr: response.ErrCodeAlreadyExists,
		},
		{
			name:    "실패: 잘못된 역할",
			req:     dto.RegisterRequest{Name: "Kim", Email: "kim@example.com", Password: "secret1", Role: "OWNER"},
			wantErr: response.ErrCodeValidation,
		},
		{
			name:    "실패: 태그만 있는 이름",
			req:     dto.RegisterRequest{Name: "<b></b>", Email: "kim@example.com", Password: "secret1"},
			wantErr: response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domain.User
			repo := &MockUserRepository{
				FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
					if tt.existing {
						return &domain.User{Email: email}, nil
					}
					return nil, gorm.ErrRecordNotFound
				},
				CreateFunc: func(ctx context.Context, user *domain.User) error {
					if tt.createFn != nil {
						return tt.createFn(user)
					}
					user.ID = uuid.New()
					created = user
					return nil
				},
			}
			svc := NewAuthService(repo, &MockTokenIssuer{}, nil, bcrypt.MinCost, zap.NewNop())

			resp, err := svc.Register(context.Background(), &tt.req)

			if tt.wantErr != "" {
				assertAppError(t, err, tt.wantErr)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, tt.wantRole, created.Role)
			assert.Equal(t, "token-"+created.ID.String(), resp.Token)
			assert.Equal(t, created.Email, resp.User.Email)
			assert.NotEqual(t, tt.req.Password, created.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(tt.req.Password)))
		})
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	var lookedUp string
	repo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			lookedUp = email
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewAuthService(repo, &MockTokenIssuer{}, nil, bcrypt.MinCost, zap.NewNop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Kim", Email: " Kim@Example.COM", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", lookedUp)
	assert.Equal(t, "kim@example.com", resp.User.Email)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: "kim@example.com", Password: string(hash), Role: domain.RoleEmployee}

	repo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewAuthService(repo, &MockTokenIssuer{}, nil, bcrypt.MinCost, zap.NewNop())

	t.Run("성공: 올바른 비밀번호", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "KIM@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("실패: 틀린 비밀번호", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "kim@example.com", Password: "wrong"})
		assertAppError(t, err, response.ErrCodeInvalidCredentials)
	})

	t.Run("실패: 없는 이메일", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
		assertAppError(t, err, response.ErrCodeInvalidCredentials)
	})

	t.Run("실패: 저장소 오류", func(t *testing.T) {
		broken := NewAuthService(&MockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, errors.New("db down")
			},
		}, &MockTokenIssuer{}, nil, bcrypt.MinCost, zap.NewNop())
		_, err := broken.Login(context.Background(), &dto.LoginRequest{Email: "kim@example.com", Password: "secret1"})
		assertAppError(t, err, response.ErrCodeInternal)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("성공: 토큰 폐기", func(t *testing.T) {
		var revoked string
		svc := NewAuthService(&MockUserRepository{}, &MockTokenIssuer{}, &MockTokenRevoker{
			RevokeFunc: func(ctx context.Context, token string) error {
				revoked = token
				return nil
			},
		}, bcrypt.MinCost, zap.NewNop())

		require.NoError(t, svc.Logout(context.Background(), "tok"))
		assert.Equal(t, "tok", revoked)
	})

	t.Run("성공: 폐기 저장소 없음", func(t *testing.T) {
		svc := NewAuthService(&MockUserRepository{}, &MockTokenIssuer{}, nil, bcrypt.MinCost, zap.NewNop())
		assert.NoError(t, svc.Logout(context.Background(), "tok"))
	})

	t.Run("실패: 폐기 오류", func(t *testing.T) {
		svc := NewAuthService(&MockUserRepository{}, &MockTokenIssuer{}, &MockTokenRevoker{
			RevokeFunc: func(ctx context.Context, token string) error { return errors.New("redis down") },
		}, bcrypt.MinCost, zap.NewNop())
		assertAppError(t, svc.Logout(context.Background(), "tok"), response.ErrCodeInternal)
	})
}
