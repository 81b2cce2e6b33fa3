package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Jaxki97/lussoautostudio/config"
	"github.com/Jaxki97/lussoautostudio/infras/jwt"
	jwtMocks "github.com/Jaxki97/lussoautostudio/infras/jwt/mocks"
	"github.com/Jaxki97/lussoautostudio/infras/otel/mocks"
	"github.com/Jaxki97/lussoautostudio/internal/domains/auth/model/dto"
	"github.com/Jaxki97/lussoautostudio/internal/domains/auth/service"
	"github.com/Jaxki97/lussoautostudio/shared/failure"
)

// bcrypt of "password".
const adminHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Admin.Email = "admin@lussoautostudio.com"
	cfg.Admin.PasswordHash = adminHash

	svc := service.New(cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "admin@lussoautostudio.com",
				Password: "password",
			},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair("admin@lussoautostudio.com").
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						TokenType:    "Bearer",
					}, nil)
			},
		},
		{
			name: "unknown email",
			req: dto.LoginRequest{
				Email:    "someone@example.com",
				Password: "password",
			},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "admin@lussoautostudio.com",
				Password: "not-the-password",
			},
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "token generation failure",
			req: dto.LoginRequest{
				Email:    "admin@lussoautostudio.com",
				Password: "password",
			},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair("admin@lussoautostudio.com").
					Return(nil, errors.New("signing error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, "refresh-token", res.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(cfg, mockOtel, mockJWT)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, errors.New("invalid token"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
