package authenticating

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/pos-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pos-analytics-api/internal/config"
	"github.com/vfg2006/pos-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)

	service := NewService(userRepo, &config.Config{SecretKey: "test-secret"})

	return service, userRepo
}

func hashOf(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Deve exigir email e senha",
			email:    "",
			password: "",
			setup:    func(userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.Error(t, err)
			},
		},
		{
			name:     "Deve rejeitar usuário inexistente",
			email:    "ninguem@example.com",
			password: "Senha@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ninguem@example.com").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
		{
			name:     "Deve rejeitar conta desativada",
			email:    "maria@example.com",
			password: "Senha@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
					ID:     7,
					Email:  "maria@example.com",
					Active: false,
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "Deve rejeitar senha incorreta",
			email:    "maria@example.com",
			password: "SenhaErrada@1",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
					ID:           7,
					Email:        "maria@example.com",
					Active:       true,
					PasswordHash: hashOf(t, "Senha@123"),
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Deve normalizar o email e devolver um token",
			email:    "  Maria@Example.com ",
			password: "Senha@123",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
					ID:           7,
					Name:         "Maria",
					Lastname:     "Silva",
					Email:        "maria@example.com",
					Active:       true,
					RoleID:       3,
					PasswordHash: hashOf(t, "Senha@123"),
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestAuthService(t)
			tt.setup(userRepo)

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestLoginUser_TokenValido(t *testing.T) {
	service, userRepo := newTestAuthService(t)

	userRepo.EXPECT().GetUserByEmail("maria@example.com").Return(&domain.User{
		ID:           7,
		Name:         "Maria",
		Email:        "maria@example.com",
		Active:       true,
		RoleID:       2,
		PasswordHash: hashOf(t, "Senha@123"),
	}, nil)

	token, err := service.LoginUser("maria@example.com", "Senha@123")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, 2, claims.UserRoleID)
}

func TestCreateUser(t *testing.T) {
	t.Run("Deve exigir os campos obrigatórios", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		created, err := service.CreateUser(&domain.User{Email: "jose@example.com"})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Deve rejeitar email já cadastrado", func(t *testing.T) {
		service, userRepo := newTestAuthService(t)

		userRepo.EXPECT().GetUserByEmail("jose@example.com").Return(&domain.User{ID: 1}, nil)

		created, err := service.CreateUser(&domain.User{
			Name:         "José",
			Lastname:     "Souza",
			Email:        "jose@example.com",
			PasswordHash: "Senha@123",
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Deve criar usuário inativo com perfil padrão e senha em hash", func(t *testing.T) {
		service, userRepo := newTestAuthService(t)

		userRepo.EXPECT().GetUserByEmail("jose@example.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
			assert.Equal(t, "jose@example.com", user.Email)
			assert.Equal(t, 3, user.RoleID)
			assert.False(t, user.Active)
			// A senha nunca é persistida em texto puro
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
			return user, nil
		})

		created, err := service.CreateUser(&domain.User{
			Name:         "José",
			Lastname:     "Souza",
			Email:        " Jose@Example.com ",
			PasswordHash: "Senha@123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
	})
}

func TestGenerateStrongPassword_ExigePerfilDeAdministrador(t *testing.T) {
	service, userRepo := newTestAuthService(t)

	userRepo.EXPECT().GetUserByID(5).Return(&domain.User{ID: 5, RoleID: 3}, nil)

	password, err := service.GenerateStrongPassword(5, 9)

	assert.Empty(t, password)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestGenerateStrongPassword_AtualizaASenhaDoAlvo(t *testing.T) {
	service, userRepo := newTestAuthService(t)

	target := &domain.User{ID: 9, RoleID: 3, PasswordHash: "antiga"}

	userRepo.EXPECT().GetUserByID(1).Return(&domain.User{ID: 1, RoleID: 1}, nil)
	userRepo.EXPECT().GetUserByID(9).Return(target, nil)
	userRepo.EXPECT().UpdateUser(target).Return(nil)

	password, err := service.GenerateStrongPassword(1, 9)

	assert.NoError(t, err)
	assert.Len(t, password, 12)
	// A nova senha gerada atende aos próprios requisitos de força
	assert.NoError(t, service.ValidatePasswordStrength(password))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(target.PasswordHash), []byte(password)))
}

func TestChangePassword(t *testing.T) {
	t.Run("Deve rejeitar senha atual incorreta", func(t *testing.T) {
		service, userRepo := newTestAuthService(t)

		userRepo.EXPECT().GetUserByID(7).Return(&domain.User{
			ID:           7,
			PasswordHash: hashOf(t, "Senha@123"),
		}, nil)

		err := service.ChangePassword(7, "SenhaErrada@1", "NovaSenha@123")

		assert.EqualError(t, err, "senha atual incorreta")
	})

	t.Run("Deve rejeitar nova senha fraca", func(t *testing.T) {
		service, userRepo := newTestAuthService(t)

		userRepo.EXPECT().GetUserByID(7).Return(&domain.User{
			ID:           7,
			PasswordHash: hashOf(t, "Senha@123"),
		}, nil)

		err := service.ChangePassword(7, "Senha@123", "fraca")

		assert.EqualError(t, err, "a senha deve conter pelo menos 8 caracteres")
	})

	t.Run("Deve persistir o hash da nova senha", func(t *testing.T) {
		service, userRepo := newTestAuthService(t)

		user := &domain.User{ID: 7, PasswordHash: hashOf(t, "Senha@123")}

		userRepo.EXPECT().GetUserByID(7).Return(user, nil)
		userRepo.EXPECT().UpdateUser(user).Return(nil)

		err := service.ChangePassword(7, "Senha@123", "NovaSenha@123")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NovaSenha@123")))
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"Senha curta", "Ab@1", "a senha deve conter pelo menos 8 caracteres"},
		{"Sem maiúscula", "senha@123", "a senha deve conter pelo menos uma letra maiúscula"},
		{"Sem minúscula", "SENHA@123", "a senha deve conter pelo menos uma letra minúscula"},
		{"Sem número", "Senha@abc", "a senha deve conter pelo menos um número"},
		{"Sem caractere especial", "Senha1234", "a senha deve conter pelo menos um caractere especial"},
		{"Senha forte", "Senha@123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestHandleEmail(t *testing.T) {
	assert.Equal(t, "maria@example.com", handleEmail("  Maria@Example.com "))
	assert.Equal(t, "jose@example.com", handleEmail("Jose @ Example.com"))
}

func TestGenerateStrongPasswordHelper(t *testing.T) {
	password, err := generateStrongPassword(4)

	assert.NoError(t, err)
	// Comprimentos abaixo do mínimo sobem para 8
	assert.Len(t, password, 8)
	assert.True(t, strings.ContainsAny(password, "0123456789"))
	assert.True(t, strings.ContainsAny(password, "!@#$%^&*()-_=+[]{}|;:,.<>?"))
}
