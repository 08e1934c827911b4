// Package auth implementa el login con bcrypt y emisión de JWT.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/jwt"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// UseCase caso de uso de autenticación.
type UseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
	log        *logger.Logger
}

// NewUseCase crea el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int, log *logger.Logger) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
		log:        log,
	}
}

// Login verifica credenciales y emite un token con identidad y rol.
// Credenciales malas y usuario inexistente devuelven el mismo error.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		uc.log.Warn().Str("email", req.Email).Msg("intento de login fallido")
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, string(user.Role), uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
	}, nil
}
