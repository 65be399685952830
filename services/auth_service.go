package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"villa-backend/dtos"
	"villa-backend/models"
	"villa-backend/repository"
	"villa-backend/utils"
)

const DefaultRole = "customer"

type AuthService struct {
	users  *repository.UserRepository
	tokens *utils.TokenManager
	logger *zap.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *utils.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

func (s *AuthService) IsUniqueUsername(ctx context.Context, username string) (bool, error) {
	return s.users.IsUnique(ctx, username)
}

// Login matches the user name case-insensitively and the password against
// its bcrypt hash. A mismatch of either returns an empty response and a
// nil error, so the caller cannot tell which one was wrong.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequestDTO) (dtos.LoginResponseDTO, error) {
	user, err := s.users.GetByUsername(ctx, req.UserName)
	if err != nil {
		return dtos.LoginResponseDTO{}, err
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		s.logger.Info("login rejected", zap.String("username", req.UserName))
		return dtos.LoginResponseDTO{}, nil
	}

	token, expires, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return dtos.LoginResponseDTO{}, err
	}
	s.logger.Info("login succeeded",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role),
		zap.Time("expires_at", expires),
	)

	scrubbed := dtos.ToUserDTO(*user)
	return dtos.LoginResponseDTO{User: &scrubbed, Token: token}, nil
}

// Register stores a new user with a hashed password. Uniqueness is the
// caller's job (IsUniqueUsername); a race past that check still fails on
// the unique index.
func (s *AuthService) Register(ctx context.Context, req dtos.RegistrationRequestDTO) (*dtos.UserDTO, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = DefaultRole
	}
	user := models.LocalUser{
		UserName: strings.TrimSpace(req.UserName),
		Name:     req.Name,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	scrubbed := dtos.ToUserDTO(user)
	return &scrubbed, nil
}

// ValidateToken is used by the role gate in front of mutating endpoints.
func (s *AuthService) ValidateToken(token string) (*utils.Claims, error) {
	return s.tokens.Parse(token)
}
