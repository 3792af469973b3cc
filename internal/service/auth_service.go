package service

import (
	"context"
	"time"

	"lendhub-be/internal/config"
	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/mapper"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtConfig  config.JWTConfig
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtConfig config.JWTConfig) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtConfig:  jwtConfig,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	resp := mapper.ToUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, false)
}

// LoginAdmin is the console entrypoint: same credential check, but the
// account must hold an administrative role.
func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.login(ctx, req, true)
}

func (s *authService) login(ctx context.Context, req *dto.LoginRequest, adminOnly bool) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Unauthenticated("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthenticated("Invalid email or password")
	}

	if user.Status == entity.UserStatusSuspended {
		return nil, apperror.Forbidden("Account is suspended")
	}
	if adminOnly && !user.Role.IsAdministrative() {
		return nil, apperror.Forbidden("Administrative role required")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  mapper.ToUserResponse(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	resp := mapper.ToUserResponse(user)
	return &resp, nil
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Duration(s.jwtConfig.ExpiryHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}
