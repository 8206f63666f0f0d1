package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"inkwell-cms/config"
	"inkwell-cms/models"
	"inkwell-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload. Role flags are not carried; they are reloaded
// from the user row on every request.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ParseToken(token string) (*Claims, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtConfig config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwt: jwtConfig, now: time.Now}
}

// Register creates an active user with no roles; an admin grants them later.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, models.ValidationError("username, email and password are required")
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, models.ConflictError("username already taken")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.InternalError("could not hash password", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.UnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.UnauthorizedError("invalid credentials")
	}
	if !user.Active {
		return nil, models.UnauthorizedError("user not activated")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ParseToken verifies an HS256 token and returns its claims.
func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwt.SigningKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, models.UnauthorizedError("invalid token")
	}
	return claims, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwt.SigningKey())
	if err != nil {
		return "", models.InternalError("could not sign token", err)
	}
	return signed, nil
}
