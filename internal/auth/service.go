package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims carried in every issued token. Role drives the route guards.
type Claims struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service handles staff registration, login and token verification. Redis,
// when configured, backs token revocation; with a nil client logout only
// logs a warning.
type Service struct {
	logger          *zap.Logger
	db              *gorm.DB
	redis           *redis.Client
	jwtSecret       []byte
	tokenExpiration time.Duration
}

// NewService creates the auth service
func NewService(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client, jwtSecret string, expirationHours int) (*Service, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	if expirationHours <= 0 {
		expirationHours = 24
	}
	return &Service{
		logger:          logger,
		db:              db,
		redis:           redisClient,
		jwtSecret:       []byte(jwtSecret),
		tokenExpiration: time.Duration(expirationHours) * time.Hour,
	}, nil
}

// Register creates a new staff account. Role defaults to creator.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", req.Email, req.Username).
		Count(&count).Error; err != nil {
		s.logger.Error("storage failure", zap.String("op", "register"), zap.Error(err))
		return nil, apierrors.Internal("Error interno del servidor", err)
	}
	if count > 0 {
		return nil, apierrors.Conflict("Ya existe una cuenta con ese email o usuario")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierrors.Internal("Error interno del servidor", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCreator
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		s.logger.Error("storage failure", zap.String("op", "register"), zap.Error(err))
		return nil, apierrors.Internal("Error interno del servidor", err)
	}

	return user, nil
}

// Login verifies credentials against email or username and issues a token
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", req.Login, req.Login).
		First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.Unauthorized("Credenciales inválidas")
		}
		s.logger.Error("storage failure", zap.String("op", "login"), zap.Error(err))
		return nil, apierrors.Internal("Error interno del servidor", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierrors.Unauthorized("Credenciales inválidas")
	}

	expiresAt := time.Now().Add(s.tokenExpiration)
	token, err := s.generateToken(&user, expiresAt)
	if err != nil {
		return nil, apierrors.Internal("Error interno del servidor", err)
	}

	return &models.LoginResponse{
		User:      &user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the token until its natural expiry
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		s.logger.Warn("logout requested but no revocation store configured")
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revocationKey(claims.ID), "1", ttl).Err(); err != nil {
		s.logger.Error("failed to revoke token", zap.Error(err))
		return apierrors.Internal("Error interno del servidor", err)
	}
	return nil
}

// ValidateToken parses and verifies a token, rejecting revoked ones
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierrors.Unauthorized("Token inválido o expirado")
	}

	if s.redis != nil && claims.ID != "" {
		revoked, err := s.redis.Exists(ctx, revocationKey(claims.ID)).Result()
		if err != nil {
			s.logger.Warn("revocation check failed", zap.Error(err))
		} else if revoked > 0 {
			return nil, apierrors.Unauthorized("Token revocado")
		}
	}

	return claims, nil
}

func (s *Service) generateToken(user *models.User, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Role:     user.Role,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "odonto-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func revocationKey(jti string) string {
	return "auth:revoked:" + jti
}
