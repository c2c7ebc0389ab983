package identity

import (
	"context"
	"errors"
	"os"
	"time"

	identityerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/identity/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/policy"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileChecker reports whether a client profile exists for a user. Declared
// locally so identity does not depend on the client package.
type ProfileChecker interface {
	ProfileExists(ctx context.Context, userID string) (bool, error)
}

//go:generate mockgen -source=identity_service.go -destination=mock/identity_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	// CreateUser and DeleteUser back the admin client-management surface.
	CreateUser(ctx context.Context, email, password string) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

type service struct {
	repo     Repository
	policy   policy.Service
	profiles ProfileChecker
	logger   *zap.Logger
}

func NewService(repo Repository, pol policy.Service, profiles ProfileChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("identity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.service")
	}
	return &service{repo: repo, policy: pol, profiles: profiles, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidCredentials
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	accessToken, err := s.generateToken(user.ID.String(), user.Email, role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), user.Email, role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role),
	)

	return accessToken, refreshToken, AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  role,
	}, nil
}

// resolveRole derives the caller's role on every auth-state change instead of
// caching it: allow-listed e-mail wins, otherwise an existing client profile
// makes a client. The admin check runs first so a profile-store failure can
// never lock out an allow-listed admin.
func (s *service) resolveRole(ctx context.Context, user *User) (string, error) {
	if s.policy.IsAdmin(user.Email) {
		return policy.RoleAdmin, nil
	}

	exists, err := s.profiles.ProfileExists(ctx, user.ID.String())
	if err != nil {
		s.logger.Warn("profile lookup failed during role resolution",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", identityerrors.ErrAccessDenied
	}
	if !exists {
		return "", identityerrors.ErrAccessDenied
	}
	return policy.RoleClient, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, identityerrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrUserNotFound
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	newAccessToken, err := s.generateToken(user.ID.String(), user.Email, role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), user.Email, role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, identityerrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  role,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, identityerrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, identityerrors.ErrUserNotFound
	}

	role, err := s.resolveRole(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Role:  role,
	}, nil
}

func (s *service) CreateUser(ctx context.Context, email, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return "", identityerrors.ErrEmailAlreadyRegistered
		}
		return "", err
	}

	return user.ID.String(), nil
}

func (s *service) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return identityerrors.ErrInvalidUserID
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone; the cascade treats that as success.
			return nil
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) generateToken(userID, email, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
