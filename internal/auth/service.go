// internal/auth/service.go
// Business logic for registration, login, federated login, and sessions.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	oauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

// Service interface
type Service interface {
	// Registration and authentication
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error)
	GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error)

	// Token management
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Session management
	Logout(ctx context.Context, token string) error
	LogoutAllDevices(ctx context.Context, userID int64) error

	// Account lifecycle. DeleteAccount acts only on the resolved session
	// identity; there is no way to target another account from a request body.
	DeleteAccount(ctx context.Context, userID int64) error

	// User queries
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret           string
	AccessTokenExpiry   time.Duration
	RefreshTokenExpiry  time.Duration
	BCryptCost          int
	LoginAttemptsMax    int
	LoginAttemptsWindow time.Duration
}

type service struct {
	repo   Repository
	redis  *redis.Client
	config *Config
}

// NewService creates a new auth service
func NewService(repo Repository, redisClient *redis.Client, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

// Signup creates a new local account
func (s *service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	if taken, err := s.repo.IsUsernameTaken(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	now := time.Now()
	user := &User{
		Email:        &email,
		Username:     username,
		PasswordHash: &hashStr,
		Provider:     "local",
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Signin authenticates a local account
func (s *service) Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkLoginAttempts(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindAccountNotFound) {
			s.recordLoginAttempt(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		// Federated-login-only account
		s.recordLoginAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordLoginAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// GoogleAuth signs a user in via a Google ID token, creating the account
// on first login. Federated accounts carry no password hash.
func (s *service) GoogleAuth(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(req.IDToken).Do()
	if err != nil {
		return nil, ErrInvalidToken
	}

	if tokenInfo.Email == "" || !tokenInfo.VerifiedEmail {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByProviderID(ctx, "google", tokenInfo.UserId)
	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindAccountNotFound) {
			return nil, err
		}

		email := strings.ToLower(tokenInfo.Email)
		now := time.Now()
		user = &User{
			Email:      &email,
			Username:   usernameFromEmail(email),
			Provider:   "google",
			ProviderID: &tokenInfo.UserId,
			Status:     StatusActive,
			IsVerified: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSessionByToken(ctx, session.Token); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// ValidateToken validates an access token and checks the revocation list
func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Unknown revocation status refuses the token
	revoked, err := s.redis.Exists(ctx, revokedKey(token)).Result()
	if err != nil || revoked > 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Logout revokes the access token and removes its session
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err == nil {
		ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
		if ttl > 0 {
			s.redis.Set(ctx, revokedKey(token), "1", ttl)
		}
	}

	return s.repo.DeleteSessionByToken(ctx, token)
}

// LogoutAllDevices removes every session for the user
func (s *service) LogoutAllDevices(ctx context.Context, userID int64) error {
	return s.repo.DeleteUserSessions(ctx, userID)
}

// DeleteAccount soft-deletes the account identified by the resolved session.
// The account row survives with status "deleted" so the authorization gate
// can keep refusing its credentials.
func (s *service) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.repo.SetUserStatus(ctx, userID, StatusDeleted); err != nil {
		return err
	}
	return s.repo.DeleteUserSessions(ctx, userID)
}

// GetUserByID returns a user by ID
func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// issueTokens creates a new access/refresh pair and persists the session
func (s *service) issueTokens(ctx context.Context, user *User) (*AuthResponse, error) {
	now := time.Now()

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	accessToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     email,
		Type:      "access",
		ExpiresAt: now.Add(s.config.AccessTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "heartlink",
		Subject:   strconv.FormatInt(user.ID, 10),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     email,
		Type:      "refresh",
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "heartlink",
		Subject:   strconv.FormatInt(user.ID, 10),
	}, s.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	session := &Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.config.RefreshTokenExpiry),
		CreatedAt:    now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

// checkAccountStatus maps a non-active lifecycle status to its rejection
func checkAccountStatus(user *User) error {
	switch user.Status {
	case StatusActive:
		return nil
	case StatusBanned:
		return apperrors.New(apperrors.KindAccountBanned, "account banned")
	case StatusDeleted:
		return apperrors.New(apperrors.KindAccountDeleted, "account deleted")
	case StatusSuspended:
		return apperrors.New(apperrors.KindAccountSuspended, "account suspended")
	default:
		return apperrors.New(apperrors.KindAccessDenied, "account not available")
	}
}

// Redis-backed login attempt window

func (s *service) checkLoginAttempts(ctx context.Context, email string) error {
	count, err := s.redis.Get(ctx, loginAttemptsKey(email)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		// Redis being down must not lock everyone out of login
		return nil
	}
	if count >= s.config.LoginAttemptsMax {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *service) recordLoginAttempt(ctx context.Context, email string) {
	key := loginAttemptsKey(email)
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		s.redis.Expire(ctx, key, s.config.LoginAttemptsWindow)
	}
}

func loginAttemptsKey(email string) string {
	return "login:attempts:" + email
}

func revokedKey(token string) string {
	return "revoked:" + token
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
