package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rithm-app/rithm-backend/internal/config"
	"github.com/rithm-app/rithm-backend/internal/domain"
	"github.com/rithm-app/rithm-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         config.JWTConfig
	logger      *slog.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	cfg config.JWTConfig,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	IsNewUser bool      `json:"is_new_user"`
}

type claims struct {
	jwt.RegisteredClaims
}

// Signup registers a new account and opens a session. The profile row is
// not created here; it appears at the user's first profile write.
func (uc *AuthUseCase) Signup(ctx context.Context, email, password string) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp, err := uc.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp.IsNewUser = true
	return resp, nil
}

// Login checks credentials and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.openSession(ctx, user.ID)
}

// Logout revokes the session behind the given token id.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID string) error {
	return uc.sessionRepo.Delete(ctx, tokenID)
}

// ValidateToken parses the bearer token and checks its session is still
// live. Returns the user id and the token id for later revocation.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", domain.ErrSessionNotFound
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.ID == "" {
		return uuid.Nil, "", domain.ErrSessionNotFound
	}

	userID, err := uc.sessionRepo.Get(ctx, c.ID)
	if err != nil {
		return uuid.Nil, "", domain.ErrSessionNotFound
	}

	// The subject must match the session owner; a mismatch means a forged
	// or stale token.
	if c.Subject != userID.String() {
		return uuid.Nil, "", domain.ErrSessionNotFound
	}

	return userID, c.ID, nil
}

func (uc *AuthUseCase) openSession(ctx context.Context, userID uuid.UUID) (*AuthResponse, error) {
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(uc.cfg.SessionExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := uc.sessionRepo.Store(ctx, tokenID, userID, uc.cfg.SessionExpiry); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		UserID:    userID,
	}, nil
}
