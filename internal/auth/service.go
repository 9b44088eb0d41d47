package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator creates and validates signed access tokens.
type TokenGenerator interface {
	GenerateAccessToken(user *User) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service is the credential and session engine. All token and password
// parameters come from the config struct handed in at construction.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGenerator
	hasher     *PasswordHasher
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, hasher *PasswordHasher, refreshTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		hasher:     hasher,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Authenticate validates credentials and issues a fresh token pair. Lookup and
// verification failures collapse into the same error so the response never
// reveals whether the username existed.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, *UserInfo, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, err
	}

	user, err := s.repo.GetByUsernameOrEmail(dto.Username)
	if err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(dto.Password, user.PasswordHash) {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	s.logger.Info("user authenticated", "user_id", user.ID, "username", user.Username)
	return tokens, user.ToInfo(), nil
}

// RefreshTokens rotates a refresh token. The presented token is matched
// against the persisted copy; an expired token is cleared so it cannot be
// replayed, and a cleared token no longer matches anything.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, ErrInvalidToken
	}

	user, err := s.repo.GetByRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}

	if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(time.Now()) {
		if clearErr := s.repo.ClearRefreshToken(user.ID); clearErr != nil {
			s.logger.Error("failed to clear expired refresh token", "user_id", user.ID, "error", clearErr)
		}
		return AuthTokens{}, ErrTokenExpired
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("refresh token rotated", "user_id", user.ID)
	return tokens, nil
}

// ValidateAccessToken is stateless signature and claims verification.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// Register creates a user with a PBKDF2 password hash.
func (s *Service) Register(dto RegisterDTO) (*UserInfo, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameOrEmailExists(dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	roleOK, err := s.repo.RoleExists(dto.RoleID)
	if err != nil {
		return nil, err
	}
	if !roleOK {
		return nil, ErrRoleNotFound
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FullName:     dto.FullName,
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		RoleID:       dto.RoleID,
	}
	if err := s.repo.Create(user); err != nil {
		s.logger.Error("failed to create user", "username", dto.Username, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user.ToInfo(), nil
}

// ChangePassword verifies the current password before rehashing the new one.
func (s *Service) ChangePassword(dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	user, err := s.repo.GetByID(dto.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(dto.CurrentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := s.hasher.Hash(dto.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
		s.logger.Error("failed to update password", "user_id", user.ID, "error", err)
		return err
	}

	s.logger.Info("password changed", "user_id", user.ID)
	return nil
}

// issueTokens builds an access token and persists a brand-new refresh token,
// replacing whatever refresh token the user had before.
func (s *Service) issueTokens(user *User) (AuthTokens, error) {
	accessToken, accessExpiry, err := s.tokenGen.GenerateAccessToken(user)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthTokens{}, err
	}

	refreshExpiry := time.Now().Add(s.refreshTTL)
	if err := s.repo.StoreRefreshToken(user.ID, refreshToken, refreshExpiry); err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

// JWTTokenGenerator signs access tokens with HMAC-SHA256.
type JWTTokenGenerator struct {
	Key       []byte
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

func NewJWTTokenGenerator(key, issuer, audience string, accessTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Key:       []byte(key),
		Issuer:    issuer,
		Audience:  audience,
		AccessTTL: accessTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.AccessTTL)

	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.RoleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Key)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken verifies the signature and registered claims. No leeway is
// granted on expiry.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	}
	if j.Issuer != "" {
		options = append(options, jwt.WithIssuer(j.Issuer))
	}
	if j.Audience != "" {
		options = append(options, jwt.WithAudience(j.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Key, nil
	}, options...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
