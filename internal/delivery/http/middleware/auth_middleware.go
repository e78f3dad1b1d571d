package middleware

import (
	"errors"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/role"
	"hire-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxSessionKey = "session"

var ErrNoToken = errors.New("no bearer token")

// AuthMiddleware turns an optional bearer token into an access.Session. A
// request without a token continues anonymously; a bad token is rejected.
type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			c.Locals(CtxSessionKey, access.Anonymous())
			return c.Next()
		}

		s, err := m.Resolve(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

// Resolve validates token and builds the session it describes.
func (m *AuthMiddleware) Resolve(token string) (access.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return access.Anonymous(), ErrNoToken
	}
	if m == nil || m.jwt == nil {
		return access.Anonymous(), jwt.ErrTokenInvalid
	}
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return access.Anonymous(), err
	}
	return access.Session{
		Authenticated: true,
		UserID:        claims.UserID(),
		Username:      claims.PreferredUsername,
		Email:         claims.Email,
		Roles:         role.ParseSet(claims.Roles()),
		Token:         token,
	}, nil
}

// SessionFrom returns the session stored by AuthMiddleware, or an anonymous
// one.
func SessionFrom(c fiber.Ctx) access.Session {
	if s, ok := c.Locals(CtxSessionKey).(access.Session); ok {
		return s
	}
	return access.Anonymous()
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
