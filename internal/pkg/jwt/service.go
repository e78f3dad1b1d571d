package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type RealmAccess struct {
	Roles []string `json:"roles"`
}

// Claims is the subset of identity-provider access token claims the portal reads.
type Claims struct {
	PreferredUsername string      `json:"preferred_username,omitempty"`
	Email             string      `json:"email,omitempty"`
	GivenName         string      `json:"given_name,omitempty"`
	FamilyName        string      `json:"family_name,omitempty"`
	RealmAccess       RealmAccess `json:"realm_access"`

	jwtlib.RegisteredClaims
}

func (c Claims) UserID() string {
	return c.Subject
}

func (c Claims) Roles() []string {
	return c.RealmAccess.Roles
}

type Service interface {
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret []byte
	issuer string

	now func() time.Time
}

func NewHMACService(secret, issuer string) *HMACService {
	return &HMACService{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(c.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}

// IssueToken signs a token with the same secret. The portal never issues
// tokens to users; this serves local development and tests.
func (s *HMACService) IssueToken(subject, username, email string, roles []string, ttl time.Duration) (string, error) {
	if s == nil || len(s.secret) == 0 || ttl <= 0 {
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(subject) == "" {
		subject = uuid.NewString()
	}

	now := s.now().UTC()
	c := Claims{
		PreferredUsername: username,
		Email:             email,
		RealmAccess:       RealmAccess{Roles: roles},
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}
