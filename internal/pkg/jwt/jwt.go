package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken issues a bearer token for an employee. Used by
	// operational tooling and tests; the portal's auth layer owns real
	// session issuance.
	GenerateAccessToken(employeeID string, expiresIn time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, expiresIn time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(expiresIn).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

type ctxKey int

const (
	credentialKey ctxKey = iota
	employeeIDKey
)

var (
	ErrNoCredential = errors.New("no credential in context")
	ErrNoEmployeeID = errors.New("no employee identity in context")
)

// WithCredential stores the raw bearer token on the context so it can be
// forwarded verbatim to upstream collaborators.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey, token)
}

// CredentialFromContext returns the raw bearer token attached by the auth
// middleware.
func CredentialFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(credentialKey).(string)
	if !ok || token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// WithEmployeeID stores the authenticated employee identity on the context.
func WithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, employeeIDKey, employeeID)
}

// EmployeeIDFromContext returns the authenticated employee identity.
func EmployeeIDFromContext(ctx context.Context) (string, error) {
	employeeID, ok := ctx.Value(employeeIDKey).(string)
	if !ok || employeeID == "" {
		return "", ErrNoEmployeeID
	}
	return employeeID, nil
}

// ContextCredentialProvider forwards the caller's own bearer token to
// upstream requests.
type ContextCredentialProvider struct{}

func (ContextCredentialProvider) Credential(ctx context.Context) (string, error) {
	return CredentialFromContext(ctx)
}
