package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/ludoteca-service/internal/api/handlers"
)

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
	msgForbidden    = "доступ запрещен"
)

var (
	// ErrMissingToken возвращается, если заголовок Authorization отсутствует или некорректен
	ErrMissingToken = errors.New("auth: missing bearer token")

	// ErrNotAdmin возвращается, если у токена нет роли администратора
	ErrNotAdmin = errors.New("auth: admin role required")
)

// Claims содержимое токена администратора
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AuthConfig параметры проверки токенов
type AuthConfig struct {
	Secret    string
	Issuer    string
	Audience  string
	AdminRole string
}

// Authenticator проверяет HS256-токены, выпущенные сервисом идентификации
type Authenticator struct {
	cfg    AuthConfig
	parser *jwt.Parser
	logger Logger
}

func NewAuthenticator(cfg AuthConfig, logger Logger) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Authenticator{
		cfg:    cfg,
		parser: jwt.NewParser(opts...),
		logger: logger,
	}
}

// Validate разбирает токен и проверяет роль администратора.
// При ErrNotAdmin claims тоже возвращаются.
func (a *Authenticator) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(a.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if claims.Role != a.cfg.AdminRole {
		return claims, ErrNotAdmin
	}
	return claims, nil
}

// Auth пропускает только запросы с действующим токеном администратора
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		claims, err := a.Validate(token)
		switch {
		case errors.Is(err, ErrNotAdmin):
			a.logger.Warn("%s %s - Forbidden: subject=%s", r.Method, r.URL.Path, claims.Subject)
			handlers.RespondForbidden(w, msgForbidden)
			return
		case err != nil:
			a.logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAdminID, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}
