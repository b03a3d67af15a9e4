package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/PlayZone-BookingService/internal/api/handlers"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

const msgAdminOnly = "доступно только администратору"

// ErrInvalidToken токен отсутствует, просрочен или подписан чужим ключом
var ErrInvalidToken = errors.New("middleware: invalid access token")

// Claims полезная нагрузка access token
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator проверяет Bearer JWT (HS256) и кладёт domain.Actor в контекст
type Authenticator struct {
	secret []byte
	issuer string
	logger Logger
}

func NewAuthenticator(secret, issuer string, logger Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, logger: logger}
}

// Auth требует валидный токен
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			a.logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w)
			return
		}

		actor, err := a.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.logger.Warn("%s %s - %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Parse проверяет подпись, срок действия и issuer (если задан)
func (a *Authenticator) Parse(tokenString string) (domain.Actor, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := domain.Role(claims.Role)
	if claims.UserID <= 0 || (role != domain.RoleCustomer && role != domain.RoleAdmin) {
		return domain.Actor{}, fmt.Errorf("%w: bad claims userId=%d role=%q", ErrInvalidToken, claims.UserID, claims.Role)
	}

	return domain.Actor{UserID: claims.UserID, Role: role}, nil
}

// Issue подписывает токен для пользователя. Используется в тестах и служебных утилитах.
func (a *Authenticator) Issue(actor domain.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		UserID: actor.UserID,
		Role:   string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// RequireAdmin пропускает только администраторов. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
