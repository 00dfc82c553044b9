package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"consignment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// ActorClaims identifies the caller: Subject is the actor ID recorded in the
// order history and Role one of staff, supervisor, buyer or system.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// AuthMiddleware accepts HS256 bearer tokens signed with secret and stores
// the caller as a kernel.Actor on the echo context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.SplitN(authHeader, " ", 2)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			actor, err := ParseActorToken(tokenParts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ParseActorToken validates the token signature and claims.
func ParseActorToken(tokenString string, secret []byte) (kernel.Actor, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return kernel.Actor{}, err
	}
	if !token.Valid {
		return kernel.Actor{}, errors.New("token is not valid")
	}
	return kernel.NewActor(claims.Subject, kernel.Role(claims.Role))
}

// GenerateToken signs an actor token valid for ttl.
func GenerateToken(secret []byte, subject string, role kernel.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ActorClaims{
		Role: string(role),
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ActorFrom returns the caller stored by AuthMiddleware.
func ActorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing actor")
	}
	return actor, nil
}
