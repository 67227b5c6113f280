package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/sarhne-api/internal/utils"
)

// Keys under which authenticated identity is stored in fiber locals.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
	LocalUserRoles = "user_roles"
)

var errMissingToken = errors.New("authorization header missing")

// JWTConfig describes how session tokens are verified.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// JWTProtected rejects requests without a valid bearer session token.
func JWTProtected(cfg JWTConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, cfg)
		if err != nil {
			if errors.Is(err, errMissingToken) {
				return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
			}
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		bindClaims(c, claims)
		if UserID(c) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}
		return c.Next()
	}
}

// JWTOptional binds the caller identity when a valid bearer token is present and
// lets the request through anonymously otherwise.
func JWTOptional(cfg JWTConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := parseBearer(c, cfg); err == nil {
			bindClaims(c, claims)
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id, or an empty string for anonymous callers.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(LocalUserID).(string); ok {
		return strings.TrimSpace(id)
	}
	return ""
}

// UserRoles returns the role claims of the authenticated caller.
func UserRoles(c *fiber.Ctx) []string {
	if roles, ok := c.Locals(LocalUserRoles).([]string); ok {
		return roles
	}
	return nil
}

func parseBearer(c *fiber.Ctx, cfg JWTConfig) (jwt.MapClaims, error) {
	authorization := c.Get(fiber.HeaderAuthorization)
	if authorization == "" {
		return nil, errMissingToken
	}

	const bearer = "Bearer "
	if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return nil, fmt.Errorf("invalid authorization header")
	}

	tokenString := strings.TrimSpace(authorization[len(bearer):])
	if tokenString == "" {
		return nil, fmt.Errorf("invalid token")
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	}, options...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func bindClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	if sub, err := claims.GetSubject(); err == nil && strings.TrimSpace(sub) != "" {
		c.Locals(LocalUserID, strings.TrimSpace(sub))
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals(LocalUserEmail, email)
	}
	c.Locals(LocalUserRoles, normalizeRoles(claims["roles"]))
}

func normalizeRoles(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if role := strings.ToLower(strings.TrimSpace(v)); role != "" {
			return []string{role}
		}
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				if role := strings.ToLower(strings.TrimSpace(str)); role != "" {
					roles = append(roles, role)
				}
			}
		}
		return roles
	}
	return []string{}
}
