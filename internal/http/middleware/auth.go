package middleware

import (
	"slices"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"nutritrack/internal/auth"
)

// TokenLocalKey is where JWT stores the verified *jwt.Token.
const TokenLocalKey = "user"

// JWT verifies an HS256 bearer token. Failures surface as 401 through the
// app's error handler. An empty secret rejects every request, since any
// client could sign a token with it.
func JWT(secret string) fiber.Handler {
	if strings.TrimSpace(secret) == "" {
		return func(c *fiber.Ctx) error {
			return fiber.ErrUnauthorized
		}
	}
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS256.Alg(), Key: []byte(secret)},
		ContextKey: TokenLocalKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fiber.ErrUnauthorized
		},
	})
}

// Claims returns the claims of the verified token, or nil before JWT ran.
func Claims(c *fiber.Ctx) *auth.Claims {
	tok, ok := c.Locals(TokenLocalKey).(*jwt.Token)
	if !ok || tok == nil {
		return nil
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return auth.ClaimsFrom(mc)
}

// AdminOnly lets through tokens whose email is listed in admins. Must run after JWT.
func AdminOnly(admins []string) fiber.Handler {
	allowed := make([]string, 0, len(admins))
	for _, a := range admins {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			allowed = append(allowed, a)
		}
	}

	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}
		if !slices.Contains(allowed, strings.ToLower(claims.Email)) {
			return fiber.ErrForbidden
		}
		return c.Next()
	}
}
