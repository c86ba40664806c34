package middleware

import (
	"github.com/arifwib/interview-coach/internal/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected validates the bearer token issued by the identity provider.
// The parsed token lands in c.Locals("user") for UserID to read.
func JWTProtected() fiber.Handler {
	authConfig := config.LoadAuthConfig()
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(authConfig.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		},
	})
}

// UserID returns the authenticated subject, or "" when the request carries no
// usable identity.
func UserID(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
