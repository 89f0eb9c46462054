package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"fieldtrack-backend/config"
)

// Auth validates the bearer token and stores the claims in the request
// context. WebSocket clients cannot set headers, so a ?token= query
// parameter is accepted as well.
func Auth(c *fiber.Ctx) error {
	tokenString := ""

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		tokenString = strings.Replace(authHeader, "Bearer ", "", 1)
	} else {
		tokenString = c.Query("token")
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return config.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	claims := token.Claims.(jwt.MapClaims)
	c.Locals("user_id", claims["user_id"])
	c.Locals("role", claims["role"])
	c.Locals("name", claims["name"])

	return c.Next()
}

// UserID returns the authenticated user's id from the context.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// RoleOf returns the authenticated user's role from the context.
func RoleOf(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
