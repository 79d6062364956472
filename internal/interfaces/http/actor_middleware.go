package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sandeep7070/mai-santani-backend/internal/application/dto"
	"github.com/sandeep7070/mai-santani-backend/pkg/jwt"
)

// LocalActorID key de c.Locals con el id del operador autenticado.
const LocalActorID = "actor_id"

// ActorMiddleware extrae el operador del Bearer Token cuando está presente.
// La ausencia de token es un estado legítimo: el movimiento queda sin actor,
// nunca se sustituye por una identidad fabricada. Un token presente pero
// inválido sí se rechaza.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Next()
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalActorID, userID)
		return c.Next()
	}
}

// GetActor devuelve el id del operador o nil si la petición no trae token.
func GetActor(c *fiber.Ctx) *string {
	v := c.Locals(LocalActorID)
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
