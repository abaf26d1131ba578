package middleware

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
	"talenthub/recruitment-api/internal/repositories"
	"talenthub/recruitment-api/internal/services"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

// Claims are the fields the external identity provider puts in its access
// tokens. The backend only validates; it never issues tokens.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret   []byte
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(secret string, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		secret:   []byte(secret),
		userRepo: userRepo,
	}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return apperrors.Unauthorized("missing bearer token")
		}

		claims, err := m.validateToken(token)
		if err != nil {
			return apperrors.Unauthorized("invalid or expired token")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return apperrors.Unauthorized("invalid token subject")
		}

		role := models.UserRole(claims.Role)
		if !role.Valid() {
			return apperrors.Forbidden("unknown role")
		}

		// Keep the local user row in sync with the identity provider
		user := &models.User{
			ID:    userID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  role,
		}
		if err := m.userRepo.Upsert(user); err != nil {
			log.Printf("⚠️  Failed to sync user %s: %v\n", userID, err)
		}

		c.Locals(CtxUserIDKey, userID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, role)

		return c.Next()
	}
}

func (m *AuthMiddleware) validateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ActorFromContext returns the authenticated actor set by Middleware.
func ActorFromContext(c *fiber.Ctx) (services.Actor, bool) {
	userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok {
		return services.Actor{}, false
	}
	role, ok := c.Locals(CtxRoleKey).(models.UserRole)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: userID, Role: role}, true
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
