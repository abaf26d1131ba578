package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/recruitment-api/internal/apperrors"
	"talenthub/recruitment-api/internal/models"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	upserted []*models.User
}

func (f *fakeUserRepo) Upsert(user *models.User) error {
	f.upserted = append(f.upserted, user)
	return nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	return nil, nil
}

func signToken(t *testing.T, userID uuid.UUID, role string, expiry time.Duration) string {
	t.Helper()

	claims := Claims{
		Email: "recruiter@example.com",
		Name:  "Rec Ruiter",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newAuthTestApp(repo *fakeUserRepo) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.Handler})
	m := NewAuthMiddleware(testSecret, repo)

	app.Get("/protected", m.Middleware(), func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return apperrors.Internal("actor missing", nil)
		}
		return c.JSON(fiber.Map{
			"user_id": actor.ID.String(),
			"role":    string(actor.Role),
		})
	})

	return app
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	repo := &fakeUserRepo{}
	app := newAuthTestApp(repo)
	userID := uuid.New()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, "recruiter", time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The local user row is kept in sync with the token claims
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, userID, repo.upserted[0].ID)
	assert.Equal(t, models.RoleRecruiter, repo.upserted[0].Role)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	app := newAuthTestApp(&fakeUserRepo{})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RejectsExpiredToken(t *testing.T) {
	app := newAuthTestApp(&fakeUserRepo{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), "recruiter", -time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RejectsTamperedToken(t *testing.T) {
	app := newAuthTestApp(&fakeUserRepo{})

	token := signToken(t, uuid.New(), "recruiter", time.Hour)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RejectsUnknownRole(t *testing.T) {
	app := newAuthTestApp(&fakeUserRepo{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New(), "superuser", time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]struct {
		header string
		want   string
		ok     bool
	}{
		"valid":      {"Bearer abc", "abc", true},
		"lowercase":  {"bearer abc", "abc", true},
		"empty":      {"", "", false},
		"noScheme":   {"abc", "", false},
		"wrongWord":  {"Basic abc", "", false},
		"emptyToken": {"Bearer  ", "", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := bearerTokenFromHeader(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
