package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
)

func newTestApp(tokens *token.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": UserID(c).Hex(),
			"role":   UserRole(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: token.AccessCookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("access-secret", "refresh-secret", 15, 7)
	app := newTestApp(tokens)

	t.Run("ValidToken", func(t *testing.T) {
		userID := primitive.NewObjectID()
		access, err := tokens.IssueAccessToken(userID.Hex(), models.RoleAdmin)
		require.NoError(t, err)

		resp := doRequest(t, app, access)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("MissingCookie", func(t *testing.T) {
		resp := doRequest(t, app, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MalformedToken", func(t *testing.T) {
		resp := doRequest(t, app, "garbage")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := token.NewManager("other-secret", "refresh-secret", 15, 7)
		access, err := other.IssueAccessToken(primitive.NewObjectID().Hex(), models.RoleUser)
		require.NoError(t, err)

		resp := doRequest(t, app, access)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		refresh, err := tokens.IssueRefreshToken(primitive.NewObjectID().Hex(), models.RoleUser)
		require.NoError(t, err)

		resp := doRequest(t, app, refresh)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
