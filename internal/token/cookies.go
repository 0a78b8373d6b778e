package token

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// SetSessionCookies delivers both tokens as http-only, same-site-strict, secure
// cookies so scripts never see the bearer credentials.
func (m *Manager) SetSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	m.SetAccessCookie(c, accessToken)
	setCookie(c, RefreshCookieName, refreshToken, m.now().Add(m.refreshTTL))
}

func (m *Manager) SetAccessCookie(c *fiber.Ctx, accessToken string) {
	setCookie(c, AccessCookieName, accessToken, m.now().Add(m.accessTTL))
}

func ClearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	setCookie(c, AccessCookieName, "", expired)
	setCookie(c, RefreshCookieName, "", expired)
}

func setCookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
