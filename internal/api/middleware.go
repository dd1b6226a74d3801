package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kcouncil/portal/internal/logging"
	"github.com/kcouncil/portal/internal/models"
	"go.uber.org/zap"
)

// ResolveUser derives the current user from the session cookie. The cookie
// value is a numeric user id with no signature or expiry; anything that
// does not resolve to a user yields anonymous, never an error.
func (handler *Handler) ResolveUser(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return c.Next()
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return c.Next()
	}

	user, err := handler.repos.Users.FindByID(uint(userID))
	if err != nil {
		return c.Next()
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// LoginRequired redirects anonymous visitors to the login page.
func (handler *Handler) LoginRequired(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// AdminRequired guards the admin area. Page routes bounce non-admins to
// the home page; the JSON endpoints answer 403 instead.
func (handler *Handler) AdminRequired(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if ok && user.IsAdmin {
		return c.Next()
	}
	if isAdminJSONPath(c.Path()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func isAdminJSONPath(path string) bool {
	return strings.HasPrefix(path, "/admin/api/") || path == "/admin/upload-image"
}

// RequestLogger writes one structured access-log line per request,
// including the resolved user and a coarse client platform.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals(contextRequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)

		err := c.Next()

		clientIP := c.Get("CF-Connecting-IP")
		if clientIP == "" {
			clientIP = c.IP()
		}

		userInfo := "Anonymous"
		if user, ok := currentUser(c); ok {
			userInfo = user.DisplayName()
			if userInfo == "" {
				userInfo = "User ID: " + strconv.FormatUint(uint64(user.ID), 10)
			}
		}

		logger.Info("http request",
			zap.String("request_id", requestID),
			zap.String("ip", clientIP),
			zap.String("client", logging.ClientType(c.Get("User-Agent"))),
			zap.String("user", userInfo),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
