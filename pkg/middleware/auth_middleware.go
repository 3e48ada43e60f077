package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/app/queries"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

const currentUserKey = "currentUser"

// LoadCurrentUser rehydrates the authenticated principal for the request from
// the session, or from a bearer token for API clients. Requests without a
// valid principal pass through anonymous.
func LoadCurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := principalID(c)
		if !ok {
			return c.Next()
		}

		userQueries := queries.UserQueries{DB: database.DB}
		user, err := userQueries.GetUserByID(userID)
		if err != nil {
			// stale session or revoked account, treat as anonymous
			logrus.WithField("user_id", userID).Debug("could not rehydrate session user")
			return c.Next()
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the principal loaded by LoadCurrentUser, nil when the
// request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// RequireLogin guards state-mutating and owner-scoped routes. Anonymous
// callers get the original destination stored in their session, a notice, and
// a redirect to the login page.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Next()
		}

		sess, err := Session(c)
		if err == nil {
			SetRedirectPath(sess, loginRedirectTarget(c))
			Flash(sess, FlashError, "You must be logged in to access this page.")
			if err := sess.Save(); err != nil {
				logrus.WithError(err).Warn("failed to save session in login gate")
			}
		}
		return c.Redirect("/login", fiber.StatusFound)
	}
}

// loginRedirectTarget picks a GET-safe path to return to after login. A
// rejected form submission points back at the form, not the submit endpoint.
func loginRedirectTarget(c *fiber.Ctx) string {
	if c.Method() == fiber.MethodGet {
		return c.OriginalURL()
	}
	if c.Path() == "/listings" {
		return "/listings/new"
	}
	return c.Path()
}

func principalID(c *fiber.Ctx) (uuid.UUID, bool) {
	if sess, err := Session(c); err == nil {
		if idStr, ok := SessionUserID(sess); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				return id, true
			}
		}
	}

	if authHeader := c.Get("Authorization"); authHeader != "" {
		if id, err := utils.ExtractUserIDFromHeader(authHeader); err == nil {
			return id, true
		}
	}

	return uuid.Nil, false
}
