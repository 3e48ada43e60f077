package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUserKey     = "user_id"
	sessionRedirectKey = "redirect_path"
	flashKeyPrefix     = "flash_"

	FlashSuccess = "success"
	FlashError   = "error"
)

var store *session.Store

func InitSessionStore() {
	store = session.New(session.Config{
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
	})
}

// Session returns the server-side session for the request. InitSessionStore
// must have been called.
func Session(c *fiber.Ctx) (*session.Session, error) {
	return store.Get(c)
}

// Flash queues a one-shot notice shown on the next rendered page.
func Flash(sess *session.Session, kind string, msg string) {
	sess.Set(flashKeyPrefix+kind, msg)
}

// PopFlash consumes the notice for kind, empty string when none is queued.
// The caller is responsible for saving the session.
func PopFlash(sess *session.Session, kind string) string {
	msg, _ := sess.Get(flashKeyPrefix + kind).(string)
	sess.Delete(flashKeyPrefix + kind)
	return msg
}

// SetRedirectPath stores the destination to return to after login.
func SetRedirectPath(sess *session.Session, path string) {
	sess.Set(sessionRedirectKey, path)
}

// PopRedirectPath consumes the stored destination, falling back to the
// listing index.
func PopRedirectPath(sess *session.Session) string {
	path, _ := sess.Get(sessionRedirectKey).(string)
	sess.Delete(sessionRedirectKey)
	if path == "" {
		return "/listings"
	}
	return path
}

// SetSessionUser records the authenticated principal. Only the stable user id
// lives in the session; the full record is rehydrated per request.
func SetSessionUser(sess *session.Session, userID string) {
	sess.Set(sessionUserKey, userID)
}

func SessionUserID(sess *session.Session) (string, bool) {
	id, ok := sess.Get(sessionUserKey).(string)
	return id, ok && id != ""
}
