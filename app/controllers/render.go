package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
)

// pageContext assembles the shared view payload: the authenticated principal
// and any queued one-shot notices, which are consumed here.
func pageContext(c *fiber.Ctx) fiber.Map {
	view := fiber.Map{}
	if user := middleware.CurrentUser(c); user != nil {
		view["current_user"] = user
	}

	sess, err := middleware.Session(c)
	if err != nil {
		return view
	}
	if msg := middleware.PopFlash(sess, middleware.FlashSuccess); msg != "" {
		view["success"] = msg
	}
	if msg := middleware.PopFlash(sess, middleware.FlashError); msg != "" {
		view["error"] = msg
	}
	_ = sess.Save()
	return view
}

func flashAndRedirect(c *fiber.Ctx, kind string, msg string, location string) error {
	if sess, err := middleware.Session(c); err == nil {
		middleware.Flash(sess, kind, msg)
		_ = sess.Save()
	}
	return c.Redirect(location, fiber.StatusFound)
}
