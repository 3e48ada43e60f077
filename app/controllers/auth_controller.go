package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/app/queries"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

func SignupForm(c *fiber.Ctx) error {
	view := pageContext(c)
	view["page"] = "users/signup"
	return c.JSON(view)
}

func UserSignUp(c *fiber.Ctx) error {
	signUp := &models.SignUp{}
	if err := c.BodyParser(signUp); err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Invalid request body", "/signup")
	}

	if err := validate.Struct(signUp); err != nil {
		return flashAndRedirect(c, middleware.FlashError, ValidationMessage(err), "/signup")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signUp.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternalError("Failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        signUp.Email,
		Username:     signUp.Username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := userQueries.CreateUser(user); err != nil {
		if utils.IsKind(err, utils.ErrConflict) {
			return flashAndRedirect(c, middleware.FlashError, err.Error(), "/signup")
		}
		return err
	}

	// auto-login after signup
	sess, err := middleware.Session(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}
	middleware.SetSessionUser(sess, user.ID.String())
	middleware.Flash(sess, middleware.FlashSuccess, "Welcome to WanderLust!")
	redirectTo := middleware.PopRedirectPath(sess)
	if err := sess.Save(); err != nil {
		return utils.NewInternalError("Failed to save session")
	}
	return c.Redirect(redirectTo, fiber.StatusFound)
}

func LoginForm(c *fiber.Ctx) error {
	view := pageContext(c)
	view["page"] = "users/login"
	return c.JSON(view)
}

func UserSignIn(c *fiber.Ctx) error {
	signIn := &models.SignIn{}
	if err := c.BodyParser(signIn); err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Invalid request body", "/login")
	}

	if err := validate.Struct(signIn); err != nil {
		return flashAndRedirect(c, middleware.FlashError, ValidationMessage(err), "/login")
	}

	userQueries := queries.UserQueries{DB: database.DB}
	user, err := userQueries.GetUserByUsername(signIn.Username)
	if err != nil {
		return authFailure(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signIn.Password)); err != nil {
		return authFailure(c)
	}

	sess, err := middleware.Session(c)
	if err != nil {
		return utils.NewInternalError("Failed to open session")
	}
	middleware.SetSessionUser(sess, user.ID.String())

	// API clients sign in with a JSON body and get a bearer token back
	// instead of the flash-and-redirect flow.
	if c.Is("json") {
		if err := sess.Save(); err != nil {
			return utils.NewInternalError("Failed to save session")
		}
		token, err := utils.GenerateAccessToken(user.ID, user.Username)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":      "Sign in successful",
			"access_token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}

	middleware.Flash(sess, middleware.FlashSuccess, "Welcome back!")
	redirectTo := middleware.PopRedirectPath(sess)
	if err := sess.Save(); err != nil {
		return utils.NewInternalError("Failed to save session")
	}
	return c.Redirect(redirectTo, fiber.StatusFound)
}

func authFailure(c *fiber.Ctx) error {
	if c.Is("json") {
		return utils.NewAuthError("Invalid username or password")
	}
	return flashAndRedirect(c, middleware.FlashError, "Invalid username or password", "/login")
}

func UserLogout(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return utils.NewInternalError("Failed to destroy session")
		}
	}
	return c.Redirect("/login", fiber.StatusFound)
}
