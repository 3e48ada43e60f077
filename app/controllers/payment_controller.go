package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/app/queries"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

// PaymentPage renders the simulated payment confirmation step.
func PaymentPage(c *fiber.Ctx) error {
	username := c.Query("username")
	if user := middleware.CurrentUser(c); user != nil {
		username = user.Username
	}

	view := pageContext(c)
	view["page"] = "payments/confirm"
	view["transaction_id"] = c.Query("transaction_id")
	view["amount"] = c.Query("amount")
	view["title"] = c.Query("title")
	view["username"] = username
	return c.JSON(view)
}

// FakePaymentSuccess settles the pending transaction as Completed.
func FakePaymentSuccess(c *fiber.Ctx) error {
	id, err := confirmedTransactionID(c)
	if err != nil {
		return err
	}

	transactionQueries := queries.TransactionQueries{DB: database.DB}
	if err := transactionQueries.UpdateTransactionStatus(id, models.TransactionCompleted); err != nil {
		return err
	}

	if sess, sessErr := middleware.Session(c); sessErr == nil {
		middleware.Flash(sess, middleware.FlashSuccess, "Payment successful! Your booking is confirmed.")
		_ = sess.Save()
	}
	return c.JSON(fiber.Map{"message": "Payment Successful"})
}

// FakePaymentFailure settles the pending transaction as Failed and releases
// the listing so it can be booked again.
func FakePaymentFailure(c *fiber.Ctx) error {
	id, err := confirmedTransactionID(c)
	if err != nil {
		return err
	}

	transactionQueries := queries.TransactionQueries{DB: database.DB}
	if err := transactionQueries.FailTransaction(id); err != nil {
		return err
	}

	if sess, sessErr := middleware.Session(c); sessErr == nil {
		middleware.Flash(sess, middleware.FlashError, "Payment failed. The listing is available again.")
		_ = sess.Save()
	}
	return c.JSON(fiber.Map{"message": "Payment Failed"})
}

func confirmedTransactionID(c *fiber.Ctx) (uuid.UUID, error) {
	req := &models.PaymentConfirmRequest{}
	if err := c.BodyParser(req); err != nil || req.TransactionID == "" {
		req.TransactionID = c.Query("transaction_id")
	}
	if err := validate.Struct(req); err != nil {
		return uuid.Nil, utils.NewValidationError(ValidationMessage(err))
	}
	id, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return uuid.Nil, utils.NewValidationError("transaction_id must be a valid id")
	}
	return id, nil
}
