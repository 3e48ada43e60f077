package controllers

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/app/queries"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

// BookingQuote shows the fee breakdown before the booking is submitted.
func BookingQuote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
	}

	listingQueries := queries.ListingQueries{DB: database.DB}
	listing, err := listingQueries.GetListingByID(id)
	if err != nil {
		if utils.IsKind(err, utils.ErrNotFound) {
			return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
		}
		return err
	}

	fee, total := utils.BookingTotal(listing.Price)

	view := pageContext(c)
	view["page"] = "bookings/new"
	view["listing"] = listing
	view["platform_fee"] = fee
	view["total_amount"] = total
	return c.JSON(view)
}

// CreateBooking reserves the listing and records the pending transaction, then
// hands off to the simulated payment step.
func CreateBooking(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NewNotFoundError("Listing not found")
	}

	listingQueries := queries.ListingQueries{DB: database.DB}
	listing, err := listingQueries.GetListingByID(id)
	if err != nil {
		if utils.IsKind(err, utils.ErrNotFound) {
			return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
		}
		return err
	}

	fee, total := utils.BookingTotal(listing.Price)
	transaction := &models.Transaction{
		ID:          uuid.New(),
		ListingID:   listing.ID,
		UserID:      user.ID,
		Amount:      listing.Price,
		PlatformFee: fee,
		TotalAmount: total,
		Status:      models.TransactionPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	transactionQueries := queries.TransactionQueries{DB: database.DB}
	if err := transactionQueries.CreateBookingTransaction(transaction); err != nil {
		if utils.IsKind(err, utils.ErrConflict) {
			return flashAndRedirect(c, middleware.FlashError, err.Error(), "/listings/"+id.String())
		}
		return err
	}

	paymentURL := fmt.Sprintf("/payments?transaction_id=%s&amount=%.2f&title=%s",
		transaction.ID, total, url.QueryEscape(listing.Title))
	return c.Redirect(paymentURL, fiber.StatusFound)
}
