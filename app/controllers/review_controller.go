package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/app/queries"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

func CreateReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
	}

	listingQueries := queries.ListingQueries{DB: database.DB}
	if _, err := listingQueries.GetListingByID(listingID); err != nil {
		if utils.IsKind(err, utils.ErrNotFound) {
			return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
		}
		return err
	}

	req := &models.CreateReviewRequest{}
	if err := c.BodyParser(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Invalid request body", "/listings/"+listingID.String())
	}

	if err := validate.Struct(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, ValidationMessage(err), "/listings/"+listingID.String())
	}

	review := &models.Review{
		ID:        uuid.New(),
		ListingID: listingID,
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	if err := reviewQueries.CreateReview(review); err != nil {
		return err
	}

	return flashAndRedirect(c, middleware.FlashSuccess, "Review added!", "/listings/"+listingID.String())
}

func DeleteReview(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Listing not found", "/listings")
	}

	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Review not found", "/listings/"+listingID.String())
	}

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	if err := reviewQueries.DeleteReview(reviewID); err != nil {
		if utils.IsKind(err, utils.ErrNotFound) {
			return flashAndRedirect(c, middleware.FlashError, "Review not found", "/listings/"+listingID.String())
		}
		return err
	}

	return flashAndRedirect(c, middleware.FlashSuccess, "Review deleted!", "/listings/"+listingID.String())
}
