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

func GetAllListings(c *fiber.Ctx) error {
	listingQueries := queries.ListingQueries{DB: database.DB}
	listings, err := listingQueries.GetAllListings()
	if err != nil {
		return err
	}

	view := pageContext(c)
	view["page"] = "listings/index"
	view["listings"] = listings
	return c.JSON(view)
}

func NewListingForm(c *fiber.Ctx) error {
	view := pageContext(c)
	view["page"] = "listings/new"
	return c.JSON(view)
}

func CreateListing(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	req := &models.CreateListingRequest{}
	if err := c.BodyParser(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Invalid request body", "/listings/new")
	}

	if err := validate.Struct(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, ValidationMessage(err), "/listings/new")
	}

	listing := &models.Listing{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		Location:      req.Location,
		Country:       req.Country,
		ImageFilename: models.DefaultImageFilename,
		ImageURL:      models.DefaultImageURL,
		OwnerID:       &user.ID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if req.Image != "" {
		listing.ImageFilename = "listing-image"
		listing.ImageURL = req.Image
	}

	listingQueries := queries.ListingQueries{DB: database.DB}
	if err := listingQueries.CreateListing(listing); err != nil {
		return err
	}

	return flashAndRedirect(c, middleware.FlashSuccess, "Listing created successfully!", "/listings")
}

func ShowListing(c *fiber.Ctx) error {
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

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	reviews, err := reviewQueries.GetReviewsByListing(id)
	if err != nil {
		return err
	}

	view := pageContext(c)
	view["page"] = "listings/show"
	view["listing"] = listing
	view["reviews"] = reviews
	return c.JSON(view)
}

func EditListingForm(c *fiber.Ctx) error {
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

	if err := requireOwner(c, &listing); err != nil {
		return flashAndRedirect(c, middleware.FlashError, err.Error(), "/listings/"+id.String())
	}

	view := pageContext(c)
	view["page"] = "listings/edit"
	view["listing"] = listing
	return c.JSON(view)
}

func UpdateListing(c *fiber.Ctx) error {
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

	if err := requireOwner(c, &listing); err != nil {
		return flashAndRedirect(c, middleware.FlashError, err.Error(), "/listings/"+id.String())
	}

	req := &models.UpdateListingRequest{}
	if err := c.BodyParser(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, "Invalid request body", "/listings/"+id.String()+"/edit")
	}

	if err := validate.Struct(req); err != nil {
		return flashAndRedirect(c, middleware.FlashError, ValidationMessage(err), "/listings/"+id.String()+"/edit")
	}

	if err := listingQueries.UpdateListing(id, req); err != nil {
		if utils.IsKind(err, utils.ErrValidation) {
			return flashAndRedirect(c, middleware.FlashError, err.Error(), "/listings/"+id.String()+"/edit")
		}
		return err
	}

	return flashAndRedirect(c, middleware.FlashSuccess, "Listing Updated!", "/listings/"+id.String())
}

func DeleteListing(c *fiber.Ctx) error {
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

	if err := requireOwner(c, &listing); err != nil {
		return flashAndRedirect(c, middleware.FlashError, err.Error(), "/listings/"+id.String())
	}

	if err := listingQueries.DeleteListing(id); err != nil {
		return err
	}

	return flashAndRedirect(c, middleware.FlashSuccess, "Listing Deleted!", "/listings")
}

// requireOwner rejects mutation of another user's listing.
func requireOwner(c *fiber.Ctx, listing *models.Listing) error {
	user := middleware.CurrentUser(c)
	if user == nil || listing.OwnerID == nil || *listing.OwnerID != user.ID {
		return utils.NewAuthError("You do not have permission to modify this listing")
	}
	return nil
}
