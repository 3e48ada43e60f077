package queries

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

var listingRowColumns = []string{
	"id", "title", "description", "price", "location", "country",
	"image_filename", "image_url", "owner_id", "is_booked", "booked_by",
	"created_at", "updated_at", "username",
}

func TestGetListingByID(t *testing.T) {
	t.Run("found with owner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		ownerID := uuid.New()
		rows := sqlmock.NewRows(listingRowColumns).AddRow(
			id.String(), "Lake Cabin", "A quiet retreat by the lake", 100.0, "Tahoe", "USA",
			models.DefaultImageFilename, models.DefaultImageURL, ownerID.String(), false, nil,
			time.Now(), time.Now(), "jane",
		)
		mock.ExpectQuery("FROM listings l").WithArgs(id).WillReturnRows(rows)

		q := ListingQueries{DB: db}
		listing, err := q.GetListingByID(id)
		require.NoError(t, err)
		assert.Equal(t, "Lake Cabin", listing.Title)
		require.NotNil(t, listing.OwnerID)
		assert.Equal(t, ownerID, *listing.OwnerID)
		assert.Equal(t, "jane", listing.OwnerUsername)
		assert.False(t, listing.IsBooked)
		assert.Nil(t, listing.BookedBy)
	})

	t.Run("missing listing is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectQuery("FROM listings l").WithArgs(id).
			WillReturnRows(sqlmock.NewRows(listingRowColumns))

		q := ListingQueries{DB: db}
		_, err = q.GetListingByID(id)
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrNotFound))
	})
}

func TestUpdateListing(t *testing.T) {
	t.Run("updates only provided fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		title := "Mountain Hut"
		price := 80.0
		mock.ExpectExec("UPDATE listings SET title = \\$1, price = \\$2, updated_at = now").
			WithArgs(title, price, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		q := ListingQueries{DB: db}
		err = q.UpdateListing(id, &models.UpdateListingRequest{Title: &title, Price: &price})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update is a validation error", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		q := ListingQueries{DB: db}
		err = q.UpdateListing(uuid.New(), &models.UpdateListingRequest{})
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrValidation))
	})

	t.Run("missing listing is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Mountain Hut"
		mock.ExpectExec("UPDATE listings SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		q := ListingQueries{DB: db}
		err = q.UpdateListing(uuid.New(), &models.UpdateListingRequest{Title: &title})
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrNotFound))
	})
}

func TestDeleteListingCascades(t *testing.T) {
	t.Run("removes reviews and transactions with the listing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM reviews WHERE listing_id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM transactions WHERE listing_id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM listings WHERE id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		q := ListingQueries{DB: db}
		assert.NoError(t, q.DeleteListing(id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing listing rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM reviews WHERE listing_id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM transactions WHERE listing_id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM listings WHERE id").
			WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		q := ListingQueries{DB: db}
		err = q.DeleteListing(id)
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
