package controllers_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/routes"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	database.DB = db

	middleware.InitSessionStore()

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(middleware.LoadCurrentUser())
	routes.RegisterUserRoutes(app)
	routes.RegisterListingRoutes(app)
	routes.RegisterPaymentRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("Page Not Found")
	})
	return app, mock
}

func expectUserByID(mock sqlmock.Sqlmock, id uuid.UUID, username string, passwordHash string) {
	rows := sqlmock.NewRows([]string{"uid", "username", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(id.String(), username, username+"@example.com", passwordHash, time.Now(), time.Now())
	mock.ExpectQuery("SELECT uid, username, email, password_hash").WillReturnRows(rows)
}

var listingTestColumns = []string{
	"id", "title", "description", "price", "location", "country",
	"image_filename", "image_url", "owner_id", "is_booked", "booked_by",
	"created_at", "updated_at", "username",
}

func expectListingByID(mock sqlmock.Sqlmock, id, ownerID uuid.UUID, price float64, booked bool) {
	rows := sqlmock.NewRows(listingTestColumns).AddRow(
		id.String(), "Lake Cabin", "A quiet retreat by the lake", price, "Tahoe", "USA",
		models.DefaultImageFilename, models.DefaultImageURL, ownerID.String(), booked, nil,
		time.Now(), time.Now(), "owner",
	)
	mock.ExpectQuery("FROM listings l").WillReturnRows(rows)
}

func TestLoginGateStoresDestination(t *testing.T) {
	app, mock := newTestApp(t)

	// unauthenticated submission bounces to the login page
	req := httptest.NewRequest("POST", "/listings", strings.NewReader("title=Lake+Cabin"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	// after login the stored destination wins over the default
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := uuid.New()
	expectUserByID(mock, userID, "jane", string(hash))

	form := url.Values{"username": {"jane"}, "password": {"secret123"}}
	loginReq := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		loginReq.AddCookie(c)
	}

	loginResp, err := app.Test(loginReq)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, loginResp.StatusCode)
	assert.Equal(t, "/listings/new", loginResp.Header.Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("booking an open listing computes the fee and redirects to payment", func(t *testing.T) {
		app, mock := newTestApp(t)

		bookerID := uuid.New()
		listingID := uuid.New()
		ownerID := uuid.New()
		token, err := utils.GenerateAccessToken(bookerID, "u2")
		require.NoError(t, err)

		expectUserByID(mock, bookerID, "u2", "x")
		expectListingByID(mock, listingID, ownerID, 100, false)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE listings SET is_booked = TRUE").
			WithArgs(listingID, bookerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO transactions").
			WithArgs(sqlmock.AnyArg(), listingID, bookerID, 100.0, 10.0, 110.0,
				models.TransactionPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		req := httptest.NewRequest("POST", "/listings/"+listingID.String()+"/book", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		location := resp.Header.Get("Location")
		assert.Contains(t, location, "/payments?transaction_id=")
		assert.Contains(t, location, "amount=110.00")
		assert.Contains(t, location, "title=Lake+Cabin")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("booking a booked listing conflicts without a second transaction", func(t *testing.T) {
		app, mock := newTestApp(t)

		bookerID := uuid.New()
		listingID := uuid.New()
		ownerID := uuid.New()
		token, err := utils.GenerateAccessToken(bookerID, "u3")
		require.NoError(t, err)

		expectUserByID(mock, bookerID, "u3", "x")
		expectListingByID(mock, listingID, ownerID, 100, true)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE listings SET is_booked = TRUE").
			WithArgs(listingID, bookerID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		req := httptest.NewRequest("POST", "/listings/"+listingID.String()+"/book", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)

		// back to the listing page, and no INSERT ever reached the ledger
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/listings/"+listingID.String(), resp.Header.Get("Location"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("booking a nonexistent listing is not found", func(t *testing.T) {
		app, mock := newTestApp(t)

		bookerID := uuid.New()
		token, err := utils.GenerateAccessToken(bookerID, "u4")
		require.NoError(t, err)

		expectUserByID(mock, bookerID, "u4", "x")
		mock.ExpectQuery("FROM listings l").WillReturnRows(sqlmock.NewRows(listingTestColumns))

		req := httptest.NewRequest("POST", "/listings/"+uuid.New().String()+"/book", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/listings", resp.Header.Get("Location"))
	})
}

func TestUnmatchedRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
