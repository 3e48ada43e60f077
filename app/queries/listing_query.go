package queries

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

type ListingQueries struct {
	DB *sql.DB
}

const listingColumns = `l.id, l.title, l.description, l.price, l.location, l.country,
	   l.image_filename, l.image_url, l.owner_id, l.is_booked, l.booked_by,
	   l.created_at, l.updated_at, u.username`

type listingRow interface {
	Scan(dest ...interface{}) error
}

func scanListing(row listingRow) (models.Listing, error) {
	l := models.Listing{}
	var ownerID, bookedBy uuid.NullUUID
	var ownerUsername sql.NullString

	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Price,
		&l.Location,
		&l.Country,
		&l.ImageFilename,
		&l.ImageURL,
		&ownerID,
		&l.IsBooked,
		&bookedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
		&ownerUsername,
	)
	if err != nil {
		return l, err
	}

	if ownerID.Valid {
		l.OwnerID = &ownerID.UUID
	}
	if bookedBy.Valid {
		l.BookedBy = &bookedBy.UUID
	}
	l.OwnerUsername = ownerUsername.String
	return l, nil
}

// GetAllListings returns every listing, newest first, with the owner's
// username attached.
func (q *ListingQueries) GetAllListings() ([]models.Listing, error) {
	listings := []models.Listing{}

	query := `SELECT ` + listingColumns + `
			  FROM listings l
			  LEFT JOIN users u ON u.uid = l.owner_id
			  ORDER BY l.created_at DESC`

	rows, err := q.DB.Query(query)
	if err != nil {
		return listings, utils.NewInternalError("unable to get listings, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return listings, utils.NewInternalError("error scanning listing row")
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return listings, utils.NewInternalError("error iterating listing rows")
	}

	return listings, nil
}

func (q *ListingQueries) GetListingByID(id uuid.UUID) (models.Listing, error) {
	query := `SELECT ` + listingColumns + `
			  FROM listings l
			  LEFT JOIN users u ON u.uid = l.owner_id
			  WHERE l.id = $1`

	listing, err := scanListing(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return listing, utils.NewNotFoundError("Listing not found")
		}
		return listing, utils.NewInternalError("unable to get listing, DB error")
	}

	return listing, nil
}

func (q *ListingQueries) CreateListing(l *models.Listing) error {
	query := `INSERT INTO listings (id, title, description, price, location, country,
			  image_filename, image_url, owner_id, is_booked, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := q.DB.Exec(query,
		l.ID,
		l.Title,
		l.Description,
		l.Price,
		l.Location,
		l.Country,
		l.ImageFilename,
		l.ImageURL,
		l.OwnerID,
		l.IsBooked,
		l.CreatedAt,
		l.UpdatedAt,
	)

	if err != nil {
		return utils.NewInternalError("unable to create listing, DB error")
	}

	return nil
}

// UpdateListing replaces only the fields present in the request.
func (q *ListingQueries) UpdateListing(id uuid.UUID, req *models.UpdateListingRequest) error {
	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *req.Title)
		argID++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argID))
		args = append(args, *req.Description)
		argID++
	}
	if req.Price != nil {
		setClauses = append(setClauses, fmt.Sprintf("price = $%d", argID))
		args = append(args, *req.Price)
		argID++
	}
	if req.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argID))
		args = append(args, *req.Location)
		argID++
	}
	if req.Country != nil {
		setClauses = append(setClauses, fmt.Sprintf("country = $%d", argID))
		args = append(args, *req.Country)
		argID++
	}
	if req.Image != nil {
		setClauses = append(setClauses, fmt.Sprintf("image_url = $%d", argID))
		args = append(args, *req.Image)
		argID++
	}

	if len(setClauses) == 0 {
		return utils.NewValidationError("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(`UPDATE listings SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	res, err := q.DB.Exec(query, args...)
	if err != nil {
		return utils.NewInternalError("unable to update listing, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return utils.NewNotFoundError("Listing not found")
	}
	return nil
}

// DeleteListing removes the listing and cascades its dependent review and
// transaction records in one transaction.
func (q *ListingQueries) DeleteListing(id uuid.UUID) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return utils.NewInternalError("unable to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM reviews WHERE listing_id = $1`, id); err != nil {
		return utils.NewInternalError("unable to delete listing reviews, DB error")
	}
	if _, err = tx.Exec(`DELETE FROM transactions WHERE listing_id = $1`, id); err != nil {
		return utils.NewInternalError("unable to delete listing transactions, DB error")
	}

	res, execErr := tx.Exec(`DELETE FROM listings WHERE id = $1`, id)
	if execErr != nil {
		err = execErr
		return utils.NewInternalError("unable to delete listing, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		err = sql.ErrNoRows
		return utils.NewNotFoundError("Listing not found")
	}

	if err = tx.Commit(); err != nil {
		return utils.NewInternalError("unable to commit listing delete")
	}
	return nil
}
