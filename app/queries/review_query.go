package queries

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

type ReviewQueries struct {
	DB *sql.DB
}

func (q *ReviewQueries) CreateReview(r *models.Review) error {
	query := `INSERT INTO reviews (id, listing_id, user_id, rating, comment, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := q.DB.Exec(query, r.ID, r.ListingID, r.UserID, r.Rating, r.Comment, r.CreatedAt)
	if err != nil {
		return utils.NewInternalError("unable to create review, DB error")
	}
	return nil
}

func (q *ReviewQueries) GetReviewsByListing(listingID uuid.UUID) ([]models.Review, error) {
	reviews := []models.Review{}
	query := `SELECT id, listing_id, user_id, rating, comment, created_at
			  FROM reviews WHERE listing_id = $1 ORDER BY created_at DESC`

	rows, err := q.DB.Query(query, listingID)
	if err != nil {
		return reviews, utils.NewInternalError("unable to get reviews, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ListingID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return reviews, utils.NewInternalError("error scanning review row")
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return reviews, utils.NewInternalError("error iterating review rows")
	}

	return reviews, nil
}

func (q *ReviewQueries) DeleteReview(id uuid.UUID) error {
	res, err := q.DB.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return utils.NewInternalError("unable to delete review, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return utils.NewNotFoundError("review not found")
	}
	return nil
}
