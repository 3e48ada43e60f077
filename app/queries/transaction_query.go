package queries

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/wanderlust/wanderlust-backend/app/models"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

type TransactionQueries struct {
	DB *sql.DB
}

const transactionColumns = `id, listing_id, user_id, amount, platform_fee, total_amount, status, created_at, updated_at`

// CreateBookingTransaction reserves the listing and records the pending
// transaction atomically. The listing is marked booked only if it is not
// already; a booked listing aborts the whole transaction with a conflict and
// no ledger row is written.
func (q *TransactionQueries) CreateBookingTransaction(t *models.Transaction) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return utils.NewInternalError("unable to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, execErr := tx.Exec(
		`UPDATE listings SET is_booked = TRUE, booked_by = $2, updated_at = now()
		 WHERE id = $1 AND is_booked = FALSE`,
		t.ListingID, t.UserID,
	)
	if execErr != nil {
		err = execErr
		return utils.NewInternalError("unable to reserve listing, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		err = sql.ErrNoRows
		return utils.NewConflictError("This listing is already booked")
	}

	_, err = tx.Exec(
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.ListingID, t.UserID, t.Amount, t.PlatformFee, t.TotalAmount, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return utils.NewInternalError("unable to create transaction, DB error")
	}

	if err = tx.Commit(); err != nil {
		return utils.NewInternalError("unable to commit booking")
	}
	return nil
}

func (q *TransactionQueries) GetTransactionByID(id uuid.UUID) (models.Transaction, error) {
	t := models.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := q.DB.QueryRow(query, id).Scan(
		&t.ID, &t.ListingID, &t.UserID, &t.Amount, &t.PlatformFee, &t.TotalAmount, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, utils.NewNotFoundError("transaction not found")
		}
		return t, utils.NewInternalError("unable to get transaction, DB error")
	}
	return t, nil
}

// GetTransactionsByListing returns the listing's ledger entries in booking order.
func (q *TransactionQueries) GetTransactionsByListing(listingID uuid.UUID) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE listing_id = $1 ORDER BY created_at`

	rows, err := q.DB.Query(query, listingID)
	if err != nil {
		return transactions, utils.NewInternalError("unable to get transactions, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.ListingID, &t.UserID, &t.Amount, &t.PlatformFee, &t.TotalAmount, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return transactions, utils.NewInternalError("error scanning transaction row")
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return transactions, utils.NewInternalError("error iterating transaction rows")
	}

	return transactions, nil
}

// UpdateTransactionStatus moves a pending transaction to Completed or Failed.
// Any other target status, or a transaction already settled, is rejected.
func (q *TransactionQueries) UpdateTransactionStatus(id uuid.UUID, status string) error {
	if status != models.TransactionCompleted && status != models.TransactionFailed {
		return utils.NewValidationError("invalid transaction status")
	}

	res, err := q.DB.Exec(
		`UPDATE transactions SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		id, status, models.TransactionPending,
	)
	if err != nil {
		return utils.NewInternalError("unable to update transaction, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return q.settleConflict(id)
	}
	return nil
}

// FailTransaction marks a pending transaction Failed and reverts the listing
// so it becomes bookable again. Both writes happen in one transaction.
func (q *TransactionQueries) FailTransaction(id uuid.UUID) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return utils.NewInternalError("unable to start transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var listingID uuid.UUID
	err = tx.QueryRow(
		`UPDATE transactions SET status = $2, updated_at = now()
		 WHERE id = $1 AND status = $3 RETURNING listing_id`,
		id, models.TransactionFailed, models.TransactionPending,
	).Scan(&listingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return q.settleConflict(id)
		}
		return utils.NewInternalError("unable to update transaction, DB error")
	}

	_, err = tx.Exec(
		`UPDATE listings SET is_booked = FALSE, booked_by = NULL, updated_at = now() WHERE id = $1`,
		listingID,
	)
	if err != nil {
		return utils.NewInternalError("unable to release listing, DB error")
	}

	if err = tx.Commit(); err != nil {
		return utils.NewInternalError("unable to commit payment failure")
	}
	return nil
}

// settleConflict distinguishes a missing transaction from one that already
// left Pending.
func (q *TransactionQueries) settleConflict(id uuid.UUID) error {
	var status string
	err := q.DB.QueryRow(`SELECT status FROM transactions WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.NewNotFoundError("transaction not found")
		}
		return utils.NewInternalError("unable to get transaction, DB error")
	}
	return utils.NewConflictError("transaction already " + status)
}
