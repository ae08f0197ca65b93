// Package repository persists quote outcomes to Postgres.
package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/models"
)

var ErrQuoteNotFound = stderrors.New("QUOTE_NOT_FOUND")

const (
	insertQuoteSQL = `
		INSERT INTO quotes (id, request_id, insurance_plan, region, premium, status, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (request_id) DO NOTHING
		RETURNING id, created_at`

	selectQuoteSQL = `
		SELECT id, request_id, insurance_plan, region, premium, status, error_message, created_at
		FROM quotes
		WHERE request_id = $1`
)

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// NewQuote builds the audit record for one request. A nil premium means the
// prediction failed and errMsg says why.
func NewQuote(requestID string, p models.ApplicantProfile, premium *float64, errMsg string) models.Quote {
	q := models.Quote{
		RequestID:     requestID,
		InsurancePlan: p.InsurancePlan,
		Region:        p.Region,
		Premium:       premium,
		Status:        models.QuoteStatusSucceeded,
	}
	if premium == nil {
		q.Status = models.QuoteStatusFailed
		q.ErrorMessage = errMsg
	}
	return q
}

// Record inserts q, filling ID and CreatedAt. Recording the same request id
// twice is a no-op that returns the stored quote, so job retries are safe.
func (r *QuoteRepository) Record(ctx context.Context, q models.Quote) (models.Quote, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	var errMsg sql.NullString
	if q.ErrorMessage != "" {
		errMsg = sql.NullString{String: q.ErrorMessage, Valid: true}
	}
	var premium sql.NullFloat64
	if q.Premium != nil {
		premium = sql.NullFloat64{Float64: *q.Premium, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, insertQuoteSQL,
		q.ID,
		q.RequestID,
		string(q.InsurancePlan),
		string(q.Region),
		premium,
		string(q.Status),
		errMsg,
		q.CreatedAt,
	).Scan(&q.ID, &q.CreatedAt)

	if stderrors.Is(err, sql.ErrNoRows) {
		existing, getErr := r.GetByRequestID(ctx, q.RequestID)
		if getErr != nil {
			return models.Quote{}, errors.NewDatabaseInsertFailedError(getErr)
		}
		return existing, nil
	}
	if err != nil {
		return models.Quote{}, errors.NewDatabaseInsertFailedError(err)
	}
	return q, nil
}

func (r *QuoteRepository) GetByRequestID(ctx context.Context, requestID string) (models.Quote, error) {
	var (
		q       models.Quote
		plan    string
		region  string
		status  string
		premium sql.NullFloat64
		errMsg  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, selectQuoteSQL, requestID).
		Scan(&q.ID, &q.RequestID, &plan, &region, &premium, &status, &errMsg, &q.CreatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Quote{}, fmt.Errorf("%w: %s", ErrQuoteNotFound, requestID)
	}
	if err != nil {
		return models.Quote{}, fmt.Errorf("query quote: %w", err)
	}

	q.InsurancePlan = models.InsurancePlan(plan)
	q.Region = models.Region(region)
	q.Status = models.QuoteStatus(status)
	if premium.Valid {
		v := premium.Float64
		q.Premium = &v
	}
	q.ErrorMessage = errMsg.String
	return q, nil
}
