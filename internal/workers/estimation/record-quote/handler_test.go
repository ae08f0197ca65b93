package recordquote

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premium-estimator/internal/common/config"
	"premium-estimator/internal/common/errors"
	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/models"
	"premium-estimator/internal/repository"
)

// ==========================
// Test Helper Functions
// ==========================

var insertQuote = regexp.QuoteMeta("INSERT INTO quotes")

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := NewHandler(LoadConfig(config.WorkerConfig{}), repository.NewQuoteRepository(db), logger.NewTestLogger(t))
	return h, mock, db
}

func createTestInput() *Input {
	premium := 9999.0
	return &Input{
		RequestID: "req-001",
		Profile: models.ApplicantProfile{
			InsurancePlan: models.PlanBronze,
			Region:        models.RegionSouthwest,
		},
		Premium:          &premium,
		PredictionStatus: models.PredictionSucceeded,
	}
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_Succeeded(t *testing.T) {
	h, mock, db := createTestHandler(t)
	defer db.Close()

	createdAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(insertQuote).
		WithArgs(sqlmock.AnyArg(), "req-001", "Bronze", "Southwest",
			sql.NullFloat64{Float64: 9999, Valid: true}, "succeeded", sql.NullString{}, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("quote-1", createdAt))

	out, err := h.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, "quote-1", out.QuoteID)
	assert.Equal(t, "2026-03-01T09:30:00Z", out.RecordedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_FailedPredictionStoresNoPremium(t *testing.T) {
	h, mock, db := createTestHandler(t)
	defer db.Close()

	in := createTestInput()
	in.PredictionStatus = models.PredictionFailed
	in.PredictionError = "no answer within 5s"

	mock.ExpectQuery(insertQuote).
		WithArgs(sqlmock.AnyArg(), "req-001", "Bronze", "Southwest",
			sql.NullFloat64{}, "failed", sql.NullString{String: "no answer within 5s", Valid: true}, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("quote-2", time.Now()))

	out, err := h.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "quote-2", out.QuoteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DatabaseError(t *testing.T) {
	h, mock, db := createTestHandler(t)
	defer db.Close()

	mock.ExpectQuery(insertQuote).WillReturnError(sql.ErrConnDone)

	_, err := h.Execute(context.Background(), createTestInput())
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_MissingRequestID(t *testing.T) {
	h, _, db := createTestHandler(t)
	defer db.Close()

	in := createTestInput()
	in.RequestID = ""

	_, err := h.Execute(context.Background(), in)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInputParsingFailed, stdErr.Code)
}
