package analytics

import (
	"context"
	"testing"
	"time"

	"realassist/internal/cache"
	"realassist/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T, ttl time.Duration) (*Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	// Table and index creation during store construction.
	for i := 0; i < 4; i++ {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	store, err := database.NewInquiryStore(sqlx.NewDb(mockDB, "sqlmock"))
	require.NoError(t, err)

	service, err := NewService(store, cache.New(), ttl)
	require.NoError(t, err)

	return service, mock, func() { mockDB.Close() }
}

func expectSummaryQueries(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT category, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("Price Inquiry", 7).
			AddRow("General Inquiry", 5))
	mock.ExpectQuery("SELECT DATE").
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
			AddRow(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), 12))
	mock.ExpectQuery("SELECT email, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"email", "count"}).
			AddRow("dana@example.com", 9))
}

func TestNewService_RequiresStore(t *testing.T) {
	service, err := NewService(nil, cache.New(), time.Minute)
	assert.Error(t, err)
	assert.Nil(t, service)
}

func TestSummary(t *testing.T) {
	service, mock, closeDB := newMockService(t, time.Minute)
	defer closeDB()
	expectSummaryQueries(mock)

	summary, err := service.Summary(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.TotalInquiries)
	assert.Equal(t, 30, summary.DateRangeDays)
	assert.Equal(t, 7, summary.CategoryDistribution["Price Inquiry"])
	assert.Equal(t, 5, summary.CategoryDistribution["General Inquiry"])
	assert.Equal(t, 12, summary.DailyCounts["2026-08-29"])
	require.Len(t, summary.TopInquirers, 1)
	assert.Equal(t, "dana@example.com", summary.TopInquirers[0].Email)
	assert.Equal(t, 9, summary.TopInquirers[0].Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_ServesFromCache(t *testing.T) {
	service, mock, closeDB := newMockService(t, time.Minute)
	defer closeDB()
	expectSummaryQueries(mock)

	first, err := service.Summary(context.Background(), 30)
	require.NoError(t, err)

	// No new query expectations: the second call must not hit the database.
	second, err := service.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_DefaultWindow(t *testing.T) {
	service, mock, closeDB := newMockService(t, time.Minute)
	defer closeDB()
	expectSummaryQueries(mock)

	summary, err := service.Summary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, summary.DateRangeDays)
}
