package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allevandrose/realEstate/internal/model"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresRepository{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func listingRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "price", "location", "property_type",
		"category", "bedrooms", "bathrooms", "is_furnished", "specs", "images",
		"created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(id, "Two bedroom in Karen", nil, 75000.0, "Karen", "rent",
			"apartment", 2, 1, true, nil, nil, time.Now(), time.Now())
	}
	return rows
}

func TestSearchWithFilterBuildsConditions(t *testing.T) {
	repo, mock := newMockRepo(t)

	category := "apartment"
	location := "Karen"
	maxPrice := 100000.0
	filter := &model.ListingFilter{
		Category: &category,
		Location: &location,
		MaxPrice: &maxPrice,
	}

	mock.ExpectQuery(`FROM listings WHERE category = \$1 AND location ILIKE \$2 AND price <= \$3 ORDER BY created_at DESC LIMIT \$4`).
		WithArgs("apartment", "%Karen%", 100000.0, 10).
		WillReturnRows(listingRows(1, 2))

	listings, err := repo.SearchWithFilter(context.Background(), filter, nil, 10)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithFilterEmptyFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM listings\s+ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(listingRows(1))

	listings, err := repo.SearchWithFilter(context.Background(), &model.ListingFilter{}, nil, 5)
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithFilterVectorOrdering(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM listings\s+ORDER BY embedding <=> \$1 NULLS LAST LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 5).
		WillReturnRows(listingRows(3))

	listings, err := repo.SearchWithFilter(context.Background(), nil, []float32{0.1, 0.2}, 5)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, int64(3), listings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM listings ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(3).
		WillReturnRows(listingRows(5, 6, 7))

	listings, err := repo.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, listings, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO listings")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	bedrooms := 2
	id, err := repo.Create(context.Background(), &model.Listing{
		Title:        "Two bedroom in Karen",
		Price:        75000,
		Location:     "Karen",
		PropertyType: "rent",
		Category:     "apartment",
		Bedrooms:     &bedrooms,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingListing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM listings WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogFeedback(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_feedback")).
		WithArgs("chat-1", int64(7), "click").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.LogFeedback(context.Background(), &model.FeedbackRequest{
		ChatID:    "chat-1",
		ListingID: 7,
		Action:    "click",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogChatSerialisesIntent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chat_logs")).
		WithArgs("chat-2", "apartment in karen", sqlmock.AnyArg(), sqlmock.AnyArg(), 3, int64(120)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.LogChat(context.Background(), model.ChatLog{
		ChatID:      "chat-2",
		Message:     "apartment in karen",
		Intent:      &model.IntentResult{IsPropertyRelated: true},
		ResultCount: 3,
		TookMs:      120,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
