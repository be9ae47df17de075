package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allevandrose/realEstate/internal/model"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestRankMatchingListingFirst(t *testing.T) {
	r := NewRanker(0.4, 0.3, 0.3)
	now := time.Now()

	listings := []model.Listing{
		{
			ID:           1,
			Price:        300_000,
			Location:     "Mombasa",
			PropertyType: model.PropertyTypeSale,
			Category:     model.CategoryLand,
			CreatedAt:    now.Add(-60 * 24 * time.Hour),
		},
		{
			ID:           2,
			Price:        70_000,
			Location:     "Karen, Nairobi",
			PropertyType: model.PropertyTypeRent,
			Category:     model.CategoryApartment,
			Bedrooms:     intPtr(3),
			CreatedAt:    now.Add(-2 * 24 * time.Hour),
		},
	}
	filter := &model.ListingFilter{
		Category:     strPtr(model.CategoryApartment),
		PropertyType: strPtr(model.PropertyTypeRent),
		Location:     strPtr("Karen"),
		Bedrooms:     intPtr(2),
		MaxPrice:     floatPtr(100_000),
	}

	ranked := r.Rank(listings, filter)
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].ID)
	assert.Contains(t, ranked[0].MatchedReasons, ReasonCategoryMatch)
	assert.Contains(t, ranked[0].MatchedReasons, ReasonLocationMatch)
	assert.Contains(t, ranked[0].MatchedReasons, ReasonBedroomsMatch)
	assert.Contains(t, ranked[0].MatchedReasons, ReasonNewlyListed)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankOverBudgetScoresZeroOnPrice(t *testing.T) {
	r := NewRanker(1, 0, 0)

	listings := []model.Listing{
		{ID: 1, Price: 200_000, CreatedAt: time.Now()},
	}
	filter := &model.ListingFilter{MaxPrice: floatPtr(100_000)}

	ranked := r.Rank(listings, filter)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.0, ranked[0].Score)
}

func TestRankNoFilterFallsBackToGeneralReason(t *testing.T) {
	r := NewRanker(0.4, 0.3, 0.3)

	listings := []model.Listing{
		{ID: 1, Price: 50_000, CreatedAt: time.Now().Add(-400 * 24 * time.Hour)},
	}

	ranked := r.Rank(listings, nil)
	require.Len(t, ranked, 1)
	assert.NotEmpty(t, ranked[0].MatchedReasons)
}

func TestRankFurnishedMatch(t *testing.T) {
	r := NewRanker(0, 0, 1)
	now := time.Now()

	listings := []model.Listing{
		{ID: 1, Price: 50_000, IsFurnished: boolPtr(false), CreatedAt: now},
		{ID: 2, Price: 50_000, IsFurnished: boolPtr(true), CreatedAt: now},
	}
	filter := &model.ListingFilter{IsFurnished: boolPtr(true)}

	ranked := r.Rank(listings, filter)
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].ID)
	assert.Contains(t, ranked[0].MatchedReasons, ReasonFurnishedMatch)
}

func TestRankStableForEqualScores(t *testing.T) {
	r := NewRanker(0, 0, 1)
	now := time.Now()

	listings := []model.Listing{
		{ID: 1, Price: 50_000, CreatedAt: now},
		{ID: 2, Price: 50_000, CreatedAt: now},
		{ID: 3, Price: 50_000, CreatedAt: now},
	}

	ranked := r.Rank(listings, &model.ListingFilter{})
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(1), ranked[0].ID)
	assert.Equal(t, int64(2), ranked[1].ID)
	assert.Equal(t, int64(3), ranked[2].ID)
}
