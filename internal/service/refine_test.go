package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allevandrose/realEstate/internal/intent"
	"github.com/Allevandrose/realEstate/internal/model"
)

func detect(t *testing.T, message string) *model.IntentResult {
	t.Helper()
	return intent.NewDetector().Detect(message)
}

func TestBuildCoarseFilterFull(t *testing.T) {
	msg := "looking for a 3 bedroom apartment in Karen for rent under 80k"
	filter := BuildCoarseFilter(msg, detect(t, msg))

	require.NotNil(t, filter.Category)
	assert.Equal(t, model.CategoryApartment, *filter.Category)
	require.NotNil(t, filter.PropertyType)
	assert.Equal(t, model.PropertyTypeRent, *filter.PropertyType)
	require.NotNil(t, filter.Location)
	assert.Equal(t, "Karen", *filter.Location)
	require.NotNil(t, filter.Bedrooms)
	assert.Equal(t, 3, *filter.Bedrooms)
	require.NotNil(t, filter.MaxPrice)
	assert.Equal(t, 80_000.0, *filter.MaxPrice)
}

func TestBuildCoarseFilterBudgetScales(t *testing.T) {
	cases := []struct {
		message string
		want    float64
	}{
		{"land in Kiambu under 4M", 4_000_000},
		{"land in Kiambu under 4 million", 4_000_000},
		{"apartment below 800k", 800_000},
		{"apartment below 800 thousand", 800_000},
	}
	for _, tc := range cases {
		filter := BuildCoarseFilter(tc.message, detect(t, tc.message))
		require.NotNil(t, filter.MaxPrice, tc.message)
		assert.Equal(t, tc.want, *filter.MaxPrice, tc.message)
	}
}

func TestBuildCoarseFilterBareNumberIsNotBudget(t *testing.T) {
	msg := "apartment for rent around 400000"
	filter := BuildCoarseFilter(msg, detect(t, msg))
	assert.Nil(t, filter.MaxPrice)
}

func TestBuildCoarseFilterBedroomsIsFirstSmallNumber(t *testing.T) {
	msg := "2 bedroom house under 15M"
	filter := BuildCoarseFilter(msg, detect(t, msg))

	require.NotNil(t, filter.Bedrooms)
	assert.Equal(t, 2, *filter.Bedrooms)
	require.NotNil(t, filter.MaxPrice)
	assert.Equal(t, 15_000_000.0, *filter.MaxPrice)
}

func TestBuildCoarseFilterNoLocation(t *testing.T) {
	msg := "any furnished office to rent"
	filter := BuildCoarseFilter(msg, detect(t, msg))
	assert.Nil(t, filter.Location)
	require.NotNil(t, filter.IsFurnished)
	assert.True(t, *filter.IsFurnished)
}

func TestParseRefinementValid(t *testing.T) {
	ref := parseRefinement(`{"category": "apartment", "bedrooms": 2, "reply": "On it."}`)
	require.NotNil(t, ref)
	require.NotNil(t, ref.Category)
	assert.Equal(t, "apartment", *ref.Category)
	require.NotNil(t, ref.Bedrooms)
	assert.Equal(t, 2, *ref.Bedrooms)
	assert.Equal(t, "On it.", ref.Reply)
}

func TestParseRefinementFenced(t *testing.T) {
	ref := parseRefinement("```json\n{\"property_type\": \"rent\"}\n```")
	require.NotNil(t, ref)
	require.NotNil(t, ref.PropertyType)
	assert.Equal(t, model.PropertyTypeRent, *ref.PropertyType)
}

func TestParseRefinementMalformed(t *testing.T) {
	assert.Nil(t, parseRefinement("I think you want an apartment"))
	assert.Nil(t, parseRefinement(""))
	assert.Nil(t, parseRefinement("{not json"))
}

func TestParseRefinementSanitizesInvalidFields(t *testing.T) {
	ref := parseRefinement(`{"category": "castle", "property_type": "SALE", "bedrooms": 50, "max_price": -5, "location": "  "}`)
	require.NotNil(t, ref)
	assert.Nil(t, ref.Category)
	require.NotNil(t, ref.PropertyType)
	assert.Equal(t, model.PropertyTypeSale, *ref.PropertyType)
	assert.Nil(t, ref.Bedrooms)
	assert.Nil(t, ref.MaxPrice)
	assert.Nil(t, ref.Location)
}

func TestMergeFilterRefinedWins(t *testing.T) {
	coarseCat := model.CategoryBungalow
	coarseLoc := "Karen"
	coarse := &model.ListingFilter{Category: &coarseCat, Location: &coarseLoc}

	refCat := model.CategoryApartment
	price := 2_000_000.0
	ref := &filterRefinement{Category: &refCat, MaxPrice: &price}

	merged := mergeFilter(coarse, ref)
	require.NotNil(t, merged.Category)
	assert.Equal(t, model.CategoryApartment, *merged.Category)
	require.NotNil(t, merged.Location)
	assert.Equal(t, "Karen", *merged.Location)
	require.NotNil(t, merged.MaxPrice)
	assert.Equal(t, price, *merged.MaxPrice)
}

func TestMergeFilterNilRefinementKeepsCoarse(t *testing.T) {
	cat := model.CategoryLand
	coarse := &model.ListingFilter{Category: &cat}

	merged := mergeFilter(coarse, nil)
	require.NotNil(t, merged.Category)
	assert.Equal(t, model.CategoryLand, *merged.Category)
}
