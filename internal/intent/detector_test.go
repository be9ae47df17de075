package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allevandrose/realEstate/internal/model"
)

func TestDetectNonPropertyMessage(t *testing.T) {
	d := NewDetector()

	result := d.Detect("hello there")
	assert.False(t, result.IsPropertyRelated)
	assert.Less(t, result.Confidence, 0.3)
	assert.Nil(t, result.Category)
	assert.Nil(t, result.PropertyType)
	assert.Nil(t, result.Features.IsFurnished)
}

func TestDetectApartmentForRent(t *testing.T) {
	d := NewDetector()

	result := d.Detect("looking for a 3 bedroom apartment in Karen for rent")
	assert.True(t, result.IsPropertyRelated)
	require.NotNil(t, result.Category)
	assert.Equal(t, model.CategoryApartment, *result.Category)
	require.NotNil(t, result.PropertyType)
	assert.Equal(t, model.PropertyTypeRent, *result.PropertyType)
	assert.Greater(t, result.Confidence, 0.5)
}

func TestDetectFurnishedBungalowForSale(t *testing.T) {
	d := NewDetector()

	result := d.Detect("furnished bungalow for sale in Kiambu")
	assert.True(t, result.IsPropertyRelated)
	require.NotNil(t, result.Category)
	assert.Equal(t, model.CategoryBungalow, *result.Category)
	require.NotNil(t, result.PropertyType)
	assert.Equal(t, model.PropertyTypeSale, *result.PropertyType)
	require.NotNil(t, result.Features.IsFurnished)
	assert.True(t, *result.Features.IsFurnished)
}

func TestDetectSaleWinsOverRent(t *testing.T) {
	d := NewDetector()

	result := d.Detect("should I buy or rent a house")
	require.NotNil(t, result.PropertyType)
	assert.Equal(t, model.PropertyTypeSale, *result.PropertyType)
}

func TestDetectUnfurnishedResolvesFurnished(t *testing.T) {
	// "unfurnished" contains "furnished" and the furnished scan runs
	// first, so the flag comes back true. Fixed behaviour.
	d := NewDetector()

	result := d.Detect("unfurnished apartment to let")
	require.NotNil(t, result.Features.IsFurnished)
	assert.True(t, *result.Features.IsFurnished)
}

func TestDetectExplicitlyNotFurnished(t *testing.T) {
	d := NewDetector()

	result := d.Detect("apartment that is not furnished please")
	require.NotNil(t, result.Features.IsFurnished)
	// "furnished" itself matches the furnished bucket before the
	// "not furnished" phrase is ever consulted.
	assert.True(t, *result.Features.IsFurnished)
}

func TestDetectTypoStillClassifies(t *testing.T) {
	d := NewDetector()

	result := d.Detect("looking for an apartmnt to rent")
	assert.True(t, result.IsPropertyRelated)
	require.NotNil(t, result.Category)
	assert.Equal(t, model.CategoryApartment, *result.Category)
}

func TestDetectConfidenceCapped(t *testing.T) {
	d := NewDetector()

	result := d.Detect("looking for apartment apartments flat flats house property listings for sale")
	assert.True(t, result.IsPropertyRelated)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestDetectIdempotent(t *testing.T) {
	d := NewDetector()
	msg := "furnished bungalow for sale in Kiambu"

	first := d.Detect(msg)
	second := d.Detect(msg)
	assert.Equal(t, first, second)
}

func TestExtractNumbers(t *testing.T) {
	assert.Equal(t, []int{2, 4}, ExtractNumbers("I need 2 bedrooms under 4M"))
	assert.Equal(t, []int{3}, ExtractNumbers("3 bedroom apartment"))
	assert.Empty(t, ExtractNumbers("no digits here"))
	assert.Equal(t, []int{2026}, ExtractNumbers("built in 2026"))
}

func TestDetectLocation(t *testing.T) {
	assert.Equal(t, "Karen", DetectLocation("a house in karen please"))
	assert.Equal(t, "Kiambu", DetectLocation("anything in KIAMBU county"))
	assert.Equal(t, "", DetectLocation("somewhere nice"))
}

func TestDetectLocationTableOrderWins(t *testing.T) {
	// Westlands appears first in the message, but nairobi precedes it in
	// the gazetteer, and table order decides.
	assert.Equal(t, "Nairobi", DetectLocation("apartments in Westlands near Nairobi"))
}

func TestDetectLocationTitleCasing(t *testing.T) {
	assert.Equal(t, "South B", DetectLocation("bedsitter in south b"))
	assert.Equal(t, "Athi River", DetectLocation("plots in athi river"))
}
