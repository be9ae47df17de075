package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Property categories recognised by the backend.
const (
	CategoryApartment = "apartment"
	CategoryBungalow  = "bungalow"
	CategoryLand      = "land"
	CategoryOffice    = "office"
)

// Transaction types.
const (
	PropertyTypeSale = "sale"
	PropertyTypeRent = "rent"
)

// ValidCategories maps every accepted listing category.
var ValidCategories = map[string]bool{
	CategoryApartment: true,
	CategoryBungalow:  true,
	CategoryLand:      true,
	CategoryOffice:    true,
}

// ValidPropertyTypes maps every accepted transaction type.
var ValidPropertyTypes = map[string]bool{
	PropertyTypeSale: true,
	PropertyTypeRent: true,
}

// Listing represents a property listing
type Listing struct {
	ID           int64           `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Price        float64         `json:"price" db:"price"`
	Location     string          `json:"location" db:"location"`
	PropertyType string          `json:"property_type" db:"property_type"`
	Category     string          `json:"category" db:"category"`
	Bedrooms     *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int            `json:"bathrooms,omitempty" db:"bathrooms"`
	IsFurnished  *bool           `json:"is_furnished,omitempty" db:"is_furnished"`
	Specs        JSONMap         `json:"specs,omitempty" db:"specs"`
	Images       JSONArray       `json:"images,omitempty" db:"images"`
	Embedding    pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// PropertySummary is the reduced listing shape returned by the chat endpoint.
// Image carries the first stored URL, or null when the listing has none.
type PropertySummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	Category     string  `json:"category"`
	Specs        JSONMap `json:"specs,omitempty"`
	Image        *string `json:"image"`
}

// Summary reduces a listing to its chat representation.
func (l *Listing) Summary() PropertySummary {
	s := PropertySummary{
		ID:           l.ID,
		Title:        l.Title,
		Price:        l.Price,
		Location:     l.Location,
		PropertyType: l.PropertyType,
		Category:     l.Category,
		Specs:        l.Specs,
	}
	if len(l.Images) > 0 {
		img := l.Images[0]
		s.Image = &img
	}
	return s
}

// ListingScored pairs a listing with its ranking score.
type ListingScored struct {
	Listing
	Score          float64  `json:"score"`
	MatchedReasons []string `json:"matched_reasons,omitempty"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
