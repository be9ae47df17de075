package model

// ListingFilter represents the structured predicate applied against the
// listing store. Bedrooms is a minimum, MaxPrice an upper bound, Location is
// matched case-insensitively, IsFurnished is an exact match.
type ListingFilter struct {
	Category     *string  `json:"category,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	IsFurnished  *bool    `json:"is_furnished,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f *ListingFilter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Category == nil && f.PropertyType == nil && f.Location == nil &&
		f.Bedrooms == nil && f.MaxPrice == nil && f.IsFurnished == nil
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the chat reply plus a bounded set of listing summaries.
type ChatResponse struct {
	ChatID     string            `json:"chat_id"`
	Reply      string            `json:"reply"`
	Properties []PropertySummary `json:"properties"`
	Intent     *IntentResult     `json:"intent,omitempty"`
	Took       int64             `json:"took_ms"`
}

// ListingCreateRequest is the body for creating or replacing a listing.
type ListingCreateRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	PropertyType string    `json:"property_type" binding:"required"`
	Category     string    `json:"category" binding:"required"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *int      `json:"bathrooms,omitempty"`
	IsFurnished  *bool     `json:"is_furnished,omitempty"`
	Specs        JSONMap   `json:"specs,omitempty"`
	Images       JSONArray `json:"images,omitempty"`
}

// ListingListResponse is a paginated listing collection.
type ListingListResponse struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding with listing info
type EmbeddingItem struct {
	ListingID int64     `json:"listing_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ChatLog is one recorded chat exchange. Intent and Filter are stored as
// JSONB for offline analysis of classifier behaviour.
type ChatLog struct {
	ID          int64          `db:"id" json:"id"`
	ChatID      string         `db:"chat_id" json:"chat_id"`
	Message     string         `db:"message" json:"message"`
	Intent      *IntentResult  `db:"-" json:"intent,omitempty"`
	Filter      *ListingFilter `db:"-" json:"filter,omitempty"`
	ResultCount int            `db:"result_count" json:"result_count"`
	TookMs      int64          `db:"took_ms" json:"took_ms"`
}

// FeedbackRequest records a user action on a listing returned by chat.
type FeedbackRequest struct {
	ChatID    string `json:"chat_id" binding:"required"`
	ListingID int64  `json:"listing_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
