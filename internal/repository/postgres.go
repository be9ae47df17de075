package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/Allevandrose/realEstate/internal/model"
)

// PostgresRepository provides access to listings, chat logs and feedback.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(dsn string, maxConns, maxIdle int) (*PostgresRepository, error) {
	// pgvector parameters break the extended protocol prepared-statement
	// cache on some poolers, so force the simple protocol.
	if !strings.Contains(dsn, "prefer_simple_protocol") {
		if strings.Contains(dsn, "?") {
			dsn += "&prefer_simple_protocol=true"
		} else {
			dsn += " prefer_simple_protocol=true"
		}
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping verifies the database connection.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const listingColumns = `id, title, description, price, location, property_type, category,
	bedrooms, bathrooms, is_furnished, specs, images, created_at, updated_at`

// SearchWithFilter returns listings matching every set filter field. When a
// query embedding is provided rows are ordered by vector distance, otherwise
// by recency.
func (r *PostgresRepository) SearchWithFilter(ctx context.Context, filter *model.ListingFilter, queryEmbedding []float32, limit int) ([]model.Listing, error) {
	var (
		conditions []string
		args       []interface{}
		argIndex   = 1
	)

	if filter != nil {
		if filter.Category != nil {
			conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
			args = append(args, *filter.Category)
			argIndex++
		}
		if filter.PropertyType != nil {
			conditions = append(conditions, fmt.Sprintf("property_type = $%d", argIndex))
			args = append(args, *filter.PropertyType)
			argIndex++
		}
		if filter.Location != nil {
			conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIndex))
			args = append(args, "%"+*filter.Location+"%")
			argIndex++
		}
		if filter.Bedrooms != nil {
			conditions = append(conditions, fmt.Sprintf("bedrooms >= $%d", argIndex))
			args = append(args, *filter.Bedrooms)
			argIndex++
		}
		if filter.MaxPrice != nil {
			conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
			args = append(args, *filter.MaxPrice)
			argIndex++
		}
		if filter.IsFurnished != nil {
			conditions = append(conditions, fmt.Sprintf("is_furnished = $%d", argIndex))
			args = append(args, *filter.IsFurnished)
			argIndex++
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at DESC"
	if len(queryEmbedding) > 0 {
		orderBy = fmt.Sprintf("embedding <=> $%d NULLS LAST", argIndex)
		args = append(args, pgvector.NewVector(queryEmbedding))
		argIndex++
	}

	query := fmt.Sprintf(
		`SELECT %s FROM listings %s ORDER BY %s LIMIT $%d`,
		listingColumns, where, orderBy, argIndex,
	)
	args = append(args, limit)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, nil
}

// Recent returns the newest listings regardless of filters.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]model.Listing, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM listings ORDER BY created_at DESC LIMIT $1`,
		listingColumns,
	)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent listings: %w", err)
	}
	return listings, nil
}

// GetByID returns a single listing or sql.ErrNoRows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	var listing model.Listing
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return &listing, nil
}

// List returns a page of listings plus the total count.
func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]model.Listing, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM listings`); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM listings ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		listingColumns,
	)

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, total, nil
}

// Create inserts a listing and returns its assigned ID.
func (r *PostgresRepository) Create(ctx context.Context, listing *model.Listing) (int64, error) {
	query := `
		INSERT INTO listings (title, description, price, location, property_type, category,
			bedrooms, bathrooms, is_furnished, specs, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Location,
		listing.PropertyType,
		listing.Category,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.IsFurnished,
		listing.Specs,
		listing.Images,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create listing: %w", err)
	}
	return id, nil
}

// Update replaces the mutable fields of a listing.
func (r *PostgresRepository) Update(ctx context.Context, listing *model.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, location = $4,
			property_type = $5, category = $6, bedrooms = $7, bathrooms = $8,
			is_furnished = $9, specs = $10, images = $11, updated_at = NOW()
		WHERE id = $12`

	res, err := r.db.ExecContext(ctx, query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Location,
		listing.PropertyType,
		listing.Category,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.IsFurnished,
		listing.Specs,
		listing.Images,
		listing.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %d: %w", listing.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a listing.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateEmbedding stores a listing's embedding vector.
func (r *PostgresRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	query := `UPDATE listings SET embedding = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, pgvector.NewVector(embedding), id)
	if err != nil {
		return fmt.Errorf("failed to update embedding for listing %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read embedding update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BatchUpdateEmbeddings applies embedding updates one by one and reports
// per-item failures without aborting the batch.
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) *model.EmbeddingBatchResponse {
	resp := &model.EmbeddingBatchResponse{}
	for _, item := range items {
		if err := r.UpdateEmbedding(ctx, item.ListingID, item.Embedding); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("listing %d: %v", item.ListingID, err))
			continue
		}
		resp.Success++
	}
	return resp
}

// LogChat records one chat exchange for offline analysis.
func (r *PostgresRepository) LogChat(ctx context.Context, entry model.ChatLog) error {
	intentJSON, err := json.Marshal(entry.Intent)
	if err != nil {
		intentJSON = []byte("null")
	}
	filterJSON, err := json.Marshal(entry.Filter)
	if err != nil {
		filterJSON = []byte("null")
	}

	query := `
		INSERT INTO chat_logs (chat_id, message, intent, filter, result_count, took_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	if _, err := r.db.ExecContext(ctx, query,
		entry.ChatID,
		entry.Message,
		intentJSON,
		filterJSON,
		entry.ResultCount,
		entry.TookMs,
	); err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}

// LogFeedback records a user action against a listing returned by chat.
func (r *PostgresRepository) LogFeedback(ctx context.Context, feedback *model.FeedbackRequest) error {
	query := `
		INSERT INTO chat_feedback (chat_id, listing_id, action, created_at)
		VALUES ($1, $2, $3, NOW())`

	if _, err := r.db.ExecContext(ctx, query,
		feedback.ChatID,
		feedback.ListingID,
		feedback.Action,
	); err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
