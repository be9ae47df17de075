package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
)

// ListingRepository is the full repository surface the listing service needs.
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	List(ctx context.Context, limit, offset int) ([]model.Listing, int, error)
	Create(ctx context.Context, listing *model.Listing) (int64, error)
	Update(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, id int64) error
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) *model.EmbeddingBatchResponse
}

// ListingService manages listing CRUD and keeps embeddings up to date.
type ListingService struct {
	repo ListingRepository
	ai   AIClient
	log  *zap.Logger
}

// NewListingService creates a new listing service. ai may be nil; embeddings
// are then simply not generated.
func NewListingService(repo ListingRepository, ai AIClient, log *zap.Logger) *ListingService {
	return &ListingService{repo: repo, ai: ai, log: log}
}

// Get returns a single listing.
func (s *ListingService) Get(ctx context.Context, id int64) (*model.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of listings.
func (s *ListingService) List(ctx context.Context, limit, offset int) (*model.ListingListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	listings, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &model.ListingListResponse{
		Listings: listings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// Create validates and stores a new listing, then generates its embedding in
// the background.
func (s *ListingService) Create(ctx context.Context, req *model.ListingCreateRequest) (*model.Listing, error) {
	listing, err := listingFromRequest(req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, err
	}
	listing.ID = id

	s.refreshEmbedding(listing)
	return listing, nil
}

// Update validates and replaces an existing listing, then regenerates its
// embedding in the background.
func (s *ListingService) Update(ctx context.Context, id int64, req *model.ListingCreateRequest) (*model.Listing, error) {
	listing, err := listingFromRequest(req)
	if err != nil {
		return nil, err
	}
	listing.ID = id

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}

	s.refreshEmbedding(listing)
	return listing, nil
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// BatchUpdateEmbeddings applies externally computed embeddings.
func (s *ListingService) BatchUpdateEmbeddings(ctx context.Context, req *model.EmbeddingBatchRequest) *model.EmbeddingBatchResponse {
	return s.repo.BatchUpdateEmbeddings(ctx, req.Embeddings)
}

func listingFromRequest(req *model.ListingCreateRequest) (*model.Listing, error) {
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !model.ValidCategories[category] {
		return nil, fmt.Errorf("invalid category %q", req.Category)
	}
	propertyType := strings.ToLower(strings.TrimSpace(req.PropertyType))
	if !model.ValidPropertyTypes[propertyType] {
		return nil, fmt.Errorf("invalid property_type %q", req.PropertyType)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	return &model.Listing{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Price:        req.Price,
		Location:     strings.TrimSpace(req.Location),
		PropertyType: propertyType,
		Category:     category,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		IsFurnished:  req.IsFurnished,
		Specs:        req.Specs,
		Images:       req.Images,
	}, nil
}

// refreshEmbedding computes and stores the listing embedding asynchronously.
// Failures are logged and otherwise ignored; search falls back to recency
// ordering for rows without an embedding.
func (s *ListingService) refreshEmbedding(listing *model.Listing) {
	if s.ai == nil || !s.ai.IsEnabled() {
		return
	}

	text := listing.Title
	if listing.Description != nil {
		text += "\n" + *listing.Description
	}
	text += "\n" + listing.Location + " " + listing.Category + " " + listing.PropertyType

	id := listing.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		emb, err := s.ai.CreateEmbedding(ctx, text)
		if err != nil {
			s.log.Warn("failed to embed listing", zap.Int64("listing_id", id), zap.Error(err))
			return
		}
		if err := s.repo.UpdateEmbedding(ctx, id, emb); err != nil {
			s.log.Warn("failed to store listing embedding", zap.Int64("listing_id", id), zap.Error(err))
		}
	}()
}
