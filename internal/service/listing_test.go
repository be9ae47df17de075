package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/model"
)

type fakeListingRepo struct {
	mu sync.Mutex

	created     *model.Listing
	updated     *model.Listing
	embeddedIDs []int64
	listings    []model.Listing
	total       int
}

func (f *fakeListingRepo) GetByID(_ context.Context, id int64) (*model.Listing, error) {
	return &model.Listing{ID: id}, nil
}

func (f *fakeListingRepo) List(_ context.Context, limit, offset int) ([]model.Listing, int, error) {
	return f.listings, f.total, nil
}

func (f *fakeListingRepo) Create(_ context.Context, listing *model.Listing) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = listing
	return 11, nil
}

func (f *fakeListingRepo) Update(_ context.Context, listing *model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = listing
	return nil
}

func (f *fakeListingRepo) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakeListingRepo) UpdateEmbedding(_ context.Context, id int64, _ []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddedIDs = append(f.embeddedIDs, id)
	return nil
}

func (f *fakeListingRepo) BatchUpdateEmbeddings(_ context.Context, items []model.EmbeddingItem) *model.EmbeddingBatchResponse {
	return &model.EmbeddingBatchResponse{Success: len(items)}
}

func (f *fakeListingRepo) embedded() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.embeddedIDs...)
}

func validCreateRequest() *model.ListingCreateRequest {
	return &model.ListingCreateRequest{
		Title:        "  Two bedroom in Karen ",
		Price:        75000,
		Location:     "Karen",
		PropertyType: "Rent",
		Category:     "APARTMENT",
	}
}

func TestListingCreateNormalisesEnums(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := NewListingService(repo, nil, zap.NewNop())

	listing, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(11), listing.ID)
	assert.Equal(t, "Two bedroom in Karen", listing.Title)
	assert.Equal(t, model.PropertyTypeRent, listing.PropertyType)
	assert.Equal(t, model.CategoryApartment, listing.Category)
}

func TestListingCreateRejectsInvalidCategory(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := NewListingService(repo, nil, zap.NewNop())

	req := validCreateRequest()
	req.Category = "castle"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
	assert.Nil(t, repo.created)
}

func TestListingCreateRejectsNonPositivePrice(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := NewListingService(repo, nil, zap.NewNop())

	req := validCreateRequest()
	req.Price = 0
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestListingCreateRefreshesEmbedding(t *testing.T) {
	repo := &fakeListingRepo{}
	ai := &fakeAI{enabled: true, embedding: []float32{0.5}}
	svc := NewListingService(repo, ai, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Embedding generation runs in the background.
	assert.Eventually(t, func() bool {
		ids := repo.embedded()
		return len(ids) == 1 && ids[0] == 11
	}, time.Second, 10*time.Millisecond)
}

func TestListingListClampsPaging(t *testing.T) {
	repo := &fakeListingRepo{listings: []model.Listing{{ID: 1}}, total: 1}
	svc := NewListingService(repo, nil, zap.NewNop())

	resp, err := svc.List(context.Background(), 1000, -5)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, 1, resp.Total)
}
