package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/intent"
	"github.com/Allevandrose/realEstate/internal/metrics"
	"github.com/Allevandrose/realEstate/internal/model"
)

// ListingStore is the slice of the repository the chat service needs.
type ListingStore interface {
	SearchWithFilter(ctx context.Context, filter *model.ListingFilter, queryEmbedding []float32, limit int) ([]model.Listing, error)
	Recent(ctx context.Context, limit int) ([]model.Listing, error)
	LogChat(ctx context.Context, entry model.ChatLog) error
}

// ChatService turns free-text messages into listing search results.
type ChatService struct {
	store      ListingStore
	detector   *intent.Detector
	ai         AIClient
	ranker     *Ranker
	cache      *expirable.LRU[string, *filterRefinement]
	maxResults int
	log        *zap.Logger
}

// NewChatService creates a new chat service. ai may be nil, in which case
// only the heuristic coarse filter is used.
func NewChatService(
	store ListingStore,
	ai AIClient,
	ranker *Ranker,
	maxResults int,
	cacheSize int,
	cacheTTL time.Duration,
	log *zap.Logger,
) *ChatService {
	return &ChatService{
		store:      store,
		detector:   intent.NewDetector(),
		ai:         ai,
		ranker:     ranker,
		cache:      expirable.NewLRU[string, *filterRefinement](cacheSize, nil, cacheTTL),
		maxResults: maxResults,
		log:        log,
	}
}

// Chat classifies the message, refines the filter through the LLM when
// available, queries the listing store and returns a bounded set of
// summaries. LLM failures never surface to the caller: malformed JSON keeps
// the coarse filter and transport failure substitutes the most recent
// listings.
func (s *ChatService) Chat(ctx context.Context, message string) (*model.ChatResponse, error) {
	start := time.Now()
	metrics.ChatRequests.Inc()
	defer func() {
		metrics.ChatDuration.Observe(time.Since(start).Seconds())
	}()

	message = strings.TrimSpace(message)
	chatID := uuid.NewString()
	result := s.detector.Detect(message)

	if !result.IsPropertyRelated {
		resp := &model.ChatResponse{
			ChatID:     chatID,
			Reply:      "I help with property searches on Home254. Tell me what you are looking for, e.g. \"2 bedroom apartment for rent in Kilimani under 80k\".",
			Properties: []model.PropertySummary{},
			Intent:     result,
			Took:       time.Since(start).Milliseconds(),
		}
		s.logChat(chatID, message, result, nil, 0, resp.Took)
		return resp, nil
	}

	coarse := BuildCoarseFilter(message, result)
	filter := coarse
	reply := ""

	if s.ai != nil && s.ai.IsEnabled() {
		ref, err := s.refineWithCache(ctx, message, coarse)
		if err != nil {
			// Transport failure: answer with the most recent listings
			// instead of an error.
			s.log.Warn("LLM refinement failed, falling back to recent listings",
				zap.String("chat_id", chatID),
				zap.Error(err))
			metrics.LLMFailures.Inc()
			return s.recentFallback(ctx, chatID, message, result, start)
		}
		if ref != nil {
			filter = mergeFilter(coarse, ref)
			reply = ref.Reply
		}
	}

	queryEmbedding := s.messageEmbedding(ctx, message)

	listings, err := s.store.SearchWithFilter(ctx, filter, queryEmbedding, s.maxResults*2)
	if err != nil {
		return nil, fmt.Errorf("listing search failed: %w", err)
	}

	scored := s.ranker.Rank(listings, filter)
	if len(scored) > s.maxResults {
		scored = scored[:s.maxResults]
	}

	properties := make([]model.PropertySummary, 0, len(scored))
	for i := range scored {
		properties = append(properties, scored[i].Summary())
	}

	if reply == "" {
		reply = buildReply(len(properties), filter)
	}

	resp := &model.ChatResponse{
		ChatID:     chatID,
		Reply:      reply,
		Properties: properties,
		Intent:     result,
		Took:       time.Since(start).Milliseconds(),
	}
	s.logChat(chatID, message, result, filter, len(properties), resp.Took)
	return resp, nil
}

// refineWithCache consults the expirable LRU before calling the provider.
func (s *ChatService) refineWithCache(ctx context.Context, message string, coarse *model.ListingFilter) (*filterRefinement, error) {
	key := strings.Join(strings.Fields(strings.ToLower(message)), " ")
	if ref, ok := s.cache.Get(key); ok {
		return ref, nil
	}

	ref, err := refineFilter(ctx, s.ai, message, coarse)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, ref)
	return ref, nil
}

// messageEmbedding fetches an embedding for semantic ordering, best effort.
func (s *ChatService) messageEmbedding(ctx context.Context, message string) []float32 {
	if s.ai == nil || !s.ai.IsEnabled() {
		return nil
	}
	emb, err := s.ai.CreateEmbedding(ctx, message)
	if err != nil {
		s.log.Debug("message embedding unavailable", zap.Error(err))
		return nil
	}
	return emb
}

// recentFallback substitutes the most recent listings when the LLM provider
// is unreachable.
func (s *ChatService) recentFallback(ctx context.Context, chatID, message string, result *model.IntentResult, start time.Time) (*model.ChatResponse, error) {
	metrics.ChatFallbacks.Inc()

	listings, err := s.store.Recent(ctx, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("recent listings fallback failed: %w", err)
	}

	properties := make([]model.PropertySummary, 0, len(listings))
	for i := range listings {
		properties = append(properties, listings[i].Summary())
	}

	resp := &model.ChatResponse{
		ChatID:     chatID,
		Reply:      "I could not refine your search just now, so here are our most recent listings.",
		Properties: properties,
		Intent:     result,
		Took:       time.Since(start).Milliseconds(),
	}
	s.logChat(chatID, message, result, nil, len(properties), resp.Took)
	return resp, nil
}

// buildReply composes the fallback reply when the LLM did not provide one.
func buildReply(count int, filter *model.ListingFilter) string {
	var sb strings.Builder
	if count == 0 {
		sb.WriteString("I could not find listings matching your search")
	} else {
		fmt.Fprintf(&sb, "Found %d listing", count)
		if count != 1 {
			sb.WriteString("s")
		}
	}

	if filter != nil {
		if filter.Category != nil {
			fmt.Fprintf(&sb, " in category %s", *filter.Category)
		}
		if filter.PropertyType != nil {
			fmt.Fprintf(&sb, " for %s", *filter.PropertyType)
		}
		if filter.Location != nil {
			fmt.Fprintf(&sb, " in %s", *filter.Location)
		}
	}

	if count == 0 {
		sb.WriteString(". Try widening the budget or location.")
	} else {
		sb.WriteString(".")
	}
	return sb.String()
}

// logChat records the exchange without blocking the response.
func (s *ChatService) logChat(chatID, message string, result *model.IntentResult, filter *model.ListingFilter, resultCount int, tookMs int64) {
	entry := model.ChatLog{
		ChatID:      chatID,
		Message:     message,
		Intent:      result,
		Filter:      filter,
		ResultCount: resultCount,
		TookMs:      tookMs,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.LogChat(ctx, entry); err != nil {
			s.log.Warn("failed to log chat", zap.String("chat_id", chatID), zap.Error(err))
		}
	}()
}
