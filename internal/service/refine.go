package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Allevandrose/realEstate/internal/intent"
	"github.com/Allevandrose/realEstate/internal/model"
	"github.com/Allevandrose/realEstate/internal/utils"
)

// filterRefinement is the structured reply expected from the LLM.
type filterRefinement struct {
	Category     *string  `json:"category,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	IsFurnished  *bool    `json:"is_furnished,omitempty"`
	Reply        string   `json:"reply,omitempty"`
}

var budgetToken = regexp.MustCompile(`^(\d+)(m|million|k|thousand)?$`)

// scaleFactors maps budget suffix tokens to their multiplier (KES).
var scaleFactors = map[string]float64{
	"m":        1_000_000,
	"million":  1_000_000,
	"k":        1_000,
	"thousand": 1_000,
}

// BuildCoarseFilter derives the locally computed best-effort filter from the
// detector output plus number and location extraction. Bedrooms is the first
// extracted value below 10; a number only becomes a budget when its own token
// carries, or is directly followed by, a scale token (m/million/k/thousand).
func BuildCoarseFilter(message string, result *model.IntentResult) *model.ListingFilter {
	filter := &model.ListingFilter{
		Category:     result.Category,
		PropertyType: result.PropertyType,
		IsFurnished:  result.Features.IsFurnished,
	}

	if loc := intent.DetectLocation(message); loc != "" {
		filter.Location = &loc
	}

	for _, n := range intent.ExtractNumbers(message) {
		if n < 10 {
			bedrooms := n
			filter.Bedrooms = &bedrooms
			break
		}
	}

	if budget := parseBudget(message); budget != nil {
		filter.MaxPrice = budget
	}

	return filter
}

// parseBudget finds the first number paired with a scale token.
func parseBudget(message string) *float64 {
	tokens := strings.Fields(strings.ToLower(message))
	for i, tok := range tokens {
		tok = strings.Trim(tok, ".,!?")
		m := budgetToken.FindStringSubmatch(tok)
		if m == nil {
			continue
		}

		scale := m[2]
		if scale == "" && i+1 < len(tokens) {
			next := strings.Trim(tokens[i+1], ".,!?")
			if _, ok := scaleFactors[next]; ok {
				scale = next
			}
		}
		factor, ok := scaleFactors[scale]
		if !ok {
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		budget := float64(n) * factor
		return &budget
	}
	return nil
}

const refineSystemPrompt = `You are a property search assistant for Home254, a Kenyan real estate marketplace. Convert the user's message into structured search filters.

Extract the following fields if present:
- category: one of "apartment", "bungalow", "land", "office"
- property_type: one of "sale", "rent"
- location: Kenyan town, estate or county name
- bedrooms: minimum number of bedrooms (integer)
- max_price: maximum budget in KES (number; "4M" = 4000000, "800K" = 800000)
- is_furnished: true or false when furnishing is mentioned
- reply: one short friendly sentence summarising what you will search for

Rules:
- Respond ONLY with valid JSON
- Omit any field the message does not mention
- Never invent a location or budget

Examples:
Message: "looking for a 3 bedroom apartment in Karen for rent"
Response: {"category": "apartment", "property_type": "rent", "location": "Karen", "bedrooms": 3, "reply": "Searching rentals: 3+ bedroom apartments in Karen."}

Message: "furnished bungalow for sale in Kiambu under 20M"
Response: {"category": "bungalow", "property_type": "sale", "location": "Kiambu", "max_price": 20000000, "is_furnished": true, "reply": "Looking for furnished bungalows on sale in Kiambu within KES 20M."}`

// buildRefineUserPrompt hands the model the raw message together with the
// coarse filter so it refines rather than starts over.
func buildRefineUserPrompt(message string, coarse *model.ListingFilter) string {
	coarseJSON, err := json.Marshal(coarse)
	if err != nil {
		coarseJSON = []byte("{}")
	}
	return fmt.Sprintf("Message: %s\nHeuristic filters so far: %s", message, string(coarseJSON))
}

// parseRefinement parses the LLM content. A nil result with nil error means
// the content was unusable and the caller should keep the coarse filter;
// malformed JSON never propagates past this boundary.
func parseRefinement(content string) *filterRefinement {
	var ref filterRefinement
	if err := utils.ParseAIJSON(content, &ref); err != nil {
		return nil
	}
	sanitizeRefinement(&ref)
	return &ref
}

// sanitizeRefinement drops fields that fail validation so they cannot
// override valid coarse values.
func sanitizeRefinement(ref *filterRefinement) {
	if ref.Category != nil && !model.ValidCategories[strings.ToLower(*ref.Category)] {
		ref.Category = nil
	} else if ref.Category != nil {
		c := strings.ToLower(*ref.Category)
		ref.Category = &c
	}

	if ref.PropertyType != nil && !model.ValidPropertyTypes[strings.ToLower(*ref.PropertyType)] {
		ref.PropertyType = nil
	} else if ref.PropertyType != nil {
		t := strings.ToLower(*ref.PropertyType)
		ref.PropertyType = &t
	}

	if ref.Bedrooms != nil && (*ref.Bedrooms < 0 || *ref.Bedrooms > 10) {
		ref.Bedrooms = nil
	}
	if ref.MaxPrice != nil && *ref.MaxPrice <= 0 {
		ref.MaxPrice = nil
	}
	if ref.Location != nil && strings.TrimSpace(*ref.Location) == "" {
		ref.Location = nil
	}
}

// mergeFilter lays the refinement over the coarse filter; refined fields win
// when present, coarse values fill the gaps.
func mergeFilter(coarse *model.ListingFilter, ref *filterRefinement) *model.ListingFilter {
	merged := &model.ListingFilter{}
	if coarse != nil {
		*merged = *coarse
	}
	if ref == nil {
		return merged
	}

	if ref.Category != nil {
		merged.Category = ref.Category
	}
	if ref.PropertyType != nil {
		merged.PropertyType = ref.PropertyType
	}
	if ref.Location != nil {
		merged.Location = ref.Location
	}
	if ref.Bedrooms != nil {
		merged.Bedrooms = ref.Bedrooms
	}
	if ref.MaxPrice != nil {
		merged.MaxPrice = ref.MaxPrice
	}
	if ref.IsFurnished != nil {
		merged.IsFurnished = ref.IsFurnished
	}

	return merged
}

// refineFilter runs the LLM refinement. A transport error is returned to the
// caller (who substitutes recent listings); unusable JSON degrades silently
// to the coarse filter.
func refineFilter(ctx context.Context, ai AIClient, message string, coarse *model.ListingFilter) (*filterRefinement, error) {
	content, err := ai.Complete(ctx, refineSystemPrompt, buildRefineUserPrompt(message, coarse))
	if err != nil {
		return nil, err
	}
	return parseRefinement(content), nil
}
