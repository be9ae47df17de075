package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Allevandrose/realEstate/internal/model"
)

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Match reason constants
const (
	ReasonCategoryMatch  = "Category match"
	ReasonTypeMatch      = "Transaction type match"
	ReasonLocationMatch  = "Location match"
	ReasonBedroomsMatch  = "Bedrooms match"
	ReasonFurnishedMatch = "Furnishing match"
	ReasonPriceMatch     = "Price within budget"
	ReasonNewlyListed    = "Newly listed"
	ReasonGeneralMatch   = "General match"
)

// Ranker orders qualifying listings before truncation to the summary limit.
// It never changes which rows qualify, only their order.
type Ranker struct {
	weightPrice   float64
	weightRecency float64
	weightMatch   float64
}

// NewRanker creates a new ranker with specified weights
func NewRanker(weightPrice, weightRecency, weightMatch float64) *Ranker {
	return &Ranker{
		weightPrice:   weightPrice,
		weightRecency: weightRecency,
		weightMatch:   weightMatch,
	}
}

// Rank scores listings against the filter and sorts by score descending.
func (r *Ranker) Rank(listings []model.Listing, filter *model.ListingFilter) []model.ListingScored {
	results := make([]model.ListingScored, 0, len(listings))

	for _, listing := range listings {
		priceScore := r.priceScore(listing.Price, filter)
		recencyScore := r.recencyScore(listing.CreatedAt)
		matchScore, reasons := r.matchScore(listing, filter)

		scored := model.ListingScored{
			Listing: listing,
			Score: (r.weightPrice * priceScore) +
				(r.weightRecency * recencyScore) +
				(r.weightMatch * matchScore),
			MatchedReasons: reasons,
		}
		if priceScore > 0.8 {
			scored.MatchedReasons = append(scored.MatchedReasons, ReasonPriceMatch)
		}
		if time.Since(listing.CreatedAt).Hours() < 7*24 {
			scored.MatchedReasons = append(scored.MatchedReasons, ReasonNewlyListed)
		}
		if len(scored.MatchedReasons) == 0 {
			scored.MatchedReasons = append(scored.MatchedReasons, ReasonGeneralMatch)
		}

		results = append(results, scored)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// priceScore rewards listings close to (but under) the budget ceiling.
func (r *Ranker) priceScore(price float64, filter *model.ListingFilter) float64 {
	if filter == nil || filter.MaxPrice == nil || *filter.MaxPrice <= 0 {
		return 1.0
	}
	if price > *filter.MaxPrice {
		return 0.0
	}
	score := price / *filter.MaxPrice
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// recencyScore decays exponentially with listing age.
// After 30 days ~0.74, after 90 days ~0.41.
func (r *Ranker) recencyScore(createdAt time.Time) float64 {
	days := time.Since(createdAt).Hours() / 24
	score := math.Exp(-0.01 * days)
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

// matchScore is the fraction of requested filter fields the listing
// satisfies, together with the reasons it earned.
func (r *Ranker) matchScore(listing model.Listing, filter *model.ListingFilter) (float64, []string) {
	if filter == nil {
		return 0, nil
	}

	requested := 0
	matched := 0
	reasons := []string{}

	if filter.Category != nil {
		requested++
		if listing.Category == *filter.Category {
			matched++
			reasons = append(reasons, ReasonCategoryMatch)
		}
	}
	if filter.PropertyType != nil {
		requested++
		if listing.PropertyType == *filter.PropertyType {
			matched++
			reasons = append(reasons, ReasonTypeMatch)
		}
	}
	if filter.Location != nil {
		requested++
		if containsFold(listing.Location, *filter.Location) {
			matched++
			reasons = append(reasons, ReasonLocationMatch)
		}
	}
	if filter.Bedrooms != nil {
		requested++
		if listing.Bedrooms != nil && *listing.Bedrooms >= *filter.Bedrooms {
			matched++
			reasons = append(reasons, ReasonBedroomsMatch)
		}
	}
	if filter.IsFurnished != nil {
		requested++
		if listing.IsFurnished != nil && *listing.IsFurnished == *filter.IsFurnished {
			matched++
			reasons = append(reasons, ReasonFurnishedMatch)
		}
	}

	if requested == 0 {
		return 0, reasons
	}
	return float64(matched) / float64(requested), reasons
}
