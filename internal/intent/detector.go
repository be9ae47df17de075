package intent

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Allevandrose/realEstate/internal/model"
)

// Detection thresholds. The 1.5 score cut-off for property relatedness is
// fixed, not configurable.
const (
	categoryThreshold     = 0.7
	categoryStrongMatch   = 0.85
	generalTermThreshold  = 0.75
	propertyScoreCutoff   = 1.5
	confidenceDenominator = 5.0
)

var digitRuns = regexp.MustCompile(`\d+`)

var titleCaser = cases.Title(language.English)

// Detector classifies free-text messages as property search requests.
// It holds no state; the keyword tables are package-level and immutable,
// so a single Detector is safe for concurrent use.
type Detector struct{}

// NewDetector creates a new intent detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scores a message against the keyword table and returns the intent.
// It never fails; an unrecognised message comes back with zero confidence.
func (d *Detector) Detect(message string) *model.IntentResult {
	lower := strings.ToLower(message)
	tokens := strings.Fields(lower)

	result := &model.IntentResult{}
	score := 0.0
	category := ""

	for _, token := range tokens {
		// Category synonyms: every match above the threshold contributes
		// sim*2. The category updates only on a strong match (> 0.85) or
		// while still unset, so a weak later match never displaces an
		// earlier pick.
		for _, cat := range propertyCategories {
			for _, syn := range cat.Synonyms {
				sim := Similarity(token, syn)
				if sim > categoryThreshold {
					score += sim * 2
					if sim > categoryStrongMatch || category == "" {
						category = cat.Name
					}
				}
			}
		}

		// General property nouns raise the score without assigning a
		// category.
		for _, term := range generalTerms {
			if Similarity(token, term) > generalTermThreshold {
				score += 1
			}
		}

		// Action phrases are checked against the whole message, once per
		// token iteration with a break on the first hit. A message that
		// contains a phrase therefore accumulates +0.5 for every token
		// scanned; this matches the original scoring and is kept as-is.
		for _, phrase := range actionPhrases {
			if strings.Contains(lower, phrase) {
				score += 0.5
				break
			}
		}
	}

	// Transaction type: sale terms are scanned first and win outright.
	for _, term := range saleTerms {
		if strings.Contains(lower, term) {
			t := model.PropertyTypeSale
			result.PropertyType = &t
			score += 1
			break
		}
	}
	if result.PropertyType == nil {
		for _, term := range rentTerms {
			if strings.Contains(lower, term) {
				t := model.PropertyTypeRent
				result.PropertyType = &t
				score += 1
				break
			}
		}
	}

	// Furnishing: the furnished scan runs before the unfurnished one.
	furnishedSet := false
	for _, term := range furnishedTerms {
		if strings.Contains(lower, term) {
			v := true
			result.Features.IsFurnished = &v
			score += 0.5
			furnishedSet = true
			break
		}
	}
	if !furnishedSet {
		for _, term := range unfurnishedTerms {
			if strings.Contains(lower, term) {
				v := false
				result.Features.IsFurnished = &v
				score += 0.5
				break
			}
		}
	}

	if category != "" {
		result.Category = &category
	}
	result.IsPropertyRelated = score > propertyScoreCutoff
	result.Confidence = score / confidenceDenominator
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	return result
}

// ExtractNumbers returns every maximal digit run in the text as an integer,
// in order of appearance. Unit suffixes ("4M") are not merged here; callers
// interpret scale tokens themselves.
func ExtractNumbers(text string) []int {
	runs := digitRuns.FindAllString(text, -1)
	numbers := make([]int, 0, len(runs))
	for _, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

// DetectLocation returns the first gazetteer entry, in table order, found as
// a substring of the message, title-cased word by word. Empty string when
// nothing matches. Table order wins over message order deliberately.
func DetectLocation(message string) string {
	lower := strings.ToLower(message)
	for _, place := range gazetteer {
		if strings.Contains(lower, place) {
			return titleCaser.String(place)
		}
	}
	return ""
}
