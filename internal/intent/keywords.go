package intent

// keywordCategory is one property category with its ordered synonym set.
// Category order matters: when similarity never exceeds 0.85 the first
// match above 0.7 wins, so earlier categories take precedence.
type keywordCategory struct {
	Name     string
	Synonyms []string
}

// propertyCategories are the four listing categories the detector can assign.
// The non-category buckets (general, sale, rent, furnished, unfurnished,
// actions, locations) are handled separately below.
var propertyCategories = []keywordCategory{
	{Name: "apartment", Synonyms: []string{"apartment", "apartments", "flat", "flats", "condo", "penthouse", "studio"}},
	{Name: "bungalow", Synonyms: []string{"bungalow", "bungalows", "house", "home", "maisonette", "villa", "mansion"}},
	{Name: "land", Synonyms: []string{"land", "plot", "plots", "acre", "acres", "parcel"}},
	{Name: "office", Synonyms: []string{"office", "offices", "commercial", "workspace", "shop", "godown"}},
}

// generalTerms are property nouns that raise the score without picking a
// category.
var generalTerms = []string{
	"property", "properties", "listing", "listings", "estate",
	"bedroom", "bedrooms", "bathroom", "bathrooms", "compound",
}

// saleTerms and rentTerms are scanned against the whole message; sale wins
// when both appear.
var saleTerms = []string{"sale", "buy", "buying", "purchase", "selling", "own"}

var rentTerms = []string{"rent", "rental", "renting", "lease", "letting", "to let"}

// Furnishing buckets, also message-level scans. The furnished scan runs
// first, so "unfurnished" (which contains "furnished") resolves to true;
// scan order is fixed and callers rely on it.
var furnishedTerms = []string{"furnished", "fully furnished", "furnishing"}

var unfurnishedTerms = []string{"unfurnished", "not furnished", "bare unit"}

// actionPhrases signal search intent when present anywhere in the message.
var actionPhrases = []string{
	"looking for", "need", "want", "searching for",
	"show me", "find me", "interested in", "do you have",
}

// gazetteer is the fixed list of recognised towns and counties. Table order
// decides ties: the first entry found as a substring wins even if a later
// entry appears earlier in the message.
var gazetteer = []string{
	"nairobi", "karen", "kiambu", "westlands", "kilimani", "kileleshwa",
	"lavington", "runda", "muthaiga", "langata", "south b", "south c",
	"ruaka", "ruiru", "thika", "juja", "kitengela", "syokimau",
	"athi river", "ngong", "rongai", "mombasa", "nyali", "diani",
	"nakuru", "eldoret", "kisumu", "machakos", "naivasha", "malindi",
}
