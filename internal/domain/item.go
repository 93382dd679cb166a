package domain

import "time"

// SourceCategory classifies where a feed item came from. The value set is
// fixed; the fetch collaborator maps each configured feed onto one of these.
type SourceCategory string

const (
	SourceNewsOutlet         SourceCategory = "news-outlet"
	SourceCommunityForum     SourceCategory = "community-forum"
	SourceAcademicRepository SourceCategory = "academic-repository"
	SourceVideoChannel       SourceCategory = "video-channel"
	SourceNewsletter         SourceCategory = "newsletter"
)

// ParseSourceCategory maps a raw string onto the enumeration, defaulting to
// news-outlet for values it does not recognize.
func ParseSourceCategory(value string) SourceCategory {
	switch SourceCategory(value) {
	case SourceCommunityForum, SourceAcademicRepository, SourceVideoChannel, SourceNewsletter:
		return SourceCategory(value)
	default:
		return SourceNewsOutlet
	}
}

// Category is a topical category assigned by the classifier. Declaration
// order matters: it is the tie-break order of the rule-based classifier.
type Category string

const (
	CategoryModelRelease Category = "model-release"
	CategoryResearch     Category = "research"
	CategoryIndustryNews Category = "industry-news"
	CategoryOpenSource   Category = "open-source"
	CategoryTutorial     Category = "tutorial"
	CategoryPolicy       Category = "policy"
	CategoryGeneral      Category = "general"
)

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryModelRelease,
		CategoryResearch,
		CategoryIndustryNews,
		CategoryOpenSource,
		CategoryTutorial,
		CategoryPolicy,
		CategoryGeneral,
	}
}

// ValidCategory reports whether value is a member of the fixed category set.
func ValidCategory(value Category) bool {
	for _, c := range Categories() {
		if c == value {
			return true
		}
	}
	return false
}

// RawItem is a loosely-structured feed entry handed over by the fetch
// collaborator. Title and URL are guaranteed non-empty upstream.
type RawItem struct {
	Title          string
	URL            string
	SourceName     string
	SourceCategory SourceCategory
	PublishedAt    time.Time
	Excerpt        string
}

// RankedLabel is one entry of a classifier's ranked output.
type RankedLabel struct {
	Category   Category
	Confidence float64
}

// Classification is the winning label for an item, immutable once assigned.
type Classification struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// Entity kinds used as keys of the Entities map.
const (
	EntityOrganization = "organization"
	EntityProduct      = "product"
	EntityTechnology   = "technology"
)

// Entities maps an entity kind to an ordered-unique list of surface strings.
type Entities map[string][]string

// EnrichedItem is a fully processed item as persisted in the dataset.
type EnrichedItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Source         string         `json:"source"`
	SourceDomain   string         `json:"sourceDomain"`
	SourceCategory SourceCategory `json:"sourceCategory"`
	PubDate        time.Time      `json:"pubDate"`
	Category       Category       `json:"category"`
	Confidence     float64        `json:"confidence"`
	Difficulty     int            `json:"difficulty"`
	Entities       Entities       `json:"entities"`
	Summary        string         `json:"summary"`
	Language       string         `json:"language"`
	ProcessedAt    time.Time      `json:"processedAt"`

	// DuplicateOf holds the canonical item's ID when this item belongs to a
	// near-duplicate group. Duplicates are annotated, never removed.
	DuplicateOf string `json:"duplicateOf,omitempty"`
}
