package domain

// AllProductsBrand is the key of the synthetic bucket holding every product
const AllProductsBrand = "__ALL__"

// Suggestion scores, lower sorts first
const (
	ScoreNamePrefix       = 1
	ScoreVariantPrefix    = 2
	ScoreNameSubstring    = 3
	ScoreVariantSubstring = 4
)

// Variant is one priced line item of a product group
type Variant struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// ProductItem is a named product family with its priced variants
type ProductItem struct {
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Variants []Variant `json:"variants"`
}

// Catalog is the build artifact consumed by the search index and the UI
type Catalog struct {
	SectionTitle string        `json:"sectionTitle"`
	Items        []ProductItem `json:"items"`
}

// VariantCount returns the total number of variants across all items
func (c *Catalog) VariantCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += len(item.Variants)
	}
	return total
}

// BrandGroup is a bucket of products sharing a derived brand key
type BrandGroup struct {
	Brand    string        `json:"brand"`
	Products []ProductItem `json:"products"`
}

// BrandSummary describes a selectable brand bucket
type BrandSummary struct {
	Brand string `json:"brand"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SearchHit is one ranked autocomplete suggestion
type SearchHit struct {
	Brand        string `json:"brand"`
	ProductName  string `json:"productName"`
	VariantTitle string `json:"variantTitle,omitempty"`
	Score        int    `json:"score"`
}

// BuildStats summarizes a catalog build
type BuildStats struct {
	Groups       int     `json:"groups"`
	Variants     int     `json:"variants"`
	SkippedLines int     `json:"skippedLines"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
}

// BrandDivergence reports a brand key whose derivation disagrees with the
// build-time group names it covers
type BrandDivergence struct {
	Brand  string   `json:"brand"`
	Groups []string `json:"groups"`
	Reason string   `json:"reason"`
}
