package usecase

import (
	"slices"
	"strings"

	"github.com/buildco/catalog/internal/domain"
)

// MaxSuggestions caps the number of ranked suggestions for one query
const MaxSuggestions = 20

// indexedItem is a normalized product with its derived brand and
// pre-folded match text
type indexedItem struct {
	product    domain.ProductItem
	brand      string
	foldedName string
	foldedVars []string
}

// BrandIndex is a brand-partitioned, read-only view over a catalog.
// It is built once per loaded catalog and safe for concurrent reads.
type BrandIndex struct {
	items   []indexedItem
	groups  []domain.BrandGroup // all-products bucket first
	byBrand map[string]int
}

// NewBrandIndex normalizes the catalog items and partitions them by brand.
// A nil catalog yields an empty index.
func NewBrandIndex(catalog *domain.Catalog, defaultImage string) *BrandIndex {
	idx := &BrandIndex{byBrand: make(map[string]int)}

	var products []domain.ProductItem
	if catalog != nil {
		products = normalizeItems(catalog.Items, defaultImage)
	}

	buckets := make(map[string]*domain.BrandGroup)
	var brands []*domain.BrandGroup

	for _, p := range products {
		brand := BrandOf(p.Name)

		folded := make([]string, len(p.Variants))
		for i, v := range p.Variants {
			folded[i] = Normalize(v.Title)
		}
		idx.items = append(idx.items, indexedItem{
			product:    p,
			brand:      brand,
			foldedName: Normalize(p.Name),
			foldedVars: folded,
		})

		bucket, ok := buckets[brand]
		if !ok {
			bucket = &domain.BrandGroup{Brand: brand}
			buckets[brand] = bucket
			brands = append(brands, bucket)
		}
		bucket.Products = append(bucket.Products, p)
	}

	col := newCollator()
	byName := func(a, b domain.ProductItem) int { return col.CompareString(a.Name, b.Name) }

	slices.SortStableFunc(brands, func(a, b *domain.BrandGroup) int {
		return col.CompareString(a.Brand, b.Brand)
	})

	all := domain.BrandGroup{Brand: domain.AllProductsBrand, Products: slices.Clone(products)}
	slices.SortStableFunc(all.Products, byName)
	if all.Products == nil {
		all.Products = []domain.ProductItem{}
	}

	idx.groups = append(idx.groups, all)
	idx.byBrand[all.Brand] = 0
	for _, bucket := range brands {
		slices.SortStableFunc(bucket.Products, byName)
		idx.byBrand[bucket.Brand] = len(idx.groups)
		idx.groups = append(idx.groups, *bucket)
	}

	return idx
}

// normalizeItems cleans names and variant titles, dropping items without a
// name and variants without a title
func normalizeItems(items []domain.ProductItem, defaultImage string) []domain.ProductItem {
	out := make([]domain.ProductItem, 0, len(items))

	for _, p := range items {
		name := CleanText(p.Name)
		if name == "" {
			continue
		}

		variants := make([]domain.Variant, 0, len(p.Variants))
		for _, v := range p.Variants {
			title := CleanText(v.Title)
			if title == "" {
				continue
			}
			variants = append(variants, domain.Variant{Title: title, Price: v.Price})
		}

		image := CleanText(p.Image)
		if image == "" {
			image = defaultImage
		}

		out = append(out, domain.ProductItem{Name: name, Image: image, Variants: variants})
	}

	return out
}

// Empty reports whether the index holds no products
func (idx *BrandIndex) Empty() bool {
	return len(idx.items) == 0
}

// Len returns the number of indexed products
func (idx *BrandIndex) Len() int {
	return len(idx.items)
}

// Groups returns every selectable bucket, all-products first
func (idx *BrandIndex) Groups() []domain.BrandGroup {
	return slices.Clone(idx.groups)
}

// Summaries returns brand labels and product counts for the brand list
func (idx *BrandIndex) Summaries() []domain.BrandSummary {
	out := make([]domain.BrandSummary, 0, len(idx.groups))
	for _, g := range idx.groups {
		label := g.Brand
		if g.Brand == domain.AllProductsBrand {
			label = AllProductsLabel
		}
		out = append(out, domain.BrandSummary{Brand: g.Brand, Label: label, Count: len(g.Products)})
	}
	return out
}

// AllProductsLabel is the display label of the all-products bucket
const AllProductsLabel = "BÜTÜN MƏHSULLAR"

// Group returns the bucket for a brand key
func (idx *BrandIndex) Group(brand string) (domain.BrandGroup, bool) {
	i, ok := idx.byBrand[brand]
	if !ok {
		return domain.BrandGroup{}, false
	}
	g := idx.groups[i]
	return domain.BrandGroup{Brand: g.Brand, Products: slices.Clone(g.Products)}, true
}

// Filter narrows a brand bucket by a free-text query. Products matching by
// prefix (name or any variant title) come first, then products matching only
// by substring, each partition keeping bucket order.
func (idx *BrandIndex) Filter(brand, query string) (domain.BrandGroup, error) {
	group, ok := idx.Group(brand)
	if !ok {
		return domain.BrandGroup{}, domain.ErrBrandNotFound
	}

	q := Normalize(query)
	if q == "" {
		return group, nil
	}

	prefix := make([]domain.ProductItem, 0, len(group.Products))
	contains := make([]domain.ProductItem, 0)

	for _, p := range group.Products {
		name := Normalize(p.Name)

		if strings.HasPrefix(name, q) || anyVariant(p, func(t string) bool { return strings.HasPrefix(t, q) }) {
			prefix = append(prefix, p)
			continue
		}
		if strings.Contains(name, q) || anyVariant(p, func(t string) bool { return strings.Contains(t, q) }) {
			contains = append(contains, p)
		}
	}

	group.Products = append(prefix, contains...)
	return group, nil
}

func anyVariant(p domain.ProductItem, match func(folded string) bool) bool {
	for _, v := range p.Variants {
		if match(Normalize(v.Title)) {
			return true
		}
	}
	return false
}

// Suggest ranks name and variant hits across the whole catalog,
// independent of any selected brand. limit is clamped to MaxSuggestions.
func (idx *BrandIndex) Suggest(query string, limit int) []domain.SearchHit {
	q := Normalize(query)
	if q == "" {
		return []domain.SearchHit{}
	}
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	hits := make([]domain.SearchHit, 0)
	for _, it := range idx.items {
		name := it.product.Name

		if strings.HasPrefix(it.foldedName, q) {
			hits = append(hits, domain.SearchHit{Brand: it.brand, ProductName: name, Score: domain.ScoreNamePrefix})
		} else if strings.Contains(it.foldedName, q) {
			hits = append(hits, domain.SearchHit{Brand: it.brand, ProductName: name, Score: domain.ScoreNameSubstring})
		}

		for i, folded := range it.foldedVars {
			title := it.product.Variants[i].Title
			if strings.HasPrefix(folded, q) {
				hits = append(hits, domain.SearchHit{Brand: it.brand, ProductName: name, VariantTitle: title, Score: domain.ScoreVariantPrefix})
			} else if strings.Contains(folded, q) {
				hits = append(hits, domain.SearchHit{Brand: it.brand, ProductName: name, VariantTitle: title, Score: domain.ScoreVariantSubstring})
			}
		}
	}

	col := newCollator()
	slices.SortStableFunc(hits, func(a, b domain.SearchHit) int {
		if a.Score != b.Score {
			return a.Score - b.Score
		}
		return col.CompareString(a.ProductName, b.ProductName)
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
