package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildco/catalog/internal/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		SectionTitle: DefaultSectionTitle,
		Items: []domain.ProductItem{
			{Name: "STAR SUPER", Image: "/img/star.jpg", Variants: []domain.Variant{
				{Title: "STAR SUPER PARLAQ 3.75 LT", Price: 34},
				{Title: "STAR SUPER POL 3.75LT", Price: 34},
			}},
			{Name: "KAMA EMAL", Variants: []domain.Variant{
				{Title: "KAMA EMAL AĞ 2.5 KG", Price: 20},
				{Title: "NOVASTAR qarışıq", Price: 5},
			}},
			{Name: "THİNNER / TİNNER 646", Variants: []domain.Variant{
				{Title: "0.5 L", Price: 3.5},
			}},
			{Name: "ASTAR BETON", Variants: []domain.Variant{
				{Title: "ASTAR 10 KG", Price: 41.9},
			}},
			{Name: "STAR LAK", Variants: []domain.Variant{
				{Title: "LAK 1 LT", Price: 12},
			}},
		},
	}
}

func names(products []domain.ProductItem) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestNewBrandIndex(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	assert.False(t, idx.Empty())
	assert.Equal(t, 5, idx.Len())

	groups := idx.Groups()
	var brands []string
	for _, g := range groups {
		brands = append(brands, g.Brand)
	}
	assert.Equal(t, []string{domain.AllProductsBrand, "ASTAR", "KAMA", "STAR", "THİNNER"}, brands)

	assert.Equal(t,
		[]string{"ASTAR BETON", "KAMA EMAL", "STAR LAK", "STAR SUPER", "THİNNER / TİNNER 646"},
		names(groups[0].Products))

	star, ok := idx.Group("STAR")
	require.True(t, ok)
	assert.Equal(t, []string{"STAR LAK", "STAR SUPER"}, names(star.Products))
}

func TestNewBrandIndex_Normalizes(t *testing.T) {
	catalog := &domain.Catalog{Items: []domain.ProductItem{
		{Name: "  ", Variants: []domain.Variant{{Title: "lost", Price: 1}}},
		{Name: "KAMA\u200B  EMAL ", Variants: []domain.Variant{
			{Title: " AĞ   2.5 KG ", Price: 20},
			{Title: "\u200B", Price: 3},
		}},
		{Name: "BOYA", Image: "/img/boya.jpg"},
	}}

	idx := NewBrandIndex(catalog, "/img/default.jpg")
	require.Equal(t, 2, idx.Len())

	kama, ok := idx.Group("KAMA")
	require.True(t, ok)
	require.Len(t, kama.Products, 1)
	assert.Equal(t, "KAMA EMAL", kama.Products[0].Name)
	assert.Equal(t, "/img/default.jpg", kama.Products[0].Image)
	assert.Equal(t, []domain.Variant{{Title: "AĞ 2.5 KG", Price: 20}}, kama.Products[0].Variants)

	boya, ok := idx.Group("BOYA")
	require.True(t, ok)
	assert.Equal(t, "/img/boya.jpg", boya.Products[0].Image)
	assert.NotNil(t, boya.Products[0].Variants)
}

func TestNewBrandIndex_Empty(t *testing.T) {
	for _, catalog := range []*domain.Catalog{nil, {}, {Items: []domain.ProductItem{{Name: ""}}}} {
		idx := NewBrandIndex(catalog, DefaultProductImage)

		assert.True(t, idx.Empty())
		groups := idx.Groups()
		require.Len(t, groups, 1)
		assert.Equal(t, domain.AllProductsBrand, groups[0].Brand)
		assert.NotNil(t, groups[0].Products)

		filtered, err := idx.Filter(domain.AllProductsBrand, "star")
		require.NoError(t, err)
		assert.Empty(t, filtered.Products)
		assert.Empty(t, idx.Suggest("star", 0))
	}
}

func TestSummaries(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	summaries := idx.Summaries()
	require.Len(t, summaries, 5)
	assert.Equal(t, domain.BrandSummary{Brand: domain.AllProductsBrand, Label: AllProductsLabel, Count: 5}, summaries[0])
	assert.Equal(t, domain.BrandSummary{Brand: "STAR", Label: "STAR", Count: 2}, summaries[3])
}

func TestGroup_ReturnsCopy(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	g, ok := idx.Group("KAMA")
	require.True(t, ok)
	g.Products[0].Name = "mutated"

	again, _ := idx.Group("KAMA")
	assert.Equal(t, "KAMA EMAL", again.Products[0].Name)

	_, ok = idx.Group("NOPE")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	testCases := []struct {
		name  string
		brand string
		query string
		want  []string
	}{
		{
			name:  "empty query returns the bucket unchanged",
			brand: domain.AllProductsBrand,
			query: "   ",
			want:  []string{"ASTAR BETON", "KAMA EMAL", "STAR LAK", "STAR SUPER", "THİNNER / TİNNER 646"},
		},
		{
			name:  "prefix matches before contains matches",
			brand: domain.AllProductsBrand,
			query: "star",
			want:  []string{"STAR LAK", "STAR SUPER", "ASTAR BETON", "KAMA EMAL"},
		},
		{
			name:  "variant title prefix counts as prefix",
			brand: domain.AllProductsBrand,
			query: "lak",
			want:  []string{"STAR LAK"},
		},
		{
			name:  "query is case-folded and cleaned",
			brand: "KAMA",
			query: "  Kama\u200B  EMAL ",
			want:  []string{"KAMA EMAL"},
		},
		{
			name:  "restricted to the selected brand",
			brand: "STAR",
			query: "super",
			want:  []string{"STAR SUPER"},
		},
		{
			name:  "no match",
			brand: "THİNNER",
			query: "xyz",
			want:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			group, err := idx.Filter(tc.brand, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.brand, group.Brand)
			assert.Equal(t, tc.want, names(group.Products))
		})
	}

	t.Run("unknown brand", func(t *testing.T) {
		_, err := idx.Filter("NOPE", "")
		assert.ErrorIs(t, err, domain.ErrBrandNotFound)
	})
}

func TestFilter_PartitionsAreDisjoint(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	for _, q := range []string{"a", "st", "star", "l", "k", "0", "ı"} {
		group, err := idx.Filter(domain.AllProductsBrand, q)
		require.NoError(t, err)

		seen := make(map[string]bool)
		contained := false
		for _, p := range group.Products {
			assert.False(t, seen[p.Name], "duplicate %q for query %q", p.Name, q)
			seen[p.Name] = true

			isPrefix := matchesPrefix(p, q)
			if !isPrefix {
				contained = true
			}
			assert.False(t, isPrefix && contained, "prefix match %q after contains match for %q", p.Name, q)
		}
	}
}

func matchesPrefix(p domain.ProductItem, q string) bool {
	q = Normalize(q)
	if len(Normalize(p.Name)) >= len(q) && Normalize(p.Name)[:len(q)] == q {
		return true
	}
	return anyVariant(p, func(t string) bool { return len(t) >= len(q) && t[:len(q)] == q })
}

func TestSuggest(t *testing.T) {
	idx := NewBrandIndex(testCatalog(), DefaultProductImage)

	t.Run("ranks by score then name", func(t *testing.T) {
		hits := idx.Suggest("star", 0)

		var got []string
		for _, h := range hits {
			got = append(got, fmt.Sprintf("%d|%s|%s", h.Score, h.ProductName, h.VariantTitle))
		}
		assert.Equal(t, []string{
			"1|STAR LAK|",
			"1|STAR SUPER|",
			"2|STAR SUPER|STAR SUPER PARLAQ 3.75 LT",
			"2|STAR SUPER|STAR SUPER POL 3.75LT",
			"3|ASTAR BETON|",
			"4|ASTAR BETON|ASTAR 10 KG",
			"4|KAMA EMAL|NOVASTAR qarışıq",
		}, got)
	})

	t.Run("hit carries its brand", func(t *testing.T) {
		hits := idx.Suggest("thinner", 0)
		require.Len(t, hits, 1)
		assert.Equal(t, "THİNNER", hits[0].Brand)
		assert.Equal(t, domain.ScoreNamePrefix, hits[0].Score)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Empty(t, idx.Suggest("  ", 0))
	})

	t.Run("limit", func(t *testing.T) {
		assert.Len(t, idx.Suggest("star", 3), 3)
	})
}

func TestSuggest_CappedAndOrdered(t *testing.T) {
	catalog := &domain.Catalog{}
	for i := 0; i < 15; i++ {
		catalog.Items = append(catalog.Items, domain.ProductItem{
			Name: fmt.Sprintf("BOYA %02d", 15-i),
			Variants: []domain.Variant{
				{Title: fmt.Sprintf("BOYA AĞ %d", i), Price: 1},
				{Title: fmt.Sprintf("QARA BOYA %d", i), Price: 1},
			},
		})
	}
	idx := NewBrandIndex(catalog, DefaultProductImage)

	hits := idx.Suggest("boya", MaxSuggestions+10)
	require.Len(t, hits, MaxSuggestions)

	col := newCollator()
	for i := 1; i < len(hits); i++ {
		prev, cur := hits[i-1], hits[i]
		assert.LessOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			assert.LessOrEqual(t, col.CompareString(prev.ProductName, cur.ProductName), 0)
		}
	}
	assert.Equal(t, "BOYA 01", hits[0].ProductName)
	assert.Equal(t, domain.ScoreNamePrefix, hits[14].Score)
	assert.Equal(t, domain.ScoreVariantPrefix, hits[15].Score)
}
