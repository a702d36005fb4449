package usecase

import (
	"sort"
	"strings"

	"github.com/buildco/catalog/internal/domain"
)

// Divergence reasons
const (
	DivergenceSpelling = "differently spelled group tokens share one brand key"
	DivergenceSlash    = "slash splits the first token of the group name"
	DivergenceFallback = "group name yields no brand token"
)

// DetectBrandDivergence compares build-time group names with the brand keys
// the search index derives from them. Divergences are reported, not fixed.
func DetectBrandDivergence(catalog *domain.Catalog) []domain.BrandDivergence {
	if catalog == nil {
		return nil
	}

	spellings := make(map[string]map[string]bool)
	groupsByBrand := make(map[string][]string)
	var out []domain.BrandDivergence

	for _, item := range catalog.Items {
		name := CleanText(item.Name)
		brand := BrandOf(name)

		if name == "" || brand == FallbackBrand {
			out = append(out, domain.BrandDivergence{
				Brand:  brand,
				Groups: []string{item.Name},
				Reason: DivergenceFallback,
			})
			continue
		}

		firstToken, _, _ := strings.Cut(name, " ")
		if strings.Contains(firstToken, "/") {
			out = append(out, domain.BrandDivergence{
				Brand:  brand,
				Groups: []string{name},
				Reason: DivergenceSlash,
			})
		}

		beforeSlash, _, _ := strings.Cut(name, "/")
		token, _, _ := strings.Cut(strings.TrimSpace(beforeSlash), " ")
		if token == "" {
			token = firstToken
		}

		if spellings[brand] == nil {
			spellings[brand] = make(map[string]bool)
		}
		spellings[brand][token] = true
		groupsByBrand[brand] = append(groupsByBrand[brand], name)
	}

	brands := make([]string, 0, len(spellings))
	for brand, tokens := range spellings {
		if len(tokens) > 1 {
			brands = append(brands, brand)
		}
	}
	sort.Strings(brands)

	for _, brand := range brands {
		out = append(out, domain.BrandDivergence{
			Brand:  brand,
			Groups: groupsByBrand[brand],
			Reason: DivergenceSpelling,
		})
	}

	return out
}
