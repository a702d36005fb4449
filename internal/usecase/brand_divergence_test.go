package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildco/catalog/internal/domain"
)

func catalogOf(groupNames ...string) *domain.Catalog {
	c := &domain.Catalog{}
	for _, n := range groupNames {
		c.Items = append(c.Items, domain.ProductItem{Name: n})
	}
	return c
}

func TestDetectBrandDivergence(t *testing.T) {
	t.Run("agreeing derivations report nothing", func(t *testing.T) {
		got := DetectBrandDivergence(catalogOf("STAR SUPER", "STAR LAK", "KAMA EMAL"))
		assert.Empty(t, got)
	})

	t.Run("case variants collapse into one brand", func(t *testing.T) {
		got := DetectBrandDivergence(catalogOf("Star Lak", "STAR SUPER", "KAMA"))
		require.Len(t, got, 1)
		assert.Equal(t, "STAR", got[0].Brand)
		assert.Equal(t, DivergenceSpelling, got[0].Reason)
		assert.Equal(t, []string{"Star Lak", "STAR SUPER"}, got[0].Groups)
	})

	t.Run("slash inside the first token", func(t *testing.T) {
		got := DetectBrandDivergence(catalogOf("AB/CD EFG"))
		require.Len(t, got, 1)
		assert.Equal(t, "AB", got[0].Brand)
		assert.Equal(t, DivergenceSlash, got[0].Reason)
	})

	t.Run("spaced slash is not a divergence", func(t *testing.T) {
		assert.Empty(t, DetectBrandDivergence(catalogOf("THİNNER / TİNNER 646")))
	})

	t.Run("empty name falls back", func(t *testing.T) {
		got := DetectBrandDivergence(catalogOf("  "))
		require.Len(t, got, 1)
		assert.Equal(t, FallbackBrand, got[0].Brand)
		assert.Equal(t, DivergenceFallback, got[0].Reason)
	})

	t.Run("nil catalog", func(t *testing.T) {
		assert.Nil(t, DetectBrandDivergence(nil))
	})
}
