package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildco/catalog/internal/domain"
)

func sampleCatalog() *domain.Catalog {
	return &domain.Catalog{
		SectionTitle: "Məhsullar",
		Items: []domain.ProductItem{
			{
				Name:  "STAR SUPER",
				Image: "/images/products/default.jpg",
				Variants: []domain.Variant{
					{Title: "STAR SUPER PARLAQ 3.75 LT", Price: 34},
					{Title: "STAR SUPER POL 3.75LT", Price: 8.3},
				},
			},
			{
				Name:  "THİNNER / TİNNER 646",
				Image: "/images/products/default.jpg",
				Variants: []domain.Variant{
					{Title: "0.5 L <plastik> & şüşə", Price: 3.5},
				},
			},
		},
	}
}

func TestEncode(t *testing.T) {
	t.Run("writes the documented shape", func(t *testing.T) {
		data, err := Encode(&domain.Catalog{
			SectionTitle: "Məhsullar",
			Items: []domain.ProductItem{{
				Name:     "STAR SUPER",
				Image:    "/images/products/default.jpg",
				Variants: []domain.Variant{{Title: "STAR SUPER POL 3.75LT", Price: 34}},
			}},
		})
		require.NoError(t, err)

		want := `{
  "sectionTitle": "Məhsullar",
  "items": [
    {
      "name": "STAR SUPER",
      "image": "/images/products/default.jpg",
      "variants": [
        {
          "title": "STAR SUPER POL 3.75LT",
          "price": 34
        }
      ]
    }
  ]
}
`
		assert.Equal(t, want, string(data))
	})

	t.Run("does not escape HTML characters", func(t *testing.T) {
		data, err := Encode(sampleCatalog())
		require.NoError(t, err)
		assert.Contains(t, string(data), "<plastik> & şüşə")
	})

	t.Run("empty catalog encodes items as an empty array", func(t *testing.T) {
		data, err := Encode(&domain.Catalog{SectionTitle: "Məhsullar"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"items": []`)
	})

	t.Run("nil catalog is an error", func(t *testing.T) {
		_, err := Encode(nil)
		assert.Error(t, err)
	})
}

func TestWrite_IsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "products.generated.json")

	require.NoError(t, Write(path, sampleCatalog()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Write(path, sampleCatalog()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileSource_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.generated.json")
	require.NoError(t, Write(path, sampleCatalog()))

	catalog, err := NewFileSource(path, nil).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), catalog)
}

func TestFileSource_MissingFile(t *testing.T) {
	catalog, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), nil).Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, catalog)
	assert.Empty(t, catalog.Items)
}

func TestFileSource_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items": 12}`), 0o644))

	catalog, err := NewFileSource(path, nil).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, catalog.Items)
}

func TestFileSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource("ignored.json", nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
