package catalogfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildco/catalog/internal/domain"
)

// Encode renders the catalog as 2-space indented JSON without HTML
// escaping. Equal catalogs always encode to identical bytes.
func Encode(catalog *domain.Catalog) ([]byte, error) {
	if catalog == nil {
		return nil, fmt.Errorf("nil catalog")
	}

	out := domain.Catalog{
		SectionTitle: catalog.SectionTitle,
		Items:        make([]domain.ProductItem, len(catalog.Items)),
	}
	for i, item := range catalog.Items {
		if item.Variants == nil {
			item.Variants = []domain.Variant{}
		}
		out.Items[i] = item
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes the catalog to path, replacing any previous file atomically
func Write(path string, catalog *domain.Catalog) error {
	data, err := Encode(catalog)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
