package catalogfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/buildco/catalog/internal/domain"
)

// rawDocument accepts both the current document shape and the legacy
// { "productsSection": { "title", "items" } } wrapper
type rawDocument struct {
	SectionTitle    json.RawMessage `json:"sectionTitle"`
	Items           json.RawMessage `json:"items"`
	ProductsSection *struct {
		Title json.RawMessage `json:"title"`
		Items json.RawMessage `json:"items"`
	} `json:"productsSection"`
}

type rawItem struct {
	Name     json.RawMessage `json:"name"`
	Image    json.RawMessage `json:"image"`
	Variants json.RawMessage `json:"variants"`
}

type rawVariant struct {
	Title json.RawMessage `json:"title"`
	Price json.RawMessage `json:"price"`
}

// Decode maps a catalog document onto the typed schema. Malformed parts are
// defaulted or dropped and described in the returned warnings; Decode never
// fails, an unusable document yields an empty catalog.
func Decode(data []byte) (*domain.Catalog, []string) {
	catalog := &domain.Catalog{Items: []domain.ProductItem{}}
	var warnings []string

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return catalog, append(warnings, fmt.Sprintf("catalog document is not a JSON object: %v", err))
	}

	title, items := doc.SectionTitle, doc.Items
	if (len(items) == 0 || isNull(items)) && doc.ProductsSection != nil {
		title, items = doc.ProductsSection.Title, doc.ProductsSection.Items
	}
	catalog.SectionTitle = textValue(title)

	var rawItems []json.RawMessage
	if !isArray(items) || json.Unmarshal(items, &rawItems) != nil {
		return catalog, append(warnings, "catalog items is not an array")
	}

	for i, raw := range rawItems {
		var item rawItem
		if !isObject(raw) || json.Unmarshal(raw, &item) != nil {
			warnings = append(warnings, fmt.Sprintf("item %d is not an object", i))
			continue
		}

		product := domain.ProductItem{
			Name:     textValue(item.Name),
			Image:    textValue(item.Image),
			Variants: []domain.Variant{},
		}
		if product.Name == "" {
			warnings = append(warnings, fmt.Sprintf("item %d has no name", i))
		}

		variants, variantWarnings := decodeVariants(item.Variants)
		product.Variants = append(product.Variants, variants...)
		for _, w := range variantWarnings {
			warnings = append(warnings, fmt.Sprintf("item %d: %s", i, w))
		}

		catalog.Items = append(catalog.Items, product)
	}

	return catalog, warnings
}

func decodeVariants(data json.RawMessage) ([]domain.Variant, []string) {
	var rawVariants []json.RawMessage
	if len(data) == 0 || isNull(data) {
		return nil, nil
	}
	if !isArray(data) || json.Unmarshal(data, &rawVariants) != nil {
		return nil, []string{"variants is not an array"}
	}

	var out []domain.Variant
	var warnings []string
	for j, raw := range rawVariants {
		var v rawVariant
		if !isObject(raw) || json.Unmarshal(raw, &v) != nil {
			warnings = append(warnings, fmt.Sprintf("variant %d is not an object", j))
			continue
		}

		price, ok := priceValue(v.Price)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("variant %d has no numeric price", j))
			continue
		}

		out = append(out, domain.Variant{Title: textValue(v.Title), Price: price})
	}
	return out, warnings
}

// textValue renders strings and numbers as text; anything else is empty
func textValue(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String()
	}

	return ""
}

func priceValue(data json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || isNull(data) {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isArray(data json.RawMessage) bool {
	return strings.HasPrefix(string(bytes.TrimSpace(data)), "[")
}

func isObject(data json.RawMessage) bool {
	return strings.HasPrefix(string(bytes.TrimSpace(data)), "{")
}

func isNull(data json.RawMessage) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
