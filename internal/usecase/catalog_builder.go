package usecase

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/buildco/catalog/internal/domain"
)

// Catalog defaults written into every build
const (
	DefaultSectionTitle = "Məhsullar"
	DefaultProductImage = "/images/products/default.jpg"
)

const currencyGlyph = "₼"

// fieldSeparatorRegex splits on runs of two or more spaces (including
// no-break and other Unicode spaces) or any run of tabs. A single space
// belongs to the field.
var fieldSeparatorRegex = regexp.MustCompile(`[\s\p{Zs}]{2,}|\t+`)

// CatalogBuilderConfig holds configuration for the catalog builder
type CatalogBuilderConfig struct {
	SectionTitle string
	DefaultImage string
	Logger       *zap.Logger
}

// CatalogBuilder turns the plain-text price list into a grouped catalog
type CatalogBuilder struct {
	sectionTitle string
	defaultImage string
	logger       *zap.Logger
}

// NewCatalogBuilder creates a catalog builder, filling in defaults
func NewCatalogBuilder(config CatalogBuilderConfig) *CatalogBuilder {
	title := config.SectionTitle
	if title == "" {
		title = DefaultSectionTitle
	}

	image := config.DefaultImage
	if image == "" {
		image = DefaultProductImage
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogBuilder{
		sectionTitle: title,
		defaultImage: image,
		logger:       logger,
	}
}

// rawLine is one surviving input line
type rawLine struct {
	number   int
	content  string
	indented bool
}

// groupSet accumulates variants per group, remembering first-seen order
type groupSet struct {
	order    []string
	variants map[string][]domain.Variant
}

func newGroupSet() *groupSet {
	return &groupSet{variants: make(map[string][]domain.Variant)}
}

func (g *groupSet) add(group, title string, price float64) {
	if _, ok := g.variants[group]; !ok {
		g.order = append(g.order, group)
	}
	g.variants[group] = append(g.variants[group], domain.Variant{
		Title: strings.TrimSpace(title),
		Price: price,
	})
}

// Parse reads the raw price list and builds the catalog.
// Malformed lines are skipped and counted, never fatal.
func (b *CatalogBuilder) Parse(r io.Reader) (*domain.Catalog, *domain.BuildStats, error) {
	lines, err := readRawLines(r)
	if err != nil {
		return nil, nil, err
	}

	groups := newGroupSet()
	stats := &domain.BuildStats{}
	var minPrice, maxPrice *decimal.Decimal
	currentGroup := ""

	track := func(price decimal.Decimal) {
		if minPrice == nil || price.LessThan(*minPrice) {
			p := price
			minPrice = &p
		}
		if maxPrice == nil || price.GreaterThan(*maxPrice) {
			p := price
			maxPrice = &p
		}
	}

	skip := func(line rawLine, reason string) {
		stats.SkippedLines++
		b.logger.Debug("Skipping price list line",
			zap.Int("line", line.number),
			zap.String("reason", reason),
			zap.String("content", line.content))
	}

	for _, line := range lines {
		parts := SplitFields(line.content)

		if !line.indented {
			// [GROUP, ...title, PRICE]
			if len(parts) < 3 {
				skip(line, "group line needs at least 3 fields")
				continue
			}

			currentGroup = parts[0]

			price, ok := parsePriceDecimal(parts[len(parts)-1])
			if !ok {
				skip(line, "unparseable price")
				continue
			}

			track(price)
			groups.add(currentGroup, strings.Join(parts[1:len(parts)-1], " "), price.InexactFloat64())
			continue
		}

		if currentGroup == "" {
			skip(line, "continuation line before any group")
			continue
		}

		// [...title, PRICE]
		if len(parts) < 2 {
			skip(line, "continuation line needs at least 2 fields")
			continue
		}

		price, ok := parsePriceDecimal(parts[len(parts)-1])
		if !ok {
			skip(line, "unparseable price")
			continue
		}

		track(price)
		groups.add(currentGroup, strings.Join(parts[:len(parts)-1], " "), price.InexactFloat64())
	}

	catalog := &domain.Catalog{
		SectionTitle: b.sectionTitle,
		Items:        make([]domain.ProductItem, 0, len(groups.order)),
	}
	for _, name := range groups.order {
		catalog.Items = append(catalog.Items, domain.ProductItem{
			Name:     name,
			Image:    b.defaultImage,
			Variants: groups.variants[name],
		})
	}

	stats.Groups = len(catalog.Items)
	stats.Variants = catalog.VariantCount()
	if minPrice != nil {
		stats.MinPrice = minPrice.InexactFloat64()
		stats.MaxPrice = maxPrice.InexactFloat64()
	}

	return catalog, stats, nil
}

// readRawLines strips carriage returns, right-trims each line and drops
// blank lines, classifying the rest as group or continuation lines
func readRawLines(r io.Reader) ([]rawLine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read price list: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r", "")

	var lines []rawLine
	for i, content := range strings.Split(text, "\n") {
		content = strings.TrimRightFunc(content, unicode.IsSpace)
		if strings.TrimSpace(content) == "" {
			continue
		}

		first, _ := utf8.DecodeRuneInString(content)
		lines = append(lines, rawLine{
			number:   i + 1,
			content:  content,
			indented: unicode.IsSpace(first),
		})
	}

	return lines, nil
}

// SplitFields trims a line and splits it into fields on runs of 2+ spaces
// or tabs, dropping empty fields
func SplitFields(line string) []string {
	raw := fieldSeparatorRegex.Split(strings.TrimSpace(line), -1)

	fields := make([]string, 0, len(raw))
	for _, f := range raw {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// ParsePrice parses a price field such as "34,00" or "8,30 ₼".
// ok is false when the field is not a finite number.
func ParsePrice(raw string) (float64, bool) {
	price, ok := parsePriceDecimal(raw)
	if !ok {
		return 0, false
	}
	return price.InexactFloat64(), true
}

func parsePriceDecimal(raw string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(raw), currencyGlyph, ""))
	if cleaned == "" {
		return decimal.Decimal{}, false
	}

	// comma is the decimal separator in the source list
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}

	// exponent forms such as 1e400 parse but do not fit a float64
	if f := price.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, false
	}
	return price, true
}
