package usecase

import (
	"strings"
	"time"

	"github.com/buildco/catalog/internal/domain"
)

// PanelState is the state of the suggestion panel under the search input
type PanelState int

const (
	PanelClosed PanelState = iota
	PanelOpenResults
	PanelOpenEmpty
)

// String returns the wire name of the panel state
func (s PanelState) String() string {
	switch s {
	case PanelOpenResults:
		return "open-with-results"
	case PanelOpenEmpty:
		return "open-empty"
	default:
		return "closed"
	}
}

// PanelStateFor is the state of an open panel for query and its hits
func PanelStateFor(query string, hits []domain.SearchHit) PanelState {
	if strings.TrimSpace(query) == "" {
		return PanelClosed
	}
	if len(hits) == 0 {
		return PanelOpenEmpty
	}
	return PanelOpenResults
}

// ScrollDelay is how long a picked suggestion waits for the new brand view
// to render before scrolling to the product
const ScrollDelay = 30 * time.Millisecond

// Scroller brings a product into view. It reports false when the product
// is not rendered.
type Scroller interface {
	ScrollTo(productName string) bool
}

// BrowseSession tracks one visitor's products page: the active brand, the
// query and the suggestion panel. It is driven by a single event loop and
// is not safe for concurrent use.
type BrowseSession struct {
	index       *BrandIndex
	scroller    Scroller
	scrollDelay time.Duration

	query       string
	activeBrand string
	open        bool
	suggestions []domain.SearchHit
}

// NewBrowseSession starts a session on the all-products bucket.
// scroller may be nil.
func NewBrowseSession(index *BrandIndex, scroller Scroller) *BrowseSession {
	return &BrowseSession{
		index:       index,
		scroller:    scroller,
		scrollDelay: ScrollDelay,
		activeBrand: domain.AllProductsBrand,
		suggestions: []domain.SearchHit{},
	}
}

// SetQuery handles a keystroke. A non-empty query opens the panel, an
// empty one closes it.
func (s *BrowseSession) SetQuery(query string) {
	s.query = query
	s.suggestions = s.index.Suggest(query, MaxSuggestions)
	s.open = strings.TrimSpace(query) != ""
}

// Focus reopens the panel when the input regains focus with a query
func (s *BrowseSession) Focus() {
	if strings.TrimSpace(s.query) != "" {
		s.open = true
	}
}

// ClickOutside closes the panel
func (s *BrowseSession) ClickOutside() {
	s.open = false
}

// SelectBrand switches the active bucket
func (s *BrowseSession) SelectBrand(brand string) {
	s.activeBrand = brand
}

// PickSuggestion closes the panel, switches to the hit's brand and schedules
// a best-effort scroll to the product. The returned timer is never needed
// for correctness.
func (s *BrowseSession) PickSuggestion(hit domain.SearchHit) *time.Timer {
	s.activeBrand = hit.Brand
	s.open = false

	if s.scroller == nil {
		return nil
	}

	scroller := s.scroller
	target := hit.ProductName
	return time.AfterFunc(s.scrollDelay, func() {
		// a missing target is a silent no-op
		_ = scroller.ScrollTo(target)
	})
}

// State returns the suggestion panel state
func (s *BrowseSession) State() PanelState {
	if !s.open {
		return PanelClosed
	}
	return PanelStateFor(s.query, s.suggestions)
}

// Suggestions returns the hits for the current query
func (s *BrowseSession) Suggestions() []domain.SearchHit {
	return s.suggestions
}

// Query returns the current query
func (s *BrowseSession) Query() string {
	return s.query
}

// ActiveBrand returns the selected brand key
func (s *BrowseSession) ActiveBrand() string {
	return s.activeBrand
}

// Visible returns the active bucket filtered by the current query
func (s *BrowseSession) Visible() (domain.BrandGroup, error) {
	return s.index.Filter(s.activeBrand, s.query)
}
