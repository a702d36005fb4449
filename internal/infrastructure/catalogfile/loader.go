package catalogfile

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/buildco/catalog/internal/domain"
)

// FileSource loads the generated catalog document from disk
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a catalog source for path. logger may be nil.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{path: path, logger: logger}
}

// Load reads and validates the catalog. A missing or malformed document
// degrades to an empty catalog; only context cancellation is an error.
func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Catalog document not found, serving empty catalog", zap.String("path", s.path))
		} else {
			s.logger.Error("Failed to read catalog document, serving empty catalog",
				zap.String("path", s.path), zap.Error(err))
		}
		return &domain.Catalog{Items: []domain.ProductItem{}}, nil
	}

	catalog, warnings := Decode(data)
	for _, w := range warnings {
		s.logger.Warn("Catalog document problem", zap.String("path", s.path), zap.String("detail", w))
	}

	s.logger.Info("Catalog loaded",
		zap.String("path", s.path),
		zap.Int("items", len(catalog.Items)),
		zap.Int("variants", catalog.VariantCount()))

	return catalog, nil
}
