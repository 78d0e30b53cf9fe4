package filesystem

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

var (
	frontmatterFence = []byte("---")
	utf8BOM          = []byte("\xef\xbb\xbf")
)

// MetadataReader implements ports.MetadataReader for YAML frontmatter.
type MetadataReader struct{}

// NewMetadataReader creates a frontmatter reader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// Interface compliance check
var _ ports.MetadataReader = (*MetadataReader)(nil)

// Read extracts the frontmatter mapping from a note. Notes without a
// frontmatter block yield an empty mapping, not an error.
func (r *MetadataReader) Read(path string) (domain.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	return parseFrontmatter(data)
}

func parseFrontmatter(data []byte) (domain.Metadata, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	// Only a leading fence starts a frontmatter block; a horizontal rule
	// further down the body does not.
	if !bytes.HasPrefix(data, frontmatterFence) {
		return domain.Metadata{}, nil
	}

	// Split frontmatter and content
	parts := bytes.SplitN(data, frontmatterFence, 3)
	if len(parts) < 3 {
		return domain.Metadata{}, nil
	}

	meta := domain.Metadata{}
	if err := yaml.Unmarshal(parts[1], &meta); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return meta, nil
}
