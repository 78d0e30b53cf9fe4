package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expectedTitle string
	}{
		{
			name:          "title extracted",
			content:       "---\ntitle: Alpha Notes\nid: abc123\n---\n\nbody\n",
			expectedTitle: "Alpha Notes",
		},
		{
			name:          "no frontmatter",
			content:       "# just a heading\n\nbody\n",
			expectedTitle: "",
		},
		{
			name:          "empty file",
			content:       "",
			expectedTitle: "",
		},
		{
			name:          "horizontal rule in body is not frontmatter",
			content:       "intro\n\n---\n\ntitle: not really\n",
			expectedTitle: "",
		},
		{
			name:          "unclosed fence",
			content:       "---\ntitle: dangling\n",
			expectedTitle: "",
		},
		{
			name:          "leading BOM tolerated",
			content:       "\xef\xbb\xbf---\ntitle: With BOM\n---\nbody\n",
			expectedTitle: "With BOM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := parseFrontmatter([]byte(tt.content))
			if err != nil {
				t.Fatalf("parseFrontmatter failed: %v", err)
			}
			if got := meta.Title(); got != tt.expectedTitle {
				t.Errorf("expected title %q, got %q", tt.expectedTitle, got)
			}
		})
	}
}

func TestParseFrontmatter_InvalidYAML(t *testing.T) {
	if _, err := parseFrontmatter([]byte("---\ntitle: [unclosed\n---\nbody\n")); err == nil {
		t.Error("expected error for invalid yaml frontmatter")
	}
}

func TestMetadataReaderRead(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "projects.alpha.md")
	content := "---\ntitle: Alpha\ntags:\n  - project\n---\n\nnotes\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	reader := NewMetadataReader()
	meta, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if meta.Title() != "Alpha" {
		t.Errorf("expected title Alpha, got %s", meta.Title())
	}
}

func TestMetadataReaderRead_MissingFile(t *testing.T) {
	reader := NewMetadataReader()
	if _, err := reader.Read("/nonexistent/note.md"); err == nil {
		t.Error("expected error for missing note")
	}
}
