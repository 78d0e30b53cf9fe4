package domain

// Metadata holds the frontmatter key-value pairs of a note. The migration
// copies note bodies verbatim and never rewrites frontmatter; it reads it
// only to report duplicate titles.
type Metadata map[string]any

// Title returns the frontmatter title, or "" when absent or not a string.
func (m Metadata) Title() string {
	if t, ok := m["title"].(string); ok {
		return t
	}
	return ""
}
