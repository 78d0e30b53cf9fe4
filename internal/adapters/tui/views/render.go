package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"trasloco/internal/adapters/tui/styles"
)

// RenderHelpLine renders key bindings as a bullet-separated help footer.
func RenderHelpLine(bindings ...key.Binding) string {
	var b strings.Builder
	for i, binding := range bindings {
		if i > 0 {
			b.WriteString(styles.HelpSeparator.String())
		}
		help := binding.Help()
		b.WriteString(styles.HelpKey.Render(help.Key))
		b.WriteString(" ")
		b.WriteString(styles.HelpDesc.Render(help.Desc))
	}
	return b.String()
}

// RenderMessage styles a transient status message, red when it reports an
// error.
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderTitle styles a view heading.
func RenderTitle(title string) string {
	return styles.Title.Render(title)
}

// RenderMuted styles secondary text.
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// RenderLabelValue renders a "Label: value" detail line.
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s", styles.InputLabel.Render(label+":"), value)
}
