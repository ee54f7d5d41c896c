package plans

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
)

type titleMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// documentTitle returns the frontmatter title when the plan declares one and
// otherwise the text of its first line with any heading marker removed.
func documentTitle(source []byte) string {
	var meta titleMatter
	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err == nil {
		if title := strings.TrimSpace(meta.Title); title != "" {
			return title
		}
		source = body
	}

	lines := splitLines(string(source))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
