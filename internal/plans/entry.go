package plans

import (
	"path"
	"regexp"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

// Date digits may come from any script (\p{Nd}); cutoffs still compare lexically.
var planFilenamePattern = regexp.MustCompile(`^(\p{Nd}{4}-\p{Nd}{2}-\p{Nd}{2})-(.+)\.md$`)

// ParseFilename extracts the date and slug from a YYYY-MM-DD-<slug>.md path.
// Names that do not follow the convention report false.
func ParseFilename(p string) (interfaces.PlanEntry, bool) {
	name := path.Base(p)
	match := planFilenamePattern.FindStringSubmatch(name)
	if match == nil {
		return interfaces.PlanEntry{}, false
	}
	return interfaces.PlanEntry{
		Path: p,
		Name: name,
		Date: match[1],
		Slug: match[2],
	}, true
}

// BeforeCutoff reports whether the entry is dated strictly before cutoff. An
// empty cutoff admits every entry.
func BeforeCutoff(entry interfaces.PlanEntry, cutoff string) bool {
	if cutoff == "" {
		return true
	}
	return entry.Date < cutoff
}
