package plans

import "regexp"

// space matches any Unicode whitespace, not only the ASCII set behind \s.
const space = `[\s\v\p{Z}\x1c-\x1f\x85]`

var (
	goalPattern    = regexp.MustCompile(`^` + space + `*\*\*Goal:\*\*` + space + `*|^` + space + `*Goal:` + space + `*`)
	taskPattern    = regexp.MustCompile(`^` + space + `*###` + space + `*`)
	sectionPattern = regexp.MustCompile(`^` + space + `*##` + space + `*`)
)

const (
	maxGoalLines    = 1
	maxHeadingLines = 2
)

// Summary is the synopsis scraped from a plan body.
type Summary struct {
	// Lines holds an optional "Goal: ..." line followed by an optional "Scope: ..." line.
	Lines []string
	// Planned holds up to two heading-derived outcomes.
	Planned []string
}

// ExtractSummary scans text line by line for the first Goal marker and the
// first level-three headings, falling back to level-two headings when the
// document has none. The planned outcomes reuse the headings found for the
// scope line.
func ExtractSummary(text string) Summary {
	lines := splitLines(text)

	goals := extractLines(lines, maxGoalLines, goalPattern)
	tasks := extractLines(lines, maxHeadingLines, taskPattern)
	if len(tasks) == 0 {
		tasks = extractLines(lines, maxHeadingLines, sectionPattern)
	}

	summary := Summary{}
	if len(goals) > 0 {
		summary.Lines = append(summary.Lines, "Goal: "+goals[0])
	}
	if len(tasks) > 0 {
		summary.Lines = append(summary.Lines, "Scope: "+tasks[0])
		summary.Planned = append(summary.Planned, tasks...)
	}
	return summary
}

// extractLines returns up to count lines matching pattern, with the marker
// removed and surrounding space trimmed. Lines that are blank after stripping
// are skipped and do not count toward the limit.
func extractLines(lines []string, count int, pattern *regexp.Regexp) []string {
	var out []string
	for _, line := range lines {
		if pattern.MatchString(line) {
			if cleaned := trimSpace(pattern.ReplaceAllLiteralString(line, "")); cleaned != "" {
				out = append(out, cleaned)
			}
		}
		if len(out) >= count {
			break
		}
	}
	return out
}
