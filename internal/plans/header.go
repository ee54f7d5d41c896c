package plans

import (
	"strings"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

const (
	// HeaderSentinel marks a document that already carries a status header.
	HeaderSentinel = "> Status: Historical"
	// sentinelWindow bounds how far into a document the sentinel is searched, in characters.
	sentinelWindow = 300

	linePrefix = "> "
	bullet     = "> - "
)

// Header is the status block stamped near the top of a plan.
type Header struct {
	Status       interfaces.PlanStatus
	SupersededBy string
	Summary      []string
	Planned      []string
}

// NewHeader builds a header for a plan superseded by target (NotSuperseded
// when nothing replaces it).
func NewHeader(target string, summary Summary) Header {
	if strings.TrimSpace(target) == "" {
		target = interfaces.NotSuperseded
	}
	status := interfaces.PlanStatusHistorical
	if target != interfaces.NotSuperseded {
		status = interfaces.PlanStatusSuperseded
	}
	return Header{
		Status:       status,
		SupersededBy: target,
		Summary:      append([]string(nil), summary.Lines...),
		Planned:      append([]string(nil), summary.Planned...),
	}
}

// Render formats the header block. The block always ends with a blank line.
func (h Header) Render() string {
	var b strings.Builder
	b.WriteString(linePrefix + "Status: " + string(h.Status) + "\n")
	b.WriteString(linePrefix + "Superseded by: " + h.SupersededBy + "\n")

	b.WriteString(linePrefix + "Summary:\n")
	if len(h.Summary) == 0 {
		b.WriteString(bullet + "Goal: N/A\n")
	}
	for _, line := range h.Summary {
		b.WriteString(bullet + line + "\n")
	}

	b.WriteString(linePrefix + "Planned Outcomes:\n")
	if len(h.Planned) == 0 {
		b.WriteString(bullet + "N/A\n")
	}
	for _, line := range h.Planned {
		b.WriteString(bullet + line + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// HasHeader reports whether the sentinel appears within the first 300
// characters of text. A \r\n pair counts as a single character.
func HasHeader(text string) bool {
	return strings.Contains(leadingChars(normalizeNewlines(text), sentinelWindow), HeaderSentinel)
}

// Stamp inserts the rendered header after the first line of text, separated
// from the title by a blank line. Documents with no lines are returned
// unchanged with false.
func Stamp(text string, header Header) (string, bool) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return text, false
	}

	var b strings.Builder
	b.Grow(len(text) + 256)
	b.WriteString(lines[0])
	b.WriteString("\n\n")
	b.WriteString(header.Render())
	b.WriteString(strings.Join(lines[1:], "\n"))
	b.WriteString("\n")
	return b.String(), true
}

func leadingChars(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
