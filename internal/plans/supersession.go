package plans

import (
	"sort"
	"strings"

	"github.com/goliatone/go-planstatus/pkg/interfaces"
)

const (
	designSuffix = "-design"
	implSuffix   = "-impl"
)

// Supersession maps a plan path to the filename of the plan replacing it, or
// interfaces.NotSuperseded.
type Supersession map[string]string

// Target returns the superseding filename for path, defaulting to NotSuperseded.
func (s Supersession) Target(path string) string {
	if target, ok := s[path]; ok && target != "" {
		return target
	}
	return interfaces.NotSuperseded
}

// ResolveSupersession computes the supersession pointer for every entry.
//
// A "-design" plan is replaced by the latest plan under the matching "-impl"
// slug when one exists. Otherwise any plan is replaced by the latest plan with
// the same slug and a strictly later date.
func ResolveSupersession(entries []interfaces.PlanEntry) Supersession {
	bySlug := groupBySlug(entries)

	resolved := make(Supersession, len(entries))
	for _, entry := range entries {
		target := interfaces.NotSuperseded

		if strings.HasSuffix(entry.Slug, designSuffix) {
			implSlug := strings.TrimSuffix(entry.Slug, designSuffix) + implSuffix
			if impls := bySlug[implSlug]; len(impls) > 0 {
				target = impls[len(impls)-1].Name
			}
		}

		if target == interfaces.NotSuperseded {
			if newer := laterThan(bySlug[entry.Slug], entry.Date); len(newer) > 0 {
				target = newer[len(newer)-1].Name
			}
		}

		resolved[entry.Path] = target
	}
	return resolved
}

// groupBySlug buckets entries by slug with each bucket sorted by date ascending.
func groupBySlug(entries []interfaces.PlanEntry) map[string][]interfaces.PlanEntry {
	bySlug := make(map[string][]interfaces.PlanEntry)
	for _, entry := range entries {
		bySlug[entry.Slug] = append(bySlug[entry.Slug], entry)
	}
	for _, group := range bySlug {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date < group[j].Date
		})
	}
	return bySlug
}

func laterThan(group []interfaces.PlanEntry, date string) []interfaces.PlanEntry {
	var newer []interfaces.PlanEntry
	for _, candidate := range group {
		if candidate.Date > date {
			newer = append(newer, candidate)
		}
	}
	return newer
}
