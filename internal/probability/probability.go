// Package probability merges shot and betting probabilities that arrive
// from separate server responses into one snapshot.
package probability

import (
	"maps"
	"math"
	"strings"
)

// Group names used in a Snapshot
const (
	GroupShot    = "shot"
	GroupBetting = "betting_analysis"
)

// Group is one named set of values, for example a shot outcome
// distribution or the equity of each betting option.
type Group map[string]float64

// Snapshot maps group names to groups
type Snapshot map[string]Group

// Update carries the groups present in a response. A nil group is absent.
type Update struct {
	Shot    Group
	Betting Group
}

// Empty reports whether the update carries no groups
func (u Update) Empty() bool {
	return u.Shot == nil && u.Betting == nil
}

// Merge returns a new snapshot equal to existing with every present group
// of incoming replaced wholesale. Absent groups are left untouched.
func Merge(existing Snapshot, incoming Update) Snapshot {
	out := existing.Clone()
	if out == nil {
		out = Snapshot{}
	}
	if incoming.Shot != nil {
		out[GroupShot] = normalize(incoming.Shot)
	}
	if incoming.Betting != nil {
		out[GroupBetting] = normalize(incoming.Betting)
	}
	return out
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for name, g := range s {
		out[name] = maps.Clone(g)
	}
	return out
}

// IsExpectedValue reports whether a field holds an expected value in
// quarters rather than a probability.
func IsExpectedValue(field string) bool {
	return field == "expected_value" ||
		strings.HasSuffix(field, "_ev") ||
		strings.HasSuffix(field, "_expected_value") ||
		strings.HasSuffix(field, "_quarters")
}

func normalize(g Group) Group {
	out := make(Group, len(g))
	for field, v := range g {
		if math.IsNaN(v) {
			continue
		}
		if IsExpectedValue(field) {
			out[field] = v
			continue
		}
		out[field] = clamp(v)
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
