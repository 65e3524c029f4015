package preset

import (
	"sort"

	"panelscope/domain/core"
)

// Scope tags a preset's visibility. The values are user-facing Korean
// labels and are persisted as-is.
type Scope string

const (
	ScopePersonal Scope = "개인"
	ScopeTeam     Scope = "팀"
)

// Valid reports whether s is one of the known scopes.
func (s Scope) Valid() bool {
	return s == ScopePersonal || s == ScopeTeam
}

// Filters is the saved filter configuration. Known dimensions are named
// optional fields; Extra carries forward-compatible dimensions the current
// build does not know about, round-tripped untouched.
type Filters struct {
	Genders        []string       `json:"genders,omitempty"`
	AgeRange       *[2]int        `json:"age_range,omitempty"`
	Regions        []string       `json:"regions,omitempty"`
	IncomeBrackets []string       `json:"income_brackets,omitempty"`
	Interests      []string       `json:"interests,omitempty"`
	QuickpollOnly  bool           `json:"quickpoll_only,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// Preset is a saved filter configuration. Created on explicit user save,
// mutated only via explicit update (which refreshes Timestamp), destroyed
// only via explicit delete.
type Preset struct {
	ID        core.PresetID  `json:"id"`
	Name      string         `json:"name"`
	Filters   Filters        `json:"filters"`
	Timestamp core.Timestamp `json:"timestamp"`
	Scope     Scope          `json:"scope"`
}

// Update carries the partial fields of an explicit preset update. Nil
// fields are left untouched.
type Update struct {
	Name    *string
	Filters *Filters
	Scope   *Scope
}

// Apply merges u into p and returns the result. Timestamp refresh is the
// caller's job (the store stamps write time).
func (u Update) Apply(p Preset) Preset {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Filters != nil {
		p.Filters = *u.Filters
	}
	if u.Scope != nil {
		p.Scope = *u.Scope
	}
	return p
}

// FilterByScope returns the presets with the given scope, sorted by
// timestamp descending. The input slice is not modified.
func FilterByScope(list []Preset, scope Scope) []Preset {
	out := make([]Preset, 0, len(list))
	for _, p := range list {
		if p.Scope == scope {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
