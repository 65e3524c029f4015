package bookmark

import (
	"sort"

	"panelscope/domain/core"
)

// Metadata is the panel snapshot captured at bookmark time, for rendering
// the saved list without re-running the search.
type Metadata struct {
	Gender string   `json:"gender,omitempty"`
	Age    string   `json:"age,omitempty"`
	Region string   `json:"region,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Bookmark marks a saved panel. PanelID is the natural key: the collection
// holds at most one bookmark per panel, newest write wins.
type Bookmark struct {
	PanelID   core.PanelID   `json:"panelId"`
	Title     string         `json:"title,omitempty"`
	Timestamp core.Timestamp `json:"timestamp"`
	Metadata  *Metadata      `json:"metadata,omitempty"`
}

// Upsert inserts b into list, replacing any existing entry with the same
// PanelID, and returns the collection re-sorted newest-first. The input
// slice is not modified.
func Upsert(list []Bookmark, b Bookmark) []Bookmark {
	out := make([]Bookmark, 0, len(list)+1)
	for _, existing := range list {
		if existing.PanelID != b.PanelID {
			out = append(out, existing)
		}
	}
	out = append(out, b)
	SortNewestFirst(out)
	return out
}

// Remove drops the bookmark with the given panel id, if present.
func Remove(list []Bookmark, panelID core.PanelID) []Bookmark {
	out := make([]Bookmark, 0, len(list))
	for _, b := range list {
		if b.PanelID != panelID {
			out = append(out, b)
		}
	}
	return out
}

// SortNewestFirst orders the collection by timestamp descending, in place.
func SortNewestFirst(list []Bookmark) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}
