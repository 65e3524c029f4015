package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PresetID identifies a persisted filter preset. Format is
// "preset-{epoch-millis}-{suffix}" where the suffix is a short random token;
// the format is part of the persisted blob layout and must stay stable.
type PresetID string

// NewPresetID creates a fresh preset id for the given creation instant.
func NewPresetID(at Timestamp) PresetID {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return PresetID(fmt.Sprintf("preset-%d-%s", int64(at), suffix))
}

// String returns the string representation
func (id PresetID) String() string {
	return string(id)
}

// IsEmpty checks if the id is empty
func (id PresetID) IsEmpty() bool {
	return id == ""
}

// PanelID is the natural key of a panel search result; bookmarks are keyed
// on it, at most one bookmark per panel.
type PanelID string

func (id PanelID) String() string {
	return string(id)
}

// ParsePanelID parses a string into a PanelID
func ParsePanelID(s string) (PanelID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("panel ID cannot be empty")
	}
	return PanelID(s), nil
}

// FeatureKey identifies a measured variable across the comparison pipeline
// and the curated chart configurations.
type FeatureKey string

func (k FeatureKey) String() string {
	return string(k)
}

// ParseFeatureKey parses a string into a FeatureKey
func ParseFeatureKey(s string) (FeatureKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("feature key cannot be empty")
	}
	return FeatureKey(s), nil
}
