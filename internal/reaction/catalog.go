package reaction

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Version   int          `yaml:"version"`
	Reactions []Descriptor `yaml:"reactions"`
}

// Defaults is the built-in catalogue used when no reactions file is configured.
var Defaults = []Descriptor{
	{Value: "thumbs_up", Title: "Like", Emoji: "👍"},
	{Value: "heart", Title: "Love", Emoji: "❤️"},
	{Value: "joy", Title: "Haha", Emoji: "😂"},
	{Value: "fire", Title: "Fire", Emoji: "🔥"},
	{Value: "party", Title: "Party", Emoji: "🎉"},
	{Value: "eyes", Title: "Looking", Emoji: "👀"},
	{Value: "thinking", Title: "Hmm", Emoji: "🤔"},
	{Value: "thumbs_down", Title: "Dislike", Emoji: "👎"},
	{Value: "rocket", Title: "Ship it", Emoji: "🚀", PremiumOnly: true},
	{Value: "unicorn", Title: "Unicorn", Emoji: "🦄", PremiumOnly: true},
	{Value: "crown", Title: "Crown", Emoji: "👑", PremiumOnly: true},
}

// DefaultSnapshot returns a snapshot of the built-in catalogue.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Reactions: append([]Descriptor(nil), Defaults...),
		Version:   1,
		LoadedAt:  time.Now(),
	}
}

// LoadCatalog reads a YAML reactions file. An empty path yields the defaults.
func LoadCatalog(path string) (Snapshot, error) {
	if path == "" {
		return DefaultSnapshot(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read reactions file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalogue and validates it.
func ParseCatalog(data []byte) (Snapshot, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse reactions file: %w", err)
	}
	seen := make(map[string]bool, len(f.Reactions))
	for i, d := range f.Reactions {
		if d.Value == "" {
			return Snapshot{}, fmt.Errorf("reaction %d: missing value", i)
		}
		if d.Value == PlaceholderValue {
			return Snapshot{}, fmt.Errorf("reaction %d: reserved value", i)
		}
		if seen[d.Value] {
			return Snapshot{}, fmt.Errorf("reaction %q listed twice", d.Value)
		}
		seen[d.Value] = true
	}
	return Snapshot{Reactions: f.Reactions, Version: f.Version, LoadedAt: time.Now()}, nil
}
