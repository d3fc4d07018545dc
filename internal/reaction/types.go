// Package reaction holds the reaction data consumed by the chip layout and
// popover code: the available-reactions catalogue and per-message aggregates.
package reaction

import "time"

// PlaceholderCount marks the synthetic "add reaction" aggregate.
const PlaceholderCount = -1

// PlaceholderValue is the stable id used for the "add reaction" chip.
const PlaceholderValue = "\x00add"

// Descriptor identifies one reaction kind. Descriptors are read-only once
// published in a Snapshot.
type Descriptor struct {
	Value        string `yaml:"value"`
	Title        string `yaml:"title"`
	Emoji        string `yaml:"emoji"`
	StaticIcon   string `yaml:"static_icon,omitempty"`
	AnimatedIcon string `yaml:"animated_icon,omitempty"`
	PremiumOnly  bool   `yaml:"premium,omitempty"`
}

// Icon returns the glyph used to draw the reaction in a terminal.
func (d Descriptor) Icon() string {
	if d.Emoji != "" {
		return d.Emoji
	}
	return d.Value
}

// Peer is someone who reacted to a message.
type Peer struct {
	ID   string
	Name string
}

// Initial returns the peer's avatar letter.
func (p Peer) Initial() string {
	for _, r := range p.Name {
		return string(r)
	}
	return "?"
}

// Count is the per-message aggregate for one reaction value.
type Count struct {
	Value    string
	Count    int
	Selected bool
	Recent   []Peer
}

// Placeholder returns the synthetic "add reaction" aggregate.
func Placeholder() Count {
	return Count{Value: PlaceholderValue, Count: PlaceholderCount}
}

// IsPlaceholder reports whether c is the "add reaction" aggregate.
func (c Count) IsPlaceholder() bool { return c.Count == PlaceholderCount }

// Snapshot is one published version of the available reactions.
type Snapshot struct {
	Reactions []Descriptor
	Version   int
	LoadedAt  time.Time
}

// Lookup finds a descriptor by value.
func (s Snapshot) Lookup(value string) (Descriptor, bool) {
	for _, d := range s.Reactions {
		if d.Value == value {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Allowed returns the descriptors an account may see, in catalogue order.
// Non-premium accounts lose every premium-only reaction except the first one,
// which stays visible as a locked teaser.
func (s Snapshot) Allowed(premium bool) []Descriptor {
	if premium {
		return append([]Descriptor(nil), s.Reactions...)
	}
	out := make([]Descriptor, 0, len(s.Reactions))
	teaser := false
	for _, d := range s.Reactions {
		if d.PremiumOnly {
			if teaser {
				continue
			}
			teaser = true
		}
		out = append(out, d)
	}
	return out
}

// Usable reports whether the account can send the reaction.
func (s Snapshot) Usable(value string, premium bool) bool {
	d, ok := s.Lookup(value)
	if !ok {
		return false
	}
	return premium || !d.PremiumOnly
}

// Top picks the reaction shown in the collapsed popover: the quick reaction
// when the account can use it, otherwise the first usable one.
func (s Snapshot) Top(quick string, premium bool) (Descriptor, bool) {
	if quick != "" && s.Usable(quick, premium) {
		d, _ := s.Lookup(quick)
		return d, true
	}
	for _, d := range s.Reactions {
		if premium || !d.PremiumOnly {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Selected returns the values of the selected aggregates in order.
func Selected(counts []Count) []string {
	var out []string
	for _, c := range counts {
		if c.Selected {
			out = append(out, c.Value)
		}
	}
	return out
}

// Find returns the aggregate for value, if any.
func Find(counts []Count, value string) (Count, bool) {
	for _, c := range counts {
		if c.Value == value {
			return c, true
		}
	}
	return Count{}, false
}
