package character

import "github.com/emberwake/emberwake/internal/equipment"

// Stats is a character's level and attribute sheet. It satisfies the
// requirement checks equipment runs before an item can be worn.
type Stats struct {
	CharacterLevel int
	Attributes     map[string]int
}

var _ equipment.StatsProvider = (*Stats)(nil)

// NewStats creates a level-1 sheet with no attributes
func NewStats() *Stats {
	return &Stats{
		CharacterLevel: 1,
		Attributes:     make(map[string]int),
	}
}

// Level returns the character level
func (s *Stats) Level() int { return s.CharacterLevel }

// GetStat returns an attribute value, accepting aliases like "str"
func (s *Stats) GetStat(name string) int {
	return s.Attributes[equipment.CanonicalStat(name)]
}

// SetStat sets an attribute value under its canonical name
func (s *Stats) SetStat(name string, value int) {
	s.Attributes[equipment.CanonicalStat(name)] = value
}
