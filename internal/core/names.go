package core

import "fmt"

var (
	nameAdjectives = []string{
		"Swift", "Master", "Pro", "Epic", "Super", "Mega", "Ultra",
		"Turbo", "Lightning", "Quantum", "Clever", "Sharp", "Quick",
	}
	nameNouns = []string{
		"Stacker", "Builder", "Clearer", "Wizard", "King", "Champion", "Legend",
		"Genius", "Hero", "Ace", "Defuser", "Hunter", "Clicker", "Sweeper",
	}
)

// PlayerName generates a display name such as "TurboStacker417" for players
// that did not pick one.
func PlayerName(src RandomSource) string {
	adj := nameAdjectives[Intn(src, len(nameAdjectives))]
	noun := nameNouns[Intn(src, len(nameNouns))]
	return fmt.Sprintf("%s%s%d", adj, noun, Intn(src, 999)+1)
}
