package world

import "strings"

// Well-known places the engine reasons about by name.
const (
	TutorialIsland = "Tutorial Island"
	Respawn        = "Lumbridge"
	OpenWorldStart = "Lumbridge"
	GrandExchange  = "Grand Exchange"
)

// KnownLocations are the free-to-play areas the perception pass can
// recognize in raw screen text.
var KnownLocations = []string{
	"Tutorial Island",
	"Lumbridge Swamp",
	"Lumbridge",
	"Draynor Village",
	"Al Kharid",
	"Varrock",
	"Barbarian Village",
	"Edgeville",
	"Falador",
	"Port Sarim",
	"Grand Exchange",
}

// travelGraph links each area to the areas reachable from it on foot.
var travelGraph = map[string][]string{
	"Lumbridge":         {"Lumbridge Swamp", "Draynor Village", "Al Kharid", "Varrock"},
	"Lumbridge Swamp":   {"Lumbridge", "Draynor Village"},
	"Draynor Village":   {"Lumbridge", "Lumbridge Swamp", "Falador", "Port Sarim"},
	"Al Kharid":         {"Lumbridge", "Varrock"},
	"Varrock":           {"Lumbridge", "Al Kharid", "Barbarian Village", "Grand Exchange"},
	"Barbarian Village": {"Varrock", "Edgeville", "Falador"},
	"Edgeville":         {"Barbarian Village", "Grand Exchange"},
	"Grand Exchange":    {"Varrock", "Edgeville"},
	"Falador":           {"Draynor Village", "Barbarian Village", "Port Sarim"},
	"Port Sarim":        {"Draynor Village", "Falador"},
}

// Known reports whether the name is a recognized open-world area.
func Known(name string) bool {
	_, ok := travelGraph[name]
	return ok || name == TutorialIsland
}

// Neighbors returns the areas reachable from the given one. Unknown
// areas have no neighbors.
func Neighbors(name string) []string {
	adj := travelGraph[name]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

// ExtractLocation scans raw text for a known area name, preferring the
// longest match so that district names win over their prefixes.
func ExtractLocation(text string) (string, bool) {
	lowered := strings.ToLower(text)
	best := ""
	for _, loc := range KnownLocations {
		if len(loc) > len(best) && strings.Contains(lowered, strings.ToLower(loc)) {
			best = loc
		}
	}
	return best, best != ""
}
