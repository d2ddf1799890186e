package world

import "testing"

func TestTravelGraph_Symmetric(t *testing.T) {
	for from, adj := range travelGraph {
		for _, to := range adj {
			found := false
			for _, back := range travelGraph[to] {
				if back == from {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("edge %s -> %s has no return edge", from, to)
			}
		}
	}
}

func TestKnownAndNeighbors(t *testing.T) {
	if !Known("Lumbridge") || !Known(TutorialIsland) {
		t.Fatalf("expected core areas known")
	}
	if Known("Canifis") {
		t.Fatalf("members area must be unknown")
	}
	adj := Neighbors("Lumbridge")
	if len(adj) == 0 {
		t.Fatalf("expected neighbors for Lumbridge")
	}
	adj[0] = "mutated"
	if Neighbors("Lumbridge")[0] == "mutated" {
		t.Fatalf("Neighbors must return a copy")
	}
	if got := Neighbors("Canifis"); len(got) != 0 {
		t.Fatalf("unknown area neighbors = %v, want none", got)
	}
}

func TestExtractLocation(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Welcome to Lumbridge", "Lumbridge", true},
		{"you wade into lumbridge swamp", "Lumbridge Swamp", true},
		{"The GRAND EXCHANGE is busy today", "Grand Exchange", true},
		{"A quiet cave", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractLocation(c.text)
		if ok != c.ok || got != c.want {
			t.Fatalf("ExtractLocation(%q) = (%q,%v), want (%q,%v)", c.text, got, ok, c.want, c.ok)
		}
	}
}

func TestRespawnIsOpenWorldStart(t *testing.T) {
	if Respawn != "Lumbridge" || OpenWorldStart != Respawn {
		t.Fatalf("respawn/start = (%q,%q), want Lumbridge", Respawn, OpenWorldStart)
	}
}
