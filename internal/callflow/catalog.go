package callflow

import (
	"strconv"
	"strings"
)

// Catalog lists the add-on services offered after the reschedule step, in
// the order they are spoken. Callers pick by position or by name.
var Catalog = []string{
	"Air filter replacement",
	"Oil filter change",
	"Tire rotation",
	"Battery health check",
	"Bike wash",
	"Coolant top-up",
	"Headlight bulb replacement",
	"Brake pad inspection",
}

// negativeKeywords decline the add-on offer entirely.
var negativeKeywords = []string{"nahi", "nahin", "no", "nothing", "kuch nahi"}

// MatchServices finds catalog entries mentioned in a lowercased transcript.
// An entry matches on its 1-based position ("2") or on any word of its name
// ("rotation"). Each entry is reported once, in catalog order.
func MatchServices(transcript string) []string {
	var chosen []string
	for i, name := range Catalog {
		if matchesService(transcript, i+1, name) {
			chosen = append(chosen, name)
		}
	}
	return chosen
}

func matchesService(transcript string, position int, name string) bool {
	if strings.Contains(transcript, strconv.Itoa(position)) {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if strings.Contains(transcript, word) {
			return true
		}
	}
	return false
}

func matchesNegative(transcript string) bool {
	for _, word := range negativeKeywords {
		if strings.Contains(transcript, word) {
			return true
		}
	}
	return false
}

// spokenCatalog renders the catalog as one spoken list, with "aur" before
// the final entry.
func spokenCatalog() string {
	n := len(Catalog)
	return strings.Join(Catalog[:n-1], ", ") + ", aur " + Catalog[n-1]
}
