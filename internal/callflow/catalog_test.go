package callflow

import (
	"reflect"
	"strings"
	"testing"
)

func TestMatchServicesByName(t *testing.T) {
	got := MatchServices("tire rotation")
	want := []string{"Tire rotation"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchServices(tire rotation) = %v, want %v", got, want)
	}
}

func TestMatchServicesByPosition(t *testing.T) {
	got := MatchServices("number 5")
	want := []string{"Bike wash"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchServices(number 5) = %v, want %v", got, want)
	}
}

func TestMatchServicesSharedWord(t *testing.T) {
	// "filter" appears in two catalog entries; both match.
	got := MatchServices("filter please")
	want := []string{"Air filter replacement", "Oil filter change"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchServices(filter please) = %v, want %v", got, want)
	}
}

func TestMatchServicesDeduplicates(t *testing.T) {
	// Both words of the name appear; the entry is still reported once.
	got := MatchServices("bike wash, haan bike wash")
	want := []string{"Bike wash"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchServices = %v, want %v", got, want)
	}
}

func TestMatchServicesNoMatch(t *testing.T) {
	if got := MatchServices("something random"); got != nil {
		t.Errorf("MatchServices(something random) = %v, want nil", got)
	}
	if got := MatchServices(""); got != nil {
		t.Errorf("MatchServices(empty) = %v, want nil", got)
	}
}

func TestMatchesNegative(t *testing.T) {
	tests := []struct {
		transcript string
		want       bool
	}{
		{"nahi", true},
		{"kuch nahi chahiye", true},
		{"nothing else", true},
		{"no", true},
		{"tire rotation", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := matchesNegative(tt.transcript); got != tt.want {
			t.Errorf("matchesNegative(%q) = %v, want %v", tt.transcript, got, tt.want)
		}
	}
}

func TestSpokenCatalog(t *testing.T) {
	spoken := spokenCatalog()

	for _, name := range Catalog {
		if !strings.Contains(spoken, name) {
			t.Errorf("spoken catalog missing %q", name)
		}
	}
	if !strings.HasSuffix(spoken, "aur Brake pad inspection") {
		t.Errorf("spoken catalog does not close with aur + last entry: %q", spoken)
	}
}
