package topics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIDToName(t *testing.T) {
	lookup := Lookup{7: "Beauty", 0: "Zero", 12: "Travel"}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"numeric string", "7", "Beauty"},
		{"non numeric", "x", ""},
		{"empty", "", ""},
		{"leading space", "  12", "Travel"},
		{"trailing junk", "7abc", "Beauty"},
		{"plus sign", "+7", "Beauty"},
		{"sign only", "-", ""},
		{"zero id", "0", "Zero"},
		{"missing id", "99", ""},
		{"overflow", "99999999999999999999999", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDToName(tt.id, lookup); got != tt.want {
				t.Errorf("IDToName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}

	t.Run("int id", func(t *testing.T) {
		if got := IDToName(7, lookup); got != "Beauty" {
			t.Errorf("IDToName(7) = %q, want %q", got, "Beauty")
		}
		if got := IDToName(int64(12), lookup); got != "Travel" {
			t.Errorf("IDToName(int64(12)) = %q, want %q", got, "Travel")
		}
	})

	t.Run("nil lookup", func(t *testing.T) {
		if got := IDToName("7", nil); got != "" {
			t.Errorf("IDToName with nil lookup = %q, want empty", got)
		}
	})
}

func TestIDsToNames(t *testing.T) {
	lookup := Lookup{7: "Beauty", 3: "0", 5: ""}

	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{"drops unknown", []string{"7", "99"}, []string{"Beauty"}},
		{"keeps order", []string{"3", "7"}, []string{"0", "Beauty"}},
		{"keeps name zero", []string{"3"}, []string{"0"}},
		{"drops empty name", []string{"5", "7"}, []string{"Beauty"}},
		{"keeps duplicates", []string{"7", "7"}, []string{"Beauty", "Beauty"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDsToNames(tt.ids, lookup)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IDsToNames(%q) mismatch (-want +got):\n%s", tt.ids, diff)
			}
		})
	}
}

func TestNamesToIDs(t *testing.T) {
	miss := func(string) (int, bool) { return 0, false }
	category := func(name string) (int, bool) {
		if name == "Beauty" {
			return 70, true
		}
		return 0, false
	}
	general := map[string]int{"Beauty": 7, "Travel": 12}

	tests := []struct {
		name     string
		names    []string
		category CategoryResolver
		want     []int
	}{
		{"general fallback", []string{"Beauty"}, miss, []int{7}},
		{"category wins", []string{"Beauty", "Travel"}, category, []int{70, 12}},
		{"nil category", []string{"Travel"}, nil, []int{12}},
		{"drops unknown", []string{"Cooking", "Travel"}, miss, []int{12}},
		{"keeps duplicates", []string{"Travel", "Travel"}, nil, []int{12, 12}},
		{"empty", nil, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NamesToIDs(tt.names, tt.category, general)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NamesToIDs(%q) mismatch (-want +got):\n%s", tt.names, diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	lookup := Lookup{1: "Beauty", 2: "Travel", 40: "Food", 41: "0"}
	inverted := Invert(lookup)
	miss := func(string) (int, bool) { return 0, false }

	for id := range lookup {
		got := NamesToIDs([]string{IDToName(id, lookup)}, miss, inverted)
		if diff := cmp.Diff([]int{id}, got); diff != "" {
			t.Errorf("round trip of %d mismatch (-want +got):\n%s", id, diff)
		}
	}
}

func TestInvert(t *testing.T) {
	got := Invert(Lookup{3: "Beauty", 1: "Beauty", 2: "Travel"})
	want := map[string]int{"Beauty": 1, "Travel": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Invert() mismatch (-want +got):\n%s", diff)
	}
}
