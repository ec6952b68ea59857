package pets

import (
	"testing"
	"time"
)

func TestPet_Age(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth string
		want  string
	}{
		{"15/06/2023", "3 years"},
		{"16/06/2025", "11 months"},
		{"15/06/2025", "1 year"},
		{"01/05/2026", "1 month"},
		{"10/06/2026", "0 months"},
		{"01/01/2030", ""},
		{"31/02/2024", ""},
		{"garbage", ""},
	}
	for _, c := range cases {
		if got := (Pet{BirthDate: c.birth}).Age(now); got != c.want {
			t.Fatalf("Age(%s) = %q, want %q", c.birth, got, c.want)
		}
	}
}

func TestPet_OwnedBy(t *testing.T) {
	p := Pet{OwnerUserID: 7}
	if !p.OwnedBy(7) || p.OwnedBy(8) || (Pet{}).OwnedBy(0) {
		t.Fatalf("unexpected ownership result")
	}
}

func TestParsePage(t *testing.T) {
	for raw, want := range map[string]int{"": 1, "abc": 1, "0": 1, "-4": 1, "3": 3, " 2 ": 2} {
		if got := ParsePage(raw); got != want {
			t.Fatalf("ParsePage(%q)=%d want %d", raw, got, want)
		}
	}
}
