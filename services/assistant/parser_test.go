package assistant

import "testing"

func TestParseItemLine(t *testing.T) {
	cases := []struct {
		line  string
		token string
		qty   int
		ok    bool
	}{
		{"MTR-1001 x 5", "MTR-1001", 5, true},
		{"cable-12 x 10", "cable-12", 10, true},
		{"no numbers here", "", 0, false},
		{"cement 20", "cement", 20, true},
		{"steel bolt 20", "steel bolt", 20, true},
		{"bolt x5", "bolt", 5, true},
		{"bolt qty 7", "bolt", 7, true},
		{"bolt quantity 12", "bolt", 12, true},
		{"  cable-12 3  ", "cable-12", 3, true},

		// A digit run glued to the token is part of the id, not a quantity.
		{"cable-12", "", 0, false},
		{"bolt", "", 0, false},
		{"bolt 0", "", 0, false},
		{"20", "", 0, false},
		{"", "", 0, false},
	}

	for _, tc := range cases {
		token, qty, ok := parseItemLine(tc.line)
		if ok != tc.ok || token != tc.token || qty != tc.qty {
			t.Errorf("parseItemLine(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tc.line, token, qty, ok, tc.token, tc.qty, tc.ok)
		}
	}
}
