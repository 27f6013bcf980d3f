package cli

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a long purpose description", 6, "a long..."},
		{"réduction des émissions de CO2", 11, "réduction d..."},
		{"温室効果ガス削減プロジェクト", 5, "温室効果ガ..."},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
