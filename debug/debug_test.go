package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"junk", false},
		{"1", true},
		{"true", true},
		{"TRUE", true},
	}
	for _, tt := range tests {
		t.Run("val="+tt.val, func(t *testing.T) {
			t.Setenv("SCIM_DEBUG_TEST", tt.val)
			if got := boolEnv("SCIM_DEBUG_TEST"); got != tt.want {
				t.Errorf("boolEnv(%q) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestKnobs(t *testing.T) {
	// Knobs are latched at init; with no env set they all read false.
	if Parse() || Eval() || Resolve() || Patch() {
		t.Skip("debug env set in test environment")
	}
}
