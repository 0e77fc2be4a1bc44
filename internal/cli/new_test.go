package cli

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first set", []string{"flag", "config", "default"}, "flag"},
		{"falls through to config", []string{"", "config", "default"}, "config"},
		{"falls through to default", []string{"", "", "default"}, "default"},
		{"all empty", []string{"", "", ""}, ""},
		{"no values", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
