package matrix

import (
	"errors"
	"testing"
)

func TestResolveAlias(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		listing   string
		want      string
	}{
		{
			name:      "absent from listing resolves to itself",
			requested: "3.2.9",
			listing:   "latest => 3.3.0\n",
			want:      "3.2.9",
		},
		{
			name:      "empty listing resolves to itself",
			requested: "3.2.9",
			listing:   "",
			want:      "3.2.9",
		},
		{
			name:      "single hop",
			requested: "latest",
			listing:   "latest => 3.3.0\n",
			want:      "3.3.0",
		},
		{
			name:      "chain followed to terminal name",
			requested: "latest",
			listing:   "latest => stable\nstable => 3.2.9\n",
			want:      "3.2.9",
		},
		{
			name:      "direct self-reference terminates",
			requested: "stable",
			listing:   "stable => stable\n",
			want:      "stable",
		},
		{
			name:      "chain back to requested terminates",
			requested: "a",
			listing:   "a => b\nb => a\n",
			want:      "a",
		},
		{
			name:      "later duplicate overwrites earlier",
			requested: "latest",
			listing:   "latest => 3.2.0\nlatest => 3.3.0\n",
			want:      "3.3.0",
		},
		{
			name:      "non-matching lines ignored",
			requested: "latest",
			listing:   "Warning: something\n\nlatest => 3.3.0\ntrailing junk line\n",
			want:      "3.3.0",
		},
		{
			name:      "whitespace around entries tolerated",
			requested: "latest",
			listing:   "   latest   =>   3.3.0   \n",
			want:      "3.3.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAlias(tt.requested, tt.listing)
			if err != nil {
				t.Fatalf("ResolveAlias(%q) error: %v", tt.requested, err)
			}
			if got != tt.want {
				t.Errorf("ResolveAlias(%q) = %q, want %q", tt.requested, got, tt.want)
			}
		})
	}
}

func TestResolveAliasCycle(t *testing.T) {
	// b/c form a cycle that never reaches the requested name, so neither
	// termination rule applies. The iteration bound must turn this into an
	// error rather than a hang.
	_, err := ResolveAlias("a", "a => b\nb => c\nc => b\n")
	if !errors.Is(err, ErrAliasCycle) {
		t.Fatalf("expected ErrAliasCycle, got %v", err)
	}
}
