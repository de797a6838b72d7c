package domain

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "simple", input: "1.2.3", want: Version{1, 2, 3}},
		{name: "zeros", input: "0.0.0", want: Version{0, 0, 0}},
		{name: "multi digit", input: "10.20.30", want: Version{10, 20, 30}},
		{name: "surrounding whitespace", input: " 1.2.3 ", want: Version{1, 2, 3}},
		{name: "missing patch", input: "1.2", wantErr: true},
		{name: "extra segment", input: "1.2.3.4", wantErr: true},
		{name: "v prefix", input: "v1.2.3", wantErr: true},
		{name: "prerelease suffix", input: "1.2.3-rc1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a version", input: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionBump(t *testing.T) {
	tests := []struct {
		name  string
		from  Version
		level BumpLevel
		want  Version
	}{
		{name: "patch increments patch only", from: Version{1, 2, 3}, level: BumpPatch, want: Version{1, 2, 4}},
		{name: "minor resets patch", from: Version{1, 2, 3}, level: BumpMinor, want: Version{1, 3, 0}},
		{name: "major resets minor and patch", from: Version{1, 2, 3}, level: BumpMajor, want: Version{2, 0, 0}},
		{name: "patch from zero", from: Version{0, 0, 0}, level: BumpPatch, want: Version{0, 0, 1}},
		{name: "major from zero", from: Version{0, 9, 9}, level: BumpMajor, want: Version{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Bump(tt.level); got != tt.want {
				t.Errorf("%v.Bump(%v) = %v, want %v", tt.from, tt.level, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 2, 3}, Version{1, 2, 3}, 0},
		{Version{1, 2, 3}, Version{1, 2, 4}, -1},
		{Version{1, 3, 0}, Version{1, 2, 9}, 1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		// Numeric, not string order: 1.10.0 > 1.9.0.
		{Version{1, 10, 0}, Version{1, 9, 0}, 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHighestBump(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   BumpLevel
	}{
		{name: "no labels defaults to patch", labels: nil, want: BumpPatch},
		{name: "unrelated labels default to patch", labels: []string{"bug", "docs"}, want: BumpPatch},
		{name: "minor label", labels: []string{"bug", "minor"}, want: BumpMinor},
		{name: "major wins over minor", labels: []string{"minor", "major"}, want: BumpMajor},
		{name: "explicit patch", labels: []string{"patch"}, want: BumpPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighestBump(tt.labels); got != tt.want {
				t.Errorf("HighestBump(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}
