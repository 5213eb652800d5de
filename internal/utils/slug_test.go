package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fire & Safety!!", "fire-safety"},
		{"Naval Architecture", "naval-architecture"},
		{"  Marine  /  Coastal  ", "marine-coastal"},
		{"--Already-Slugged--", "already-slugged"},
		{"CAD & 3D Modelling", "cad-3d-modelling"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
