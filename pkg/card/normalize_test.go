package card

import "testing"

func TestSanitizeColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "#fallback"},
		{"fff", "#fff"},
		{"#0CF709", "#0CF709"},
		{"0d1117cc", "#0d1117cc"},
		{"Red", "red"},
		{"transparent", "transparent"},
		{"#12345", "#fallback"},
		{`red" onload="x`, "#fallback"},
		{"red;}", "#fallback"},
		{"url(#x)", "#fallback"},
	}
	for _, tt := range tests {
		if got := SanitizeColor(tt.in, "#fallback"); got != tt.want {
			t.Errorf("SanitizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	r := Normalize(Params{})
	if r.Kind != KindStats {
		t.Errorf("Kind = %s, want stats", r.Kind)
	}
	if r.Theme.Background != "#0d1117" || r.Theme.Primary != "#0CF709" || r.Theme.Secondary != "#00e1ff" ||
		r.Theme.Text != "#c9d1d9" || r.Theme.Border != "#0CF709" {
		t.Errorf("Theme = %+v, want neon", r.Theme)
	}
	if r.BorderRadius != DefaultBorderRadius {
		t.Errorf("BorderRadius = %d", r.BorderRadius)
	}
	if r.Padding != (Padding{25, 25, 25, 25}) {
		t.Errorf("Padding = %+v", r.Padding)
	}
	if !r.ShowBorder || !r.Animate || r.Animation != AnimFadeIn || r.Speed != SpeedNormal {
		t.Errorf("unexpected defaults: border=%v animate=%v kind=%s speed=%s", r.ShowBorder, r.Animate, r.Animation, r.Speed)
	}
	if r.Today.IsZero() {
		t.Error("Today should default to the wall clock")
	}
}

func TestNormalizeOverrides(t *testing.T) {
	zero, neg, off := 0, -4, false
	r := Normalize(Params{
		ThemeName:    "dracula",
		Theme:        Theme{Primary: "ff0000"},
		BorderRadius: &zero,
		Padding:      Sides{Top: &zero, Left: &neg},
		Animation:    Animation{Enabled: &off, Kind: "bounce"},
		Data: Data{
			Stats:    &Stats{TotalStars: -3, Followers: 9},
			Activity: make([]int, 45),
		},
	})
	if r.Theme.Primary != "#ff0000" || r.Theme.Background != "#282a36" {
		t.Errorf("Theme = %+v", r.Theme)
	}
	if r.BorderRadius != 0 {
		t.Errorf("explicit zero radius lost: %d", r.BorderRadius)
	}
	if r.Padding.Top != 0 || r.Padding.Left != DefaultPadding {
		t.Errorf("Padding = %+v", r.Padding)
	}
	if r.Animate || r.Animation != AnimNone {
		t.Errorf("animation should be disabled, got %s", r.Animation)
	}
	if r.Stats.TotalStars != 0 || r.Stats.Followers != 9 {
		t.Errorf("Stats = %+v", r.Stats)
	}
	if len(r.Activity) != ActivityDays {
		t.Errorf("Activity length = %d, want %d", len(r.Activity), ActivityDays)
	}
}

func TestNormalizeSortsDays(t *testing.T) {
	r := Normalize(Params{Data: Data{Streak: &Streak{Days: []Day{
		{Date: "2024-01-03", Count: 3},
		{Date: "2024-01-01", Count: 1},
		{Date: "2024-01-02", Count: -2},
	}}}})
	want := []Day{{"2024-01-01", 1}, {"2024-01-02", 0}, {"2024-01-03", 3}}
	for i, d := range r.Streak.Days {
		if d != want[i] {
			t.Errorf("Days[%d] = %+v, want %+v", i, d, want[i])
		}
	}
}
