package card

import (
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	q, _ := url.ParseQuery("type=languages&user=octocat&theme=dracula&primary=ff0000&padding=10&paddingTop=5" +
		"&animate=false&speed=fast&width=abc&demo=1&gradient=true&gradientType=radial&quote=Hi&author=Me")
	p := ParseQuery(q)
	r := Normalize(p)

	if r.Kind != KindLanguages || r.Username != "octocat" {
		t.Errorf("Kind/Username = %s/%s", r.Kind, r.Username)
	}
	if r.Theme.Primary != "#ff0000" || r.Theme.Background != "#282a36" {
		t.Errorf("Theme = %+v", r.Theme)
	}
	if r.Padding != (Padding{Top: 5, Right: 10, Bottom: 10, Left: 10}) {
		t.Errorf("Padding = %+v", r.Padding)
	}
	if r.Animate || r.Speed != SpeedFast {
		t.Errorf("Animate=%v Speed=%s", r.Animate, r.Speed)
	}
	if r.Width != 300 {
		t.Errorf("malformed width should fall back, got %d", r.Width)
	}
	if !r.Demo || !r.Gradient.Enabled || r.Gradient.Type != "radial" {
		t.Errorf("Demo=%v Gradient=%+v", r.Demo, r.Gradient)
	}
	if r.Quote != (Quote{Quote: "Hi", Author: "Me"}) {
		t.Errorf("Quote = %+v", r.Quote)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	radius, on := 4, true
	in := Params{
		Type:         KindBanner,
		Username:     "octocat",
		ThemeName:    "nord",
		Width:        800,
		BorderRadius: &radius,
		ShowBorder:   &on,
		Animation:    Animation{Kind: "glow", Speed: "slow"},
		BannerName:   "Octo Cat",
		WaveStyle:    "flow",
	}
	out := ParseQuery(in.Query())
	a, b := Normalize(in), Normalize(out)
	a.Today, b.Today = refTime, refTime
	if a.Kind != b.Kind || a.Theme != b.Theme || a.Width != b.Width || a.BorderRadius != b.BorderRadius ||
		a.Animation != b.Animation || a.Speed != b.Speed || a.BannerName != b.BannerName || a.Wave != b.Wave {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", a, b)
	}
}
