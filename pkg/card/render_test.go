package card

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

var refTime = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

func fullDays(n int, count int) []Day {
	start := refTime.AddDate(0, 0, -n+1)
	days := make([]Day, n)
	for i := range days {
		days[i] = Day{Date: start.AddDate(0, 0, i).Format(isoDate), Count: count}
	}
	return days
}

func TestRenderDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			p := Params{
				Type:     k,
				Username: "octocat",
				Now:      refTime,
				Demo:     true,
				Data: Data{
					Stats:     &Stats{TotalStars: 42},
					Languages: []Language{{Name: "Go", Percentage: 60}},
					Streak:    &Streak{Current: 3, Longest: 9, Total: 120},
				},
			}
			if a, b := Render(p), Render(p); a != b {
				t.Errorf("Render() not deterministic for %s", k)
			}
		})
	}
}

func TestStatsDefaultsToZero(t *testing.T) {
	out := Render(Params{Type: KindStats})
	if got := strings.Count(out, `class="value">0</text>`); got != 4 {
		t.Errorf("zero stat values = %d, want 4\n%s", got, out)
	}
	if !strings.Contains(out, ">GitHub Stats</text>") {
		t.Error("anonymous stats card should be titled GitHub Stats")
	}
}

func TestOctocatStats(t *testing.T) {
	out := Render(Params{
		Type:     KindStats,
		Username: "octocat",
		Data:     Data{Stats: &Stats{TotalStars: 12345, PublicRepos: 8, Followers: 1500, TotalForks: 999}},
	})
	for _, want := range []string{"octocat's GitHub Stats", ">12.3K<", ">8<", ">1.5K<", ">999<"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="495" height="195" viewBox="0 0 495 195"`) {
		t.Errorf("unexpected root element: %.120s", out)
	}
}

func TestUnknownTypeRendersAsStats(t *testing.T) {
	data := Data{Stats: &Stats{TotalStars: 7, Followers: 3}}
	bogus := Render(Params{Type: "bogus", Username: "x", Data: data})
	stats := Render(Params{Type: KindStats, Username: "x", Data: data})
	if bogus != stats {
		t.Error("unknown type should render exactly like stats")
	}
}

func TestDefaultSizes(t *testing.T) {
	tests := []struct {
		kind Kind
		w, h int
	}{
		{KindLanguages, 300, 300},
		{KindContribution, 620, 300},
		{KindStats, 495, 195},
		{KindStreak, 495, 195},
		{KindActivity, 495, 195},
		{KindQuote, 495, 195},
		{KindCustom, 495, 195},
		{KindBanner, 495, 195},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			out := Render(Params{Type: tt.kind, Now: refTime})
			want := fmt.Sprintf(`width="%d" height="%d" viewBox="0 0 %d %d"`, tt.w, tt.h, tt.w, tt.h)
			if !strings.Contains(out, want) {
				t.Errorf("missing %s", want)
			}
		})
	}

	out := Render(Params{Type: KindLanguages, Width: 400})
	if !strings.Contains(out, `width="400" height="300"`) {
		t.Error("explicit width should override the default")
	}
}

func TestEscapesUserInput(t *testing.T) {
	out := Render(Params{
		Type:     KindStats,
		Username: `<script>alert("x")</script>`,
		Theme:    Theme{Primary: `red;}</style><script>`},
	})
	if strings.Contains(out, "<script>") {
		t.Fatal("username was not escaped")
	}
	if strings.Contains(out, "red;}") {
		t.Error("malformed color should be replaced")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped username missing")
	}
}

func TestRenderWellFormedWithControlCharacters(t *testing.T) {
	hostile := "a\x00b\x01c\x0bd \xff<&>\"'"
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			out := Render(Params{
				Type:              k,
				Username:          hostile,
				CustomText:        hostile,
				BannerName:        hostile,
				BannerDescription: hostile,
				Now:               refTime,
				Data: Data{
					Stats:     &Stats{TotalStars: 1},
					Languages: []Language{{Name: hostile, Percentage: 50}},
					Streak:    &Streak{Current: 1, Days: fullDays(7, 1)},
					Activity:  []int{1, 2, 3},
					Quote:     &Quote{Quote: hostile, Author: hostile},
				},
			})
			d := xml.NewDecoder(strings.NewReader(out))
			for {
				_, err := d.Token()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("output is not well-formed XML: %v", err)
				}
			}
		})
	}
}

func TestLanguagesLargePadding(t *testing.T) {
	pad := 500
	out := Render(Params{
		Type:    KindLanguages,
		Padding: Sides{Top: &pad, Bottom: &pad},
		Data:    Data{Languages: []Language{{Name: "Go", Percentage: 60}, {Name: "Rust", Percentage: 40}}},
	})
	for _, bad := range []string{`height="-`, `rx="-`, `r="-`} {
		if strings.Contains(out, bad) {
			t.Errorf("output contains negative geometry %s", bad)
		}
	}
}

func TestLanguagesBars(t *testing.T) {
	out := Render(Params{
		Type: KindLanguages,
		Data: Data{Languages: []Language{{Name: "Go", Percentage: 50}, {Name: "Python", Percentage: 25}}},
	})
	for _, want := range []string{`width="72.5"`, `>GO<`, `>PY<`, `>50.0%<`, `>25.0%<`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}

	var many []Language
	for i := range 8 {
		many = append(many, Language{Name: fmt.Sprintf("Lang%d", i), Percentage: float64(10 - i)})
	}
	out = Render(Params{Type: KindLanguages, Data: Data{Languages: many}})
	if got := strings.Count(out, `class="lang-name"`); got != MaxLanguages {
		t.Errorf("rendered %d language rows, want %d", got, MaxLanguages)
	}

	if !strings.Contains(Render(Params{Type: KindLanguages}), "No language data") {
		t.Error("empty languages card should say so")
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		pct, top, want float64
	}{
		{50, 50, 145},
		{25, 50, 72.5},
		{35, 35, 145},
		{10, 20, 10.0 / 35 * 145},
		{0, 50, 20},
		{1, 90, 20},
	}
	for _, tt := range tests {
		if got := BarWidth(tt.pct, tt.top); got != tt.want {
			t.Errorf("BarWidth(%v, %v) = %v, want %v", tt.pct, tt.top, got, tt.want)
		}
	}
}

func TestStreakRanges(t *testing.T) {
	out := Render(Params{
		Type: KindStreak,
		Now:  refTime,
		Data: Data{Streak: &Streak{
			Current:            5,
			Longest:            30,
			Total:              1234,
			StartDate:          "2024-03-10",
			LongestStreakStart: "2024-01-01",
		}},
	})
	for _, want := range []string{"Mar 10 - Mar 14", "Jan 1 - Present", ">1.2K<", ">30<", "Current Streak", `mask="url(#ring-mask)"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out = Render(Params{Type: KindStreak, Now: refTime})
	if !strings.Contains(out, ">Mar 14<") {
		t.Error("zero streak should show today's date")
	}
	if !strings.Contains(out, "All time") {
		t.Error("missing calendar should read All time")
	}
}

func TestContributionGrid(t *testing.T) {
	out := Render(Params{Type: KindContribution, Data: Data{Streak: &Streak{Days: fullDays(calendarDays, 2)}}})
	if got := strings.Count(out, `class="cell"`); got != calendarDays {
		t.Errorf("cells = %d, want %d", got, calendarDays)
	}
	if !strings.Contains(out, "animation-delay: 1.04s") {
		t.Error("last column should be delayed 52 × 0.02s")
	}
	if strings.Contains(out, demoLabel) {
		t.Error("real data must not be labeled as demo")
	}
	if !strings.Contains(out, "742 contributions") {
		t.Error("total should sum the calendar")
	}
}

func TestDemoMode(t *testing.T) {
	for _, k := range []Kind{KindContribution, KindActivity} {
		t.Run(string(k), func(t *testing.T) {
			plain := Render(Params{Type: k, Username: "octocat"})
			if strings.Contains(plain, demoLabel) {
				t.Error("demo label without demo mode")
			}
			demo := Render(Params{Type: k, Username: "octocat", Demo: true})
			if !strings.Contains(demo, demoLabel) {
				t.Error("demo mode should label the card")
			}
			if demo != Render(Params{Type: k, Username: "octocat", Demo: true}) {
				t.Error("demo fill should be seeded by username")
			}
		})
	}
}

func TestTier(t *testing.T) {
	want := map[int]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 3, 6: 3, 7: 4, 50: 4}
	for in, w := range want {
		if got := tier(in); got != w {
			t.Errorf("tier(%d) = %d, want %d", in, got, w)
		}
	}
}

func TestActivityTiers(t *testing.T) {
	tests := []struct{ v, peak, want int }{
		{10, 10, 2},
		{7, 10, 2},
		{6, 10, 1},
		{4, 10, 1},
		{3, 10, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := activityTier(tt.v, tt.peak); got != tt.want {
			t.Errorf("activityTier(%d, %d) = %d, want %d", tt.v, tt.peak, got, tt.want)
		}
	}

	out := Render(Params{Type: KindActivity, Data: Data{Activity: []int{1, 2, 3}}})
	if got := strings.Count(out, `class="bar"`); got != 3 {
		t.Errorf("bars = %d, want 3", got)
	}
}

func TestQuoteCard(t *testing.T) {
	out := Render(Params{Type: KindQuote})
	if !strings.Contains(out, DefaultQuote) || !strings.Contains(out, DefaultAuthor) {
		t.Error("quote card should fall back to the default quote")
	}

	out = Render(Params{Type: KindQuote, Data: Data{Quote: &Quote{Quote: "Talk is cheap. Show me the code.", Author: "Linus Torvalds"}}})
	if !strings.Contains(out, "Talk is cheap. Show me the code.") || !strings.Contains(out, "Linus Torvalds") {
		t.Error("quote missing from output")
	}
}

func TestCustomCard(t *testing.T) {
	out := Render(Params{Type: KindCustom, CustomText: "Ship it & smile"})
	if !strings.Contains(out, "Ship it &amp; smile") {
		t.Error("custom text missing or unescaped")
	}
}

func TestBannerAnimation(t *testing.T) {
	out := Render(Params{Type: KindBanner, BannerName: "Ada", WaveStyle: "glitch"})
	if got := strings.Count(out, `<animate attributeName="d"`); got != 2 {
		t.Fatalf("animate elements = %d, want 2", got)
	}
	if !strings.Contains(out, `dur="6s" begin="0s"`) || !strings.Contains(out, `dur="6s" begin="3s"`) {
		t.Error("second layer should begin at half the cycle")
	}

	slow := Render(Params{Type: KindBanner, Animation: Animation{Speed: "slow"}})
	if !strings.Contains(slow, `dur="12s" begin="6s"`) {
		t.Error("slow speed should double the wave cycle")
	}

	off := false
	static := Render(Params{Type: KindBanner, Animation: Animation{Enabled: &off}})
	if strings.Contains(static, "<animate") || strings.Contains(static, "@keyframes") {
		t.Error("disabled animation should produce a static banner")
	}
}

func TestWaveKeyframesMatch(t *testing.T) {
	for style, shape := range waveShapes {
		var cmds string
		for i, amps := range shape.frames {
			path := wavePath(495, 195, 130, amps, shape.smooth)
			shapeOf := strings.Map(func(r rune) rune {
				if strings.ContainsRune("MCLZ", r) {
					return r
				}
				return -1
			}, path)
			if i == 0 {
				cmds = shapeOf
			} else if shapeOf != cmds {
				t.Errorf("%s frame %d has commands %q, want %q", style, i, shapeOf, cmds)
			}
		}
	}
}

func TestGradientBackground(t *testing.T) {
	out := Render(Params{Gradient: Gradient{Enabled: true, Type: "radial", Start: "000", End: "fff"}})
	for _, want := range []string{"<radialGradient", `fill="url(#bg-gradient)"`, `stop-color="#000"`, `stop-color="#fff"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Contains(Render(Params{}), "bg-gradient") {
		t.Error("gradient emitted while disabled")
	}
}

func TestBorderToggle(t *testing.T) {
	off := false
	if strings.Contains(Render(Params{ShowBorder: &off}), "stroke-opacity=\"1\"") {
		t.Error("border drawn while disabled")
	}
	if !strings.Contains(Render(Params{}), `stroke="#0CF709" stroke-opacity="1"`) {
		t.Error("default border missing")
	}
}

func TestDataURL(t *testing.T) {
	doc := Render(Params{})
	u := DataURL(doc)
	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(u, prefix) {
		t.Fatalf("DataURL() prefix = %.30s", u)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != doc {
		t.Error("decoded data URL differs from document")
	}
}
