package card

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/statcard/pkg/theme"
)

// Defaults applied by Normalize.
const (
	DefaultBorderRadius = 12
	DefaultPadding      = 25
	DefaultCustomText   = "Hello, World!"
	DefaultQuote        = "Code is poetry."
	DefaultAuthor       = "Anonymous"
	DefaultBannerName   = "Your Name"
	DefaultBannerDesc   = "Developer"

	// MaxLanguages is the number of language rows drawn.
	MaxLanguages = 6
	// ActivityDays is the nominal width of the activity chart in bars.
	ActivityDays = 30
)

// DefaultSize returns the width and height used when a request leaves them unset.
func DefaultSize(k Kind) (width, height int) {
	switch k {
	case KindLanguages:
		return 300, 300
	case KindContribution:
		return 620, 300
	default:
		return 495, 195
	}
}

// Padding is resolved per-side padding in pixels.
type Padding struct {
	Top, Right, Bottom, Left int
}

// Resolved is a fully defaulted parameter set. Builders read only from Resolved.
type Resolved struct {
	Kind     Kind
	Username string
	Theme    Theme

	Width, Height int
	BorderRadius  int
	Padding       Padding
	ShowBorder    bool

	Animate   bool
	Animation AnimationKind
	Speed     Speed
	Gradient  Gradient

	Stats     Stats
	Languages []Language
	Streak    Streak
	Activity  []int
	Quote     Quote

	CustomText        string
	BannerName        string
	BannerDescription string
	Wave              WaveStyle

	Demo  bool
	Today time.Time
}

var (
	hexColor   = regexp.MustCompile(`^#?([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,24}$`)
)

// SanitizeColor returns v as a CSS color when it is a hex color (the leading
// '#' may be omitted) or a color keyword, and fallback otherwise.
func SanitizeColor(v, fallback string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return fallback
	case hexColor.MatchString(v):
		if !strings.HasPrefix(v, "#") {
			v = "#" + v
		}
		return v
	case namedColor.MatchString(v):
		return strings.ToLower(v)
	default:
		return fallback
	}
}

// Normalize merges p over the defaults. It never fails.
func Normalize(p Params) Resolved {
	kind := ParseKind(string(p.Type))
	base := theme.Resolve(p.ThemeName)

	r := Resolved{
		Kind:     kind,
		Username: strings.TrimSpace(p.Username),
		Theme: Theme{
			Background: SanitizeColor(p.Theme.Background, base.Background),
			Primary:    SanitizeColor(p.Theme.Primary, base.Primary),
			Secondary:  SanitizeColor(p.Theme.Secondary, base.Secondary),
			Text:       SanitizeColor(p.Theme.Text, base.Text),
			Border:     SanitizeColor(p.Theme.Border, base.Border),
		},
		BorderRadius: nonNegative(p.BorderRadius, DefaultBorderRadius),
		Padding: Padding{
			Top:    nonNegative(p.Padding.Top, DefaultPadding),
			Right:  nonNegative(p.Padding.Right, DefaultPadding),
			Bottom: nonNegative(p.Padding.Bottom, DefaultPadding),
			Left:   nonNegative(p.Padding.Left, DefaultPadding),
		},
		ShowBorder: p.ShowBorder == nil || *p.ShowBorder,
		Animation:  ParseAnimationKind(p.Animation.Kind),
		Speed:      ParseSpeed(p.Animation.Speed),
		Demo:       p.Demo,
		Today:      p.Now,
	}

	r.Width, r.Height = DefaultSize(kind)
	if p.Width > 0 {
		r.Width = p.Width
	}
	if p.Height > 0 {
		r.Height = p.Height
	}

	r.Animate = (p.Animation.Enabled == nil || *p.Animation.Enabled) && r.Animation != AnimNone
	if !r.Animate {
		r.Animation = AnimNone
	}

	r.Gradient = normalizeGradient(p.Gradient, r.Theme)
	r.Stats = normalizeStats(p.Data.Stats)
	r.Languages = normalizeLanguages(p.Data.Languages)
	r.Streak = normalizeStreak(p.Data.Streak)
	r.Activity = normalizeActivity(p.Data.Activity)
	r.Quote = normalizeQuote(p.Data.Quote)

	r.CustomText = orDefault(p.CustomText, DefaultCustomText)
	r.BannerName = orDefault(p.BannerName, orDefault(r.Username, DefaultBannerName))
	r.BannerDescription = orDefault(p.BannerDescription, DefaultBannerDesc)
	r.Wave = ParseWaveStyle(p.WaveStyle)

	if r.Today.IsZero() {
		r.Today = time.Now()
	}
	return r
}

func nonNegative(v *int, def int) int {
	if v == nil || *v < 0 {
		return def
	}
	return *v
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func normalizeGradient(g Gradient, th Theme) Gradient {
	out := Gradient{
		Enabled: g.Enabled,
		Type:    "linear",
		Angle:   ((g.Angle % 360) + 360) % 360,
		Start:   SanitizeColor(g.Start, th.Background),
		End:     SanitizeColor(g.End, th.Secondary),
	}
	if strings.EqualFold(g.Type, "radial") {
		out.Type = "radial"
	}
	return out
}

func normalizeStats(s *Stats) Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		TotalStars:  max(s.TotalStars, 0),
		TotalForks:  max(s.TotalForks, 0),
		PublicRepos: max(s.PublicRepos, 0),
		Followers:   max(s.Followers, 0),
		Following:   max(s.Following, 0),
	}
}

func normalizeLanguages(in []Language) []Language {
	out := make([]Language, 0, min(len(in), MaxLanguages))
	for _, l := range in {
		if len(out) == MaxLanguages {
			break
		}
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		out = append(out, Language{
			Name:       name,
			Percentage: min(max(l.Percentage, 0), 100),
			Color:      SanitizeColor(l.Color, ""),
		})
	}
	return out
}

func normalizeStreak(s *Streak) Streak {
	if s == nil {
		return Streak{}
	}
	out := *s
	out.Current = max(out.Current, 0)
	out.Longest = max(out.Longest, 0)
	out.Total = max(out.Total, 0)
	out.Days = make([]Day, len(s.Days))
	for i, d := range s.Days {
		out.Days[i] = Day{Date: d.Date, Count: max(d.Count, 0)}
	}
	sort.SliceStable(out.Days, func(i, j int) bool { return out.Days[i].Date < out.Days[j].Date })
	return out
}

func normalizeActivity(in []int) []int {
	if len(in) > ActivityDays {
		in = in[len(in)-ActivityDays:]
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = max(v, 0)
	}
	return out
}

func normalizeQuote(q *Quote) Quote {
	if q == nil || strings.TrimSpace(q.Quote) == "" {
		return Quote{Quote: DefaultQuote, Author: DefaultAuthor}
	}
	return Quote{Quote: strings.TrimSpace(q.Quote), Author: orDefault(q.Author, DefaultAuthor)}
}
