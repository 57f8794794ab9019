package card

import (
	"time"

	"github.com/matzehuels/statcard/pkg/theme"
)

// Kind identifies a card layout.
type Kind string

const (
	KindStats        Kind = "stats"
	KindLanguages    Kind = "languages"
	KindStreak       Kind = "streak"
	KindActivity     Kind = "activity"
	KindQuote        Kind = "quote"
	KindCustom       Kind = "custom"
	KindBanner       Kind = "banner"
	KindContribution Kind = "contribution"
)

// Kinds returns every supported card kind.
func Kinds() []Kind {
	return []Kind{KindStats, KindLanguages, KindStreak, KindActivity, KindContribution, KindQuote, KindCustom, KindBanner}
}

// ParseKind maps s to a Kind. Unknown or empty values map to KindStats.
func ParseKind(s string) Kind {
	k := Kind(s)
	if _, ok := builders[k]; ok {
		return k
	}
	return KindStats
}

// NeedsProfile reports whether cards of this kind draw on GitHub profile data.
func (k Kind) NeedsProfile() bool {
	switch k {
	case KindStats, KindLanguages, KindStreak, KindActivity, KindContribution:
		return true
	}
	return false
}

// Theme is the card color palette. Empty fields fall back to the selected preset.
type Theme = theme.Palette

// Sides holds optional per-side padding.
type Sides struct {
	Top    *int `json:"top,omitempty"`
	Right  *int `json:"right,omitempty"`
	Bottom *int `json:"bottom,omitempty"`
	Left   *int `json:"left,omitempty"`
}

// Animation selects the entrance animation.
type Animation struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Speed   string `json:"speed,omitempty"`
}

// Gradient configures an optional background gradient.
type Gradient struct {
	Enabled bool   `json:"enabled,omitempty"`
	Type    string `json:"type,omitempty"`
	Angle   int    `json:"angle,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

// Stats is the payload of the stats card.
type Stats struct {
	TotalStars  int `json:"totalStars"`
	TotalForks  int `json:"totalForks"`
	PublicRepos int `json:"publicRepos"`
	Followers   int `json:"followers"`
	Following   int `json:"following"`
}

// Language is one entry of the languages card. Percentages need not sum to 100.
type Language struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color,omitempty"`
}

// Day is the contribution count of a single calendar day.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Streak is the payload of the streak and contribution cards. Dates use
// YYYY-MM-DD; an empty end date means the streak is ongoing.
type Streak struct {
	Current            int    `json:"current"`
	Longest            int    `json:"longest"`
	Total              int    `json:"total"`
	StartDate          string `json:"startDate,omitempty"`
	LongestStreakStart string `json:"longestStreakStart,omitempty"`
	LongestStreakEnd   string `json:"longestStreakEnd,omitempty"`
	Days               []Day  `json:"days,omitempty"`
}

// Quote is the payload of the quote card.
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// Data bundles every payload a card may draw from.
type Data struct {
	Stats     *Stats     `json:"stats,omitempty"`
	Languages []Language `json:"languages,omitempty"`
	Streak    *Streak    `json:"streak,omitempty"`
	Activity  []int      `json:"activity,omitempty"`
	Quote     *Quote     `json:"quote,omitempty"`
}

// Empty reports whether no payload is set.
func (d Data) Empty() bool {
	return d.Stats == nil && len(d.Languages) == 0 && d.Streak == nil && len(d.Activity) == 0 && d.Quote == nil
}

// Params is the caller-facing render request. Zero values mean "use the default".
type Params struct {
	Type      Kind   `json:"type,omitempty"`
	Username  string `json:"username,omitempty"`
	ThemeName string `json:"themeName,omitempty"`
	Theme     Theme  `json:"theme"`

	Width        int   `json:"width,omitempty"`
	Height       int   `json:"height,omitempty"`
	BorderRadius *int  `json:"borderRadius,omitempty"`
	Padding      Sides `json:"padding"`
	ShowBorder   *bool `json:"showBorder,omitempty"`

	Animation Animation `json:"animation"`
	Gradient  Gradient  `json:"gradient"`
	Data      Data      `json:"data"`

	CustomText        string `json:"customText,omitempty"`
	BannerName        string `json:"bannerName,omitempty"`
	BannerDescription string `json:"bannerDescription,omitempty"`
	WaveStyle         string `json:"waveStyle,omitempty"`

	// Demo enables the seeded synthetic fill for missing calendar and activity data.
	Demo bool `json:"demo,omitempty"`

	// Now is the reference time for the streak "today" label. Zero means time.Now().
	Now time.Time `json:"-"`
}
