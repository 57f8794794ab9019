// Package theme holds the named color palettes cards can be rendered with.
package theme

import (
	"sort"
	"strings"
)

// Palette is a five-color card theme.
type Palette struct {
	Background string `json:"background" toml:"background"`
	Primary    string `json:"primary" toml:"primary"`
	Secondary  string `json:"secondary" toml:"secondary"`
	Text       string `json:"text" toml:"text"`
	Border     string `json:"border" toml:"border"`
}

// DefaultName is the palette used when no theme, or an unknown one, is requested.
const DefaultName = "neon"

var presets = map[string]Palette{
	"neon":       {Background: "#0d1117", Primary: "#0CF709", Secondary: "#00e1ff", Text: "#c9d1d9", Border: "#0CF709"},
	"dark":       {Background: "#151515", Primary: "#fe428e", Secondary: "#a9fef7", Text: "#e4e2e2", Border: "#2b2b2b"},
	"light":      {Background: "#fffefe", Primary: "#2f80ed", Secondary: "#4c71f2", Text: "#434d58", Border: "#e4e2e2"},
	"dracula":    {Background: "#282a36", Primary: "#ff6e96", Secondary: "#79dafa", Text: "#f8f8f2", Border: "#bd93f9"},
	"radical":    {Background: "#141321", Primary: "#fe428e", Secondary: "#f8d847", Text: "#a9fef7", Border: "#fe428e"},
	"tokyonight": {Background: "#1a1b27", Primary: "#70a5fd", Secondary: "#bf91f3", Text: "#38bdae", Border: "#70a5fd"},
	"gruvbox":    {Background: "#282828", Primary: "#fabd2f", Secondary: "#fe8019", Text: "#8ec07c", Border: "#fabd2f"},
	"nord":       {Background: "#2e3440", Primary: "#81a1c1", Secondary: "#88c0d0", Text: "#d8dee9", Border: "#4c566a"},
	"ocean":      {Background: "#0b1d2e", Primary: "#2ec4b6", Secondary: "#3a86ff", Text: "#cbf3f0", Border: "#2ec4b6"},
	"sunset":     {Background: "#2d1b33", Primary: "#ff7b54", Secondary: "#ffb26b", Text: "#ffd56f", Border: "#ff7b54"},
	"monokai":    {Background: "#272822", Primary: "#eb1f6a", Secondary: "#e28905", Text: "#f1f1eb", Border: "#75715e"},
}

// Default returns the default palette.
func Default() Palette { return presets[DefaultName] }

// Lookup returns the palette registered under name (case-insensitive).
func Lookup(name string) (Palette, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Resolve returns the named palette, or the default when name is unknown.
func Resolve(name string) Palette {
	if p, ok := Lookup(name); ok {
		return p
	}
	return Default()
}

// Names returns all palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
