package card

import "strings"

type langStyle struct {
	badge    string
	from, to string
}

var defaultLangStyle = langStyle{from: "#8b949e", to: "#484f58"}

var langStyles = map[string]langStyle{
	"javascript":       {"JS", "#f7df1e", "#f0a30a"},
	"typescript":       {"TS", "#3178c6", "#235a97"},
	"python":           {"PY", "#3776ab", "#ffd43b"},
	"go":               {"GO", "#00add8", "#007d9c"},
	"rust":             {"RS", "#dea584", "#b7410e"},
	"java":             {"JV", "#b07219", "#e76f00"},
	"kotlin":           {"KT", "#a97bff", "#7f52ff"},
	"c":                {"C", "#555555", "#a8b9cc"},
	"c++":              {"C+", "#f34b7d", "#00599c"},
	"c#":               {"C#", "#178600", "#68217a"},
	"ruby":             {"RB", "#cc342d", "#701516"},
	"php":              {"PH", "#777bb4", "#4f5b93"},
	"swift":            {"SW", "#f05138", "#fa7343"},
	"dart":             {"DT", "#00b4ab", "#0175c2"},
	"scala":            {"SC", "#dc322f", "#c22d40"},
	"haskell":          {"HS", "#5e5086", "#8f4e8b"},
	"elixir":           {"EX", "#6e4a7e", "#4b275f"},
	"lua":              {"LU", "#000080", "#2c2d72"},
	"shell":            {"SH", "#89e051", "#4eaa25"},
	"html":             {"HT", "#e34c26", "#f06529"},
	"css":              {"CS", "#563d7c", "#264de4"},
	"scss":             {"SC", "#c6538c", "#a53b70"},
	"vue":              {"VU", "#41b883", "#35495e"},
	"svelte":           {"SV", "#ff3e00", "#e63900"},
	"jupyter notebook": {"JN", "#da5b0b", "#f37626"},
	"dockerfile":       {"DK", "#384d54", "#2496ed"},
	"zig":              {"ZG", "#ec915c", "#f7a41d"},
	"r":                {"R", "#198ce7", "#276dc3"},
}

// styleFor returns the badge and gradient for a language. Unknown languages
// get a two-letter badge and the payload color, or neutral grey.
func styleFor(l Language) langStyle {
	if s, ok := langStyles[strings.ToLower(l.Name)]; ok {
		return s
	}
	s := defaultLangStyle
	if l.Color != "" {
		s.from, s.to = l.Color, l.Color
	}
	s.badge = badgeFor(l.Name)
	return s
}

func badgeFor(name string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(name)))
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}
