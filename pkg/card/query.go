package card

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery builds Params from URL query parameters. Malformed numbers and
// booleans are ignored so the corresponding defaults apply.
func ParseQuery(q url.Values) Params {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(q.Get(k)); v != "" {
				return v
			}
		}
		return ""
	}

	p := Params{
		Type:      Kind(get("type")),
		Username:  get("username", "user"),
		ThemeName: get("theme"),
		Theme: Theme{
			Background: get("bg", "background"),
			Primary:    get("primary"),
			Secondary:  get("secondary"),
			Text:       get("text"),
			Border:     get("border"),
		},
		Width:        atoi(get("width")),
		Height:       atoi(get("height")),
		BorderRadius: intPtr(get("radius", "borderRadius")),
		ShowBorder:   boolPtr(get("showBorder")),
		Animation: Animation{
			Enabled: boolPtr(get("animate")),
			Kind:    get("animation"),
			Speed:   get("speed"),
		},
		Gradient: Gradient{
			Type:  get("gradientType"),
			Angle: atoi(get("gradientAngle")),
			Start: get("gradientStart"),
			End:   get("gradientEnd"),
		},
		CustomText:        get("customText"),
		BannerName:        get("bannerName", "name"),
		BannerDescription: get("bannerDescription", "description"),
		WaveStyle:         get("waveStyle", "wave"),
	}
	if b := boolPtr(get("gradient")); b != nil {
		p.Gradient.Enabled = *b
	}
	if b := boolPtr(get("demo")); b != nil {
		p.Demo = *b
	}
	if all := intPtr(get("padding")); all != nil {
		p.Padding = Sides{Top: all, Right: all, Bottom: all, Left: all}
	}
	for key, side := range map[string]**int{
		"paddingTop":    &p.Padding.Top,
		"paddingRight":  &p.Padding.Right,
		"paddingBottom": &p.Padding.Bottom,
		"paddingLeft":   &p.Padding.Left,
	} {
		if v := intPtr(get(key)); v != nil {
			*side = v
		}
	}
	if text := get("quote"); text != "" {
		p.Data.Quote = &Quote{Quote: text, Author: get("author")}
	}
	return p
}

// Query encodes the presentation fields of p as URL query parameters. Payload
// data other than an inline quote is not encoded.
func (p Params) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("type", string(p.Type))
	set("username", p.Username)
	set("theme", p.ThemeName)
	set("bg", p.Theme.Background)
	set("primary", p.Theme.Primary)
	set("secondary", p.Theme.Secondary)
	set("text", p.Theme.Text)
	set("border", p.Theme.Border)
	if p.Width > 0 {
		set("width", strconv.Itoa(p.Width))
	}
	if p.Height > 0 {
		set("height", strconv.Itoa(p.Height))
	}
	if p.BorderRadius != nil {
		set("radius", strconv.Itoa(*p.BorderRadius))
	}
	for k, v := range map[string]*int{
		"paddingTop":    p.Padding.Top,
		"paddingRight":  p.Padding.Right,
		"paddingBottom": p.Padding.Bottom,
		"paddingLeft":   p.Padding.Left,
	} {
		if v != nil {
			set(k, strconv.Itoa(*v))
		}
	}
	if p.ShowBorder != nil {
		set("showBorder", strconv.FormatBool(*p.ShowBorder))
	}
	if p.Animation.Enabled != nil {
		set("animate", strconv.FormatBool(*p.Animation.Enabled))
	}
	set("animation", p.Animation.Kind)
	set("speed", p.Animation.Speed)
	if p.Gradient.Enabled {
		set("gradient", "true")
		set("gradientType", p.Gradient.Type)
		if p.Gradient.Angle != 0 {
			set("gradientAngle", strconv.Itoa(p.Gradient.Angle))
		}
		set("gradientStart", p.Gradient.Start)
		set("gradientEnd", p.Gradient.End)
	}
	set("customText", p.CustomText)
	set("bannerName", p.BannerName)
	set("bannerDescription", p.BannerDescription)
	set("waveStyle", p.WaveStyle)
	if p.Demo {
		set("demo", "true")
	}
	if p.Data.Quote != nil {
		set("quote", p.Data.Quote.Quote)
		set("author", p.Data.Quote.Author)
	}
	return q
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func intPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func boolPtr(s string) *bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
