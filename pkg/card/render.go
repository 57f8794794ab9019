package card

import (
	"encoding/base64"
	"math"
	"strings"

	"github.com/matzehuels/statcard/pkg/svg"
)

type builder func(r *Resolved) *svg.Element

var builders = map[Kind]builder{
	KindStats:        buildStats,
	KindLanguages:    buildLanguages,
	KindStreak:       buildStreak,
	KindActivity:     buildActivity,
	KindContribution: buildContribution,
	KindQuote:        buildQuote,
	KindCustom:       buildCustom,
	KindBanner:       buildBanner,
}

// builderFor returns the builder registered for k, or the stats builder.
func builderFor(k Kind) builder {
	if b, ok := builders[k]; ok {
		return b
	}
	return buildStats
}

// Render normalizes p and returns the SVG document for it.
func Render(p Params) string {
	r := Normalize(p)
	return RenderResolved(&r)
}

// RenderResolved renders already-normalized parameters.
func RenderResolved(r *Resolved) string {
	return builderFor(r.Kind)(r).String()
}

// DataURL encodes an SVG document as a base64 data URL.
func DataURL(doc string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(doc))
}

const fontStack = "'Segoe UI', Ubuntu, 'Helvetica Neue', Sans-Serif"

// frame accumulates the pieces shared by every card: stylesheet, defs,
// background and the optional demo label.
type frame struct {
	r     *Resolved
	label string
	css   []string
	defs  []svg.Node
	body  []svg.Node
	demo  bool
}

func newFrame(r *Resolved, label string) *frame {
	return &frame{r: r, label: label}
}

func (f *frame) style(rules ...string) { f.css = append(f.css, rules...) }
func (f *frame) def(nodes ...svg.Node) { f.defs = append(f.defs, nodes...) }
func (f *frame) add(nodes ...svg.Node) { f.body = append(f.body, nodes...) }

func (f *frame) element() *svg.Element {
	r := f.r
	doc := svg.Doc(r.Width, r.Height).
		Attr("fill", "none").
		Attr("role", "img").
		Attr("aria-label", f.label)
	doc.Add(svg.E("title", svg.Text(f.label)))

	var css strings.Builder
	css.WriteString(AnimationCSS(r.Animation, r.Speed, r.Theme.Primary))
	css.WriteString(f.baseCSS())
	for _, rule := range f.css {
		css.WriteString(rule)
		css.WriteByte('\n')
	}
	doc.Add(svg.E("style", svg.Text(css.String())))

	defs := f.defs
	if r.Gradient.Enabled {
		defs = append([]svg.Node{gradientDef(r.Gradient)}, defs...)
	}
	if len(defs) > 0 {
		doc.Add(svg.E("defs", defs...))
	}

	bg := svg.E("rect").
		Attr("x", 0.5).Attr("y", 0.5).
		Attr("width", r.Width-1).Attr("height", r.Height-1).
		Attr("rx", r.BorderRadius).
		Attr("fill", r.Theme.Background)
	if r.Gradient.Enabled {
		bg.Attr("fill", "url(#bg-gradient)")
	}
	if r.ShowBorder {
		bg.Attr("stroke", r.Theme.Border).Attr("stroke-opacity", 1)
	}
	doc.Add(bg)
	doc.Add(f.body...)

	if f.demo {
		doc.Add(svg.E("text").
			Attr("x", r.Width-10).Attr("y", r.Height-8).
			Attr("text-anchor", "end").
			Class("demo").
			Add(svg.Text(demoLabel)))
	}
	return doc
}

func (f *frame) baseCSS() string {
	th := f.r.Theme
	rules := []string{
		".title { font: 600 18px " + fontStack + "; fill: " + th.Primary + "; }",
		".label { font: 400 12px " + fontStack + "; fill: " + th.Text + "; }",
		".value { font: 700 26px " + fontStack + "; fill: " + th.Primary + "; }",
		".muted { font: 400 11px " + fontStack + "; fill: " + th.Text + "; opacity: 0.7; }",
		".demo { font: 700 9px " + fontStack + "; fill: " + th.Secondary + "; letter-spacing: 1px; }",
	}
	return strings.Join(rules, "\n") + "\n"
}

func gradientDef(g Gradient) *svg.Element {
	var grad *svg.Element
	if g.Type == "radial" {
		grad = svg.E("radialGradient").
			Attr("id", "bg-gradient").
			Attr("cx", "50%").Attr("cy", "50%").Attr("r", "75%")
	} else {
		rad := float64(g.Angle) * math.Pi / 180
		dx, dy := 50*math.Cos(rad), 50*math.Sin(rad)
		grad = svg.E("linearGradient").
			Attr("id", "bg-gradient").
			Attr("x1", percent(50-dx)).Attr("y1", percent(50-dy)).
			Attr("x2", percent(50+dx)).Attr("y2", percent(50+dy))
	}
	return grad.Add(
		svg.E("stop").Attr("offset", "0%").Attr("stop-color", g.Start),
		svg.E("stop").Attr("offset", "100%").Attr("stop-color", g.End),
	)
}

func percent(v float64) string { return svg.FormatFloat(v) + "%" }

// Layout helpers over the padded content box.

func (r *Resolved) left() float64   { return float64(r.Padding.Left) }
func (r *Resolved) top() float64    { return float64(r.Padding.Top) }
func (r *Resolved) right() float64  { return float64(r.Width - r.Padding.Right) }
func (r *Resolved) bottom() float64 { return float64(r.Height - r.Padding.Bottom) }

func (r *Resolved) innerWidth() float64  { return math.Max(r.right()-r.left(), 0) }
func (r *Resolved) innerHeight() float64 { return math.Max(r.bottom()-r.top(), 0) }

// possessive builds "<user>'s <what>", or just what for anonymous cards.
func (r *Resolved) possessive(what string) string {
	if r.Username == "" {
		return what
	}
	return r.Username + "'s " + what
}

func titleText(r *Resolved, title string) *svg.Element {
	return svg.E("text").
		Attr("x", r.left()).Attr("y", r.top()+12).
		Class("title", "anim").
		Add(svg.Text(title))
}

func divider(r *Resolved, y float64) *svg.Element {
	return svg.E("line").
		Attr("x1", r.left()).Attr("y1", y).
		Attr("x2", r.right()).Attr("y2", y).
		Attr("stroke", r.Theme.Primary).
		Attr("stroke-opacity", 0.2)
}
