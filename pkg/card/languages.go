package card

import (
	"fmt"
	"math"

	"github.com/matzehuels/statcard/pkg/svg"
)

const (
	// BarMaxWidth is the width of a bar for the top language.
	BarMaxWidth = 145.0
	// BarMinWidth is the smallest bar drawn.
	BarMinWidth = 20.0
	// barScaleFloor keeps a lone small language from filling the whole bar.
	barScaleFloor = 35.0
)

// BarWidth scales pct against the largest percentage shown.
func BarWidth(pct, maxPct float64) float64 {
	return math.Max(pct/math.Max(maxPct, barScaleFloor)*BarMaxWidth, BarMinWidth)
}

func buildLanguages(r *Resolved) *svg.Element {
	title := "Top Languages"
	f := newFrame(r, r.possessive(title))
	f.add(titleText(r, title))
	f.style(
		".lang-name { font: 600 11px "+fontStack+"; fill: "+r.Theme.Text+"; }",
		".lang-pct { font: 600 11px "+fontStack+"; fill: "+r.Theme.Secondary+"; }",
		".badge { font: 700 9px "+fontStack+"; fill: #ffffff; }",
	)

	if len(r.Languages) == 0 {
		f.add(svg.E("text").
			Attr("x", float64(r.Width)/2).Attr("y", float64(r.Height)/2).
			Attr("text-anchor", "middle").
			Class("label", "anim", "d1").
			Add(svg.Text("No language data")))
		return f.element()
	}

	var top float64
	for _, l := range r.Languages {
		top = math.Max(top, l.Percentage)
	}

	y0 := r.top() + 32
	rowH := math.Max((r.innerHeight()-32)/MaxLanguages, 0)
	pillH := math.Max(rowH-6, 0)
	barX := r.left() + pillH + 8

	for i, l := range r.Languages {
		st := styleFor(l)
		gradID := fmt.Sprintf("lang-%d", i)
		f.def(svg.E("linearGradient").
			Attr("id", gradID).
			Attr("x1", 0).Attr("y1", 0).Attr("x2", 1).Attr("y2", 0).
			Add(
				svg.E("stop").Attr("offset", "0%").Attr("stop-color", st.from),
				svg.E("stop").Attr("offset", "100%").Attr("stop-color", st.to),
			))

		y := y0 + float64(i)*rowH
		cy := y + pillH/2
		fill := "url(#" + gradID + ")"
		f.add(svg.Group(
			svg.E("rect").
				Attr("x", r.left()).Attr("y", y).
				Attr("width", r.innerWidth()).Attr("height", pillH).
				Attr("rx", pillH/2).
				Attr("fill", r.Theme.Primary).Attr("fill-opacity", 0.06).
				Attr("stroke", r.Theme.Primary).Attr("stroke-opacity", 0.15),
			svg.E("circle").
				Attr("cx", r.left()+pillH/2).Attr("cy", cy).
				Attr("r", math.Max(pillH/2-4, 1)).
				Attr("fill", fill),
			svg.E("text").
				Attr("x", r.left()+pillH/2).Attr("y", cy+3).
				Attr("text-anchor", "middle").
				Class("badge").
				Add(svg.Text(st.badge)),
			svg.E("text").
				Attr("x", barX).Attr("y", cy-3).
				Class("lang-name").
				Add(svg.Text(l.Name)),
			svg.E("text").
				Attr("x", r.right()-10).Attr("y", cy-3).
				Attr("text-anchor", "end").
				Class("lang-pct").
				Add(svg.Textf("%.1f%%", l.Percentage)),
			svg.E("rect").
				Attr("x", barX).Attr("y", cy+4).
				Attr("width", BarMaxWidth).Attr("height", 5).
				Attr("rx", 2.5).
				Attr("fill", r.Theme.Text).Attr("fill-opacity", 0.12),
			svg.E("rect").
				Attr("x", barX).Attr("y", cy+4).
				Attr("width", BarWidth(l.Percentage, top)).Attr("height", 5).
				Attr("rx", 2.5).
				Attr("fill", fill),
		).Class("anim", delayClass(i+1)))
	}
	return f.element()
}
