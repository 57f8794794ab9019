package card

import "github.com/matzehuels/statcard/pkg/svg"

func buildCustom(r *Resolved) *svg.Element {
	f := newFrame(r, r.CustomText)
	f.style(".custom-text { font: 700 28px " + fontStack + "; fill: " + r.Theme.Primary + "; }")
	f.add(svg.E("text").
		Attr("x", float64(r.Width)/2).Attr("y", float64(r.Height)/2).
		Attr("text-anchor", "middle").
		Attr("dominant-baseline", "middle").
		Class("custom-text", "anim", "d1").
		Add(svg.Text(r.CustomText)))
	return f.element()
}
