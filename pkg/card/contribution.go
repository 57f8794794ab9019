package card

import (
	"math"

	"github.com/matzehuels/statcard/pkg/svg"
)

const (
	calendarCols = 53
	calendarRows = 7
	calendarDays = calendarCols * calendarRows
)

// tier buckets a daily count into 0, 1, 2-3, 4-6 and 7+.
func tier(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count <= 3:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

var tierOpacity = [...]float64{0.1, 0.3, 0.5, 0.75, 1}

func (r *Resolved) tierFill(t int) (string, float64) {
	if t == 0 {
		return r.Theme.Text, tierOpacity[0]
	}
	return r.Theme.Primary, tierOpacity[t]
}

// calendarCounts returns the last calendarDays counts, oldest first. Missing
// leading days are zero, or synthetic in demo mode.
func calendarCounts(r *Resolved) ([]int, bool) {
	counts := make([]int, calendarDays)
	days := r.Streak.Days
	if len(days) > calendarDays {
		days = days[len(days)-calendarDays:]
	}
	missing := calendarDays - len(days)
	for i, d := range days {
		counts[missing+i] = d.Count
	}
	if missing == 0 || !r.Demo {
		return counts, false
	}
	rng := demoRand(r.Username)
	for i := range missing {
		if rng.IntN(10) < 4 {
			counts[i] = 1 + rng.IntN(5)
		}
	}
	return counts, true
}

func buildContribution(r *Resolved) *svg.Element {
	title := r.possessive("Contributions")
	f := newFrame(r, title)
	f.add(titleText(r, title))
	f.style(cellCSS(r))

	counts, synthetic := calendarCounts(r)
	f.demo = synthetic

	const legendBand = 22.0
	availW := r.innerWidth()
	availH := math.Max(r.innerHeight()-34-legendBand, 0)
	pitch := math.Min(availW/calendarCols, availH/calendarRows)
	size := pitch * 0.82
	x0 := r.left() + (availW-calendarCols*pitch)/2
	y0 := r.top() + 34 + (availH-calendarRows*pitch)/2
	mult := r.Speed.Multiplier()

	grid := svg.Group()
	for c := range calendarCols {
		for row := range calendarRows {
			fill, opacity := r.tierFill(tier(counts[c*calendarRows+row]))
			cell := svg.E("rect").
				Attr("x", x0+float64(c)*pitch).
				Attr("y", y0+float64(row)*pitch).
				Attr("width", size).Attr("height", size).
				Attr("rx", 2).
				Attr("fill", fill).Attr("fill-opacity", opacity)
			if r.Animate {
				cell.Class("cell").Attr("style", "animation-delay: "+seconds(float64(c)*0.02*mult))
			}
			grid.Add(cell)
		}
	}
	f.add(grid)

	total := r.Streak.Total
	if total == 0 || synthetic {
		total = 0
		for _, n := range counts {
			total += n
		}
	}
	f.add(svg.E("text").
		Attr("x", r.left()).Attr("y", r.bottom()-4).
		Class("muted", "anim", "d3").
		Add(svg.Textf("%s contributions in the last year", FormatNumber(total))))

	legend := svg.Group().Class("anim", "d4")
	sw := 10.0
	lx := r.right() - 5*(sw+3) - 30
	legend.Add(svg.E("text").
		Attr("x", lx-6).Attr("y", r.bottom()-4).
		Attr("text-anchor", "end").
		Class("muted").
		Add(svg.Text("Less")))
	for t := range len(tierOpacity) {
		fill, opacity := r.tierFill(t)
		legend.Add(svg.E("rect").
			Attr("x", lx+float64(t)*(sw+3)).Attr("y", r.bottom()-13).
			Attr("width", sw).Attr("height", sw).
			Attr("rx", 2).
			Attr("fill", fill).Attr("fill-opacity", opacity))
	}
	legend.Add(svg.E("text").
		Attr("x", lx+5*(sw+3)+3).Attr("y", r.bottom()-4).
		Class("muted").
		Add(svg.Text("More")))
	f.add(legend)

	return f.element()
}

func cellCSS(r *Resolved) string {
	if !r.Animate {
		return ""
	}
	return "@keyframes cellIn { from { opacity: 0; transform: scale(0.4); } to { opacity: 1; transform: scale(1); } }\n" +
		".cell { opacity: 0; transform-box: fill-box; transform-origin: center; animation: cellIn " +
		seconds(0.4*r.Speed.Multiplier()) + " ease-out forwards; }"
}
