package card

import "github.com/matzehuels/statcard/pkg/svg"

const (
	iconStar     = "M8 .5l2.2 4.6 5 .7-3.6 3.5.9 5L8 11.9l-4.5 2.4.9-5L.8 5.8l5-.7z"
	iconRepo     = "M3 1h8.5L14 3.5V15H3a1 1 0 0 1-1-1V2a1 1 0 0 1 1-1zm1 2v9h8V4.5L10.5 3zM5 13v1h6v-1z"
	iconFollower = "M8 8a3.2 3.2 0 1 0 0-6.4A3.2 3.2 0 0 0 8 8zm-6 6.5C2 11.5 4.7 9.6 8 9.6s6 1.9 6 4.9z"
	iconFork     = "M4 1.5a2 2 0 1 1 0 4 2 2 0 0 1 0-4zm8 0a2 2 0 1 1 0 4 2 2 0 0 1 0-4zM8 10.5a2 2 0 1 1 0 4 2 2 0 0 1 0-4zM3.3 5.3h1.4v1.2c0 .6.4 1 1 1h4.6c.6 0 1-.4 1-1V5.3h1.4v1.2c0 1.4-1 2.4-2.4 2.4H8.7v1.6H7.3V8.9H5.7c-1.4 0-2.4-1-2.4-2.4z"
)

// titleBand is the vertical space reserved for a card title and its divider.
const titleBand = 22.0

func buildStats(r *Resolved) *svg.Element {
	title := r.possessive("GitHub Stats")
	f := newFrame(r, title)
	f.add(titleText(r, title), divider(r, r.top()+titleBand))

	items := []struct {
		label string
		value int
		icon  string
	}{
		{"Stars", r.Stats.TotalStars, iconStar},
		{"Repos", r.Stats.PublicRepos, iconRepo},
		{"Followers", r.Stats.Followers, iconFollower},
		{"Forks", r.Stats.TotalForks, iconFork},
	}

	col := r.innerWidth() / float64(len(items))
	mid := r.top() + titleBand + (r.innerHeight()-titleBand)/2
	for i, it := range items {
		cx := r.left() + col*(float64(i)+0.5)
		f.add(svg.Group(
			svg.E("path").
				Attr("d", it.icon).
				Attr("fill", r.Theme.Secondary).
				Attr("transform", "translate("+svg.FormatFloat(cx-8)+" "+svg.FormatFloat(mid-36)+")"),
			svg.E("text").
				Attr("x", cx).Attr("y", mid+8).
				Attr("text-anchor", "middle").
				Class("value").
				Add(svg.Text(FormatNumber(it.value))),
			svg.E("text").
				Attr("x", cx).Attr("y", mid+30).
				Attr("text-anchor", "middle").
				Class("label").
				Add(svg.Text(it.label)),
		).Class("anim", delayClass(i+1)))
	}
	return f.element()
}
