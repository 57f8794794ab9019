package github

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/matzehuels/statcard/pkg/card"
)

const dateLayout = "2006-01-02"

// calendarDays is the span of Streak.Days: 53 full weeks.
const calendarDays = 53 * 7

// StatsFrom sums stars and forks over the user's own (non-fork) repositories.
func StatsFrom(user userResponse, repos []repoResponse) card.Stats {
	s := card.Stats{
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
	}
	for _, r := range repos {
		if r.Fork {
			continue
		}
		s.TotalStars += r.Stars
		s.TotalForks += r.Forks
	}
	return s
}

// Languages returns the share of non-fork repositories per primary language,
// highest first (ties by name), limited to top entries.
func Languages(repos []repoResponse, top int) []card.Language {
	counts := map[string]int{}
	total := 0
	for _, r := range repos {
		if r.Fork || r.Language == "" {
			continue
		}
		counts[r.Language]++
		total++
	}
	if total == 0 {
		return nil
	}

	langs := make([]card.Language, 0, len(counts))
	for name, n := range counts {
		pct := math.Round(float64(n)/float64(total)*1000) / 10
		langs = append(langs, card.Language{Name: name, Percentage: pct})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].Percentage != langs[j].Percentage {
			return langs[i].Percentage > langs[j].Percentage
		}
		return langs[i].Name < langs[j].Name
	})
	if top > 0 && len(langs) > top {
		langs = langs[:top]
	}
	return langs
}

// Contributions counts contributions per UTC day from public events.
// Pushes count their commits (at least one); opened pull requests and issues,
// reviews and creations count one each.
func Contributions(events []eventResponse) map[string]int {
	perDay := map[string]int{}
	for _, e := range events {
		var p eventPayload
		if len(e.Payload) > 0 {
			_ = json.Unmarshal(e.Payload, &p)
		}

		n := 0
		switch e.Type {
		case "PushEvent":
			n = max(p.Size, 1)
		case "PullRequestEvent", "IssuesEvent":
			if p.Action == "opened" {
				n = 1
			}
		case "CreateEvent", "PullRequestReviewEvent":
			n = 1
		}
		if n > 0 {
			perDay[e.CreatedAt.UTC().Format(dateLayout)] += n
		}
	}
	return perDay
}

// ComputeStreak derives streak statistics from per-day counts as of today.
// The current streak counts back from today, or from yesterday when today
// has no contributions yet. An ongoing longest streak has no end date.
func ComputeStreak(perDay map[string]int, today time.Time) card.Streak {
	today = truncateDay(today)
	var s card.Streak

	var first time.Time
	for date, n := range perDay {
		if n <= 0 {
			continue
		}
		s.Total += n
		if d, err := time.Parse(dateLayout, date); err == nil && (first.IsZero() || d.Before(first)) {
			first = d
		}
	}

	s.Days = make([]card.Day, 0, calendarDays)
	for i := calendarDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		s.Days = append(s.Days, card.Day{Date: date, Count: perDay[date]})
	}
	if first.IsZero() {
		return s
	}
	s.StartDate = first.Format(dateLayout)

	cursor := today
	if perDay[cursor.Format(dateLayout)] == 0 {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for perDay[cursor.Format(dateLayout)] > 0 {
		s.Current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	run := 0
	var runStart time.Time
	for d := first; !d.After(today); d = d.AddDate(0, 0, 1) {
		if perDay[d.Format(dateLayout)] == 0 {
			run = 0
			continue
		}
		if run == 0 {
			runStart = d
		}
		run++
		if run > s.Longest {
			s.Longest = run
			s.LongestStreakStart = runStart.Format(dateLayout)
			s.LongestStreakEnd = d.Format(dateLayout)
		}
	}
	if s.Current > 0 && s.Current == s.Longest && s.LongestStreakStart == cursor.AddDate(0, 0, 1).Format(dateLayout) {
		s.LongestStreakEnd = ""
	}
	return s
}

// Activity returns the counts of the last n days ending today, oldest first.
func Activity(perDay map[string]int, today time.Time, n int) []int {
	today = truncateDay(today)
	out := make([]int, n)
	for i := range n {
		out[i] = perDay[today.AddDate(0, 0, i-n+1).Format(dateLayout)]
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
