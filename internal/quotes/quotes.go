// Package quotes holds the sayings about time shown in the dashboard footer.
package quotes

import "math/rand/v2"

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func (q Quote) String() string {
	return "\"" + q.Text + "\" - " + q.Author
}

var all = []Quote{
	{Text: "Time is what we want most, but what we use worst.", Author: "William Penn"},
	{Text: "The future depends on what you do today.", Author: "Mahatma Gandhi"},
	{Text: "Lost time is never found again.", Author: "Benjamin Franklin"},
	{Text: "Your time is limited, so don't waste it living someone else's life.", Author: "Steve Jobs"},
	{Text: "Time is made. Saying 'I have no time' is like saying 'I don't want to'.", Author: "Lao Tzu"},
	{Text: "Time is finite. Focus on the present and treasure every minute.", Author: "Time Compass"},
	{Text: "An inch of time is an inch of gold, but an inch of gold cannot buy an inch of time.", Author: "Chinese proverb"},
}

// All returns a copy of the quote list.
func All() []Quote {
	return append([]Quote(nil), all...)
}

// Random picks a quote uniformly.
func Random() Quote {
	return Pick(rand.IntN)
}

// Pick selects a quote with the supplied index source, which must return a
// value in [0, n).
func Pick(intn func(n int) int) Quote {
	return all[intn(len(all))]
}
