package course

type Course struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Module struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"-"`
	Order     int    `json:"order"`
	Title     string `json:"title"`
	YouTubeID string `json:"youtubeId"`
}

// Question is the server-side bank entry, answer key included. It is
// never serialized to clients; PublicView strips the key first.
type Question struct {
	Text          string
	Options       []string
	CorrectOption int
}

// PublicQuestion is the only quiz shape ever sent before submission.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PublicView strips answer keys from a bank question set. Question and
// option order is preserved; submitted answer indices are compared
// against exactly this enumeration.
func PublicView(qs []Question) []PublicQuestion {
	out := make([]PublicQuestion, len(qs))
	for i, q := range qs {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		out[i] = PublicQuestion{Question: q.Text, Options: opts}
	}
	return out
}
