package progress

import (
	"github.com/vibenen/academy/internal/apperr"
	"github.com/vibenen/academy/internal/course"
)

// Evaluate scores a submitted answer set against the bank's question
// set. Pure: no stored state is read or written.
//
// The answer count must equal the question count exactly; anything
// else is a validation failure before any scoring happens. Individual
// answers are option indices — an out-of-range or negative index
// simply never matches and scores zero for that question, it is not
// an error. Validated requires full marks.
func Evaluate(questions []course.Question, answers []int) (Evaluation, error) {
	total := len(questions)
	if len(answers) != total {
		return Evaluation{}, apperr.Validationf("expected %d answers, got %d", total, len(answers))
	}
	score := 0
	for i, q := range questions {
		if answers[i] == q.CorrectOption {
			score++
		}
	}
	return Evaluation{Score: score, Total: total, Validated: score == total}, nil
}
