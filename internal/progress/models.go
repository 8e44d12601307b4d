package progress

// Status of a persisted progress record. Locked is never persisted;
// it is derived by the resolver from the predecessor's validation.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Record is the persisted per-(user, module) state tuple.
// Invariant: Validated ⇔ Status == done ⇔ *QuizScore == question count.
type Record struct {
	UserID    string
	ModuleID  int64
	Status    Status
	Validated bool
	// QuizScore is nil until the first submission and after a reset.
	QuizScore *int
}

// View is the derived per-module progress row returned to clients.
// Unlocked is computed, never stored.
type View struct {
	ModuleID  int64  `json:"moduleId"`
	Status    Status `json:"status"`
	Validated bool   `json:"validated"`
	QuizScore *int   `json:"quizScore"`
	Unlocked  bool   `json:"unlocked"`
}

// Evaluation is the result of scoring one submission.
type Evaluation struct {
	Score     int  `json:"score"`
	Total     int  `json:"total"`
	Validated bool `json:"validated"`
}
