package progress

import (
	"sort"

	"github.com/vibenen/academy/internal/course"
)

// Resolve computes the per-module progress view for one user. It is
// the single unlock rule in the system: the progress listing and the
// quiz gate both go through it.
//
// The first module (lowest order) is always unlocked. Every later
// module is unlocked exactly when its immediate predecessor's record
// has Validated == true; a missing predecessor record counts as not
// validated. Modules without a record default to an initial view.
// Resolve never fails.
func Resolve(modules []course.Module, records []Record) []View {
	sorted := make([]course.Module, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	byModule := make(map[int64]Record, len(records))
	for _, r := range records {
		byModule[r.ModuleID] = r
	}

	views := make([]View, len(sorted))
	for i, m := range sorted {
		v := View{ModuleID: m.ID, Status: StatusInProgress}
		if r, ok := byModule[m.ID]; ok {
			v.Status = r.Status
			v.Validated = r.Validated
			v.QuizScore = r.QuizScore
		}
		if i == 0 {
			v.Unlocked = true
		} else {
			prev, ok := byModule[sorted[i-1].ID]
			v.Unlocked = ok && prev.Validated
		}
		views[i] = v
	}
	return views
}

// Unlocked reports whether the given module is accessible, using the
// same predecessor rule as Resolve. Unknown module ids are locked.
func Unlocked(modules []course.Module, records []Record, moduleID int64) bool {
	for _, v := range Resolve(modules, records) {
		if v.ModuleID == moduleID {
			return v.Unlocked
		}
	}
	return false
}
