package http

import (
	"net/http"

	"github.com/vibenen/academy/internal/course"
)

func ListModulesHandler(courses course.Store, courseID int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modules, err := courses.Modules(r.Context(), courseID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, modules)
	}
}

func GetModuleHandler(courses course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := moduleIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		m, err := courses.Module(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
