package http

import (
	"errors"
	"net/http"

	"github.com/academly/academly/internal/domain"
	"github.com/academly/academly/internal/domain/activity"
	"github.com/academly/academly/internal/domain/student"
	"github.com/academly/academly/internal/middleware"
)

// tenantID extracts the selected tenant from the session. The gates
// guarantee a selection exists, so a missing one here is a wiring bug.
func tenantID(r *http.Request) (string, bool) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return "", false
	}
	id, err := sess.RequireTenant()
	return id, err == nil
}

type listResponse[T any] struct {
	Items  []T    `json:"items"`
	Status string `json:"tenant_status"`
}

// ListStudents handles GET /api/v1/students. The tenant's license status
// rides along so the dashboard can render the blocked banner without a
// second request.
func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "no context selected")
		return
	}

	students, err := h.Students.List(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "students not found")
		return
	}
	status := h.License.Status(r.Context(), id)
	writeJSON(w, http.StatusOK, listResponse[student.Student]{Items: students, Status: string(status)})
}

// CreateStudent handles POST /api/v1/students.
func (h *Handlers) CreateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "no context selected")
		return
	}
	req, ok := readJSON[student.CreateRequest](w, r)
	if !ok {
		return
	}

	st, err := h.Students.Create(r.Context(), id, req)
	if err != nil {
		h.countLicenseDenial(r, err)
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

type suspendStudentRequest struct {
	Active bool `json:"active"`
}

// SetStudentActive handles POST /api/v1/students/{id}/suspend.
func (h *Handlers) SetStudentActive(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "no context selected")
		return
	}
	req, ok := readJSON[suspendStudentRequest](w, r)
	if !ok {
		return
	}

	if err := h.Students.SetActive(r.Context(), tid, urlParam(r, "id"), req.Active); err != nil {
		h.countLicenseDenial(r, err)
		writeDomainError(w, err, "student not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// ListActivities handles GET /api/v1/activities.
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "no context selected")
		return
	}

	activities, err := h.Activities.List(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "activities not found")
		return
	}
	status := h.License.Status(r.Context(), id)
	writeJSON(w, http.StatusOK, listResponse[activity.Activity]{Items: activities, Status: string(status)})
}

// CreateActivity handles POST /api/v1/activities.
func (h *Handlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantID(r)
	if !ok {
		writeError(w, http.StatusForbidden, "no context selected")
		return
	}
	req, ok := readJSON[activity.CreateRequest](w, r)
	if !ok {
		return
	}

	a, err := h.Activities.Create(r.Context(), id, req)
	if err != nil {
		h.countLicenseDenial(r, err)
		writeDomainError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) countLicenseDenial(r *http.Request, err error) {
	if h.Metrics != nil && errors.Is(err, domain.ErrLicenseInactive) {
		h.Metrics.LicenseDenials.Add(r.Context(), 1)
	}
}
