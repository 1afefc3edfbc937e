package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgrades/internal/gateway/util"
	"campusgrades/internal/grading"
	"campusgrades/internal/shared"
)

// GradeHandler serves grade record writes and all the derived views: the
// grades-and-GPA view, the examination results transcript, subject
// statistics and the population GPA summary.
type GradeHandler struct {
	Grades   *grading.Service
	Validate *validator.Validate
}

// Create handles POST /api/student/{student_id}/grades (doctor only).
func (h *GradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleDoctor, shared.RoleAdmin) {
		return
	}

	var req grading.CreateGradeRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	record, err := h.Grades.CreateGrade(r.Context(),
		chi.URLParam(r, "student_id"), req.SubjectID, req.GradeRequest)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, record)
}

// Get handles GET /api/student/{student_id}/grades/{subject_id}.
func (h *GradeHandler) Get(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")
	if !requireSelfOrStaff(w, r, studentID) {
		return
	}

	record, err := h.Grades.GetGrade(r.Context(), studentID, chi.URLParam(r, "subject_id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, record)
}

// Update handles PUT /api/student/{student_id}/grades/{subject_id} (doctor
// only). The record is rewritten whole.
func (h *GradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleDoctor, shared.RoleAdmin) {
		return
	}

	var req grading.GradeRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	record, err := h.Grades.UpdateGrade(r.Context(),
		chi.URLParam(r, "student_id"), chi.URLParam(r, "subject_id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, record)
}

// GradesGPA handles GET /api/student/{student_id}/grades-gpa: the
// student-facing current-semester grades with GPA and CGPA.
func (h *GradeHandler) GradesGPA(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")
	if !requireSelfOrStaff(w, r, studentID) {
		return
	}

	view, err := h.Grades.CurrentSemesterGPA(r.Context(), studentID)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, view)
}

// ExaminationResults handles GET
// /api/admin/students/{student_id}/examination-results: the full eight-slot
// academic record.
func (h *GradeHandler) ExaminationResults(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	record, err := h.Grades.FullAcademicRecord(r.Context(), chi.URLParam(r, "student_id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, record)
}

// SubjectStatistics handles GET /api/subject/{subject_id}/statistics.
func (h *GradeHandler) SubjectStatistics(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleDoctor, shared.RoleAdmin) {
		return
	}

	result, err := h.Grades.SubjectStatisticsFor(r.Context(), chi.URLParam(r, "subject_id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, result)
}

// GPAStats handles GET /api/admin/students/gpa-stats.
func (h *GradeHandler) GPAStats(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	result, err := h.Grades.PopulationGPAStats(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, result)
}
