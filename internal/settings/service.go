// Package settings manages the singleton system configuration and exposes
// the effective academic period the aggregation engine keys on.
package settings

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// Effective is the resolved academic period. Semester may be empty: between
// June and August there is no date-based default and, with no administrator
// override, grade views fall back to filtering by year only.
type Effective struct {
	AcademicYear string
	Semester     string
	ShowGrades   bool
}

// Provider resolves the effective settings. The aggregation engine depends
// on this interface rather than on the setting store so tests can supply a
// fixed period.
type Provider interface {
	Effective(ctx context.Context) (Effective, error)
}

// Service implements setting CRUD and the Provider interface.
type Service struct {
	settings store.SettingStore
	students store.StudentStore
	now      func() time.Time
}

// NewService creates a settings service backed by the given stores.
func NewService(settings store.SettingStore, students store.StudentStore) *Service {
	return &Service{settings: settings, students: students, now: time.Now}
}

// NewServiceWithClock creates a settings service with an injected clock.
func NewServiceWithClock(settings store.SettingStore, students store.StudentStore, now func() time.Time) *Service {
	return &Service{settings: settings, students: students, now: now}
}

// ============================================================================
// Request / Response types
// ============================================================================

// UpsertSettingRequest carries the full setting payload; all fields are
// required on both create and update.
type UpsertSettingRequest struct {
	ShowGrades      *bool  `json:"showGrades" validate:"required"`
	AcademicYear    string `json:"academic_year" validate:"required"`
	CurrentSemester string `json:"current_semester" validate:"required,oneof=One Two"`
}

// ============================================================================
// CRUD
// ============================================================================

// Get returns the current setting or NotFound when none exists.
func (s *Service) Get(ctx context.Context) (*shared.GlobalSetting, error) {
	setting, err := s.settings.GetCurrent(ctx)
	if err != nil {
		log.Printf("Error loading setting: %v", err)
		return nil, shared.Internal("failed to load system setting")
	}
	if setting == nil {
		return nil, shared.NotFound("No system setting found")
	}
	return setting, nil
}

// Create stores a new setting record.
func (s *Service) Create(ctx context.Context, req UpsertSettingRequest) (*shared.GlobalSetting, error) {
	setting := &shared.GlobalSetting{
		ShowGrades:      *req.ShowGrades,
		AcademicYear:    req.AcademicYear,
		CurrentSemester: req.CurrentSemester,
	}
	if err := s.settings.Create(ctx, setting); err != nil {
		log.Printf("Error creating setting: %v", err)
		return nil, shared.Internal("failed to create system setting")
	}
	return setting, nil
}

// Update rewrites the setting. Changing the academic year cascades a bulk
// rewrite of every student's academic-year tag; the cascade is best effort
// and is not rolled back on partial failure.
func (s *Service) Update(ctx context.Context, id string, req UpsertSettingRequest) (*shared.GlobalSetting, error) {
	setting, err := s.settings.Find(ctx, id)
	if err != nil {
		log.Printf("Error loading setting %s: %v", id, err)
		return nil, shared.Internal("failed to load system setting")
	}
	if setting == nil {
		return nil, shared.NotFound("System setting not found")
	}

	oldYear := setting.AcademicYear
	setting.ShowGrades = *req.ShowGrades
	setting.AcademicYear = req.AcademicYear
	setting.CurrentSemester = req.CurrentSemester

	if err := s.settings.Update(ctx, setting); err != nil {
		return nil, err
	}

	if req.AcademicYear != oldYear {
		modified, err := s.students.BulkSetAcademicYear(ctx, req.AcademicYear)
		if err != nil {
			log.Printf("Warning: academic year cascade failed after %d students: %v", modified, err)
		} else {
			log.Printf("Academic year changed to %s, updated %d students", req.AcademicYear, modified)
		}
	}

	return setting, nil
}

// Delete removes the setting record. Consumers then operate on the
// documented fallbacks.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.settings.Delete(ctx, id)
}

// ============================================================================
// Visibility gate
// ============================================================================

// Effective resolves the academic year, semester and grade visibility that
// grade views should honor right now. With no setting record the system
// fails open on visibility and derives the period from the clock; an
// explicit ShowGrades=false always fails closed.
func (s *Service) Effective(ctx context.Context) (Effective, error) {
	setting, err := s.settings.GetCurrent(ctx)
	if err != nil {
		return Effective{}, shared.Internal("failed to load system setting")
	}

	if setting == nil {
		return Effective{
			AcademicYear: DefaultAcademicYear(s.now()),
			Semester:     DefaultSemester(s.now()),
			ShowGrades:   true,
		}, nil
	}

	eff := Effective{
		AcademicYear: setting.AcademicYear,
		Semester:     setting.CurrentSemester,
		ShowGrades:   setting.ShowGrades,
	}
	if eff.AcademicYear == "" {
		eff.AcademicYear = DefaultAcademicYear(s.now())
	}
	if eff.Semester == "" {
		eff.Semester = DefaultSemester(s.now())
	}
	return eff, nil
}

// DefaultAcademicYear formats the wall-clock fallback year, e.g. "2026-2027".
func DefaultAcademicYear(now time.Time) string {
	year := now.Year()
	return fmt.Sprintf("%d-%d", year, year+1)
}

// DefaultSemester derives the semester from the calendar: September through
// December is semester One, January through May is semester Two, and the
// summer months have no default.
func DefaultSemester(now time.Time) string {
	switch m := now.Month(); {
	case m >= time.September && m <= time.December:
		return shared.SemesterOne
	case m >= time.January && m <= time.May:
		return shared.SemesterTwo
	default:
		return ""
	}
}
