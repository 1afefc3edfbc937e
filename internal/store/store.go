// Package store defines the persistence contracts the services depend on,
// together with their MongoDB implementations. Services only see the
// interfaces; tests substitute in-memory fakes.
package store

import (
	"context"

	"campusgrades/internal/shared"
)

// StudentFilter narrows and pages the student listing.
type StudentFilter struct {
	Search         string // substring match on code
	Level          string
	Specialization string
	AcademicYear   string
	Page           int64
	PerPage        int64
}

// StudentPage is one page of the student listing.
type StudentPage struct {
	CurrentPage int64            `json:"current_page"`
	PerPage     int64            `json:"per_page"`
	TotalPages  int64            `json:"total_pages"`
	Students    []shared.Student `json:"students"`
}

// StudentStore persists students.
type StudentStore interface {
	Find(ctx context.Context, id string) (*shared.Student, error)
	FindByCode(ctx context.Context, code string) (*shared.Student, error)
	List(ctx context.Context, filter StudentFilter) (*StudentPage, error)
	Create(ctx context.Context, s *shared.Student) error
	Update(ctx context.Context, s *shared.Student) error
	Delete(ctx context.Context, id string) error
	BulkSetAcademicYear(ctx context.Context, year string) (int64, error)
	UpdateGPA(ctx context.Context, id string, gpa float64) error
}

// DoctorStore persists doctors.
type DoctorStore interface {
	Find(ctx context.Context, id string) (*shared.Doctor, error)
	FindByCode(ctx context.Context, code string) (*shared.Doctor, error)
	ListAll(ctx context.Context) ([]shared.Doctor, error)
	Create(ctx context.Context, d *shared.Doctor) error
	Update(ctx context.Context, d *shared.Doctor) error
	Delete(ctx context.Context, id string) error
}

// SubjectStore persists subjects.
type SubjectStore interface {
	Find(ctx context.Context, id string) (*shared.Subject, error)
	FindByCode(ctx context.Context, code string) (*shared.Subject, error)
	ListAll(ctx context.Context) ([]shared.Subject, error)
	Create(ctx context.Context, s *shared.Subject) error
	Update(ctx context.Context, s *shared.Subject) error
	Delete(ctx context.Context, id string) error
}

// GradeStore persists grade records. There is no direct delete: records
// only disappear through student/subject cascade deletion.
type GradeStore interface {
	FindByStudentAndSubject(ctx context.Context, studentID, subjectID string) (*shared.GradeRecord, error)
	FindByStudent(ctx context.Context, studentID string) ([]shared.GradeRecord, error)
	FindBySubject(ctx context.Context, subjectID string) ([]shared.GradeRecord, error)
	Create(ctx context.Context, g *shared.GradeRecord) error
	Update(ctx context.Context, g *shared.GradeRecord) error
}

// SettingStore persists the singleton global setting.
type SettingStore interface {
	GetCurrent(ctx context.Context) (*shared.GlobalSetting, error)
	Find(ctx context.Context, id string) (*shared.GlobalSetting, error)
	Create(ctx context.Context, s *shared.GlobalSetting) error
	Update(ctx context.Context, s *shared.GlobalSetting) error
	Delete(ctx context.Context, id string) error
}
