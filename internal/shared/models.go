// ============================================================================
// internal/shared/models.go
// Shared data models and structs for MongoDB documents
// ============================================================================

package shared

import (
	"time"
)

// ============================================================================
// Enumerations
// ============================================================================

const (
	// User roles carried in auth tokens
	RoleDoctor  = "Doctor"
	RoleStudent = "Student"
	RoleAdmin   = "Admin" // referenced by clients, no credential source yet

	// Specializations
	SpecCS = "CS"
	SpecIT = "IT"

	// Levels
	LevelOne   = "One"
	LevelTwo   = "Two"
	LevelThree = "Three"
	LevelFour  = "Four"

	// Semesters within a level
	SemesterOne = "One"
	SemesterTwo = "Two"

	// Letter grades
	GradeA      = "A"
	GradeBPlus  = "B+"
	GradeB      = "B"
	GradeCPlus  = "C+"
	GradeC      = "C"
	GradeF      = "F"

	// Grade statuses. The starred tokens mark the special incomplete/fail
	// states that are excluded from the F bucket in subject statistics.
	StatusPass              = "pass"
	StatusIncomplete        = "i"
	StatusIncompleteSpecial = "i*"
	StatusFailSpecial       = "ff*"
	StatusOthers            = "others"
)

// NumberOfTranscriptSlots is the fixed width of the full academic record:
// four levels times two semesters.
const NumberOfTranscriptSlots = 8

// ============================================================================
// Subject Model
// ============================================================================

// Subject represents a course offering. The *Max fields are the optional
// per-component grade ceilings configured by the subject's doctor; a nil
// ceiling means the component is only bounded by the global [0,100] range.
type Subject struct {
	ID             string   `bson:"_id" json:"id"`
	Code           string   `bson:"code" json:"code"`
	Name           string   `bson:"name" json:"name"`
	CreditHours    int32    `bson:"credit_hours" json:"creditHours"`
	Specialization string   `bson:"specialization" json:"specialization"` // CS, IT
	Level          string   `bson:"level" json:"level"`                   // One..Four
	Semester       string   `bson:"semester" json:"semester"`             // One, Two
	MidtermMax     *float64 `bson:"midterm_max,omitempty" json:"midtermGrade,omitempty"`
	PracticalMax   *float64 `bson:"practical_max,omitempty" json:"practicalGrade,omitempty"`
	YearsWorkMax   *float64 `bson:"years_work_max,omitempty" json:"yearsWorkGrade,omitempty"`
	FinalMax       *float64 `bson:"final_max,omitempty" json:"finalGrade,omitempty"`
	TotalMax       *float64 `bson:"total_max,omitempty" json:"totalGrade,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"-"`
}

// ============================================================================
// Student / Doctor Models
// ============================================================================

// Student represents a learner. GPA is a denormalized hint only: every read
// path recomputes from grade records (see internal/grading).
type Student struct {
	ID             string  `bson:"_id" json:"id"`
	Code           string  `bson:"code" json:"code"`
	Name           string  `bson:"name" json:"name"`
	Email          string  `bson:"email" json:"email"`
	PhoneNumber    string  `bson:"phone_number" json:"phoneNumber"`
	Level          string  `bson:"level" json:"level"`
	Specialization string  `bson:"specialization" json:"specialization"`
	AcademicYear   string  `bson:"academic_year" json:"academic_year"`
	GPA            float64 `bson:"gpa" json:"gpa"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"-"`
}

// Doctor represents an instructor account.
type Doctor struct {
	ID           string `bson:"_id" json:"id"`
	Code         string `bson:"code" json:"code"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PhoneNumber  string `bson:"phone_number" json:"phoneNumber"`
	PasswordHash string `bson:"password_hash" json:"-"` // Never expose in JSON

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"-"`
}

// ============================================================================
// Grade Record Model
// ============================================================================

// GradeRecord is one student's performance in one subject. Total and Letter
// are derived by the scoring engine; the record is always rewritten whole.
// At most one record exists per (student, subject) pair, enforced by a
// unique index on those two fields.
type GradeRecord struct {
	ID           string  `bson:"_id" json:"id"`
	StudentID    string  `bson:"student_id" json:"student_id"`
	SubjectID    string  `bson:"subject_id" json:"subject_id"`
	Midterm      float64 `bson:"midterm" json:"midtermGrade"`
	Practical    float64 `bson:"practical" json:"practicalGrade"`
	YearsWork    float64 `bson:"years_work" json:"yearsWorkGrade"`
	Final        float64 `bson:"final" json:"finalGrade"`
	Total        float64 `bson:"total" json:"totalGrade"`
	Letter       string  `bson:"letter" json:"totalGradeChar"`
	Status       string  `bson:"status" json:"gradeStatus"`
	AcademicYear string  `bson:"academic_year" json:"academic_year"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"-"`
}

// ============================================================================
// Global Setting Model
// ============================================================================

// GlobalSetting is the singleton system configuration. CurrentSemester may
// be empty, in which case consumers fall back to a date-based default.
type GlobalSetting struct {
	ID              string `bson:"_id" json:"id"`
	ShowGrades      bool   `bson:"show_grades" json:"showGrades"`
	AcademicYear    string `bson:"academic_year" json:"academic_year"`
	CurrentSemester string `bson:"current_semester,omitempty" json:"current_semester,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"-"`
}

// ============================================================================
// Helper Methods
// ============================================================================

// GradePoints returns the grade point value for a letter grade.
func GradePoints(letter string) float64 {
	gradePoints := map[string]float64{
		GradeA:     4.0,
		GradeBPlus: 3.5,
		GradeB:     3.0,
		GradeCPlus: 2.5,
		GradeC:     2.0,
		GradeF:     0.0,
	}

	if points, exists := gradePoints[letter]; exists {
		return points
	}
	return 0.0
}

// LevelOrdinal maps a level name to 1..4. Unrecognized levels map to 1,
// which keeps malformed subjects in the first transcript slot pair instead
// of dropping them.
func LevelOrdinal(level string) int {
	switch level {
	case LevelOne:
		return 1
	case LevelTwo:
		return 2
	case LevelThree:
		return 3
	case LevelFour:
		return 4
	default:
		return 1
	}
}

// SemesterOrdinal maps a semester name to 1 or 2 (defaulting to 1).
func SemesterOrdinal(semester string) int {
	if semester == SemesterTwo {
		return 2
	}
	return 1
}

// TranscriptSlot returns the 1..8 ordinal position of a (level, semester)
// pair in the full academic record.
func TranscriptSlot(level, semester string) int {
	return (LevelOrdinal(level)-1)*2 + SemesterOrdinal(semester)
}

// IsSpecialStatus reports whether a grade status is one of the special
// incomplete/fail tags (i, i*, ff*).
func IsSpecialStatus(status string) bool {
	return status == StatusIncomplete ||
		status == StatusIncompleteSpecial ||
		status == StatusFailSpecial
}

// IsValidStatus checks a grade status against the closed status set.
func IsValidStatus(status string) bool {
	validStatuses := map[string]bool{
		StatusPass:              true,
		StatusIncomplete:        true,
		StatusIncompleteSpecial: true,
		StatusFailSpecial:       true,
		StatusOthers:            true,
	}
	return validStatuses[status]
}

// IsValidLevel checks a level name against the closed level set.
func IsValidLevel(level string) bool {
	validLevels := map[string]bool{
		LevelOne: true, LevelTwo: true, LevelThree: true, LevelFour: true,
	}
	return validLevels[level]
}

// IsValidSemester checks a semester name against the closed semester set.
func IsValidSemester(semester string) bool {
	return semester == SemesterOne || semester == SemesterTwo
}

// IsValidSpecialization checks a specialization tag.
func IsValidSpecialization(spec string) bool {
	return spec == SpecCS || spec == SpecIT
}
