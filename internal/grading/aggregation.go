// ============================================================================
// internal/grading/aggregation.go
// GPA/CGPA aggregation: current-semester view and full academic record
// ============================================================================

package grading

import (
	"context"
	"log"

	"github.com/montanaflynn/stats"

	"campusgrades/internal/shared"
)

// GradeView is one grade record enriched with the subject it belongs to.
type GradeView struct {
	SubjectID    string  `json:"subject_id"`
	SubjectName  string  `json:"subjectName"`
	CreditHours  int32   `json:"creditHours"`
	Midterm      float64 `json:"midtermGrade"`
	Practical    float64 `json:"practicalGrade"`
	YearsWork    float64 `json:"yearsWorkGrade"`
	Final        float64 `json:"finalGrade"`
	Total        float64 `json:"totalGrade"`
	Letter       string  `json:"totalGradeChar"`
	Status       string  `json:"gradeStatus"`
	AcademicYear string  `json:"academic_year"`
}

// GradesGPAView is the student-facing current-semester view: the grades of
// the effective academic period, the GPA over those, and the CGPA over the
// student's entire history.
type GradesGPAView struct {
	Grades []GradeView `json:"grades"`
	GPA    float64     `json:"gpa"`
	CGPA   float64     `json:"cgpa"`
}

// TranscriptEntry is one subject line inside a transcript slot.
type TranscriptEntry struct {
	SubjectName string `json:"subjectName"`
	GradeStatus string `json:"gradeStatus"`
	LetterGrade string `json:"letterGrade"`
}

// TranscriptSlot is one of the eight fixed (level, semester) positions of
// the full academic record.
type TranscriptSlot struct {
	Semester int               `json:"semester"` // 1..8
	Level    string            `json:"level"`
	Subjects []TranscriptEntry `json:"subjects"`
	GPA      float64           `json:"gpa"`
}

// AcademicRecordView is the admin-facing examination results sheet.
type AcademicRecordView struct {
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	PhoneNumber    string           `json:"phoneNumber"`
	Specialization string           `json:"specialization"`
	CGPA           float64          `json:"cgpa"`
	Semesters      []TranscriptSlot `json:"semesters"`
}

// ComputeGPA is the single credit-weighted GPA implementation. Records whose
// subject cannot be resolved or whose subject carries non-positive credit
// hours are skipped. The result is rounded to two decimals; no countable
// credits yields 0.
func ComputeGPA(records []shared.GradeRecord, subjectsByID map[string]shared.Subject) float64 {
	var points, credits float64
	for _, record := range records {
		subject, ok := subjectsByID[record.SubjectID]
		if !ok || subject.CreditHours <= 0 {
			continue
		}
		points += shared.GradePoints(record.Letter) * float64(subject.CreditHours)
		credits += float64(subject.CreditHours)
	}
	if credits == 0 {
		return 0
	}
	rounded, err := stats.Round(points/credits, 2)
	if err != nil {
		return 0
	}
	return rounded
}

// CurrentSemesterGPA builds the student's grades-and-GPA view for the
// effective academic period. When grades are hidden the view is empty and
// no grade data is queried at all.
func (s *Service) CurrentSemesterGPA(ctx context.Context, studentID string) (*GradesGPAView, error) {
	student, err := s.students.Find(ctx, studentID)
	if err != nil {
		log.Printf("Error loading student %s: %v", studentID, err)
		return nil, shared.Internal("failed to load student")
	}
	if student == nil {
		return nil, shared.NotFound("Student not found")
	}

	eff, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}
	if !eff.ShowGrades {
		return &GradesGPAView{Grades: []GradeView{}, GPA: 0, CGPA: 0}, nil
	}

	records, err := s.grades.FindByStudent(ctx, studentID)
	if err != nil {
		log.Printf("Error loading grades for student %s: %v", studentID, err)
		return nil, shared.Internal("failed to load grades")
	}

	subjectsByID, err := s.subjectIndex(ctx)
	if err != nil {
		return nil, err
	}

	current := []shared.GradeRecord{}
	view := &GradesGPAView{Grades: []GradeView{}}
	for _, record := range records {
		if record.AcademicYear != eff.AcademicYear {
			continue
		}
		subject, ok := subjectsByID[record.SubjectID]
		if !ok {
			continue
		}
		if eff.Semester != "" && subject.Semester != eff.Semester {
			continue
		}
		current = append(current, record)
		view.Grades = append(view.Grades, GradeView{
			SubjectID:    record.SubjectID,
			SubjectName:  subject.Name,
			CreditHours:  subject.CreditHours,
			Midterm:      record.Midterm,
			Practical:    record.Practical,
			YearsWork:    record.YearsWork,
			Final:        record.Final,
			Total:        record.Total,
			Letter:       record.Letter,
			Status:       record.Status,
			AcademicYear: record.AcademicYear,
		})
	}

	view.GPA = ComputeGPA(current, subjectsByID)
	view.CGPA = ComputeGPA(records, subjectsByID)

	// Refresh the cached hint; the view itself never reads it.
	if err := s.students.UpdateGPA(ctx, studentID, view.CGPA); err != nil {
		log.Printf("Warning: failed to refresh cached GPA for student %s: %v", studentID, err)
	}

	return view, nil
}

// FullAcademicRecord builds the eight-slot transcript. Each slot covers one
// (level, semester) pair: slot = (levelOrdinal-1)*2 + semesterOrdinal, with
// unrecognized levels landing in slot 1 rather than disappearing. The
// transcript CGPA is the arithmetic mean of the non-zero slot GPAs, which is
// deliberately not the same number as the credit-weighted CGPA of the
// current-semester view.
func (s *Service) FullAcademicRecord(ctx context.Context, studentID string) (*AcademicRecordView, error) {
	student, err := s.students.Find(ctx, studentID)
	if err != nil {
		log.Printf("Error loading student %s: %v", studentID, err)
		return nil, shared.Internal("failed to load student")
	}
	if student == nil {
		return nil, shared.NotFound("Student not found")
	}

	records, err := s.grades.FindByStudent(ctx, studentID)
	if err != nil {
		log.Printf("Error loading grades for student %s: %v", studentID, err)
		return nil, shared.Internal("failed to load grades")
	}

	subjectsByID, err := s.subjectIndex(ctx)
	if err != nil {
		return nil, err
	}

	slotRecords := make([][]shared.GradeRecord, shared.NumberOfTranscriptSlots)
	for _, record := range records {
		subject, ok := subjectsByID[record.SubjectID]
		if !ok {
			continue
		}
		slot := shared.TranscriptSlot(subject.Level, subject.Semester)
		slotRecords[slot-1] = append(slotRecords[slot-1], record)
	}

	levels := []string{shared.LevelOne, shared.LevelTwo, shared.LevelThree, shared.LevelFour}
	slots := make([]TranscriptSlot, 0, shared.NumberOfTranscriptSlots)
	slotGPAs := []float64{}
	for i := 0; i < shared.NumberOfTranscriptSlots; i++ {
		entries := []TranscriptEntry{}
		for _, record := range slotRecords[i] {
			subject := subjectsByID[record.SubjectID]
			entries = append(entries, TranscriptEntry{
				SubjectName: subject.Name,
				GradeStatus: record.Status,
				LetterGrade: record.Letter,
			})
		}
		gpa := ComputeGPA(slotRecords[i], subjectsByID)
		if gpa != 0 {
			slotGPAs = append(slotGPAs, gpa)
		}
		slots = append(slots, TranscriptSlot{
			Semester: i + 1,
			Level:    levels[i/2],
			Subjects: entries,
			GPA:      gpa,
		})
	}

	cgpa := 0.0
	if len(slotGPAs) > 0 {
		mean, err := stats.Mean(slotGPAs)
		if err == nil {
			if cgpa, err = stats.Round(mean, 2); err != nil {
				cgpa = 0
			}
		}
	}

	return &AcademicRecordView{
		Code:           student.Code,
		Name:           student.Name,
		Email:          student.Email,
		PhoneNumber:    student.PhoneNumber,
		Specialization: student.Specialization,
		CGPA:           cgpa,
		Semesters:      slots,
	}, nil
}

// subjectIndex loads every subject keyed by ID. The subject catalog is small
// and read-heavy, so one query per view beats a query per record.
func (s *Service) subjectIndex(ctx context.Context) (map[string]shared.Subject, error) {
	subjects, err := s.subjects.ListAll(ctx)
	if err != nil {
		log.Printf("Error loading subjects: %v", err)
		return nil, shared.Internal("failed to load subjects")
	}
	byID := make(map[string]shared.Subject, len(subjects))
	for _, subject := range subjects {
		byID[subject.ID] = subject
	}
	return byID, nil
}
