package grading

import (
	"context"
	"testing"

	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
	"campusgrades/internal/store/storetest"
)

func TestComputeGPA(t *testing.T) {
	subjects := map[string]shared.Subject{
		"s3": {ID: "s3", CreditHours: 3},
		"s4": {ID: "s4", CreditHours: 4},
		"s0": {ID: "s0", CreditHours: 0},
	}

	t.Run("empty", func(t *testing.T) {
		if gpa := ComputeGPA(nil, subjects); gpa != 0 {
			t.Errorf("ComputeGPA(nil) = %v, want 0", gpa)
		}
	})

	t.Run("weighted", func(t *testing.T) {
		records := []shared.GradeRecord{
			{SubjectID: "s3", Letter: shared.GradeA},     // 4.0 * 3
			{SubjectID: "s4", Letter: shared.GradeBPlus}, // 3.5 * 4
		}
		// (12 + 14) / 7 = 3.714... -> 3.71
		if gpa := ComputeGPA(records, subjects); gpa != 3.71 {
			t.Errorf("ComputeGPA = %v, want 3.71", gpa)
		}
	})

	t.Run("order invariance", func(t *testing.T) {
		a := []shared.GradeRecord{
			{SubjectID: "s3", Letter: shared.GradeC},
			{SubjectID: "s4", Letter: shared.GradeA},
		}
		b := []shared.GradeRecord{a[1], a[0]}
		if ComputeGPA(a, subjects) != ComputeGPA(b, subjects) {
			t.Errorf("GPA depends on record order")
		}
	})

	t.Run("unresolved and zero-credit skipped", func(t *testing.T) {
		records := []shared.GradeRecord{
			{SubjectID: "s3", Letter: shared.GradeB},
			{SubjectID: "ghost", Letter: shared.GradeA},
			{SubjectID: "s0", Letter: shared.GradeA},
		}
		if gpa := ComputeGPA(records, subjects); gpa != 3.0 {
			t.Errorf("ComputeGPA = %v, want 3.0", gpa)
		}
	})

	t.Run("f counts as zero points", func(t *testing.T) {
		records := []shared.GradeRecord{
			{SubjectID: "s3", Letter: shared.GradeF},
			{SubjectID: "s4", Letter: shared.GradeA},
		}
		// (0*3 + 4*4) / 7 = 2.2857 -> 2.29
		if gpa := ComputeGPA(records, subjects); gpa != 2.29 {
			t.Errorf("ComputeGPA = %v, want 2.29", gpa)
		}
	})
}

func TestCurrentSemesterGPA(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{ID: "stu1", Code: "STU1"})
	subjects := storetest.NewSubjectStore(
		shared.Subject{ID: "sub1", Code: "CS101", Name: "Intro", CreditHours: 3, Level: shared.LevelOne, Semester: shared.SemesterOne},
		shared.Subject{ID: "sub2", Code: "CS102", Name: "Discrete", CreditHours: 3, Level: shared.LevelOne, Semester: shared.SemesterTwo},
	)
	grades := storetest.NewGradeStore(
		shared.GradeRecord{ID: "g1", StudentID: "stu1", SubjectID: "sub1", Letter: shared.GradeA, Status: shared.StatusPass, AcademicYear: "2026-2027"},
		shared.GradeRecord{ID: "g2", StudentID: "stu1", SubjectID: "sub2", Letter: shared.GradeC, Status: shared.StatusPass, AcademicYear: "2025-2026"},
	)

	t.Run("hidden grades short-circuit", func(t *testing.T) {
		svc := newTestService(students, subjects, grades,
			settings.Effective{AcademicYear: "2026-2027", Semester: shared.SemesterOne, ShowGrades: false})

		view, err := svc.CurrentSemesterGPA(ctx, "stu1")
		if err != nil {
			t.Fatalf("CurrentSemesterGPA failed: %v", err)
		}
		if len(view.Grades) != 0 || view.GPA != 0 || view.CGPA != 0 {
			t.Errorf("hidden grades must yield empty view, got %+v", view)
		}
	})

	t.Run("filters by year and semester", func(t *testing.T) {
		svc := newTestService(students, subjects, grades, testEffective())

		view, err := svc.CurrentSemesterGPA(ctx, "stu1")
		if err != nil {
			t.Fatalf("CurrentSemesterGPA failed: %v", err)
		}
		if len(view.Grades) != 1 || view.Grades[0].SubjectID != "sub1" {
			t.Fatalf("expected only the current-period grade, got %+v", view.Grades)
		}
		if view.Grades[0].SubjectName != "Intro" || view.Grades[0].CreditHours != 3 {
			t.Errorf("grade not enriched with subject data: %+v", view.Grades[0])
		}
		if view.GPA != 4.0 {
			t.Errorf("gpa = %v, want 4.0 (A only)", view.GPA)
		}
		// CGPA spans both records: (4*3 + 2*3) / 6 = 3.0
		if view.CGPA != 3.0 {
			t.Errorf("cgpa = %v, want 3.0", view.CGPA)
		}
		if students.GPAUpdates["stu1"] != 3.0 {
			t.Errorf("cached GPA hint not refreshed with cgpa, got %v", students.GPAUpdates["stu1"])
		}
	})

	t.Run("empty semester filters by year only", func(t *testing.T) {
		svc := newTestService(students, subjects, grades,
			settings.Effective{AcademicYear: "2025-2026", Semester: "", ShowGrades: true})

		view, err := svc.CurrentSemesterGPA(ctx, "stu1")
		if err != nil {
			t.Fatalf("CurrentSemesterGPA failed: %v", err)
		}
		if len(view.Grades) != 1 || view.Grades[0].SubjectID != "sub2" {
			t.Errorf("expected the 2025-2026 grade regardless of semester, got %+v", view.Grades)
		}
	})

	t.Run("missing student", func(t *testing.T) {
		svc := newTestService(students, subjects, grades, testEffective())
		if _, err := svc.CurrentSemesterGPA(ctx, "ghost"); !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestFullAcademicRecord(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{
		ID: "stu1", Code: "STU1", Name: "Sara Adel", Email: "sara@example.edu",
		PhoneNumber: "0110", Specialization: shared.SpecCS,
	})
	subjects := storetest.NewSubjectStore(
		shared.Subject{ID: "sub1", Code: "A1", Name: "Intro", CreditHours: 3, Level: shared.LevelOne, Semester: shared.SemesterOne},
		shared.Subject{ID: "sub2", Code: "B1", Name: "Networks", CreditHours: 4, Level: shared.LevelTwo, Semester: shared.SemesterOne},
		shared.Subject{ID: "sub3", Code: "C1", Name: "Mystery", CreditHours: 3, Level: "Unknown", Semester: shared.SemesterOne},
	)
	grades := storetest.NewGradeStore(
		shared.GradeRecord{ID: "g1", StudentID: "stu1", SubjectID: "sub1", Letter: shared.GradeA, Status: shared.StatusPass},
		shared.GradeRecord{ID: "g2", StudentID: "stu1", SubjectID: "sub2", Letter: shared.GradeB, Status: shared.StatusPass},
		shared.GradeRecord{ID: "g3", StudentID: "stu1", SubjectID: "sub3", Letter: shared.GradeC, Status: shared.StatusPass},
		shared.GradeRecord{ID: "g4", StudentID: "stu1", SubjectID: "ghost", Letter: shared.GradeA, Status: shared.StatusPass},
	)
	svc := newTestService(students, subjects, grades, testEffective())

	record, err := svc.FullAcademicRecord(ctx, "stu1")
	if err != nil {
		t.Fatalf("FullAcademicRecord failed: %v", err)
	}

	if record.Code != "STU1" || record.Name != "Sara Adel" {
		t.Errorf("student header wrong: %+v", record)
	}
	if len(record.Semesters) != shared.NumberOfTranscriptSlots {
		t.Fatalf("expected %d slots, got %d", shared.NumberOfTranscriptSlots, len(record.Semesters))
	}

	// Level One / Semester One -> slot 1; unknown level also lands in slot 1.
	slot1 := record.Semesters[0]
	if len(slot1.Subjects) != 2 {
		t.Errorf("slot 1 should hold the level-one and unknown-level subjects, got %+v", slot1.Subjects)
	}
	// Level Two / Semester One -> slot 3.
	slot3 := record.Semesters[2]
	if len(slot3.Subjects) != 1 || slot3.Subjects[0].SubjectName != "Networks" {
		t.Errorf("slot 3 should hold Networks, got %+v", slot3.Subjects)
	}
	if slot3.GPA != 3.0 {
		t.Errorf("slot 3 gpa = %v, want 3.0", slot3.GPA)
	}

	// Slot 1: A(3cr) + C(3cr) -> (12+6)/6 = 3.0. Transcript CGPA is the mean
	// of the non-zero slot GPAs: (3.0 + 3.0) / 2 = 3.0.
	if slot1.GPA != 3.0 {
		t.Errorf("slot 1 gpa = %v, want 3.0", slot1.GPA)
	}
	if record.CGPA != 3.0 {
		t.Errorf("transcript cgpa = %v, want 3.0", record.CGPA)
	}

	// Empty slots stay present with zero GPA and no entries.
	for _, i := range []int{1, 3, 4, 5, 6, 7} {
		if len(record.Semesters[i].Subjects) != 0 || record.Semesters[i].GPA != 0 {
			t.Errorf("slot %d should be empty, got %+v", i+1, record.Semesters[i])
		}
	}
}

func TestFullAcademicRecordNoGrades(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{ID: "stu1", Code: "STU1"})
	svc := newTestService(students, storetest.NewSubjectStore(), storetest.NewGradeStore(), testEffective())

	record, err := svc.FullAcademicRecord(ctx, "stu1")
	if err != nil {
		t.Fatalf("FullAcademicRecord failed: %v", err)
	}
	if record.CGPA != 0 {
		t.Errorf("cgpa with no slot GPAs = %v, want 0", record.CGPA)
	}
}
