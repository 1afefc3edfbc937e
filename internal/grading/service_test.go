package grading

import (
	"context"
	"testing"

	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
	"campusgrades/internal/store/storetest"
)

type fixedSettings struct {
	eff settings.Effective
}

func (f fixedSettings) Effective(ctx context.Context) (settings.Effective, error) {
	return f.eff, nil
}

func newTestService(students *storetest.StudentStore, subjects *storetest.SubjectStore, grades *storetest.GradeStore, eff settings.Effective) *Service {
	return NewService(students, subjects, grades, fixedSettings{eff: eff})
}

func testEffective() settings.Effective {
	return settings.Effective{AcademicYear: "2026-2027", Semester: shared.SemesterOne, ShowGrades: true}
}

func TestCreateGrade(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{ID: "stu1", Code: "STU1"})
	subjects := storetest.NewSubjectStore(shared.Subject{ID: "sub1", Code: "CS101", CreditHours: 3})
	grades := storetest.NewGradeStore()
	svc := newTestService(students, subjects, grades, testEffective())

	req := GradeRequest{
		Components: Components{Midterm: 18, Practical: 13, YearsWork: 14, Final: 42},
		Status:     shared.StatusPass,
	}

	record, err := svc.CreateGrade(ctx, "stu1", "sub1", req)
	if err != nil {
		t.Fatalf("CreateGrade failed: %v", err)
	}
	if record.Total != 87 || record.Letter != shared.GradeA {
		t.Errorf("derived total/letter = %v/%q, want 87/A", record.Total, record.Letter)
	}
	if record.AcademicYear != "2026-2027" {
		t.Errorf("academic year = %q, want stamped from effective settings", record.AcademicYear)
	}

	t.Run("duplicate is conflict without mutation", func(t *testing.T) {
		before := grades.All()
		_, err := svc.CreateGrade(ctx, "stu1", "sub1", GradeRequest{
			Components: Components{Midterm: 1},
			Status:     shared.StatusPass,
		})
		if !shared.IsCode(err, shared.CodeConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		after := grades.All()
		if len(after) != len(before) || after[0].Total != 87 {
			t.Errorf("existing record mutated on conflicting create: %+v", after)
		}
	})

	t.Run("missing student", func(t *testing.T) {
		_, err := svc.CreateGrade(ctx, "ghost", "sub1", req)
		if !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := svc.CreateGrade(ctx, "stu1", "ghost", req)
		if !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestCreateGradeRejectsOverCeiling(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{ID: "stu1"})
	subjects := storetest.NewSubjectStore(shared.Subject{
		ID: "sub1", CreditHours: 3, MidtermMax: floatPtr(20),
	})
	grades := storetest.NewGradeStore()
	svc := newTestService(students, subjects, grades, testEffective())

	_, err := svc.CreateGrade(ctx, "stu1", "sub1", GradeRequest{
		Components: Components{Midterm: 30},
		Status:     shared.StatusPass,
	})
	if !shared.IsCode(err, shared.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(grades.All()) != 0 {
		t.Errorf("rejected create must not persist a record")
	}
}

func TestUpdateGradeRewritesWhole(t *testing.T) {
	ctx := context.Background()
	students := storetest.NewStudentStore(shared.Student{ID: "stu1"})
	subjects := storetest.NewSubjectStore(shared.Subject{ID: "sub1", CreditHours: 3})
	grades := storetest.NewGradeStore(shared.GradeRecord{
		ID: "g1", StudentID: "stu1", SubjectID: "sub1",
		Midterm: 18, Practical: 13, YearsWork: 14, Final: 42,
		Total: 87, Letter: shared.GradeA, Status: shared.StatusPass,
		AcademicYear: "2025-2026",
	})
	svc := newTestService(students, subjects, grades, testEffective())

	record, err := svc.UpdateGrade(ctx, "stu1", "sub1", GradeRequest{
		Components: Components{Midterm: 10, Practical: 10, YearsWork: 10, Final: 20},
		Status:     shared.StatusPass,
	})
	if err != nil {
		t.Fatalf("UpdateGrade failed: %v", err)
	}
	if record.Total != 50 || record.Letter != shared.GradeC {
		t.Errorf("recomputed total/letter = %v/%q, want 50/C", record.Total, record.Letter)
	}
	if record.AcademicYear != "2026-2027" {
		t.Errorf("academic year not refreshed, got %q", record.AcademicYear)
	}

	t.Run("absent components write as zero", func(t *testing.T) {
		record, err := svc.UpdateGrade(ctx, "stu1", "sub1", GradeRequest{
			Components: Components{Final: 55},
			Status:     shared.StatusPass,
		})
		if err != nil {
			t.Fatalf("UpdateGrade failed: %v", err)
		}
		if record.Midterm != 0 || record.Practical != 0 || record.YearsWork != 0 {
			t.Errorf("components not rewritten whole: %+v", record)
		}
		if record.Total != 55 || record.Letter != shared.GradeC {
			t.Errorf("total/letter = %v/%q, want 55/C", record.Total, record.Letter)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := svc.UpdateGrade(ctx, "stu1", "ghost", GradeRequest{Status: shared.StatusPass})
		if !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestGetGrade(t *testing.T) {
	ctx := context.Background()
	grades := storetest.NewGradeStore(shared.GradeRecord{
		ID: "g1", StudentID: "stu1", SubjectID: "sub1", Total: 87, Letter: shared.GradeA,
	})
	svc := newTestService(storetest.NewStudentStore(), storetest.NewSubjectStore(), grades, testEffective())

	record, err := svc.GetGrade(ctx, "stu1", "sub1")
	if err != nil {
		t.Fatalf("GetGrade failed: %v", err)
	}
	if record.Letter != shared.GradeA {
		t.Errorf("letter = %q, want A", record.Letter)
	}

	if _, err := svc.GetGrade(ctx, "stu1", "ghost"); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
