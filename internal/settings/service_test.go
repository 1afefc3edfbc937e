package settings

import (
	"context"
	"testing"
	"time"

	"campusgrades/internal/shared"
	"campusgrades/internal/store/storetest"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func boolPtr(v bool) *bool { return &v }

func TestDefaultSemester(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, shared.SemesterTwo},
		{time.March, shared.SemesterTwo},
		{time.May, shared.SemesterTwo},
		{time.June, ""},
		{time.July, ""},
		{time.August, ""},
		{time.September, shared.SemesterOne},
		{time.November, shared.SemesterOne},
		{time.December, shared.SemesterOne},
	}
	for _, tc := range cases {
		if got := DefaultSemester(fixedClock(tc.month)()); got != tc.want {
			t.Errorf("DefaultSemester(%v) = %q, want %q", tc.month, got, tc.want)
		}
	}
}

func TestEffectiveWithoutSetting(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceWithClock(storetest.NewSettingStore(nil), storetest.NewStudentStore(), fixedClock(time.October))

	eff, err := svc.Effective(ctx)
	if err != nil {
		t.Fatalf("Effective failed: %v", err)
	}
	if !eff.ShowGrades {
		t.Errorf("absent setting must fail open on visibility")
	}
	if eff.AcademicYear != "2026-2027" {
		t.Errorf("academic year = %q, want 2026-2027", eff.AcademicYear)
	}
	if eff.Semester != shared.SemesterOne {
		t.Errorf("semester = %q, want One (October)", eff.Semester)
	}
}

func TestEffectiveWithSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit false fails closed", func(t *testing.T) {
		store := storetest.NewSettingStore(&shared.GlobalSetting{
			ID: "set1", ShowGrades: false, AcademicYear: "2026-2027", CurrentSemester: shared.SemesterOne,
		})
		svc := NewServiceWithClock(store, storetest.NewStudentStore(), fixedClock(time.October))

		eff, err := svc.Effective(ctx)
		if err != nil {
			t.Fatalf("Effective failed: %v", err)
		}
		if eff.ShowGrades {
			t.Errorf("explicit ShowGrades=false must fail closed")
		}
	})

	t.Run("admin semester overrides calendar", func(t *testing.T) {
		store := storetest.NewSettingStore(&shared.GlobalSetting{
			ID: "set1", ShowGrades: true, AcademicYear: "2026-2027", CurrentSemester: shared.SemesterTwo,
		})
		// October would default to One; the stored Two wins.
		svc := NewServiceWithClock(store, storetest.NewStudentStore(), fixedClock(time.October))

		eff, err := svc.Effective(ctx)
		if err != nil {
			t.Fatalf("Effective failed: %v", err)
		}
		if eff.Semester != shared.SemesterTwo {
			t.Errorf("semester = %q, want stored Two", eff.Semester)
		}
	})

	t.Run("unset semester falls back to calendar", func(t *testing.T) {
		store := storetest.NewSettingStore(&shared.GlobalSetting{
			ID: "set1", ShowGrades: true, AcademicYear: "2026-2027",
		})
		svc := NewServiceWithClock(store, storetest.NewStudentStore(), fixedClock(time.February))

		eff, err := svc.Effective(ctx)
		if err != nil {
			t.Fatalf("Effective failed: %v", err)
		}
		if eff.Semester != shared.SemesterTwo {
			t.Errorf("semester = %q, want Two (February)", eff.Semester)
		}
	})

	t.Run("summer has no semester", func(t *testing.T) {
		store := storetest.NewSettingStore(&shared.GlobalSetting{
			ID: "set1", ShowGrades: true, AcademicYear: "2026-2027",
		})
		svc := NewServiceWithClock(store, storetest.NewStudentStore(), fixedClock(time.July))

		eff, err := svc.Effective(ctx)
		if err != nil {
			t.Fatalf("Effective failed: %v", err)
		}
		if eff.Semester != "" {
			t.Errorf("semester = %q, want unset in July", eff.Semester)
		}
	})
}

func TestGetSetting(t *testing.T) {
	ctx := context.Background()

	svc := NewService(storetest.NewSettingStore(nil), storetest.NewStudentStore())
	if _, err := svc.Get(ctx); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found with no setting, got %v", err)
	}

	svc = NewService(storetest.NewSettingStore(&shared.GlobalSetting{ID: "set1", AcademicYear: "2026-2027"}), storetest.NewStudentStore())
	setting, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if setting.AcademicYear != "2026-2027" {
		t.Errorf("academic year = %q", setting.AcademicYear)
	}
}

func TestUpdateSettingCascadesAcademicYear(t *testing.T) {
	ctx := context.Background()
	settingStore := storetest.NewSettingStore(&shared.GlobalSetting{
		ID: "set1", ShowGrades: true, AcademicYear: "2025-2026", CurrentSemester: shared.SemesterOne,
	})
	students := storetest.NewStudentStore(
		shared.Student{ID: "stu1", Code: "STU1", AcademicYear: "2025-2026"},
		shared.Student{ID: "stu2", Code: "STU2", AcademicYear: "2025-2026"},
	)
	svc := NewService(settingStore, students)

	req := UpsertSettingRequest{
		ShowGrades:      boolPtr(true),
		AcademicYear:    "2026-2027",
		CurrentSemester: shared.SemesterOne,
	}
	setting, err := svc.Update(ctx, "set1", req)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if setting.AcademicYear != "2026-2027" {
		t.Errorf("academic year = %q, want 2026-2027", setting.AcademicYear)
	}
	if len(students.BulkYears) != 1 || students.BulkYears[0] != "2026-2027" {
		t.Errorf("expected one cascade to 2026-2027, got %v", students.BulkYears)
	}

	t.Run("unchanged year does not cascade", func(t *testing.T) {
		if _, err := svc.Update(ctx, "set1", req); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if len(students.BulkYears) != 1 {
			t.Errorf("cascade fired on unchanged year: %v", students.BulkYears)
		}
	})

	t.Run("missing setting", func(t *testing.T) {
		if _, err := svc.Update(ctx, "ghost", req); !shared.IsCode(err, shared.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestDeleteSetting(t *testing.T) {
	ctx := context.Background()
	settingStore := storetest.NewSettingStore(&shared.GlobalSetting{ID: "set1"})
	svc := NewService(settingStore, storetest.NewStudentStore())

	if err := svc.Delete(ctx, "set1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, "set1"); !shared.IsCode(err, shared.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
