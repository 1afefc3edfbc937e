// ============================================================================
// internal/grading/statistics.go
// Subject-level grade distributions and population GPA statistics
// ============================================================================

package grading

import (
	"context"
	"log"

	"github.com/montanaflynn/stats"

	"campusgrades/internal/shared"
	"campusgrades/internal/store"
)

// SubjectStatistics is the distribution of one subject's grades. Letter
// counts bucket by letter grade, except that F is only counted for records
// whose status is not one of the special tags; those land in StatusCounts
// instead. Failed is the F bucket plus every special status.
type SubjectStatistics struct {
	SubjectID     string             `json:"subject_id"`
	SubjectName   string             `json:"subjectName"`
	TotalStudents int                `json:"totalStudents"`
	GradeCounts   map[string]int     `json:"gradeCounts"`
	GradePercents map[string]float64 `json:"gradePercentages"`
	StatusCounts  map[string]int     `json:"statusCounts"`
	Passed        int                `json:"passed"`
	Failed        int                `json:"failed"`
	PassRate      float64            `json:"passRate"`
}

// GPAPopulationStats summarizes the credit-weighted CGPA across the whole
// student body.
type GPAPopulationStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ComputeSubjectStatistics is the stateless bucketing pass over a subject's
// records; nothing is cached between calls.
func ComputeSubjectStatistics(subject *shared.Subject, records []shared.GradeRecord) *SubjectStatistics {
	result := &SubjectStatistics{
		SubjectID:     subject.ID,
		SubjectName:   subject.Name,
		TotalStudents: len(records),
		GradeCounts: map[string]int{
			shared.GradeA: 0, shared.GradeBPlus: 0, shared.GradeB: 0,
			shared.GradeCPlus: 0, shared.GradeC: 0, shared.GradeF: 0,
		},
		StatusCounts: map[string]int{
			shared.StatusFailSpecial:       0,
			shared.StatusIncompleteSpecial: 0,
			shared.StatusIncomplete:        0,
		},
	}

	for _, record := range records {
		if shared.IsSpecialStatus(record.Status) {
			result.StatusCounts[record.Status]++
			continue
		}
		if _, ok := result.GradeCounts[record.Letter]; ok {
			result.GradeCounts[record.Letter]++
		}
	}

	result.Passed = result.GradeCounts[shared.GradeA] +
		result.GradeCounts[shared.GradeBPlus] +
		result.GradeCounts[shared.GradeB] +
		result.GradeCounts[shared.GradeCPlus] +
		result.GradeCounts[shared.GradeC]
	result.Failed = result.GradeCounts[shared.GradeF] +
		result.StatusCounts[shared.StatusFailSpecial] +
		result.StatusCounts[shared.StatusIncompleteSpecial] +
		result.StatusCounts[shared.StatusIncomplete]

	result.GradePercents = make(map[string]float64, len(result.GradeCounts))
	for letter, count := range result.GradeCounts {
		result.GradePercents[letter] = percentage(count, result.TotalStudents)
	}
	result.PassRate = percentage(result.Passed, result.TotalStudents)

	return result
}

// SubjectStatisticsFor loads a subject's records and buckets them.
func (s *Service) SubjectStatisticsFor(ctx context.Context, subjectID string) (*SubjectStatistics, error) {
	subject, err := s.subjects.Find(ctx, subjectID)
	if err != nil {
		log.Printf("Error loading subject %s: %v", subjectID, err)
		return nil, shared.Internal("failed to load subject")
	}
	if subject == nil {
		return nil, shared.NotFound("Subject not found")
	}

	records, err := s.grades.FindBySubject(ctx, subjectID)
	if err != nil {
		log.Printf("Error loading grades for subject %s: %v", subjectID, err)
		return nil, shared.Internal("failed to load grades")
	}

	return ComputeSubjectStatistics(subject, records), nil
}

// PopulationGPAStats recomputes every student's credit-weighted CGPA and
// summarizes the distribution. Students are walked page by page to keep
// memory bounded on large cohorts.
func (s *Service) PopulationGPAStats(ctx context.Context) (*GPAPopulationStats, error) {
	subjectsByID, err := s.subjectIndex(ctx)
	if err != nil {
		return nil, err
	}

	gpas := []float64{}
	for page := int64(1); ; page++ {
		studentPage, err := s.students.List(ctx, store.StudentFilter{Page: page, PerPage: 200})
		if err != nil {
			log.Printf("Error listing students: %v", err)
			return nil, shared.Internal("failed to list students")
		}
		for _, student := range studentPage.Students {
			records, err := s.grades.FindByStudent(ctx, student.ID)
			if err != nil {
				log.Printf("Error loading grades for student %s: %v", student.ID, err)
				return nil, shared.Internal("failed to load grades")
			}
			gpas = append(gpas, ComputeGPA(records, subjectsByID))
		}
		if page >= studentPage.TotalPages {
			break
		}
	}

	result := &GPAPopulationStats{Count: len(gpas)}
	if len(gpas) == 0 {
		return result, nil
	}

	result.Mean = roundedStat(stats.Mean, gpas)
	result.Median = roundedStat(stats.Median, gpas)
	result.StdDev = roundedStat(stats.StandardDeviation, gpas)
	result.Min = roundedStat(stats.Min, gpas)
	result.Max = roundedStat(stats.Max, gpas)
	return result, nil
}

func roundedStat(fn func(stats.Float64Data) (float64, error), data []float64) float64 {
	value, err := fn(data)
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(value, 2)
	if err != nil {
		return 0
	}
	return rounded
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	rounded, err := stats.Round(float64(count)/float64(total)*100, 2)
	if err != nil {
		return 0
	}
	return rounded
}
