package stats

import (
	"github.com/shrimpsizemoose/semla/internal/models"
)

// RosterStats are the headline numbers on the administrator panel.
type RosterStats struct {
	Students        int `json:"students"`
	Teachers        int `json:"teachers"`
	PendingTeachers int `json:"pending_teachers"`
	Courses         int `json:"courses"`
}

func ForRoster(snap *models.Snapshot) RosterStats {
	var s RosterStats
	for _, a := range snap.Accounts {
		switch a.Role {
		case models.RoleStudent:
			s.Students++
		case models.RoleTeacher:
			s.Teachers++
			if !a.Approved {
				s.PendingTeachers++
			}
		}
	}
	s.Courses = len(snap.Courses)
	return s
}

// CourseAverage is the mean quiz percentage for one course.
type CourseAverage struct {
	CourseID   string  `json:"course_id"`
	Attempts   int     `json:"attempts"`
	AvgPercent float64 `json:"avg_percent"`
}

// CourseAverages summarizes stored quiz results per course. Results are
// read as-is; nothing here writes them.
func CourseAverages(snap *models.Snapshot) map[string]CourseAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range snap.Results {
		if r.Total <= 0 {
			continue
		}
		sums[r.CourseID] += 100 * float64(r.Score) / float64(r.Total)
		counts[r.CourseID]++
	}

	out := make(map[string]CourseAverage, len(counts))
	for id, n := range counts {
		out[id] = CourseAverage{
			CourseID:   id,
			Attempts:   n,
			AvgPercent: sums[id] / float64(n),
		}
	}
	return out
}
