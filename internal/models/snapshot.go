package models

// Snapshot is the full persisted state: one coherent copy of all three
// collections. Every mutation anywhere in the platform is a
// read-modify-write of a whole snapshot.
type Snapshot struct {
	Accounts []Account       `json:"accounts"`
	Courses  []CoursePackage `json:"courses"`
	Results  []QuizResult    `json:"results"`
}

// SeedSnapshot is the state used when the durable store is empty: the
// two built-in administrators, no courses, no results.
func SeedSnapshot() *Snapshot {
	return &Snapshot{
		Accounts: SeedAccounts(),
		Courses:  []CoursePackage{},
		Results:  []QuizResult{},
	}
}

func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Accounts: make([]Account, len(s.Accounts)),
		Courses:  make([]CoursePackage, len(s.Courses)),
		Results:  make([]QuizResult, len(s.Results)),
	}
	copy(out.Accounts, s.Accounts)
	copy(out.Courses, s.Courses)
	copy(out.Results, s.Results)
	return out
}
