package store

import (
	"encoding/json"
	"fmt"

	"github.com/shrimpsizemoose/semla/internal/models"
)

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeRedis    DatabaseType = "redis"
	DBTypeFile     DatabaseType = "file"
)

// Collection value names, kept identical to the storage keys of the
// platform this replaces so an exported dump stays recognizable.
const (
	KeyAccounts = "platform_users"
	KeyCourses  = "platform_courses"
	KeyResults  = "platform_results"
)

var CollectionKeys = []string{KeyAccounts, KeyCourses, KeyResults}

// EncodeSnapshot serializes each collection under its value name. Nil
// slices encode as empty arrays so a round-trip stays observably equal.
func EncodeSnapshot(snap *models.Snapshot) (map[string][]byte, error) {
	collections := map[string]any{
		KeyAccounts: orEmptyAccounts(snap.Accounts),
		KeyCourses:  orEmptyCourses(snap.Courses),
		KeyResults:  orEmptyResults(snap.Results),
	}

	out := make(map[string][]byte, len(collections))
	for name, value := range collections {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// DecodeCollection fills the named collection of snap from its
// serialized form. Unknown value names are ignored so an older blob
// next to newer ones does not break a load.
func DecodeCollection(snap *models.Snapshot, name string, data []byte) error {
	var err error
	switch name {
	case KeyAccounts:
		err = json.Unmarshal(data, &snap.Accounts)
	case KeyCourses:
		err = json.Unmarshal(data, &snap.Courses)
	case KeyResults:
		err = json.Unmarshal(data, &snap.Results)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func orEmptyAccounts(in []models.Account) []models.Account {
	if in == nil {
		return []models.Account{}
	}
	return in
}

func orEmptyCourses(in []models.CoursePackage) []models.CoursePackage {
	if in == nil {
		return []models.CoursePackage{}
	}
	return in
}

func orEmptyResults(in []models.QuizResult) []models.QuizResult {
	if in == nil {
		return []models.QuizResult{}
	}
	return in
}
