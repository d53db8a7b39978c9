package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/store"
)

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Accounts: []models.Account{
			{ID: "1", Name: "Head Administrator", Handle: "20262025", Secret: "20262025", Role: models.RoleAdmin, Approved: true},
			{ID: "t1", Name: "Ali", Handle: "ali1", Secret: "pw1", Role: models.RoleTeacher},
		},
		Courses: []models.CoursePackage{
			{ID: "c1", TeacherID: "t1", TeacherName: "Ali", Title: "Algebra", Code: "1234", VideoURL: "https://v"},
		},
		Results: []models.QuizResult{
			{ID: "r1", StudentID: "s1", CourseID: "c1", Score: 8, Total: 10, Timestamp: 1700000000},
		},
	}
}

func TestFileStore_LoadWithoutState(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, snap, "absence of state is not an error")
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	want := testSnapshot()
	require.NoError(t, s.Persist(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_PersistOverwrites(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first := testSnapshot()
	require.NoError(t, s.Persist(first))

	second := first.Clone()
	second.Accounts = second.Accounts[:1]
	second.Courses = []models.CoursePackage{}
	require.NoError(t, s.Persist(second))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestFileStore_WritesOneFilePerCollection(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Persist(testSnapshot()))

	for _, name := range store.CollectionKeys {
		_, err := os.Stat(filepath.Join(dir, name+".json"))
		assert.NoError(t, err, "expected %s.json", name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temp files left behind")
}

func TestFileStore_RejectsUnknownRole(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	blob := `[{"id":"x","name":"N","username":"u","password":"p","role":"wizard","approved":true}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.KeyAccounts+".json"), []byte(blob), 0o644))

	_, err = s.Load()
	assert.Error(t, err)
}
