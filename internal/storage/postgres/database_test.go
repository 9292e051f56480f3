package postgres

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VitaminP8/tutorhub/internal/skill"
	"github.com/VitaminP8/tutorhub/internal/thought"
	"github.com/VitaminP8/tutorhub/internal/tutor"
	"github.com/VitaminP8/tutorhub/internal/user"
)

var (
	_ user.UserStorage       = (*UserPostgresStorage)(nil)
	_ skill.SkillStorage     = (*SkillPostgresStorage)(nil)
	_ thought.ThoughtStorage = (*ThoughtPostgresStorage)(nil)
	_ tutor.TutorStorage     = (*TutorPostgresStorage)(nil)
)

// setupTestDB opens a migrated in-memory SQLite database that is closed with the test.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	// every new connection would open its own empty :memory: database
	db.DB().SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")
	db.LogMode(false)
	require.NoError(t, Migrate(db), "Failed to migrate database schema")

	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "user_skills", "user_thoughts", "skills", "thoughts", "comments", "tutors", "tutor_skills"} {
		assert.True(t, db.HasTable(table), "table %s must exist", table)
	}
}

func TestCloseDBWithNilDB(t *testing.T) {
	err := CloseDB(nil, zap.NewNop())
	assert.NoError(t, err)
}

func TestCloseDB(t *testing.T) {
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	assert.NoError(t, CloseDB(db, zap.NewNop()))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want uint
		ok   bool
	}{
		{in: "1", want: 1, ok: true},
		{in: "42", want: 42, ok: true},
		{in: "0", ok: false},
		{in: "-1", ok: false},
		{in: "abc", ok: false},
		{in: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := parseID(tc.in)
		assert.Equal(t, tc.ok, ok, "parseID(%q)", tc.in)
		assert.Equal(t, tc.want, got, "parseID(%q)", tc.in)
	}
	assert.Equal(t, "42", formatID(42))
}

// Note: InitDB against a real PostgreSQL server is not covered here.
