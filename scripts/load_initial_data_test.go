package main

import (
	"os"
	"path/filepath"
	"testing"

	"team-builder-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yaml", `
users:
  - id: 1
    first_name: Ann
    email: ann@example.com
    gender: Female
    domain: IT
`)
	writeFile(t, dir, "extra/more_users.yaml", `
users:
  - id: 2
    first_name: Bob
    email: bob@example.com
    available: false
`)
	writeFile(t, dir, "teams.yaml", `
teams:
  - name: core
    members: [ann@example.com, bob@example.com]
`)
	writeFile(t, dir, "notes.txt", "users: not yaml")

	users, err := loadUsers(dir)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	teams, err := loadTeams(dir)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, []string{"ann@example.com", "bob@example.com"}, teams[0].Members)
}

func TestLoadUsersReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.yaml", "users: [unclosed")

	_, err := loadUsers(dir)
	assert.ErrorContains(t, err, "users.yaml")
}

func TestToUser(t *testing.T) {
	available := false
	u, err := toUser(UserData{ID: 7, FirstName: "Ann", Email: "ann@example.com", Gender: "Female", Available: &available})
	require.NoError(t, err)
	assert.Equal(t, 7, u.UserID)
	assert.Equal(t, models.GenderFemale, u.Gender)
	assert.True(t, u.ID.IsZero())
	assert.False(t, *u.Available)

	_, err = toUser(UserData{Email: "x@example.com", Gender: "female"})
	assert.Error(t, err)

	_, err = toUser(UserData{ID: 3})
	assert.Error(t, err)
}

func TestBundledSeedDataParses(t *testing.T) {
	users, err := loadUsers("data")
	require.NoError(t, err)
	assert.NotEmpty(t, users)
	for _, u := range users {
		_, err := toUser(u)
		assert.NoError(t, err)
	}
}
