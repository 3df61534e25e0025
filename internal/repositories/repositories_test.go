package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chronicle/internal/database"
	"chronicle/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "chronicle_test.db"),
	})
	require.NoError(t, err)
	return db
}

func TestGenerationRepository_CreateAndGet(t *testing.T) {
	repo := NewGenerationRepository(testDB(t))

	record := &models.GenerationRecord{
		SessionKey:  "sess-1",
		RepoPath:    "/tmp/project",
		CommitCount: 4,
		Provider:    "anthropic",
		ModelKey:    "anthropic/claude-3-5-sonnet-latest",
		Format:      "markdown",
		Changelog:   "## v1.0\n- Added login",
	}
	require.NoError(t, repo.Create(record))
	require.NotZero(t, record.ID)

	got, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "## v1.0\n- Added login", got.Changelog)
	require.Equal(t, 4, got.CommitCount)
}

func TestGenerationRepository_GetMissingIsNil(t *testing.T) {
	repo := NewGenerationRepository(testDB(t))

	got, err := repo.GetByID(99)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGenerationRepository_ListRecentOrdersNewestFirst(t *testing.T) {
	repo := NewGenerationRepository(testDB(t))

	for i, key := range []string{"sess-a", "sess-b", "sess-c"} {
		rec := &models.GenerationRecord{
			SessionKey:  key,
			RepoPath:    "/tmp/project",
			CommitCount: 1,
			Provider:    "anthropic",
			Format:      "markdown",
			Changelog:   "entry",
			CreatedAt:   time.Date(2025, 6, 1+i, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.Create(rec))
	}

	records, err := repo.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "sess-c", records[0].SessionKey)
	require.Equal(t, "sess-b", records[1].SessionKey)
}

func TestGenerationRepository_DeleteByID(t *testing.T) {
	repo := NewGenerationRepository(testDB(t))

	record := &models.GenerationRecord{
		SessionKey:  "sess-del",
		RepoPath:    "/tmp/project",
		CommitCount: 1,
		Provider:    "anthropic",
		Format:      "plain",
		Changelog:   "entry",
	}
	require.NoError(t, repo.Create(record))
	require.NoError(t, repo.DeleteByID(record.ID))

	got, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestModelSettingRepository_UpsertIsIdempotent(t *testing.T) {
	repo := NewModelSettingRepository(testDB(t))

	_, err := repo.Upsert("anthropic/claude-3-5-sonnet-latest", "anthropic", true)
	require.NoError(t, err)
	_, err = repo.Upsert("anthropic/claude-3-5-sonnet-latest", "anthropic", false)
	require.NoError(t, err)

	settings, err := repo.List()
	require.NoError(t, err)
	require.Len(t, settings, 1)
	require.False(t, settings[0].Enabled)

	got, err := repo.GetByKey("anthropic/claude-3-5-sonnet-latest")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.False(t, got.Enabled)
}

func TestModelSettingRepository_GetMissingIsNil(t *testing.T) {
	repo := NewModelSettingRepository(testDB(t))

	got, err := repo.GetByKey("unknown/model")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestModelSettingRepository_Validation(t *testing.T) {
	repo := NewModelSettingRepository(testDB(t))

	_, err := repo.Upsert("", "anthropic", true)
	require.Error(t, err)
	_, err = repo.Upsert("anthropic/x", "", true)
	require.Error(t, err)
	_, err = repo.GetByKey("")
	require.Error(t, err)
}
