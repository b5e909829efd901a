package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/crimewatch/crimewatch-backend-go/internal/database"
	"github.com/crimewatch/crimewatch-backend-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func f64(v float64) *float64 {
	return &v
}

func TestIncidentInsertAndList(t *testing.T) {
	repo := NewIncidentRepository(testDB(t))

	first := &models.StoredIncident{
		ID:        "inc-1",
		CrimeType: "theft",
		Latitude:  f64(13.05),
		Longitude: f64(80.25),
		Date:      "2024-01-15",
		Time:      "20:00",
		CreatedAt: time.Date(2024, 1, 15, 20, 5, 0, 0, time.UTC),
	}
	second := &models.StoredIncident{
		ID:        "inc-2",
		CrimeType: "assault",
		CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Insert(first))
	require.NoError(t, repo.Insert(second))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Newest first
	listed, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "inc-2", listed[0].ID)
	assert.Equal(t, "inc-1", listed[1].ID)

	// Missing coordinates survive the round trip as nil
	assert.Nil(t, listed[0].Latitude)
	require.NotNil(t, listed[1].Latitude)
	assert.Equal(t, 13.05, *listed[1].Latitude)
	assert.Equal(t, "2024-01-15", listed[1].Date)
	assert.Equal(t, "20:00", listed[1].Time)
	assert.True(t, listed[1].CreatedAt.Equal(first.CreatedAt))

	limited, err := repo.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestIncidentListAllInsertionOrder(t *testing.T) {
	repo := NewIncidentRepository(testDB(t))

	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(&models.StoredIncident{
			ID:        id,
			CrimeType: "theft",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestIncidentDuplicateIDRejected(t *testing.T) {
	repo := NewIncidentRepository(testDB(t))

	inc := &models.StoredIncident{ID: "dup", CrimeType: "theft", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Insert(inc))
	assert.Error(t, repo.Insert(inc))
}

func TestAnalysisRunRoundTrip(t *testing.T) {
	repo := NewAnalysisRunRepository(testDB(t))

	run := &models.AnalysisRun{
		ID:             "run-1",
		GeneratedAt:    time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		TotalIncidents: 42,
		ReportJSON:     `{"total_incidents":42}`,
	}
	require.NoError(t, repo.Insert(run))

	got, err := repo.GetByID("run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, 42, got.TotalIncidents)
	assert.Equal(t, run.ReportJSON, got.ReportJSON)
	assert.True(t, got.GeneratedAt.Equal(run.GeneratedAt))
}

func TestAnalysisRunNotFound(t *testing.T) {
	repo := NewAnalysisRunRepository(testDB(t))

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
