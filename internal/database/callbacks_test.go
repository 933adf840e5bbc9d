package database

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

// mockMetricsRecorder is a mock implementation of MetricsRecorder for testing
type mockMetricsRecorder struct {
	mu      sync.Mutex
	queries []queryRecord
	stats   []sql.DBStats
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, queryRecord{operation, table, duration, err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := stats.(sql.DBStats); ok {
		m.stats = append(m.stats, s)
	}
}

func (m *mockMetricsRecorder) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = nil
}

func (m *mockMetricsRecorder) statsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stats)
}

type testModel struct {
	ID        string `gorm:"type:text;primaryKey"`
	Name      string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testModel) TableName() string {
	return "test_models"
}

func setupCallbackDB(t *testing.T) (*gorm.DB, *mockMetricsRecorder) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testModel{}))

	recorder := &mockMetricsRecorder{}
	require.NoError(t, RegisterMetricsCallbacks(db, recorder))
	return db, recorder
}

func TestRegisterMetricsCallbacks_Operations(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		run       func(db *gorm.DB, row *testModel) error
		wantErr   bool
	}{
		{"create", "insert", func(db *gorm.DB, _ *testModel) error {
			return db.Create(&testModel{ID: uuid.NewString(), Name: "new"}).Error
		}, false},
		{"query", "select", func(db *gorm.DB, row *testModel) error {
			var out testModel
			return db.First(&out, "id = ?", row.ID).Error
		}, false},
		{"update", "update", func(db *gorm.DB, row *testModel) error {
			return db.Model(row).Update("Name", "updated").Error
		}, false},
		{"delete", "delete", func(db *gorm.DB, row *testModel) error {
			return db.Delete(row).Error
		}, false},
		{"raw", "raw", func(db *gorm.DB, _ *testModel) error {
			return db.Exec("UPDATE test_models SET name = ?", "raw").Error
		}, false},
		{"query miss", "select", func(db *gorm.DB, _ *testModel) error {
			var out testModel
			return db.First(&out, "id = ?", uuid.NewString()).Error
		}, true},
		{"duplicate insert", "insert", func(db *gorm.DB, row *testModel) error {
			return db.Create(&testModel{ID: row.ID, Name: "dup"}).Error
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, recorder := setupCallbackDB(t)
			row := &testModel{ID: uuid.NewString(), Name: "seed"}
			require.NoError(t, db.Create(row).Error)
			recorder.reset()

			err := tt.run(db, row)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, recorder.queries, 1)
			q := recorder.queries[0]
			assert.Equal(t, tt.operation, q.operation)
			assert.Equal(t, "test_models", q.table)
			assert.Greater(t, q.duration, time.Duration(0))
			assert.Equal(t, tt.wantErr, q.err != nil)
		})
	}
}

func TestRegisterMetricsCallbacks_Transaction(t *testing.T) {
	db, recorder := setupCallbackDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{ID: uuid.NewString(), Name: "a"}).Error; err != nil {
			return err
		}
		return tx.Create(&testModel{ID: uuid.NewString(), Name: "b"}).Error
	})
	require.NoError(t, err)

	require.Len(t, recorder.queries, 2)
	for _, q := range recorder.queries {
		assert.Equal(t, "insert", q.operation)
	}
}

func TestStartDBStatsCollector(t *testing.T) {
	db, recorder := setupCallbackDB(t)

	done := StartDBStatsCollector(db, recorder, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return recorder.statsCalls() > 0 }, time.Second, 10*time.Millisecond)
	close(done)
}
