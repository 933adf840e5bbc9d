package metrics

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func getTestMetrics() (*Metrics, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return NewWithRegistry(registry, zap.NewNop()), registry
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, counter.Write(metric))
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, gauge.Write(metric))
	return metric.Gauge.GetValue()
}

func TestMetricNamesUseNamespaceAndSnakeCase(t *testing.T) {
	m, registry := getTestMetrics()

	// touch the vectors so they are exported
	m.RecordHTTPRequest("GET", "/api/tasks", 200, time.Millisecond)
	m.RecordDBQuery("select", "tasks", time.Millisecond, errors.New("boom"))
	m.RecordStatusTransition("OPEN", "IN_PROGRESS", TriggerAuto)
	m.RecordTopicToggle("DONE")
	m.AddNotificationsSent("TASK_ASSIGNED", 1)
	m.SetTasksByStatus("OPEN", 1)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	for _, f := range families {
		name := f.GetName()
		assert.True(t, strings.HasPrefix(name, namespace+"_"), name)
		assert.Equal(t, strings.ToLower(name), name)
		assert.NotContains(t, name, "-")
		assert.NotEmpty(t, f.GetHelp(), name)
	}
}

func TestBusinessCounters(t *testing.T) {
	m, _ := getTestMetrics()

	m.IncrementTaskCreated()
	m.IncrementTaskCreated()
	assert.Equal(t, 2.0, getCounterValue(t, m.TaskCreatedTotal))

	m.IncrementCommentCreated()
	assert.Equal(t, 1.0, getCounterValue(t, m.CommentCreatedTotal))

	m.RecordStatusTransition("WAITING_APPROVAL", "COMPLETED", TriggerManual)
	assert.Equal(t, 1.0, getCounterValue(t, m.StatusTransitionsTotal.WithLabelValues("WAITING_APPROVAL", "COMPLETED", TriggerManual)))
	assert.Equal(t, 0.0, getCounterValue(t, m.StatusTransitionsTotal.WithLabelValues("WAITING_APPROVAL", "COMPLETED", TriggerAuto)))

	m.AddNotificationsSent("COMMENT_ADDED", 3)
	assert.Equal(t, 3.0, getCounterValue(t, m.NotificationsSentTotal.WithLabelValues("COMMENT_ADDED")))
}

func TestBusinessGauges(t *testing.T) {
	m, _ := getTestMetrics()

	tests := []struct {
		name  string
		count int64
	}{
		{"zero", 0},
		{"one", 1},
		{"many", 4200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.SetUsersTotal(tt.count)
			m.SetTasksByStatus("OPEN", tt.count)
			assert.Equal(t, float64(tt.count), getGaugeValue(t, m.UsersTotal))
			assert.Equal(t, float64(tt.count), getGaugeValue(t, m.TasksByStatus.WithLabelValues("OPEN")))
		})
	}
}

func TestUpdateDBStats_CountsOnlyDeltas(t *testing.T) {
	m, _ := getTestMetrics()

	m.UpdateDBStats(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3, MaxOpenConnections: 25, WaitCount: 5, WaitDuration: 2 * time.Second})
	m.UpdateDBStats(sql.DBStats{OpenConnections: 4, InUse: 2, Idle: 2, MaxOpenConnections: 25, WaitCount: 7, WaitDuration: 3 * time.Second})

	assert.Equal(t, 7.0, getCounterValue(t, m.DBConnectionWaitTotal))
	assert.InDelta(t, 3.0, getCounterValue(t, m.DBConnectionWaitDuration), 0.0001)
	assert.Equal(t, 2.0, getGaugeValue(t, m.DBConnectionsInUse))
	assert.Equal(t, 25.0, getGaugeValue(t, m.DBConnectionsMax))

	// non-stats values are ignored
	assert.NotPanics(t, func() { m.UpdateDBStats("nope") })
}

func TestCategorizeStatus(t *testing.T) {
	tests := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 404: "4xx", 500: "5xx", 100: "unknown"}
	for code, want := range tests {
		assert.Equal(t, want, categorizeStatus(code), code)
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/api/ready"))
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/api/swagger/index.html"))
	assert.False(t, ShouldSkipEndpoint("/api/tasks"))
}

func TestSafeExecuteRecoversPanics(t *testing.T) {
	m, _ := getTestMetrics()
	assert.NotPanics(t, func() {
		m.safeExecute("test_panic", func() {
			panic("intentional panic for testing")
		})
	})

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.IncrementTaskCreated() })
}

func TestCollector_Collect(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, status TEXT NOT NULL)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO tasks VALUES ('a','OPEN'),('b','OPEN'),('c','COMPLETED')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO users VALUES ('u1'),('u2')`).Error)

	m, _ := getTestMetrics()
	c := NewBusinessMetricsCollector(db, m, zap.NewNop(), time.Minute)
	c.collect()

	assert.Equal(t, 2.0, getGaugeValue(t, m.TasksByStatus.WithLabelValues("OPEN")))
	assert.Equal(t, 1.0, getGaugeValue(t, m.TasksByStatus.WithLabelValues("COMPLETED")))
	assert.Equal(t, 2.0, getGaugeValue(t, m.UsersTotal))
}

func TestCollector_RecoversFromNilDB(t *testing.T) {
	m, _ := getTestMetrics()
	c := &BusinessMetricsCollector{metrics: m, logger: zap.NewNop()}
	assert.NotPanics(t, c.collect)
}
