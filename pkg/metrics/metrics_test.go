package metrics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncrementMutation(t *testing.T) {
	before := testutil.ToFloat64(CRMMutations.WithLabelValues("lead", "created"))
	IncrementMutation("lead", "created")
	IncrementMutation("lead", "created")
	assert.Equal(t, before+2, testutil.ToFloat64(CRMMutations.WithLabelValues("lead", "created")))
}

func TestTimeDBObserves(t *testing.T) {
	before := testutil.CollectAndCount(DBQueryDuration)
	done := TimeDB("select", "metrics_test_table")
	time.Sleep(time.Millisecond)
	done()
	assert.Equal(t, before+1, testutil.CollectAndCount(DBQueryDuration))
}

func TestRecordHTTPRequestDuration(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/api/v1/leads", "200", 5*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 1)
}

func TestPoolGauges(t *testing.T) {
	SetDBPoolStats(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3})
	assert.Equal(t, 4.0, testutil.ToFloat64(DBConnections.WithLabelValues("open")))
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnections.WithLabelValues("idle")))

	SetWebSocketClients(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(WebSocketClients))
}
