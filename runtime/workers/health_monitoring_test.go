package workers

import (
	"context"
	"devchat/domain"
	"devchat/observability"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitoringWorker_Publishes_Log_Shape(t *testing.T) {
	req := require.New(t)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	// Given a log holding two messages
	chatLog := domain.NewMessageLog()
	_, err := chatLog.Append(0, []byte("abc"))
	req.NoError(err)
	_, err = chatLog.Append(0, []byte("de"))
	req.NoError(err)

	w := NewHealthMonitoringWorker(slog.Default(), metrics, chatLog, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// When the worker ran a few ticks
	req.NoError(w.Run(ctx))

	// Then the gauges reflect the log
	req.Equal(float64(2), testutil.ToFloat64(metrics.Entries))
	req.Equal(float64(5), testutil.ToFloat64(metrics.StoredBytes))
	req.GreaterOrEqual(testutil.ToFloat64(metrics.ProcessRAM), float64(0))
}
