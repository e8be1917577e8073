package workers

import (
	"context"
	"devchat/domain"
	"devchat/observability"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// StatsProvider exposes the current shape of the chat log.
type StatsProvider interface {
	Stats() domain.Stats
}

// HealthMonitoringWorker samples the daemon process and the chat log on
// every tick and publishes the values as gauges.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	metrics        *observability.Metrics
	stats          StatsProvider
	metricInterval time.Duration
	pid            int32
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	metrics *observability.Metrics,
	stats StatsProvider,
	metricInterval time.Duration,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		metrics:        metrics,
		stats:          stats,
		metricInterval: metricInterval,
		pid:            int32(os.Getpid()),
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(w.pid)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			w.sample(p)
		}
	}
}

func (w *HealthMonitoringWorker) sample(p *process.Process) {
	st := w.stats.Stats()
	w.metrics.ObserveSize(st.Count, st.Bytes)

	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		w.metrics.ProcessCPU.Set(cpu)
	}
	ram, err := p.MemoryPercent()
	if err != nil {
		w.log.Debug("Error while finding process ram usage", "err", err)
	} else {
		w.metrics.ProcessRAM.Set(float64(ram))
	}
	w.log.Debug("Health sample", "entries", st.Count, "bytes", st.Bytes, "cpu", cpu, "ram", ram)
}
