package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"music-lab/sse"

	"github.com/shirou/gopsutil/process"
)

// TelemetryWorker periodically logs process health (CPU, RSS) together with
// the number of open push connections.
type TelemetryWorker struct {
	log      *slog.Logger
	registry *sse.Registry
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, registry *sse.Registry, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, registry: registry, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	w.log.Info("Starting telemetry worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			memInfo, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Failed to collect memory stats", "error", err)
				continue
			}
			cpuPercent, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Failed to collect cpu stats", "error", err)
				continue
			}

			w.log.Info("Health report",
				"connections", w.registry.Len(),
				"rss_bytes", memInfo.RSS,
				"cpu_percent", cpuPercent,
			)
		}
	}
}
