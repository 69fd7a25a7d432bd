package service

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/availlant/channelpulse/internal/repository"
)

// RollupWorker is a periodic background job that refreshes platform-wide
// Prometheus gauges from the database.
type RollupWorker struct {
	repo     *repository.ChannelRepo
	interval time.Duration
	stopCh   chan struct{}

	channelsTracked prometheus.Gauge
	metricRows      prometheus.Gauge
	usersTracked    prometheus.Gauge
}

// NewRollupWorker creates a worker that ticks every interval and registers
// its gauges.
func NewRollupWorker(repo *repository.ChannelRepo, interval time.Duration) *RollupWorker {
	w := &RollupWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		channelsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "channelpulse_channels_tracked",
			Help: "Total channels stored across all users.",
		}),
		metricRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "channelpulse_metric_rows",
			Help: "Total daily metric rows stored.",
		}),
		usersTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "channelpulse_users_tracked",
			Help: "Distinct users with at least one stored channel.",
		}),
	}
	prometheus.MustRegister(w.channelsTracked, w.metricRows, w.usersTracked)
	return w
}

// Start begins the periodic rollup loop.
// It runs one tick immediately, then every interval.
func (w *RollupWorker) Start(ctx context.Context) {
	log.Printf("rollup-worker: starting (interval=%s)", w.interval)

	// Run once immediately on startup
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("rollup-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("rollup-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RollupWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle: count platform rows and update the gauges.
func (w *RollupWorker) tick(ctx context.Context) {
	start := time.Now()

	channels, metricRows, users, err := w.repo.PlatformStats(ctx)
	if err != nil {
		log.Printf("rollup-worker: error: %v", err)
		return
	}

	w.channelsTracked.Set(float64(channels))
	w.metricRows.Set(float64(metricRows))
	w.usersTracked.Set(float64(users))

	elapsed := time.Since(start)
	log.Printf("rollup-worker: tick complete (%d channels, %d rows, %d users, %s)",
		channels, metricRows, users, elapsed.Round(time.Millisecond))
}
