// Command demo-exporter serves a small, changing set of metrics for trying
// promtui locally:
//
//	go run ./cmd/demo-exporter &
//	go run ./cmd/promtui localhost:8080/metrics
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/promtui/internal/logger"
	"github.com/spf13/cobra"
)

type exporter struct {
	registry        *prometheus.Registry
	requestsTotal   prometheus.Counter
	requestsByCode  *prometheus.CounterVec
	requestDuration prometheus.Histogram
	inFlight        prometheus.Gauge
}

func newExporter(withRuntime bool) *exporter {
	e := &exporter{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests",
		}),
		requestsByCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "requests_by_code_total",
			Help: "Requests partitioned by status code",
		}, []string{"code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Duration of requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "requests_in_flight",
			Help: "Requests currently being served",
		}),
	}

	e.registry.MustRegister(e.requestsTotal, e.requestsByCode, e.requestDuration, e.inFlight)
	if withRuntime {
		e.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return e
}

// simulate records one fake request.
func (e *exporter) simulate(rng *rand.Rand) {
	e.requestsTotal.Inc()

	code := "200"
	if rng.Intn(10) == 0 {
		code = "500"
	}
	e.requestsByCode.WithLabelValues(code).Inc()
	e.requestDuration.Observe(rng.ExpFloat64() / 10)
	e.inFlight.Set(float64(rng.Intn(8)))
}

func (e *exporter) run(ctx context.Context, interval time.Duration) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.simulate(rng)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.simulate(rng)
		}
	}
}

func (e *exporter) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	}))
	return mux
}

func newRootCmd() *cobra.Command {
	var (
		addr        string
		interval    time.Duration
		withRuntime bool
	)

	cmd := &cobra.Command{
		Use:          "demo-exporter",
		Short:        "Serve sample Prometheus metrics on /metrics",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}
			return serve(cmd.Context(), addr, interval, withRuntime)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "how often a fake request is recorded")
	cmd.Flags().BoolVar(&withRuntime, "runtime", true, "also export Go runtime and process metrics")
	return cmd
}

func serve(ctx context.Context, addr string, interval time.Duration, withRuntime bool) error {
	log := logger.NewEnvLogger("[demo-exporter]")
	e := newExporter(withRuntime)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go e.run(ctx, interval)

	srv := &http.Server{
		Addr:              addr,
		Handler:           e.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("serving metrics on http://%s/metrics", displayAddr(addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
