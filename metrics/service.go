package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pontem-network/flashloan-loadgen/errors"
	"github.com/pontem-network/flashloan-loadgen/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Service is a background service that exposes the collected
// metrics
type Service interface {
	// Start starts exposing metrics.
	Start()

	// Stop stops exposing metrics. For push services a last push
	// is attempted so that short runs are not lost.
	Stop()
}

// New constructs a new metrics service for the configured mode.
func New(config *Config, gatherer prometheus.Gatherer, logger log.Logger) (Service, error) {
	mode := strings.ToLower(config.Mode)
	logger = logger.ForClass("metrics", "Service")

	switch mode {
	case "", metricsModeNone:
		return stubService{}, nil
	case metricsModePull:
		return newPullService(config, gatherer, logger), nil
	case metricsModePush:
		return newPushService(config, gatherer, logger)
	default:
		return nil, errors.New(errors.ErrInvalidConfig,
			fmt.Errorf("metrics: unsupported mode: '%v'", mode))
	}
}

type stubService struct{}

func (stubService) Start() {}

func (stubService) Stop() {}

// A pull service exposes metrics that Prometheus can pull.
type pullService struct {
	server *http.Server
	logger log.Logger
}

func newPullService(config *Config, gatherer prometheus.Gatherer, logger log.Logger) *pullService {
	return &pullService{
		server: &http.Server{
			Addr:           fmt.Sprintf("%s:%s", config.PullAddr, config.PullPort),
			Handler:        promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		logger: logger,
	}
}

func (s *pullService) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error(context.Background(), "metrics server stopped", log.MapFields{
				"call_type": "MetricsServeFailure",
				"addr":      s.server.Addr,
				"err":       err.Error(),
			})
		}
	}()
}

func (s *pullService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = s.server.Shutdown(ctx)
}

// A push service pushes metrics to a Prometheus push gateway.
type pushService struct {
	pusher   *push.Pusher
	interval time.Duration
	logger   log.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func newPushService(config *Config, gatherer prometheus.Gatherer, logger log.Logger) (*pushService, error) {
	for key, v := range map[string]string{
		cfgMetricsPushAddr:          config.PushAddr,
		cfgMetricsPushJobName:       config.PushJobName,
		cfgMetricsPushInstanceLabel: config.PushInstanceLabel,
	} {
		if v == "" {
			return nil, errors.New(errors.ErrInvalidConfig,
				fmt.Errorf("metrics: %s required for push mode", key))
		}
	}

	interval := config.PushInterval
	if interval <= 0 {
		interval = defaultPushInterval * time.Second
	}

	pusher := push.New(config.PushAddr, config.PushJobName).
		Grouping("instance", config.PushInstanceLabel).
		Gatherer(gatherer)

	return &pushService{
		pusher:   pusher,
		interval: interval,
		logger:   logger,
	}, nil
}

func (s *pushService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.startWorker(ctx)
}

func (s *pushService) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.cancel = nil
	s.push(context.Background())
}

func (s *pushService) push(ctx context.Context) {
	if err := s.pusher.Push(); err != nil {
		s.logger.Error(ctx, "unable to push to prometheus", log.MapFields{
			"call_type": "MetricsPushFailure",
		}, errors.New(errors.ErrMetricsPush, err))
	}
}

func (s *pushService) startWorker(ctx context.Context) {
	defer close(s.done)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-t.C:
			s.push(ctx)
		}
	}
}
