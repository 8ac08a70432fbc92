package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	promclient "github.com/prometheus/client_golang/prometheus"
)

// Observer exports pipeline metrics to Prometheus.
type Observer struct {
	stageDuration *promclient.HistogramVec
	stageFailures *promclient.CounterVec
	verdicts      *promclient.CounterVec
	uploadedBytes *promclient.CounterVec
}

// NewObserver registers the pipeline collectors on reg.
// Collectors already registered under the same name are reused.
func NewObserver(namespace string, reg promclient.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = "media_pipeline"
	}
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	stageDuration, err := register(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each orchestration stage.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"stage", "status"}))
	if err != nil {
		return nil, fmt.Errorf("register stage histogram: %w", err)
	}

	stageFailures, err := register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "stage_failures_total",
		Help:      "Count of failed orchestration stages by error kind.",
	}, []string{"stage", "kind"}))
	if err != nil {
		return nil, fmt.Errorf("register stage failures counter: %w", err)
	}

	verdicts, err := register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_verdicts_total",
		Help:      "Count of moderation verdicts by media kind.",
	}, []string{"kind", "verdict"}))
	if err != nil {
		return nil, fmt.Errorf("register verdicts counter: %w", err)
	}

	uploadedBytes, err := register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Cumulative payload size published to object storage.",
	}, []string{"kind"}))
	if err != nil {
		return nil, fmt.Errorf("register uploaded bytes counter: %w", err)
	}

	return &Observer{
		stageDuration: stageDuration,
		stageFailures: stageFailures,
		verdicts:      verdicts,
		uploadedBytes: uploadedBytes,
	}, nil
}

func register[C promclient.Collector](reg promclient.Registerer, collector C) (C, error) {
	if err := reg.Register(collector); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

// RecordStage tracks the duration of stage and counts its failure by error kind
func (o *Observer) RecordStage(stage string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		o.stageFailures.WithLabelValues(stage, string(domain.KindOf(err))).Inc()
	}
	o.stageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

func (o *Observer) RecordVerdict(kind domain.MediaKind, verdict domain.ModerationVerdict) {
	if o == nil {
		return
	}
	label := "clean"
	if verdict.Inappropriate {
		label = "inappropriate"
	}
	o.verdicts.WithLabelValues(string(kind), label).Inc()
}

func (o *Observer) RecordUpload(kind domain.MediaKind, sizeBytes int64) {
	if o == nil || sizeBytes <= 0 {
		return
	}
	o.uploadedBytes.WithLabelValues(string(kind)).Add(float64(sizeBytes))
}

var _ port.PipelineObserver = (*Observer)(nil)

// NopObserver discards all telemetry
type NopObserver struct{}

func (NopObserver) RecordStage(string, time.Duration, error)                  {}
func (NopObserver) RecordVerdict(domain.MediaKind, domain.ModerationVerdict) {}
func (NopObserver) RecordUpload(domain.MediaKind, int64)                     {}

var _ port.PipelineObserver = NopObserver{}
