package tracing

import (
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/integrations/ocsql"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/docspace/docspace/config"
	"github.com/docspace/docspace/pkg/logger"
)

// Init configures sampling and exporters. The returned handler serves
// prometheus metrics and is nil when that exporter is disabled.
func Init(cfg *config.TracingConfig, log logger.Logger) (http.Handler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	switch cfg.TraceExporter {
	case "jaeger":
		if err := initJaegerExporter(cfg); err != nil {
			return nil, err
		}
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return nil, fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return nil, fmt.Errorf("failed to register database views: %w", err)
	}

	var metrics http.Handler
	switch cfg.MetricsExporter {
	case "prometheus":
		pe, err := initPrometheusExporter(cfg, log)
		if err != nil {
			return nil, err
		}
		metrics = pe
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", cfg.MetricsExporter)
	}

	log.WithField("trace_exporter", cfg.TraceExporter).
		WithField("metrics_exporter", cfg.MetricsExporter).
		Info("OpenCensus initialized")
	return metrics, nil
}

func initJaegerExporter(cfg *config.TracingConfig) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("jaeger endpoint is required for jaeger exporter")
	}
	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create jaeger exporter: %w", err)
	}
	trace.RegisterExporter(je)
	return nil
}

func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) (*prometheus.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: sanitizeNamespace(cfg.ServiceName),
		OnError: func(err error) {
			log.WithField("error", err.Error()).Warn("Prometheus exporter error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	view.RegisterExporter(pe)
	return pe, nil
}

// sanitizeNamespace maps a service name to a valid prometheus namespace
func sanitizeNamespace(name string) string {
	out := []rune(name)
	for i, r := range out {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' && i > 0) {
			out[i] = '_'
		}
	}
	return string(out)
}

// RegisterDriver wraps a database/sql driver with ocsql spans
func RegisterDriver(driverName string) (string, error) {
	wrapped, err := ocsql.Register(driverName, ocsql.WithAllTraceOptions())
	if err != nil {
		return "", fmt.Errorf("failed to register traced driver: %w", err)
	}
	return wrapped, nil
}
