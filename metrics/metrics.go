package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	namespace = "text_translator"
)

type MetricConfig struct {
	Listen string `yaml:"listen"`
}

var (
	// States: "pending" (waiting for rate limiter),
	//         "processing" (waiting for provider response),
	//         "success" (translation and parsing successful),
	//         "failed" (any step in translation failed).
	MetricTranslatorTasks = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "translator_tasks_total",
			Help:      "Total number of translation tasks, by state.",
		},
		[]string{"state", "translator_name"},
	)

	// Kinds: "transport", "provider", "decode", "unsupported_language",
	//        "other".
	MetricTranslatorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translator_failures_total",
			Help:      "Failed translation calls, by error kind.",
		},
		[]string{"kind", "translator_name"},
	)

	// Directions: "input" (characters sent), "output" (characters received).
	MetricTranslatorCharacters = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translator_characters_total",
			Help:      "Characters pushed through translation calls.",
		},
		[]string{"direction", "translator_name"},
	)

	// Gauge for translator up status.
	// Value is 1 if the translator is up, 0 if it is disabled.
	MetricTranslatorUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "translator_up",
			Help:      "Indicates if a translator is currently up and operational. 1 for up, 0 for disabled.",
		},
		[]string{"translator_name"},
	)

	// Counter for translator selected times.
	MetricTranslatorSelectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translator_selection_total",
			Help:      "Times a translator instance was chosen.",
		},
		[]string{"translator_name"},
	)
)

func InitMetricServer(conf MetricConfig) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logrus.Infof("metrics server listening on %s", conf.Listen)
		if err := http.ListenAndServe(conf.Listen, nil); err != nil {
			logrus.Fatalf("failed to start metrics server: %v", err)
		}
	}()
}
