package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aunetx/text-translator/language"
	"github.com/aunetx/text-translator/metrics"
	"github.com/aunetx/text-translator/selector"
	"github.com/aunetx/text-translator/translate/api"
	"github.com/aunetx/text-translator/translate/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	translationStatePending    = "pending"
	translationStateProcessing = "processing"
	translationStateSuccess    = "success"
	translationStateFailed     = "failed"

	translationCharsInput  = "input"
	translationCharsOutput = "output"

	failureKindTransport           = "transport"
	failureKindProvider            = "provider"
	failureKindDecode              = "decode"
	failureKindUnsupportedLanguage = "unsupported_language"
	failureKindOther               = "other"
)

var (
	allTranslationTaskStates = []string{
		translationStatePending,
		translationStateProcessing,
		translationStateSuccess,
		translationStateFailed,
	}

	allTranslationCharDirections = []string{
		translationCharsInput,
		translationCharsOutput,
	}

	allFailureKinds = []string{
		failureKindTransport,
		failureKindProvider,
		failureKindDecode,
		failureKindUnsupportedLanguage,
		failureKindOther,
	}
)

// TranslateRequest describes one translation call.
type TranslateRequest struct {
	Text    string
	Source  language.Input
	Target  language.Language
	TraceId string
}

// TranslatorOptions configures a managed translator around an adapter
// instance.
type TranslatorOptions struct {
	Instance api.Api
	Timeout  int64

	// Failover
	FailoverConfig  common.FailoverConfig
	RateLimitConfig common.RateLimitConfig

	// Metrics
	UpMetric        *prometheus.GaugeVec
	SelectionMetric *prometheus.CounterVec
	TasksMetric     *prometheus.GaugeVec
	FailuresMetric  *prometheus.CounterVec
	CharsMetric     *prometheus.CounterVec

	// WRR
	Weight int
}

// Translator is a managed translation instance: an adapter plus timeout,
// rate limiting, failover accounting and metrics.
type Translator interface {
	selector.WeightedItem

	Translate(TranslateRequest) (string, error)
	GetName() string
}

func NewTranslator(conf api.Config) (Translator, error) {
	instance, err := api.NewInstance(conf)
	if err != nil {
		return nil, err
	}

	opts := TranslatorOptions{
		Instance:        instance,
		Timeout:         conf.Timeout,
		UpMetric:        metrics.MetricTranslatorUp,
		SelectionMetric: metrics.MetricTranslatorSelectionTotal,
		TasksMetric:     metrics.MetricTranslatorTasks,
		FailuresMetric:  metrics.MetricTranslatorFailures,
		CharsMetric:     metrics.MetricTranslatorCharacters,
		FailoverConfig:  conf.Failover,
		RateLimitConfig: conf.RateLimit,
		Weight:          conf.Weight,
	}
	return NewCommonTranslator(opts), nil
}

type CommonTranslator struct {
	instance        api.Api
	logger          *logrus.Entry
	limiter         *rate.Limiter
	timeout         time.Duration
	failoverHandler common.FailoverHandler

	// Metrics
	upMetric        *prometheus.GaugeVec
	selectionMetric *prometheus.CounterVec
	tasksMetric     *prometheus.GaugeVec
	failuresMetric  *prometheus.CounterVec
	charsMetric     *prometheus.CounterVec

	// Weighted
	configWeight  int
	currentWeight int
	weightedMu    sync.Mutex
}

func NewCommonTranslator(opts TranslatorOptions) (ct *CommonTranslator) {
	ct = &CommonTranslator{
		instance: opts.Instance,
		timeout:  time.Duration(opts.Timeout) * time.Second,

		upMetric:        opts.UpMetric,
		selectionMetric: opts.SelectionMetric,
		tasksMetric:     opts.TasksMetric,
		failuresMetric:  opts.FailuresMetric,
		charsMetric:     opts.CharsMetric,

		// Weighted
		configWeight:  opts.Weight,
		currentWeight: 0,
	}
	// Initialize metrics
	ct.upMetric.WithLabelValues(ct.GetName()).Set(1)
	ct.selectionMetric.WithLabelValues(ct.GetName()).Add(0.0)
	for _, state := range allTranslationTaskStates {
		ct.tasksMetric.WithLabelValues(state, ct.GetName()).Add(0.0)
	}
	for _, kind := range allFailureKinds {
		ct.failuresMetric.WithLabelValues(kind, ct.GetName()).Add(0.0)
	}
	for _, d := range allTranslationCharDirections {
		ct.charsMetric.WithLabelValues(d, ct.GetName()).Add(0.0)
	}

	ct.logger = logrus.WithField("translator_name", ct.GetName())
	ct.failoverHandler = common.NewGeneralFailoverHandler(opts.FailoverConfig, ct.logger)
	ct.limiter = opts.RateLimitConfig.NewLimiterFromConfig(ct.logger)
	return
}

func (ct *CommonTranslator) wait(ctx context.Context) (err error) {
	if ct.limiter != nil {
		err = ct.limiter.Wait(ctx)
	}
	return
}

func (ct *CommonTranslator) Translate(req TranslateRequest) (translated string, err error) {
	ct.selectionMetric.WithLabelValues(ct.GetName()).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), ct.timeout)
	defer cancel()

	logger := ct.logger.WithField("trace_id", req.TraceId)

	logger.Trace("waiting for limiter")
	ct.tasksMetric.WithLabelValues(translationStatePending, ct.GetName()).Inc()
	err = ct.wait(ctx)
	ct.tasksMetric.WithLabelValues(translationStatePending, ct.GetName()).Dec()
	if err != nil {
		err = fmt.Errorf("rate limiter wait failed: %w", err)
		ct.onFailure(err)
		return
	}
	logger.Trace("acquired limiter")

	ct.tasksMetric.WithLabelValues(translationStateProcessing, ct.GetName()).Inc()
	defer ct.tasksMetric.WithLabelValues(translationStateProcessing, ct.GetName()).Dec()

	logger.Debug("waiting for translate response")
	translated, err = ct.instance.Translate(ctx, req.Text, req.Source, req.Target)
	if err != nil {
		ct.onFailure(err)
		return
	}

	ct.charsMetric.WithLabelValues(translationCharsInput, ct.GetName()).Add(float64(len(req.Text)))
	ct.charsMetric.WithLabelValues(translationCharsOutput, ct.GetName()).Add(float64(len(translated)))
	ct.onSuccess()
	return
}

func (ct *CommonTranslator) GetName() string {
	return ct.instance.Name()
}

func (ct *CommonTranslator) onSuccess() {
	ct.tasksMetric.WithLabelValues(translationStateSuccess, ct.GetName()).Inc()
	ct.upMetric.WithLabelValues(ct.GetName()).Set(1)
	ct.failoverHandler.OnSuccess()
}

func (ct *CommonTranslator) onFailure(err error) {
	ct.tasksMetric.WithLabelValues(translationStateFailed, ct.GetName()).Inc()
	ct.failuresMetric.WithLabelValues(failureKind(err), ct.GetName()).Inc()
	if ct.failoverHandler.OnFailure() {
		ct.upMetric.WithLabelValues(ct.GetName()).Set(0)
	}
}

func (ct *CommonTranslator) IsDisabled() bool {
	return ct.failoverHandler.IsDisabled()
}

func (ct *CommonTranslator) GetConfigWeight() int {
	ct.weightedMu.Lock()
	defer ct.weightedMu.Unlock()
	return ct.configWeight
}

func (ct *CommonTranslator) GetCurrentWeight() int {
	ct.weightedMu.Lock()
	defer ct.weightedMu.Unlock()
	return ct.currentWeight
}

func (ct *CommonTranslator) SetCurrentWeight(s int) {
	ct.weightedMu.Lock()
	ct.currentWeight = s
	ct.weightedMu.Unlock()
}

// failureKind maps a capability error onto its metric label.
func failureKind(err error) string {
	var (
		transportErr   *api.TransportError
		providerErr    *api.ProviderError
		decodeErr      *api.DecodeError
		unsupportedErr *api.UnsupportedLanguageError
	)
	switch {
	case errors.As(err, &transportErr):
		return failureKindTransport
	case errors.As(err, &providerErr):
		return failureKindProvider
	case errors.As(err, &decodeErr):
		return failureKindDecode
	case errors.As(err, &unsupportedErr):
		return failureKindUnsupportedLanguage
	}
	return failureKindOther
}
