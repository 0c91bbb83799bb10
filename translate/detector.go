package translate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aunetx/text-translator/language"
	"github.com/aunetx/text-translator/selector"
	"github.com/aunetx/text-translator/translate/api"
	"github.com/aunetx/text-translator/translate/common"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DetectRequest describes one detection call.
type DetectRequest struct {
	Text    string
	TraceId string
}

// LanguageDetector is a managed detection instance. A nil detected language
// with a nil error means the backend explicitly reported "unknown".
type LanguageDetector interface {
	selector.WeightedItem

	Detect(DetectRequest) (*language.Language, error)
	GetName() string
}

type DetectorOptions struct {
	Instance api.ApiDetect
	Timeout  int64

	// Failover
	FailoverConfig  common.FailoverConfig
	RateLimitConfig common.RateLimitConfig

	// WRR
	Weight int
}

func NewDetector(conf api.Config) (LanguageDetector, error) {
	instance, err := api.NewDetectorInstance(conf)
	if err != nil {
		return nil, err
	}

	opts := DetectorOptions{
		Instance:        instance,
		Timeout:         conf.Timeout,
		FailoverConfig:  conf.Failover,
		RateLimitConfig: conf.RateLimit,
		Weight:          conf.Weight,
	}
	return newGeneralLanguageDetector(opts), nil
}

type GeneralLanguageDetector struct {
	instance        api.ApiDetect
	logger          *logrus.Entry
	limiter         *rate.Limiter
	timeout         time.Duration
	failoverHandler common.FailoverHandler

	// Weighted
	configWeight  int
	currentWeight int
	weightedMu    sync.Mutex
}

func newGeneralLanguageDetector(opts DetectorOptions) (gld *GeneralLanguageDetector) {
	gld = &GeneralLanguageDetector{
		instance: opts.Instance,
		timeout:  time.Duration(opts.Timeout) * time.Second,
		logger:   logrus.WithField("detector_name", opts.Instance.Name()),

		// Weighted
		configWeight:  opts.Weight,
		currentWeight: 0,
	}
	gld.failoverHandler = common.NewGeneralFailoverHandler(opts.FailoverConfig, gld.logger)
	gld.limiter = opts.RateLimitConfig.NewLimiterFromConfig(gld.logger)
	return
}

func (gld *GeneralLanguageDetector) Detect(req DetectRequest) (detected *language.Language, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), gld.timeout)
	defer cancel()

	logger := gld.logger.WithField("trace_id", req.TraceId)

	logger.Trace("waiting for limiter")
	err = gld.wait(ctx)
	if err != nil {
		err = fmt.Errorf("rate limiter wait failed: %w", err)
		gld.failoverHandler.OnFailure()
		return
	}
	logger.Trace("acquired limiter")

	logger.Debug("waiting for detect response")
	detected, err = gld.instance.Detect(ctx, req.Text)
	if err != nil {
		gld.failoverHandler.OnFailure()
		return
	}
	gld.failoverHandler.OnSuccess()
	return
}

func (gld *GeneralLanguageDetector) wait(ctx context.Context) (err error) {
	if gld.limiter != nil {
		err = gld.limiter.Wait(ctx)
	}
	return
}

func (gld *GeneralLanguageDetector) GetName() string {
	return gld.instance.Name()
}

func (gld *GeneralLanguageDetector) IsDisabled() bool {
	return gld.failoverHandler.IsDisabled()
}

func (gld *GeneralLanguageDetector) GetConfigWeight() int {
	gld.weightedMu.Lock()
	defer gld.weightedMu.Unlock()
	return gld.configWeight
}

func (gld *GeneralLanguageDetector) GetCurrentWeight() int {
	gld.weightedMu.Lock()
	defer gld.weightedMu.Unlock()
	return gld.currentWeight
}

func (gld *GeneralLanguageDetector) SetCurrentWeight(s int) {
	gld.weightedMu.Lock()
	gld.currentWeight = s
	gld.weightedMu.Unlock()
}
