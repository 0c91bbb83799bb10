// Package translate composes provider adapters into a configurable service:
// each configured instance is wrapped with timeout, rate limiting, failover
// accounting and metrics, and one instance is picked per call through a
// selector. Failed calls are surfaced to the caller, never retried here.
package translate

import (
	"fmt"
	"slices"

	"github.com/aunetx/text-translator/language"
	"github.com/aunetx/text-translator/selector"
	"github.com/aunetx/text-translator/translate/api"
	"github.com/sirupsen/logrus"
)

// Service routes translate and detect calls to the configured provider
// instances.
type Service struct {
	defaultConfig      api.DefaultConfig
	translatorSelector selector.Selector[Translator]
	detectorSelector   selector.Selector[LanguageDetector]
}

func NewService(conf ServiceConfig) (s *Service, err error) {
	s = &Service{
		defaultConfig: conf.DefaultProviderConfig,
	}

	switch conf.Selector {
	case selector.WRR:
		s.translatorSelector = selector.NewWeightedRoundRobinSelector[Translator]()
		s.detectorSelector = selector.NewWeightedRoundRobinSelector[LanguageDetector]()
	case selector.FALLBACK:
		s.translatorSelector = selector.NewFallbackSelector[Translator]()
		s.detectorSelector = selector.NewFallbackSelector[LanguageDetector]()
	default:
		err = fmt.Errorf("unrecognized selector: %s", conf.Selector)
		return
	}

	err = s.initTranslators(conf.Providers)
	if err != nil {
		return
	}
	err = s.initDetectors(conf.Detectors)
	return
}

func (s *Service) initTranslators(confs []api.Config) (err error) {
	if len(confs) == 0 {
		err = fmt.Errorf("no provider configured")
		return
	}

	names := []string{}
	for _, conf := range confs {
		err = conf.CheckAndMergeDefaultConfig(s.defaultConfig)
		if err != nil {
			return
		}

		var t Translator
		t, err = NewTranslator(conf)
		if err != nil {
			return
		}

		if slices.Contains(names, t.GetName()) {
			err = fmt.Errorf("duplicated provider name: %s", t.GetName())
			return
		}

		names = append(names, t.GetName())
		s.translatorSelector.AddItem(t)
	}
	logrus.Debugf("total weight of provider entries: %d", s.translatorSelector.TotalConfigWeight())
	return
}

func (s *Service) initDetectors(confs []api.Config) (err error) {
	// Detection is optional: providers lacking it are simply not configured
	// here.
	names := []string{}
	for _, conf := range confs {
		err = conf.CheckAndMergeDefaultConfig(s.defaultConfig)
		if err != nil {
			return
		}

		var d LanguageDetector
		d, err = NewDetector(conf)
		if err != nil {
			return
		}

		if slices.Contains(names, d.GetName()) {
			err = fmt.Errorf("duplicated detector name: %s", d.GetName())
			return
		}

		names = append(names, d.GetName())
		s.detectorSelector.AddItem(d)
	}
	return
}

// Translate picks one provider and performs a single translation call.
// It returns the translated text and the name of the provider that served
// the call.
func (s *Service) Translate(req TranslateRequest) (translated string, name string, err error) {
	t, err := s.translatorSelector.Select()
	if err != nil {
		err = fmt.Errorf("error on select provider: %w", err)
		return
	}
	name = t.GetName()

	translated, err = t.Translate(req)
	return
}

// Detect picks one detector and performs a single detection call. A nil
// language with a nil error means the backend reported "unknown".
func (s *Service) Detect(req DetectRequest) (detected *language.Language, name string, err error) {
	d, err := s.detectorSelector.Select()
	if err != nil {
		err = fmt.Errorf("error on select detector: %w", err)
		return
	}
	name = d.GetName()

	detected, err = d.Detect(req)
	return
}
