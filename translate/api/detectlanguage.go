package api

import (
	"context"
	"fmt"

	"github.com/4O4-Not-F0und/detectlanguage-go"
	"github.com/aunetx/text-translator/language"
	"github.com/sirupsen/logrus"
)

const DETECT_LANGUAGE = "detect_language"

func init() {
	registerDetectorInstance(DETECT_LANGUAGE, newDetectLanguageInstance)
}

var detectLanguageCodes = reverseTable(map[language.Language]string{
	language.English:    "en",
	language.French:     "fr",
	language.Spanish:    "es",
	language.Italian:    "it",
	language.German:     "de",
	language.Portuguese: "pt",
	language.Dutch:      "nl",
	language.Polish:     "pl",
	language.Russian:    "ru",
	language.Turkish:    "tr",
	language.Arabic:     "ar",
	language.Japanese:   "ja",
	language.Chinese:    "zh",
	language.Korean:     "ko",
	language.Indonesian: "id",
	language.Esperanto:  "eo",
})

// DetectLanguage adapts the detectlanguage.com web API. Detection only; the
// service does not translate. Provider-side failures surface through the
// client error wrapped as a transport failure, since the SDK owns the HTTP
// exchange.
type DetectLanguage struct {
	name   string
	client *detectlanguage.Client
	logger *logrus.Entry
}

func newDetectLanguageInstance(conf Config) (instance ApiDetect, err error) {
	if conf.Key == "" {
		err = fmt.Errorf("detect_language instance '%s': api key is required", conf.Name)
		return
	}

	instance = &DetectLanguage{
		name:   conf.Name,
		client: detectlanguage.New(conf.Key),
		logger: logrus.WithField("detector_instance", conf.Name),
	}
	return
}

func (ld *DetectLanguage) Name() string {
	return ld.name
}

func (ld *DetectLanguage) Detect(ctx context.Context, text string) (detected *language.Language, err error) {
	results, err := ld.client.Detect(ctx, text)
	if err != nil {
		err = &TransportError{Provider: ld.name, Err: err}
		return
	}

	best := ""
	confidence := 0.0
	for _, cv := range results {
		if !cv.Reliable {
			continue
		}
		if c := float64(cv.Confidence); c > confidence {
			best = cv.Language
			confidence = c
		}
	}

	// No reliable candidate is the API's explicit unknown signal.
	if best == "" {
		return nil, nil
	}

	l, ok := detectLanguageCodes[best]
	if !ok {
		err = &DecodeError{
			Provider: ld.name,
			Err:      fmt.Errorf("unrecognized language code %q in detect response", best),
		}
		return
	}
	ld.logger.Debugf("detected %q, confidence: %.2f", best, confidence)
	return &l, nil
}
