package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/aunetx/text-translator/language"
	"github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"
)

const LINGUA = "lingua"

func init() {
	registerDetectorInstance(LINGUA, newLinguaInstance)
}

// Lingua is an offline statistical detector. It never translates and needs
// no credential; the candidate set is restricted to the normalized Language
// enumeration (optionally narrowed by DetectLangs).
type Lingua struct {
	name                string
	confidenceThreshold float64
	detector            lingua.LanguageDetector
	logger              *logrus.Entry
}

func newLinguaInstance(conf Config) (instance ApiDetect, err error) {
	ld := &Lingua{
		name:                conf.Name,
		confidenceThreshold: conf.ConfidenceThreshold,
		logger:              logrus.WithField("detector_instance", conf.Name),
	}

	byIsoCode := map[string]lingua.Language{}
	for _, l := range lingua.AllLanguages() {
		byIsoCode[strings.ToLower(l.IsoCode639_1().String())] = l
	}

	codes := conf.DetectLangs
	if len(codes) == 0 {
		for _, l := range language.All() {
			codes = append(codes, l.Code())
		}
	}

	candidates := []lingua.Language{}
	for _, code := range codes {
		if _, ok := language.Parse(code); !ok {
			err = fmt.Errorf("lingua instance '%s': unsupported language: %s", conf.Name, code)
			return
		}
		l, ok := byIsoCode[code]
		if !ok {
			err = fmt.Errorf("lingua instance '%s': no statistical model for: %s", conf.Name, code)
			return
		}
		ld.logger.Debugf("found detect language: %s", code)
		candidates = append(candidates, l)
	}

	ld.detector = lingua.NewLanguageDetectorBuilder().FromLanguages(candidates...).Build()
	return ld, nil
}

func (ld *Lingua) Name() string {
	return ld.name
}

func (ld *Lingua) Detect(_ context.Context, text string) (detected *language.Language, err error) {
	best := ""
	confidence := 0.0
	for _, cv := range ld.detector.ComputeLanguageConfidenceValues(text) {
		l := strings.ToLower(cv.Language().IsoCode639_1().String())
		c := cv.Value()
		if c > confidence {
			best = l
			confidence = c
		}
	}

	// Below the threshold the classifier explicitly refuses to answer.
	if best == "" || confidence < ld.confidenceThreshold {
		return nil, nil
	}

	l, ok := language.Parse(best)
	if !ok {
		err = &DecodeError{
			Provider: ld.name,
			Err:      fmt.Errorf("unrecognized language code %q from classifier", best),
		}
		return
	}
	ld.logger.Debugf("detected %q, confidence: %.2f", best, confidence)
	return &l, nil
}
