package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aunetx/text-translator/language"
	"github.com/sirupsen/logrus"
)

const (
	GOOGLE = "google"

	// Cloud Translation, Basic (v2) edition.
	googleBaseURL = "https://translation.googleapis.com/language/translate/v2"

	// Explicit "could not classify" code in detect responses.
	googleUndetermined = "und"
)

func init() {
	registerInstance(GOOGLE, newGoogleInstance)
	registerDetectorInstance(GOOGLE, newGoogleDetectorInstance)
}

var googleLanguages = map[language.Language]string{
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
}

var googleCodes = reverseTable(googleLanguages)

// Google adapts the Cloud Translation v2 REST API. It implements both the
// translation and the detection capability. The key travels as a query
// parameter, the payload as a JSON body.
type Google struct {
	name     string
	key      string
	endpoint string
	client   *http.Client
	logger   *logrus.Entry
}

type googleTranslateBody struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Format string `json:"format"`
}

func newGoogle(conf Config) (g *Google, err error) {
	if conf.Key == "" {
		err = fmt.Errorf("google instance '%s': api key is required", conf.Name)
		return
	}

	endpoint := conf.Endpoint
	if endpoint == "" {
		endpoint = googleBaseURL
	}

	g = &Google{
		name:     conf.Name,
		key:      conf.Key,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   http.DefaultClient,
		logger:   logrus.WithField("translator_instance", conf.Name),
	}
	return
}

func newGoogleInstance(conf Config) (Api, error) {
	return newGoogle(conf)
}

func newGoogleDetectorInstance(conf Config) (ApiDetect, error) {
	return newGoogle(conf)
}

func (g *Google) Name() string {
	return g.name
}

func (g *Google) Translate(ctx context.Context, text string, source language.Input, target language.Language) (translated string, err error) {
	targetCode, ok := googleLanguages[target]
	if !ok {
		err = &UnsupportedLanguageError{Provider: g.name, Language: target}
		return
	}

	// Automatic source: the parameter is omitted and the API detects it.
	sourceCode := ""
	if src, defined := source.Language(); defined {
		sourceCode, ok = googleLanguages[src]
		if !ok {
			err = &UnsupportedLanguageError{Provider: g.name, Language: src}
			return
		}
	}

	payload := googleTranslateBody{
		Q:      text,
		Source: sourceCode,
		Target: targetCode,
		Format: "text",
	}

	body, err := g.post(ctx, "", payload)
	if err != nil {
		return
	}

	var decoded struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err = json.Unmarshal(body, &decoded); err != nil {
		err = &DecodeError{Provider: g.name, Err: err}
		return
	}
	if len(decoded.Data.Translations) == 0 {
		err = &DecodeError{Provider: g.name, Err: fmt.Errorf("no translations in response")}
		return
	}

	parts := make([]string, 0, len(decoded.Data.Translations))
	for _, t := range decoded.Data.Translations {
		parts = append(parts, t.TranslatedText)
	}
	return strings.Join(parts, "\n"), nil
}

func (g *Google) Detect(ctx context.Context, text string) (detected *language.Language, err error) {
	body, err := g.post(ctx, "/detect", struct {
		Q string `json:"q"`
	}{Q: text})
	if err != nil {
		return
	}

	var decoded struct {
		Data struct {
			Detections [][]struct {
				Language   string  `json:"language"`
				Confidence float64 `json:"confidence"`
				IsReliable bool    `json:"isReliable"`
			} `json:"detections"`
		} `json:"data"`
	}
	if err = json.Unmarshal(body, &decoded); err != nil {
		err = &DecodeError{Provider: g.name, Err: err}
		return
	}
	if len(decoded.Data.Detections) == 0 || len(decoded.Data.Detections[0]) == 0 {
		err = &DecodeError{Provider: g.name, Err: fmt.Errorf("no detections in response")}
		return
	}

	best := decoded.Data.Detections[0][0]
	g.logger.Debugf("detected %q, confidence: %.2f, reliable: %v",
		best.Language, best.Confidence, best.IsReliable)

	if best.Language == googleUndetermined {
		return nil, nil
	}

	l, ok := googleCodes[best.Language]
	if !ok {
		err = &DecodeError{
			Provider: g.name,
			Err:      fmt.Errorf("unrecognized language code %q in detect response", best.Language),
		}
		return
	}
	return &l, nil
}

func (g *Google) post(ctx context.Context, path string, payload any) (body []byte, err error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		err = &TransportError{Provider: g.name, Err: err}
		return
	}

	params := url.Values{}
	params.Set("key", g.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.endpoint+path+"?"+params.Encode(), bytes.NewReader(encoded))
	if err != nil {
		err = &TransportError{Provider: g.name, Err: err}
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		err = &TransportError{Provider: g.name, Err: err}
		return
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &TransportError{Provider: g.name, Err: err}
		return
	}

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(body, &payload)
		if payload.Error.Code == 0 {
			payload.Error.Code = resp.StatusCode
		}
		err = &ProviderError{
			Provider:   g.name,
			StatusCode: resp.StatusCode,
			Code:       payload.Error.Code,
			Message:    payload.Error.Message,
		}
		return
	}
	return
}
