package api

import (
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
	YANDEX = "yandex"

	// Yandex Translate v1.5, JSON interface.
	yandexBaseURL = "https://translate.yandex.net/api/v1.5/tr.json"
)

func init() {
	registerInstance(YANDEX, newYandexInstance)
	registerDetectorInstance(YANDEX, newYandexDetectorInstance)
}

// Language table verified against the Yandex Translate supported-language
// list. Esperanto is deliberately absent.
var yandexLanguages = map[language.Language]string{
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
}

var yandexCodes = reverseTable(yandexLanguages)

// In-body error codes documented for the v1.5 API.
var yandexErrorMessages = map[int]string{
	401: "invalid API key",
	402: "blocked API key",
	404: "daily request limit exceeded",
	413: "maximum text size exceeded",
	422: "text cannot be translated",
	501: "translation direction is not supported",
}

// Yandex adapts the Yandex Translate web API. It implements both the
// translation and the detection capability.
type Yandex struct {
	name     string
	key      string
	endpoint string
	client   *http.Client
	logger   *logrus.Entry
}

func newYandex(conf Config) (y *Yandex, err error) {
	if conf.Key == "" {
		err = fmt.Errorf("yandex instance '%s': api key is required", conf.Name)
		return
	}

	endpoint := conf.Endpoint
	if endpoint == "" {
		endpoint = yandexBaseURL
	}

	y = &Yandex{
		name:     conf.Name,
		key:      conf.Key,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   http.DefaultClient,
		logger:   logrus.WithField("translator_instance", conf.Name),
	}
	return
}

func newYandexInstance(conf Config) (Api, error) {
	return newYandex(conf)
}

func newYandexDetectorInstance(conf Config) (ApiDetect, error) {
	return newYandex(conf)
}

func (y *Yandex) Name() string {
	return y.name
}

// direction builds the "lang" parameter: "tgt" alone lets the API detect
// the source language, "src-tgt" pins both sides.
func (y *Yandex) direction(source language.Input, target language.Language) (string, error) {
	targetCode, ok := yandexLanguages[target]
	if !ok {
		return "", &UnsupportedLanguageError{Provider: y.name, Language: target}
	}

	if src, defined := source.Language(); defined {
		srcCode, ok := yandexLanguages[src]
		if !ok {
			return "", &UnsupportedLanguageError{Provider: y.name, Language: src}
		}
		return srcCode + "-" + targetCode, nil
	}
	return targetCode, nil
}

func (y *Yandex) Translate(ctx context.Context, text string, source language.Input, target language.Language) (translated string, err error) {
	dir, err := y.direction(source, target)
	if err != nil {
		return
	}

	params := url.Values{}
	params.Set("key", y.key)
	params.Set("lang", dir)
	params.Set("text", text)

	body, err := y.get(ctx, "/translate", params)
	if err != nil {
		return
	}

	var decoded struct {
		Code int      `json:"code"`
		Lang string   `json:"lang"`
		Text []string `json:"text"`
	}
	if err = json.Unmarshal(body, &decoded); err != nil {
		err = &DecodeError{Provider: y.name, Err: err}
		return
	}
	if decoded.Code != 0 && decoded.Code != http.StatusOK {
		err = y.providerError(http.StatusOK, decoded.Code, "")
		return
	}
	if len(decoded.Text) == 0 {
		err = &DecodeError{Provider: y.name, Err: fmt.Errorf("no text in translate response")}
		return
	}

	y.logger.Debugf("translated %d chars, direction: %s", len(text), decoded.Lang)
	return strings.Join(decoded.Text, "\n"), nil
}

func (y *Yandex) Detect(ctx context.Context, text string) (detected *language.Language, err error) {
	params := url.Values{}
	params.Set("key", y.key)
	params.Set("text", text)

	body, err := y.get(ctx, "/detect", params)
	if err != nil {
		return
	}

	var decoded struct {
		Code int    `json:"code"`
		Lang string `json:"lang"`
	}
	if err = json.Unmarshal(body, &decoded); err != nil {
		err = &DecodeError{Provider: y.name, Err: err}
		return
	}
	if decoded.Code != 0 && decoded.Code != http.StatusOK {
		err = y.providerError(http.StatusOK, decoded.Code, "")
		return
	}

	// An empty lang is the API's explicit "could not classify" signal.
	if decoded.Lang == "" {
		return nil, nil
	}

	l, ok := yandexCodes[decoded.Lang]
	if !ok {
		err = &DecodeError{
			Provider: y.name,
			Err:      fmt.Errorf("unrecognized language code %q in detect response", decoded.Lang),
		}
		return
	}
	return &l, nil
}

func (y *Yandex) get(ctx context.Context, path string, params url.Values) (body []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.endpoint+path+"?"+params.Encode(), nil)
	if err != nil {
		err = &TransportError{Provider: y.name, Err: err}
		return
	}

	resp, err := y.client.Do(req)
	if err != nil {
		err = &TransportError{Provider: y.name, Err: err}
		return
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &TransportError{Provider: y.name, Err: err}
		return
	}

	if resp.StatusCode != http.StatusOK {
		// Error payloads carry {code, message}; fall back to the HTTP status
		// when the body has neither.
		var payload struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		if payload.Code == 0 {
			payload.Code = resp.StatusCode
		}
		err = y.providerError(resp.StatusCode, payload.Code, payload.Message)
		return
	}
	return
}

func (y *Yandex) providerError(status, code int, message string) error {
	if message == "" {
		if known, ok := yandexErrorMessages[code]; ok {
			message = known
		}
	}
	return &ProviderError{
		Provider:   y.name,
		StatusCode: status,
		Code:       code,
		Message:    message,
	}
}
