package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aunetx/text-translator/language"
)

func testYandexConfig(endpoint string) Config {
	return Config{
		Name:     "yandex-test",
		Type:     YANDEX,
		Key:      "trnsl.test.key",
		Endpoint: endpoint,
		Timeout:  5,
	}
}

func TestYandexLanguageTableRoundTrip(t *testing.T) {
	if len(yandexCodes) != len(yandexLanguages) {
		t.Fatalf("language table is not bijective: %d languages, %d codes",
			len(yandexLanguages), len(yandexCodes))
	}
	for l, code := range yandexLanguages {
		got, ok := yandexCodes[code]
		if !ok {
			t.Fatalf("code %q does not map back", code)
		}
		if got != l {
			t.Fatalf("code %q maps back to %s, want %s", code, got, l)
		}
	}
}

func TestYandexTranslateAutomaticSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("key") != "trnsl.test.key" {
			t.Errorf("unexpected key: %q", q.Get("key"))
		}
		// Automatic source: direction is the bare target code.
		if q.Get("lang") != "ja" {
			t.Errorf("unexpected lang: %q", q.Get("lang"))
		}
		if q.Get("text") != "Hello, my name is Naruto Uzumaki!" {
			t.Errorf("unexpected text: %q", q.Get("text"))
		}
		w.Write([]byte(`{"code":200,"lang":"en-ja","text":["こんにちは、鳴門のうずまき!"]}`))
	}))
	defer server.Close()

	y, err := newYandex(testYandexConfig(server.URL))
	if err != nil {
		t.Fatalf("new yandex: %v", err)
	}

	translated, err := y.Translate(context.Background(),
		"Hello, my name is Naruto Uzumaki!", language.Automatic, language.Japanese)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if translated != "こんにちは、鳴門のうずまき!" {
		t.Fatalf("unexpected translation: %q", translated)
	}
}

func TestYandexTranslateDefinedSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lang"); got != "en-fr" {
			t.Errorf("unexpected lang: %q", got)
		}
		w.Write([]byte(`{"code":200,"lang":"en-fr","text":["Bonjour"]}`))
	}))
	defer server.Close()

	y, err := newYandex(testYandexConfig(server.URL))
	if err != nil {
		t.Fatalf("new yandex: %v", err)
	}

	translated, err := y.Translate(context.Background(),
		"Hello", language.Defined(language.English), language.French)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if translated != "Bonjour" {
		t.Fatalf("unexpected translation: %q", translated)
	}
}

func TestYandexTranslateJoinsTextParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"lang":"fr","text":["un","deux"]}`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	translated, err := y.Translate(context.Background(), "one\ntwo", language.Automatic, language.French)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if translated != "un\ndeux" {
		t.Fatalf("unexpected translation: %q", translated)
	}
}

func TestYandexTranslateUnsupportedLanguage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))

	// Esperanto has no Yandex mapping: fail fast, no request sent.
	_, err := y.Translate(context.Background(), "saluton", language.Automatic, language.Esperanto)
	var unsupportedErr *UnsupportedLanguageError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected UnsupportedLanguageError, got %v", err)
	}
	if unsupportedErr.Language != language.Esperanto {
		t.Fatalf("unexpected language in error: %s", unsupportedErr.Language)
	}

	// Same for a defined unsupported source; Automatic stays exempt.
	_, err = y.Translate(context.Background(), "saluton",
		language.Defined(language.Esperanto), language.French)
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("expected UnsupportedLanguageError, got %v", err)
	}

	if calls != 0 {
		t.Fatalf("expected no HTTP calls, got %d", calls)
	}
}

func TestYandexTranslateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":401,"message":"API key is invalid"}`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	_, err := y.Translate(context.Background(), "Hello", language.Automatic, language.French)

	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", providerErr.StatusCode)
	}
	if providerErr.Code != 401 {
		t.Fatalf("unexpected code: %d", providerErr.Code)
	}
	if providerErr.Message != "API key is invalid" {
		t.Fatalf("unexpected message: %q", providerErr.Message)
	}
}

func TestYandexTranslateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	_, err := y.Translate(context.Background(), "Hello", language.Automatic, language.French)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestYandexTranslateTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	y, _ := newYandex(testYandexConfig(server.URL))
	_, err := y.Translate(context.Background(), "Hello", language.Automatic, language.French)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestYandexDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "Bonjour, je m'appelle Naruto Uzumaki!" {
			t.Errorf("unexpected text: %q", got)
		}
		w.Write([]byte(`{"code":200,"lang":"fr"}`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	detected, err := y.Detect(context.Background(), "Bonjour, je m'appelle Naruto Uzumaki!")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detected == nil || *detected != language.French {
		t.Fatalf("unexpected detection: %v", detected)
	}
}

func TestYandexDetectUnknownLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"lang":""}`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	detected, err := y.Detect(context.Background(), "??!")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detected != nil {
		t.Fatalf("expected nil detection, got %v", *detected)
	}
}

func TestYandexDetectUnrecognizedCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"lang":"tlh"}`))
	}))
	defer server.Close()

	y, _ := newYandex(testYandexConfig(server.URL))
	_, err := y.Detect(context.Background(), "Heghlu'meH QaQ jajvam")

	// Unmapped code is a decode failure, never an "unknown" result.
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestYandexRequiresKey(t *testing.T) {
	conf := testYandexConfig("")
	conf.Key = ""
	if _, err := newYandex(conf); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
