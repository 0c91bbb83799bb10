package api

import (
	"testing"

	"github.com/aunetx/text-translator/language"
)

func TestDetectLanguageCodeTable(t *testing.T) {
	// Every normalized language must be reachable from a reported code.
	if len(detectLanguageCodes) != len(language.All()) {
		t.Fatalf("code table has %d entries, enumeration has %d",
			len(detectLanguageCodes), len(language.All()))
	}
	for _, l := range language.All() {
		if got, ok := detectLanguageCodes[l.Code()]; !ok || got != l {
			t.Fatalf("code %q does not map back to %s", l.Code(), l)
		}
	}
}

func TestDetectLanguageRequiresKey(t *testing.T) {
	_, err := newDetectLanguageInstance(Config{
		Name:    "dl-test",
		Type:    DETECT_LANGUAGE,
		Timeout: 5,
	})
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
}
