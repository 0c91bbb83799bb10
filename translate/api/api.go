// Package api defines the capability contracts implemented by every
// translation backend and the concrete provider adapters (Yandex, Google,
// OpenAI-style, translate-shell, lingua, detectlanguage).
//
// Translation and detection are separate contracts on purpose: backends
// without detection support simply never register a detector constructor.
package api

import (
	"context"
	"fmt"

	"github.com/aunetx/text-translator/language"
)

// Api is the translation capability. One call performs exactly one request
// against the backing provider; the returned string is the provider's
// translated text with no local post-processing.
type Api interface {
	Translate(ctx context.Context, text string, source language.Input, target language.Language) (string, error)
	Name() string
}

// ApiDetect is the detection capability. A nil Language with a nil error
// means the provider explicitly reported it could not classify the input.
type ApiDetect interface {
	Detect(ctx context.Context, text string) (*language.Language, error)
	Name() string
}

type newInstanceFunc func(Config) (Api, error)

type newDetectorInstanceFunc func(Config) (ApiDetect, error)

var (
	registeredInstances         = map[string]newInstanceFunc{}
	registeredDetectorInstances = map[string]newDetectorInstanceFunc{}
)

func registerInstance(name string, f newInstanceFunc) {
	if _, ok := registeredInstances[name]; !ok {
		registeredInstances[name] = f
		return
	}
	panic(fmt.Sprintf("translator instance type '%s' already registered", name))
}

func registerDetectorInstance(name string, f newDetectorInstanceFunc) {
	if _, ok := registeredDetectorInstances[name]; !ok {
		registeredDetectorInstances[name] = f
		return
	}
	panic(fmt.Sprintf("detector instance type '%s' already registered", name))
}

// NewInstance constructs a translator adapter from its config. Construction
// never performs network I/O.
func NewInstance(conf Config) (Api, error) {
	if f, ok := registeredInstances[conf.Type]; ok {
		return f(conf)
	}
	return nil, fmt.Errorf("unknown translator type: %s", conf.Type)
}

// NewDetectorInstance constructs a detector adapter from its config.
func NewDetectorInstance(conf Config) (ApiDetect, error) {
	if f, ok := registeredDetectorInstances[conf.Type]; ok {
		return f(conf)
	}
	return nil, fmt.Errorf("unknown detector type: %s", conf.Type)
}

// SupportsDetection reports whether instances of the given type expose the
// detection capability.
func SupportsDetection(instanceType string) bool {
	_, ok := registeredDetectorInstances[instanceType]
	return ok
}

// reverseTable inverts an adapter language table for decoding detection
// responses. Tables are bijective per adapter, validated by tests.
func reverseTable(table map[language.Language]string) map[string]language.Language {
	m := make(map[string]language.Language, len(table))
	for l, code := range table {
		m[code] = l
	}
	return m
}
