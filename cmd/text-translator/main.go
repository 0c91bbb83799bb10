// Command text-translator performs a one-shot translation or language
// detection against the providers configured in a yaml file.
//
//	text-translator -target ja "Hello, my name is Naruto Uzumaki!"
//	text-translator -detect "Bonjour, je m'appelle Naruto Uzumaki!"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aunetx/text-translator/language"
	"github.com/aunetx/text-translator/metrics"
	"github.com/aunetx/text-translator/translate"
	"github.com/sirupsen/logrus"
)

const (
	defaultConfigFile = "config.yml"
	autoSource        = "auto"
)

var (
	configFile = defaultConfigFile
	sourceCode = autoSource
	targetCode = "en"
	detectMode = false
)

func init() {
	flag.StringVar(&configFile, "config", defaultConfigFile, "path to config file")
	flag.StringVar(&sourceCode, "source", autoSource, "source language code, or 'auto'")
	flag.StringVar(&targetCode, "target", "en", "target language code")
	flag.BoolVar(&detectMode, "detect", false, "detect the language instead of translating")
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat:        time.RFC3339Nano,
		DisableColors:          true,
		DisableLevelTruncation: true,
		ForceQuote:             true,
		FullTimestamp:          true,
	})
}

func main() {
	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		logrus.Fatal("no text given")
	}

	appConfig, err := loadConfig(configFile)
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	logrus.Infof("loaded config from '%s'", configFile)

	if logLevel, err := logrus.ParseLevel(appConfig.LogLevel); err != nil {
		logrus.Errorf("error parsing log level '%s': %v", appConfig.LogLevel, err)
	} else {
		logrus.SetLevel(logLevel)
	}

	if appConfig.Metric.Listen != "" {
		metrics.InitMetricServer(appConfig.Metric)
	}

	service, err := translate.NewService(appConfig.Service)
	if err != nil {
		logrus.Fatal(err)
	}

	if detectMode {
		runDetect(service, text)
		return
	}
	runTranslate(service, text)
}

func runTranslate(service *translate.Service, text string) {
	target, ok := language.Parse(targetCode)
	if !ok {
		logrus.Fatalf("unknown target language code: %s", targetCode)
	}

	source := language.Automatic
	if sourceCode != autoSource {
		l, ok := language.Parse(sourceCode)
		if !ok {
			logrus.Fatalf("unknown source language code: %s", sourceCode)
		}
		source = language.Defined(l)
	}

	translated, name, err := service.Translate(translate.TranslateRequest{
		Text:   text,
		Source: source,
		Target: target,
	})
	if err != nil {
		logrus.Fatalf("translation failed: %v", err)
	}

	logrus.Infof("translated by '%s'", name)
	fmt.Println(translated)
}

func runDetect(service *translate.Service, text string) {
	detected, name, err := service.Detect(translate.DetectRequest{Text: text})
	if err != nil {
		logrus.Fatalf("detection failed: %v", err)
	}

	logrus.Infof("detected by '%s'", name)
	if detected == nil {
		fmt.Println("unknown")
		return
	}
	fmt.Printf("%s (%s)\n", detected, detected.Code())
}
