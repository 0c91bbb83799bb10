package api

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/aunetx/text-translator/language"
	"github.com/sirupsen/logrus"
)

const (
	SHELL = "shell"

	defaultShellBinary = "trans"
	defaultShellEngine = "google"
)

var shellEngines = []string{"google", "yandex", "bing", "apertium", "spell", "aspell", "hunspell"}

func init() {
	registerInstance(SHELL, newShellInstance)
}

// Shell translates by spawning the translate-shell binary ("trans"). It
// needs no credential; the subprocess owns the network call. The engine
// accepts ISO 639-1 codes directly, so the normalized codes are its table.
type Shell struct {
	name   string
	binary string
	engine string
	logger *logrus.Entry
}

func newShellInstance(conf Config) (instance Api, err error) {
	engine := conf.Engine
	if engine == "" {
		engine = defaultShellEngine
	}
	if !slices.Contains(shellEngines, engine) {
		err = fmt.Errorf("shell instance '%s': unknown engine: %s", conf.Name, engine)
		return
	}

	binary := conf.Endpoint
	if binary == "" {
		binary = defaultShellBinary
	}

	instance = &Shell{
		name:   conf.Name,
		binary: binary,
		engine: engine,
		logger: logrus.WithField("translator_instance", conf.Name),
	}
	return
}

func (t *Shell) Name() string {
	return t.name
}

func (t *Shell) buildArgs(source language.Input, target language.Language) []string {
	args := []string{
		"-brief",
		"-no-ansi",
		"-e", t.engine,
		"-t", target.Code(),
	}
	if src, defined := source.Language(); defined {
		args = append(args, "-s", src.Code())
	}
	return args
}

func (t *Shell) Translate(ctx context.Context, text string, source language.Input, target language.Language) (translated string, err error) {
	args := append(t.buildArgs(source, target), text)
	t.logger.Debugf("%s %s", t.binary, strings.Join(args, " "))

	out := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stdout = out
	cmd.Stderr = stderr

	if err = cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); isExit {
			err = &ProviderError{
				Provider: t.name,
				Code:     cmd.ProcessState.ExitCode(),
				Message:  strings.TrimSpace(stderr.String()),
			}
			return
		}
		err = &TransportError{Provider: t.name, Err: err}
		return
	}

	translated = strings.TrimRight(out.String(), "\n")
	if translated == "" {
		err = &DecodeError{Provider: t.name, Err: fmt.Errorf("empty output from %s", t.binary)}
	}
	return
}
