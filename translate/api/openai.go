package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/aunetx/text-translator/language"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const OPENAI = "openai"

const defaultOpenAIPrompt = "You are a professional translator. " +
	"Reply with the translation only, without explanations or quotes."

func init() {
	registerInstance(OPENAI, newOpenAIInstance)
}

// OpenAI translates through a chat-completion endpoint (openai.com or any
// compatible server). The language mapping is total: the model is addressed
// with plain English language names, so no Language variant is unsupported.
// Detection is not exposed.
type OpenAI struct {
	name         string
	client       openai.Client
	model        string
	systemPrompt string
	logger       *logrus.Entry
}

func newOpenAIInstance(conf Config) (instance Api, err error) {
	if conf.Model == "" {
		err = fmt.Errorf("openai instance '%s': model is required", conf.Name)
		return
	}

	opts := []option.RequestOption{}
	if conf.Key == "" {
		logrus.Warnf("openai instance '%s': no API token configured, using empty", conf.Name)
	} else {
		opts = append(opts, option.WithAPIKey(conf.Key))
	}
	if conf.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(conf.Endpoint))
	}

	prompt := conf.SystemPrompt
	if prompt == "" {
		prompt = defaultOpenAIPrompt
	}

	instance = &OpenAI{
		name:         conf.Name,
		client:       openai.NewClient(opts...),
		model:        conf.Model,
		systemPrompt: prompt,
		logger:       logrus.WithField("translator_instance", conf.Name),
	}
	return
}

func (t *OpenAI) Name() string {
	return t.name
}

func (t *OpenAI) Translate(ctx context.Context, text string, source language.Input, target language.Language) (translated string, err error) {
	instruction := fmt.Sprintf("Translate the following text into %s.", target)
	if src, defined := source.Language(); defined {
		instruction = fmt.Sprintf("Translate the following text from %s into %s.", src, target)
	}

	chatCompletion, err := t.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: t.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(t.systemPrompt),
				openai.UserMessage(instruction + "\n\n" + text),
			},
		},
	)
	if err != nil {
		var apiErr = new(openai.Error)
		if errors.As(err, &apiErr) {
			err = &ProviderError{
				Provider:   t.name,
				StatusCode: apiErr.StatusCode,
				Code:       apiErr.StatusCode,
				Message:    apiErr.Message,
			}
			return
		}
		err = &TransportError{Provider: t.name, Err: err}
		return
	}

	if len(chatCompletion.Choices) == 0 {
		err = &DecodeError{Provider: t.name, Err: fmt.Errorf("no choice found in response")}
		return
	}

	t.logger.Debugf("tokens used, prompt: %d, completion: %d",
		chatCompletion.Usage.PromptTokens, chatCompletion.Usage.CompletionTokens)
	return chatCompletion.Choices[0].Message.Content, nil
}
