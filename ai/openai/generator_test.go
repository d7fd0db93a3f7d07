package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/contractsearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel replays scripted responses, one per GenerateContent call.
type fakeModel struct {
	responses []*llms.ContentResponse
	errs      []error
	calls     int
	messages  [][]llms.MessageContent
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	i := f.calls
	f.calls++
	f.messages = append(f.messages, messages)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return &llms.ContentResponse{}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func reply(text string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}
}

func testConfig() *ai.Config {
	return ai.NewConfig(ai.WithMaxAttempts(3), ai.WithRetryDelay(time.Millisecond))
}

func TestGenerator_Generate(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{reply("  {\"ok\":true}\n")}}
	gen := newGeneratorWithModel(model, testConfig())

	got, err := gen.Generate(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
	assert.Equal(t, 1, model.calls)

	require.Len(t, model.messages[0], 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0][0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0][1].Role)
	assert.Equal(t, llms.TextContent{Text: "analyze this"}, model.messages[0][1].Parts[0])
}

func TestGenerator_RetriesTransportErrors(t *testing.T) {
	model := &fakeModel{
		errs:      []error{errors.New("connection refused"), nil},
		responses: []*llms.ContentResponse{nil, reply("done")},
	}
	gen := newGeneratorWithModel(model, testConfig())

	got, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 2, model.calls)
}

func TestGenerator_GivesUpAfterMaxAttempts(t *testing.T) {
	boom := errors.New("service unavailable")
	model := &fakeModel{errs: []error{boom, boom, boom, boom}}
	gen := newGeneratorWithModel(model, testConfig())

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, model.calls)
}

func TestGenerator_EmptyResponseIsNotRetried(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{{}}}
	gen := newGeneratorWithModel(model, testConfig())

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	assert.Equal(t, 1, model.calls)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(ai.NewConfig(ai.WithModel("")))
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(ai.WithHost("http://localhost:11434")))
	require.NoError(t, err)
	defer provider.Close()

	assert.NotNil(t, provider.Generator())
}
