package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leko-robotics/leko-server/pkg/anthropic"
	"github.com/leko-robotics/leko-server/pkg/openai"
)

type fakeOpenAI struct {
	lastReq openai.ChatCompletionRequest
	reply   string
	err     error
}

func (f *fakeOpenAI) ChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &openai.ChatCompletionResponse{
		Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: f.reply}}},
	}, nil
}

type fakeAnthropic struct {
	lastReq anthropic.MessageRequest
	reply   string
	err     error
}

func (f *fakeAnthropic) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.reply}},
	}, nil
}

func TestRouter_RoutesByModelPrefix(t *testing.T) {
	oa := &fakeOpenAI{reply: "openai says hi"}
	an := &fakeAnthropic{reply: "claude says hi"}
	r := NewRouter(oa, an)

	text, err := r.Complete(context.Background(), Request{
		Model:    "gpt-4o",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "openai says hi", text)
	assert.Equal(t, "gpt-4o", oa.lastReq.Model)

	text, err = r.Complete(context.Background(), Request{
		Model:    "claude-haiku-4-5-20251001",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude says hi", text)
	assert.Equal(t, "claude-haiku-4-5-20251001", an.lastReq.Model)
}

func TestRouter_SystemPromptPlacement(t *testing.T) {
	oa := &fakeOpenAI{reply: "ok"}
	an := &fakeAnthropic{reply: "ok"}
	r := NewRouter(oa, an)

	_, err := r.Complete(context.Background(), Request{
		Model:    "gpt-4o-mini",
		System:   "be brief",
		Messages: []Message{{Role: "user", Content: "soru"}},
	})
	require.NoError(t, err)
	// OpenAI carries the system prompt as the first message.
	require.Len(t, oa.lastReq.Messages, 2)
	assert.Equal(t, "system", oa.lastReq.Messages[0].Role)
	assert.Equal(t, "be brief", oa.lastReq.Messages[0].Content)

	_, err = r.Complete(context.Background(), Request{
		Model:    "claude-haiku-4-5-20251001",
		System:   "be brief",
		Messages: []Message{{Role: "user", Content: "soru"}},
	})
	require.NoError(t, err)
	// Anthropic carries it as a dedicated field.
	assert.Equal(t, "be brief", an.lastReq.System)
	require.Len(t, an.lastReq.Messages, 1)
	assert.Equal(t, "user", an.lastReq.Messages[0].Role)
}

func TestRouter_MaxTokens(t *testing.T) {
	oa := &fakeOpenAI{reply: "ok"}
	an := &fakeAnthropic{reply: "ok"}
	r := NewRouter(oa, an)

	_, err := r.Complete(context.Background(), Request{
		Model:     "gpt-4o-mini",
		MaxTokens: 4,
		Messages:  []Message{{Role: "user", Content: "x"}},
	})
	require.NoError(t, err)
	require.NotNil(t, oa.lastReq.MaxTokens)
	assert.Equal(t, 4, *oa.lastReq.MaxTokens)

	// Anthropic requires max_tokens; unset falls back to a default.
	_, err = r.Complete(context.Background(), Request{
		Model:    "claude-haiku-4-5-20251001",
		Messages: []Message{{Role: "user", Content: "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1024), an.lastReq.MaxTokens)
}

func TestRouter_MissingProvider(t *testing.T) {
	r := NewRouter(nil, nil)

	_, err := r.Complete(context.Background(), Request{Model: "gpt-4o"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no openai client")

	_, err = r.Complete(context.Background(), Request{Model: "claude-haiku-4-5-20251001"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no anthropic client")
}
