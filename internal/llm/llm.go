// Package llm defines the completion contract the pipeline depends on and
// routes model IDs to the provider that owns them.
package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leko-robotics/leko-server/pkg/anthropic"
	"github.com/leko-robotics/leko-server/pkg/openai"
)

// Message is a single role-tagged message.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Request describes one completion attempt. Temperature is optional because
// some models reject it outright.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature *float64
}

// Completer issues a completion request and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Router dispatches requests to the provider owning the requested model:
// "claude…" IDs go to Anthropic, everything else to the OpenAI-compatible
// endpoint.
type Router struct {
	openai    openai.Client
	anthropic anthropic.Client
}

// NewRouter creates a Router. Either client may be nil; requests routed to a
// missing provider fail with an error the caller can fall through on.
func NewRouter(oa openai.Client, an anthropic.Client) *Router {
	return &Router{openai: oa, anthropic: an}
}

// Complete implements Completer.
func (r *Router) Complete(ctx context.Context, req Request) (string, error) {
	if strings.HasPrefix(req.Model, "claude") {
		return r.completeAnthropic(ctx, req)
	}
	return r.completeOpenAI(ctx, req)
}

func (r *Router) completeOpenAI(ctx context.Context, req Request) (string, error) {
	if r.openai == nil {
		return "", eris.Errorf("llm: no openai client configured for model %s", req.Model)
	}

	msgs := make([]openai.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openai.Message{Role: m.Role, Content: m.Content})
	}

	oaReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
	}
	if req.MaxTokens > 0 {
		oaReq.MaxTokens = &req.MaxTokens
	}

	resp, err := r.openai.ChatCompletion(ctx, oaReq)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (r *Router) completeAnthropic(ctx context.Context, req Request) (string, error) {
	if r.anthropic == nil {
		return "", eris.Errorf("llm: no anthropic client configured for model %s", req.Model)
	}

	msgs := make([]anthropic.Message, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = anthropic.Message{Role: m.Role, Content: m.Content}
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := r.anthropic.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		System:      req.System,
		Messages:    msgs,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
