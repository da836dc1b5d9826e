// Package freshness decides whether a question needs live data before it
// can be answered well.
package freshness

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/llm"
)

const classifierSystemPrompt = `Sana bir soru verilecek. Sorunun doğru cevabı internetten güncel bilgi gerektiriyorsa SADECE "EVET", gerektirmiyorsa SADECE "HAYIR" yaz. Başka hiçbir şey yazma.`

// classifierMaxTokens caps the binary judgment output. The answer is a
// single token either way.
const classifierMaxTokens = 4

// Classifier decides needs_live_data for a question. The keyword set is the
// zero-latency fast path; the model judgment covers the long tail.
type Classifier struct {
	completer llm.Completer
	model     string
	keywords  *KeywordSet
	timeout   time.Duration
}

// NewClassifier creates a Classifier. completer may be nil, in which case
// only the keyword heuristic runs.
func NewClassifier(completer llm.Completer, model string, keywords *KeywordSet, timeout time.Duration) *Classifier {
	if keywords == nil {
		keywords = NewKeywordSet(nil)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Classifier{
		completer: completer,
		model:     model,
		keywords:  keywords,
		timeout:   timeout,
	}
}

// NeedsLiveData reports whether the question depends on time-varying
// real-world state. A keyword hit short-circuits without a model call. On
// any model failure the answer is false: the safe degradation is a plain
// answer, not a failed request.
func (c *Classifier) NeedsLiveData(ctx context.Context, question string) bool {
	if question == "" {
		return false
	}

	if c.keywords.Matches(question) {
		zap.L().Debug("freshness: keyword fast path hit",
			zap.String("question", question),
		)
		return true
	}

	if c.completer == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.completer.Complete(ctx, llm.Request{
		Model:     c.model,
		System:    classifierSystemPrompt,
		Messages:  []llm.Message{{Role: "user", Content: question}},
		MaxTokens: classifierMaxTokens,
	})
	if err != nil {
		zap.L().Warn("freshness: model judgment failed, assuming not fresh",
			zap.String("model", c.model),
			zap.Error(err),
		)
		return false
	}

	return isAffirmative(text)
}

// isAffirmative parses the constrained model output by prefix: "E" covers
// EVET, "Y" covers YES for models that slip into English.
func isAffirmative(text string) bool {
	t := strings.ToUpper(strings.TrimSpace(text))
	return strings.HasPrefix(t, "E") || strings.HasPrefix(t, "Y")
}
