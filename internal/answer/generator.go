// Package answer generates the final child-facing reply, falling through an
// ordered model chain and enforcing the non-empty-answer guarantee.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/llm"
)

const systemPromptGeneral = `Sen Leko adında, çocuklarla konuşan sevimli bir robotsun. Sorulara kısa, net ve çocukların anlayacağı bir dille cevap ver. Bildiğin konularda kendinden emin cevap ver. En fazla üç cümle kullan. Cevabında asla internet adresi yazma.`

const systemPromptFresh = `Sen Leko adında, çocuklarla konuşan sevimli bir robotsun. Soru güncel bilgi gerektiriyor. Sana verilen web sonuçlarını kullanarak kısa ve net cevap ver. Web sonuçları yetersizse tahmin etme; emin olmadığını söyle. En fazla üç cümle kullan. Cevabında asla internet adresi yazma.`

const systemPromptFreshNoContext = `Sen Leko adında, çocuklarla konuşan sevimli bir robotsun. Soru güncel bilgi gerektiriyor ama şu anda web sonucuna ulaşamıyorsun. Tahmin etme; emin olmadığını söyle ve biraz sonra tekrar sormasını öner. En fazla üç cümle kullan. Cevabında asla internet adresi yazma.`

const freshUserPromptTemplate = `Web sonuçları:
%s

Soru: %s`

// Generator runs completion attempts down an ordered model chain.
type Generator struct {
	completer llm.Completer
	chain     []string
	timeout   time.Duration
	maxTokens int
}

// NewGenerator creates a Generator over the given chain. timeout bounds
// each individual model attempt.
func NewGenerator(completer llm.Completer, chain []string, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Generator{
		completer: completer,
		chain:     chain,
		timeout:   timeout,
		maxTokens: 512,
	}
}

// Generate produces the final answer text. The system prompt follows the
// classifier's needsLiveData decision: a fresh question gets an
// uncertainty-aware prompt even when search produced nothing, so the model
// never answers a time-varying question from memory with confidence. The
// general variant tells it to answer definitively. Models are tried in
// chain order with the same payload; an empty completion counts as a
// failure. When the whole chain fails the fixed apology is returned —
// never an error, never an empty string.
func (g *Generator) Generate(ctx context.Context, question, webContext string, needsLiveData bool) string {
	system := systemPromptGeneral
	userPrompt := question
	if needsLiveData {
		system = systemPromptFreshNoContext
		if webContext != "" {
			system = systemPromptFresh
			userPrompt = fmt.Sprintf(freshUserPromptTemplate, webContext, question)
		}
	}

	req := llm.Request{
		System:    system,
		Messages:  []llm.Message{{Role: "user", Content: userPrompt}},
		MaxTokens: g.maxTokens,
	}

	for _, model := range g.chain {
		req.Model = model

		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := g.completer.Complete(attemptCtx, req)
		cancel()

		if err != nil {
			zap.L().Warn("answer: model attempt failed, trying next",
				zap.String("model", model),
				zap.Error(err),
			)
			continue
		}
		if strings.TrimSpace(text) == "" {
			zap.L().Warn("answer: model returned empty completion, trying next",
				zap.String("model", model),
			)
			continue
		}

		cleaned := Clean(text)
		if IsDegenerate(cleaned) {
			zap.L().Info("answer: degenerate completion replaced",
				zap.String("model", model),
				zap.String("raw", text),
			)
			return NoClearAnswer
		}

		zap.L().Debug("answer: generated",
			zap.String("model", model),
		)
		return cleaned
	}

	zap.L().Warn("answer: model chain exhausted",
		zap.Strings("chain", g.chain),
	)
	return Apology
}
