// Package pipeline wires the answer stages together: sanitize, classify
// freshness, search, build grounding context, generate.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leko-robotics/leko-server/internal/answer"
	"github.com/leko-robotics/leko-server/internal/config"
	"github.com/leko-robotics/leko-server/internal/freshness"
	"github.com/leko-robotics/leko-server/internal/grounding"
	"github.com/leko-robotics/leko-server/internal/llm"
	"github.com/leko-robotics/leko-server/internal/sanitize"
	"github.com/leko-robotics/leko-server/internal/search"
	"github.com/leko-robotics/leko-server/pkg/anthropic"
	"github.com/leko-robotics/leko-server/pkg/googlesearch"
	"github.com/leko-robotics/leko-server/pkg/openai"
)

// ErrNotConfigured is returned by Ask when no completion provider
// credential is present. Callers map it to their CONFIG_MISSING surface.
var ErrNotConfigured = eris.New("pipeline: no completion provider configured")

// Result is the assembled response for one question.
type Result struct {
	Answer  string `json:"answer"`
	UsedWeb bool   `json:"used_web"`
}

// Pipeline answers a single question per call. Instances are safe for
// concurrent use.
type Pipeline struct {
	classifier *freshness.Classifier
	provider   search.Provider
	generator  *answer.Generator

	maxQuestionLen    int
	maxContextResults int
	searchLimit       int
	configured        bool
}

// Options holds the pipeline dependencies.
type Options struct {
	Classifier *freshness.Classifier
	Provider   search.Provider // nil disables web search
	Generator  *answer.Generator

	MaxQuestionLen    int
	MaxContextResults int
	SearchLimit       int

	// Configured reports whether a completion credential was supplied.
	// When false, Ask fails fast instead of producing apology answers
	// for what is really a deployment problem.
	Configured bool
}

// New creates a Pipeline from explicit dependencies.
func New(opts Options) *Pipeline {
	if opts.MaxQuestionLen <= 0 {
		opts.MaxQuestionLen = sanitize.DefaultMaxLen
	}
	if opts.MaxContextResults <= 0 {
		opts.MaxContextResults = grounding.MaxResults
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 5
	}
	return &Pipeline{
		classifier:        opts.Classifier,
		provider:          opts.Provider,
		generator:         opts.Generator,
		maxQuestionLen:    opts.MaxQuestionLen,
		maxContextResults: opts.MaxContextResults,
		searchLimit:       opts.SearchLimit,
		configured:        opts.Configured,
	}
}

// FromConfig assembles the full pipeline from configuration: provider
// clients, model router, classifier, search adapter and generator. Missing
// credentials disable the corresponding provider rather than failing here;
// the gap surfaces per request.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	var oa openai.Client
	if cfg.OpenAI.Key != "" {
		oa = openai.NewClient(cfg.OpenAI.Key, openai.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	var an anthropic.Client
	if cfg.Anthropic.Key != "" {
		an = anthropic.NewClient(cfg.Anthropic.Key)
	}
	router := llm.NewRouter(oa, an)

	keywords := freshness.NewKeywordSet(nil)
	if cfg.Freshness.KeywordFile != "" {
		ks, err := freshness.LoadKeywordSet(cfg.Freshness.KeywordFile)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: load keyword file")
		}
		keywords = ks
	}

	var provider search.Provider
	if cfg.Search.Key != "" && cfg.Search.EngineID != "" {
		client := googlesearch.NewClient(cfg.Search.Key, cfg.Search.EngineID,
			googlesearch.WithBaseURL(cfg.Search.BaseURL))
		provider = search.NewGoogleProvider(client, cfg.Search.Locale, cfg.Answer.SearchTimeout())
	} else {
		zap.L().Warn("pipeline: search credentials missing, web search disabled")
	}

	return New(Options{
		Classifier:        freshness.NewClassifier(router, cfg.Models.Classifier, keywords, cfg.Answer.ClassifyTimeout()),
		Provider:          provider,
		Generator:         answer.NewGenerator(router, cfg.Models.Chain, cfg.Answer.GenerateTimeout()),
		MaxQuestionLen:    cfg.Answer.MaxQuestionLen,
		MaxContextResults: cfg.Answer.MaxContextResults,
		SearchLimit:       cfg.Search.Limit,
		Configured:        cfg.OpenAI.Key != "" || cfg.Anthropic.Key != "",
	}), nil
}

// Ask runs one question through the pipeline. The only error it can
// return is ErrNotConfigured; every provider failure past that point
// degrades into a non-empty answer instead.
func (p *Pipeline) Ask(ctx context.Context, text string) (*Result, error) {
	if !p.configured {
		return nil, ErrNotConfigured
	}

	question := sanitize.Text(text, p.maxQuestionLen)
	if question == "" {
		return &Result{Answer: answer.EmptyPrompt}, nil
	}

	needsLiveData := p.classifier.NeedsLiveData(ctx, question)

	var webContext string
	if needsLiveData && p.provider != nil {
		results := p.provider.Search(ctx, question, p.searchLimit)
		webContext = grounding.Build(results, p.maxContextResults)
		zap.L().Debug("pipeline: search stage done",
			zap.String("provider", p.provider.Name()),
			zap.Int("results", len(results)),
		)
	}

	text = p.generator.Generate(ctx, question, webContext, needsLiveData)

	// UsedWeb reports whether grounding actually reached the model, not
	// merely that the classifier wanted it: a fresh question whose search
	// came back empty was answered without web data.
	return &Result{
		Answer:  text,
		UsedWeb: needsLiveData && webContext != "",
	}, nil
}
