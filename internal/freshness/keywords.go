package freshness

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// defaultKeywords are the temporal and volatility markers that mark a
// question as needing live data. Matching any of them short-circuits the
// classifier without a model call.
var defaultKeywords = []string{
	// Turkish. Short markers like "kur" or "maç" are deliberately absent:
	// they are substrings of unrelated words (kurbağa, amaç).
	"bugün", "şu an", "şimdi", "yarın",
	"son dakika", "güncel", "en son",
	"hava durumu", "hava nasıl",
	"dolar", "euro", "döviz", "borsa", "bitcoin",
	"skor", "maç sonucu", "puan durumu",
	"fiyat", "kaç para", "ne kadar",
	"deprem", "seçim", "haber",
	// English
	"today", "right now", "latest", "current",
	"weather", "score", "exchange rate",
	"price", "news", "election", "earthquake",
}

// KeywordSet matches question text against a configurable list of markers
// using Turkish-aware case folding.
type KeywordSet struct {
	keywords []string
	lower    cases.Caser
}

// NewKeywordSet builds a set from the given keywords, or the built-in list
// when keywords is empty.
func NewKeywordSet(keywords []string) *KeywordSet {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	lower := cases.Lower(language.Turkish)
	normalized := make([]string, len(keywords))
	for i, k := range keywords {
		normalized[i] = lower.String(k)
	}
	return &KeywordSet{keywords: normalized, lower: cases.Lower(language.Turkish)}
}

// keywordFile is the YAML shape of an external keyword list.
type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordSet reads a keyword list from a YAML file of the form
// {keywords: [...]}. Behavior lives in data so deployments can tune the
// list without a code change.
func LoadKeywordSet(path string) (*KeywordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "freshness: read keyword file %s", path)
	}

	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, eris.Wrapf(err, "freshness: parse keyword file %s", path)
	}
	if len(kf.Keywords) == 0 {
		return nil, eris.Errorf("freshness: keyword file %s has no keywords", path)
	}

	return NewKeywordSet(kf.Keywords), nil
}

// Matches reports whether the question contains any configured marker.
// Matching is case-insensitive with Turkish casing rules (İ → i, I → ı).
// Markers are phrases, not regexes; substring semantics keep the list easy
// to reason about.
func (ks *KeywordSet) Matches(question string) bool {
	q := ks.lower.String(question)
	for _, k := range ks.keywords {
		if k != "" && strings.Contains(q, k) {
			return true
		}
	}
	return false
}
