package grounding

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leko-robotics/leko-server/internal/search"
)

func TestBuild_Empty(t *testing.T) {
	assert.Equal(t, "", Build(nil, MaxResults))
	assert.Equal(t, "", Build([]search.Result{}, MaxResults))
}

func TestBuild_ContainsEveryTitle(t *testing.T) {
	results := []search.Result{
		{Title: "Dolar Kuru", Snippet: "Bugün 34,50 TL", Link: "https://a.example"},
		{Title: "Döviz Piyasası", Snippet: "Kurlar yükseldi"},
	}

	ctx := Build(results, MaxResults)
	assert.Contains(t, ctx, "Dolar Kuru")
	assert.Contains(t, ctx, "Döviz Piyasası")
	assert.Contains(t, ctx, "Bugün 34,50 TL")
	assert.Contains(t, ctx, "https://a.example")
}

func TestBuild_BoundedToFive(t *testing.T) {
	var results []search.Result
	for i := 0; i < 8; i++ {
		results = append(results, search.Result{Title: fmt.Sprintf("sonuç-%d", i)})
	}

	ctx := Build(results, 0)
	for i := 0; i < 5; i++ {
		assert.Contains(t, ctx, fmt.Sprintf("sonuç-%d", i))
	}
	for i := 5; i < 8; i++ {
		assert.NotContains(t, ctx, fmt.Sprintf("sonuç-%d", i))
	}
	assert.Equal(t, 4, strings.Count(ctx, "\n---\n"))
}

func TestBuild_SmallerLimit(t *testing.T) {
	results := []search.Result{
		{Title: "bir"},
		{Title: "iki"},
		{Title: "üç"},
	}
	ctx := Build(results, 2)
	assert.Contains(t, ctx, "bir")
	assert.Contains(t, ctx, "iki")
	assert.NotContains(t, ctx, "üç")
}

func TestBuild_OmitsEmptyFields(t *testing.T) {
	ctx := Build([]search.Result{{Title: "sadece başlık"}}, MaxResults)
	assert.Contains(t, ctx, "Başlık: sadece başlık")
	assert.NotContains(t, ctx, "Özet:")
	assert.NotContains(t, ctx, "Kaynak:")
}
