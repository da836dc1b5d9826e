package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			"iso",
			"Dolar kuru 2025-03-14 itibariyle",
			time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"turkish",
			"Deprem haberi - 7 Şubat 2025 tarihli",
			time.Date(2025, time.February, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			"english_full",
			"Published on January 2, 2025 by staff",
			time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"english_abbrev",
			"Aug 15, 2024 — markets rally",
			time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"iso_wins_over_names",
			"2025-06-01 ve 3 Mart 2020",
			time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		},
		{"none", "Kediler neden mırlar", time.Time{}},
		{"bogus_iso_month", "tarih 2025-13-40 gibi", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.text))
		})
	}
}

func TestRankByRecency(t *testing.T) {
	old := Result{Title: "eski", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := Result{Title: "yeni", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	undatedA := Result{Title: "tarihsiz-a"}
	undatedB := Result{Title: "tarihsiz-b"}

	ranked := RankByRecency([]Result{undatedA, old, newer, undatedB})

	assert.Equal(t, []string{"yeni", "eski", "tarihsiz-a", "tarihsiz-b"},
		[]string{ranked[0].Title, ranked[1].Title, ranked[2].Title, ranked[3].Title})

	// Undated results are kept, in their original relative order.
	assert.Len(t, ranked, 4)
}

func TestRankByRecency_DoesNotMutateInput(t *testing.T) {
	in := []Result{
		{Title: "a"},
		{Title: "b", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	_ = RankByRecency(in)
	assert.Equal(t, "a", in[0].Title)
}
