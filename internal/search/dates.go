package search

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Date patterns tried against title+snippet text, most specific first:
// ISO numeric, Turkish day-month-name, then an English month-name fallback
// because search snippets mix locales.
var (
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	turkishDatePattern = regexp.MustCompile(`\b(\d{1,2})\s+(Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık)\s+(\d{4})\b`)
	englishDatePattern = regexp.MustCompile(`\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

var turkishMonths = map[string]time.Month{
	"Ocak": time.January, "Şubat": time.February, "Mart": time.March,
	"Nisan": time.April, "Mayıs": time.May, "Haziran": time.June,
	"Temmuz": time.July, "Ağustos": time.August, "Eylül": time.September,
	"Ekim": time.October, "Kasım": time.November, "Aralık": time.December,
}

var englishMonths = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// ExtractDate pulls the first recognizable publication date out of free
// text. Returns the zero time when nothing parses.
func ExtractDate(text string) time.Time {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	if m := turkishDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := turkishMonths[m[2]]; ok && day >= 1 && day <= 31 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
	}

	if m := englishDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month, ok := englishMonths[m[1]]; ok && day >= 1 && day <= 31 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}

// RankByRecency stable-sorts results by extracted date, newest first.
// Results without a date keep their relevance order at the tail; nothing is
// dropped.
func RankByRecency(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
