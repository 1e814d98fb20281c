// Package frequency aggregates tokens into per-company word counts and
// tf-idf weights, treating each company's tokens as a single document.
package frequency

import (
	"math"
	"sort"

	"news-textmining/internal/tokenizer"
	"news-textmining/internal/types"
)

type key struct {
	company string
	word    string
}

// Count returns one row per (company, word), sorted by company, then count
// descending, then word.
func Count(tokens []types.Token) []types.WordCount {
	counts := make(map[key]int)
	for _, t := range tokens {
		counts[key{t.Company, t.Word}]++
	}

	out := make([]types.WordCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, types.WordCount{Company: k.company, Word: k.word, N: n})
	}
	sortCounts(out)
	return out
}

// ExcludeNumeric drops rows whose word is a bare number.
func ExcludeNumeric(counts []types.WordCount) []types.WordCount {
	out := make([]types.WordCount, 0, len(counts))
	for _, c := range counts {
		if !tokenizer.IsNumeric(c.Word) {
			out = append(out, c)
		}
	}
	return out
}

// Totals returns the number of tokens per company.
func Totals(counts []types.WordCount) map[string]int {
	totals := make(map[string]int)
	for _, c := range counts {
		totals[c.Company] += c.N
	}
	return totals
}

// TfIdf weights every count row.
//
//	tf     = n / tokens of the company
//	idf    = ln(N / companies containing the word)
//	tf_idf = tf * idf
//
// N is the number of companies with at least one counted word, so a word
// used by every company gets idf 0. Rows keep the order of counts.
func TfIdf(counts []types.WordCount) []types.TfIdf {
	totals := Totals(counts)

	docs := 0
	for _, total := range totals {
		if total > 0 {
			docs++
		}
	}

	df := make(map[string]int)
	for _, c := range counts {
		if c.N > 0 {
			df[c.Word]++
		}
	}

	out := make([]types.TfIdf, 0, len(counts))
	for _, c := range counts {
		if c.N <= 0 {
			continue
		}
		tf := float64(c.N) / float64(totals[c.Company])
		idf := 0.0
		if df[c.Word] < docs {
			idf = math.Log(float64(docs) / float64(df[c.Word]))
		}
		out = append(out, types.TfIdf{
			Company: c.Company,
			Word:    c.Word,
			N:       c.N,
			TF:      tf,
			IDF:     idf,
			TfIdf:   tf * idf,
		})
	}
	return out
}

// TopTfIdf keeps the n highest-weighted words of each company, ordered by
// company, then tf_idf descending, then word.
func TopTfIdf(rows []types.TfIdf, n int) []types.TfIdf {
	sorted := append([]types.TfIdf(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.TfIdf != b.TfIdf {
			return a.TfIdf > b.TfIdf
		}
		return a.Word < b.Word
	})

	out := make([]types.TfIdf, 0, len(sorted))
	taken := make(map[string]int)
	for _, r := range sorted {
		if taken[r.Company] >= n {
			continue
		}
		taken[r.Company]++
		out = append(out, r)
	}
	return out
}

// TopWords keeps the n most frequent words of each company.
func TopWords(counts []types.WordCount, n int) []types.WordCount {
	sorted := append([]types.WordCount(nil), counts...)
	sortCounts(sorted)

	out := make([]types.WordCount, 0, len(sorted))
	taken := make(map[string]int)
	for _, c := range sorted {
		if taken[c.Company] >= n {
			continue
		}
		taken[c.Company]++
		out = append(out, c)
	}
	return out
}

func sortCounts(counts []types.WordCount) {
	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.N != b.N {
			return a.N > b.N
		}
		return a.Word < b.Word
	})
}
