// Package sentiment joins tokens against a lexicon and derives per-company
// tallies, positivity scores and word contributions.
package sentiment

import (
	"math"
	"sort"

	"news-textmining/internal/lexicon"
	"news-textmining/internal/types"
)

type tallyKey struct {
	company   string
	sentiment string
}

// Tally counts, per company and sentiment label, the tokens whose word is in
// the lexicon. Words absent from the lexicon are ignored. Rows are sorted by
// company, then count descending, then label.
func Tally(tokens []types.Token, lex *lexicon.Lexicon) []types.SentimentTally {
	counts := make(map[tallyKey]int)
	for _, t := range tokens {
		for _, e := range lex.Lookup(t.Word) {
			counts[tallyKey{t.Company, e.Sentiment}]++
		}
	}

	out := make([]types.SentimentTally, 0, len(counts))
	for k, n := range counts {
		out = append(out, types.SentimentTally{Company: k.company, Sentiment: k.sentiment, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Sentiment < b.Sentiment
	})
	return out
}

// Positivity returns one score per company, in the order given:
// (positive-negative)/(positive+negative). Companies without positive or
// negative matches get a nil score.
func Positivity(tallies []types.SentimentTally, companies []string) []types.PositivityScore {
	pos := make(map[string]int)
	neg := make(map[string]int)
	for _, t := range tallies {
		switch t.Sentiment {
		case types.Positive:
			pos[t.Company] += t.Count
		case types.Negative:
			neg[t.Company] += t.Count
		}
	}

	out := make([]types.PositivityScore, 0, len(companies))
	for _, c := range companies {
		out = append(out, Score(c, pos[c], neg[c]))
	}
	return out
}

// Score builds a PositivityScore from raw counts.
func Score(company string, positive, negative int) types.PositivityScore {
	p := types.PositivityScore{Company: company, Positive: positive, Negative: negative}
	if total := positive + negative; total > 0 {
		s := float64(positive-negative) / float64(total)
		p.Score = &s
	}
	return p
}

// Contributions sums the lexicon score of every matching token per word,
// ranked by absolute contribution, then word. Entries without a score are
// skipped, so unscored lexicons yield nothing.
func Contributions(tokens []types.Token, lex *lexicon.Lexicon) []types.Contribution {
	byWord := make(map[string]*types.Contribution)
	for _, t := range tokens {
		for _, e := range lex.Lookup(t.Word) {
			if !e.HasScore {
				continue
			}
			c, ok := byWord[t.Word]
			if !ok {
				c = &types.Contribution{Word: t.Word, Score: e.Score}
				byWord[t.Word] = c
			}
			c.Occurrences++
			c.Contribution += e.Score
		}
	}

	out := make([]types.Contribution, 0, len(byWord))
	for _, c := range byWord {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Contribution), math.Abs(out[j].Contribution)
		if ai != aj {
			return ai > aj
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// TopWordsBySentiment returns, for each label, the n most frequent matched
// words across all companies. Rows are ordered by label, then count
// descending, then word.
func TopWordsBySentiment(tokens []types.Token, lex *lexicon.Lexicon, n int) []types.SentimentWord {
	type key struct{ sentiment, word string }
	counts := make(map[key]int)
	for _, t := range tokens {
		for _, e := range lex.Lookup(t.Word) {
			counts[key{e.Sentiment, t.Word}]++
		}
	}

	rows := make([]types.SentimentWord, 0, len(counts))
	for k, c := range counts {
		rows = append(rows, types.SentimentWord{Sentiment: k.sentiment, Word: k.word, N: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Sentiment != b.Sentiment {
			return a.Sentiment < b.Sentiment
		}
		if a.N != b.N {
			return a.N > b.N
		}
		return a.Word < b.Word
	})

	out := make([]types.SentimentWord, 0, len(rows))
	taken := make(map[string]int)
	for _, r := range rows {
		if taken[r.Sentiment] >= n {
			continue
		}
		taken[r.Sentiment]++
		out = append(out, r)
	}
	return out
}
