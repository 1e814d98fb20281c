// Package pipeline chains fetch, tokenize, aggregate and score into one run.
package pipeline

import (
	"news-textmining/internal/frequency"
	"news-textmining/internal/lexicon"
	"news-textmining/internal/sentiment"
	"news-textmining/internal/store"
	"news-textmining/internal/tokenizer"
	"news-textmining/internal/types"
)

// Options are the analysis knobs of a run.
type Options struct {
	IncludeHeading bool
	ExcludeNumeric bool
	TopN           int
}

func OptionsFromConfig(cfg *store.Config) Options {
	return Options{
		IncludeHeading: cfg.Tokenizer.IncludeHeading,
		ExcludeNumeric: cfg.ExcludeNumericWords(),
		TopN:           cfg.Analysis.TopN,
	}
}

// LexiconResult is the scorer output for one lexicon.
type LexiconResult struct {
	Name          string                  `json:"name"`
	Scored        bool                    `json:"scored"`
	Tallies       []types.SentimentTally  `json:"tallies"`
	Positivity    []types.PositivityScore `json:"positivity"`
	Contributions []types.Contribution    `json:"contributions,omitempty"`
	TopWords      []types.SentimentWord   `json:"top_words"`
}

// Result holds every table of a run.
type Result struct {
	Companies     []types.Company     `json:"companies"`
	Statuses      []types.FetchStatus `json:"fetch_statuses,omitempty"`
	ArticleCounts map[string]int      `json:"article_counts"`
	TokenTotals   map[string]int      `json:"token_totals"`
	WordCounts    []types.WordCount   `json:"word_counts"`
	TopWords      []types.WordCount   `json:"top_words"`
	TfIdf         []types.TfIdf       `json:"tf_idf"`
	TopTfIdf      []types.TfIdf       `json:"top_tf_idf"`
	Lexicons      []LexiconResult     `json:"lexicons"`
}

// Lexicon returns the result for the named lexicon, or nil.
func (r *Result) Lexicon(name string) *LexiconResult {
	for i := range r.Lexicons {
		if r.Lexicons[i].Name == name {
			return &r.Lexicons[i]
		}
	}
	return nil
}

// Analyze turns a fixed article set into the result tables. It has no side
// effects; the same inputs always give the same Result.
func Analyze(companies []types.Company, articles []types.Article, lexicons []*lexicon.Lexicon, opts Options) *Result {
	if opts.TopN < 1 {
		opts.TopN = 1
	}

	names := make([]string, len(companies))
	articleCounts := make(map[string]int, len(companies))
	tokenTotals := make(map[string]int, len(companies))
	for i, c := range companies {
		names[i] = c.Name
		articleCounts[c.Name] = 0
		tokenTotals[c.Name] = 0
	}

	for _, a := range articles {
		articleCounts[a.CompanyKey()]++
	}

	tokens := tokenizer.TokenizeAll(articles, tokenizer.Options{IncludeHeading: opts.IncludeHeading})
	for _, t := range tokens {
		tokenTotals[t.Company]++
	}

	counts := frequency.Count(tokens)
	weighted := counts
	if opts.ExcludeNumeric {
		weighted = frequency.ExcludeNumeric(counts)
	}
	tfidf := frequency.TfIdf(weighted)

	res := &Result{
		Companies:     companies,
		ArticleCounts: articleCounts,
		TokenTotals:   tokenTotals,
		WordCounts:    counts,
		TopWords:      frequency.TopWords(weighted, opts.TopN),
		TfIdf:         tfidf,
		TopTfIdf:      frequency.TopTfIdf(tfidf, opts.TopN),
	}

	for _, lex := range lexicons {
		tallies := sentiment.Tally(tokens, lex)
		lr := LexiconResult{
			Name:       lex.Name(),
			Scored:     lex.Scored(),
			Tallies:    tallies,
			Positivity: sentiment.Positivity(tallies, names),
			TopWords:   sentiment.TopWordsBySentiment(tokens, lex, opts.TopN),
		}
		if lex.Scored() {
			lr.Contributions = sentiment.Contributions(tokens, lex)
		}
		res.Lexicons = append(res.Lexicons, lr)
	}

	return res
}
