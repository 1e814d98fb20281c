package types

import (
	"strings"
	"time"
)

// Company is one entry of the configured universe.
type Company struct {
	Name   string `yaml:"name" json:"name"`
	Ticker string `yaml:"ticker" json:"ticker"`
}

// Symbol returns the ticker without its exchange qualifier ("NASDAQ:AAPL" -> "AAPL").
func (c Company) Symbol() string {
	return SymbolOf(c.Ticker)
}

// SymbolOf strips an exchange prefix from an exchange-qualified ticker.
func SymbolOf(ticker string) string {
	if i := strings.LastIndex(ticker, ":"); i >= 0 {
		return strings.TrimSpace(ticker[i+1:])
	}
	return strings.TrimSpace(ticker)
}

// Article is a single news item as returned by a fetcher. Immutable once fetched.
type Article struct {
	Company     string    `json:"company"`
	Ticker      string    `json:"ticker"`
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
	Heading     string    `json:"heading"`
	Text        string    `json:"text"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// CompanyKey is the grouping key used by every downstream aggregate.
func (a Article) CompanyKey() string {
	if a.Company != "" {
		return a.Company
	}
	return a.Ticker
}

// Token is one word unit of an article, carrying the article's identity.
type Token struct {
	Company     string    `json:"company"`
	ArticleID   string    `json:"article_id"`
	PublishedAt time.Time `json:"published_at"`
	Heading     string    `json:"heading"`
	Word        string    `json:"word"`
}

// WordCount is the number of occurrences of a word in one company's tokens.
type WordCount struct {
	Company string `json:"company" csv:"company"`
	Word    string `json:"word" csv:"word"`
	N       int    `json:"n" csv:"n"`
}

// TfIdf weights a word for a company, treating each company's tokens as one document.
type TfIdf struct {
	Company string  `json:"company" csv:"company"`
	Word    string  `json:"word" csv:"word"`
	N       int     `json:"n" csv:"n"`
	TF      float64 `json:"tf" csv:"tf"`
	IDF     float64 `json:"idf" csv:"idf"`
	TfIdf   float64 `json:"tf_idf" csv:"tf_idf"`
}

// Sentiment labels used by the built-in lexicons.
const (
	Positive     = "positive"
	Negative     = "negative"
	Litigious    = "litigious"
	Uncertainty  = "uncertainty"
	Constraining = "constraining"
	Superfluous  = "superfluous"
)

// LexiconEntry maps a word to a sentiment label and, for scored lexicons, a value.
type LexiconEntry struct {
	Word      string
	Sentiment string
	Score     float64
	HasScore  bool
}

// SentimentTally counts a company's tokens matching one sentiment label.
type SentimentTally struct {
	Company   string `json:"company" csv:"company"`
	Sentiment string `json:"sentiment" csv:"sentiment"`
	Count     int    `json:"count" csv:"count"`
}

// PositivityScore is (positive-negative)/(positive+negative) for a company.
// Score is nil when positive+negative is zero.
type PositivityScore struct {
	Company  string   `json:"company"`
	Positive int      `json:"positive"`
	Negative int      `json:"negative"`
	Score    *float64 `json:"score"`
}

// Defined reports whether the score has a value.
func (p PositivityScore) Defined() bool {
	return p.Score != nil
}

// Contribution is the summed lexicon score of a word over all matching tokens.
type Contribution struct {
	Word         string  `json:"word" csv:"word"`
	Score        float64 `json:"score" csv:"score"`
	Occurrences  int     `json:"occurrences" csv:"occurrences"`
	Contribution float64 `json:"contribution" csv:"contribution"`
}

// SentimentWord is a matched word ranked within its sentiment category.
type SentimentWord struct {
	Sentiment string `json:"sentiment" csv:"sentiment"`
	Word      string `json:"word" csv:"word"`
	N         int    `json:"n" csv:"n"`
}

// FetchStatus records what happened when fetching one company's articles.
type FetchStatus struct {
	Ticker   string        `json:"ticker"`
	Source   string        `json:"source"`
	Articles int           `json:"articles"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Failed reports whether the fetch ended in an error.
func (s FetchStatus) Failed() bool {
	return s.Error != ""
}
