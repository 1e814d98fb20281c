// Package tokenizer splits article text into lower-case word tokens whose form
// matches the keys of the sentiment lexicons.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"news-textmining/internal/types"
)

// Options controls which article fields are tokenized.
type Options struct {
	IncludeHeading bool
}

// Tokenize splits an article's text into tokens. Every token carries the
// article's company, id, timestamp and heading.
func Tokenize(article types.Article) []types.Token {
	return TokenizeWith(article, Options{})
}

// TokenizeWith is Tokenize with explicit options.
func TokenizeWith(article types.Article, opts Options) []types.Token {
	text := article.Text
	if opts.IncludeHeading && article.Heading != "" {
		text = article.Heading + "\n" + text
	}

	words := Words(text)
	if len(words) == 0 {
		return nil
	}

	company := article.CompanyKey()
	tokens := make([]types.Token, len(words))
	for i, w := range words {
		tokens[i] = types.Token{
			Company:     company,
			ArticleID:   article.ID,
			PublishedAt: article.PublishedAt,
			Heading:     article.Heading,
			Word:        w,
		}
	}
	return tokens
}

// TokenizeAll tokenizes articles in order.
func TokenizeAll(articles []types.Article, opts Options) []types.Token {
	var tokens []types.Token
	for _, a := range articles {
		tokens = append(tokens, TokenizeWith(a, opts)...)
	}
	return tokens
}

// Words returns the lower-case word units of text.
//
// A word is a maximal run of letters, digits and combining marks. An
// apostrophe between two letters stays inside the word ("don't") and is
// normalized to ASCII; a '.' or ',' between two digits stays inside a number
// ("3.5", "1,000"). All other punctuation separates words and is dropped.
func Words(text string) []string {
	runes := []rune(norm.NFKC.String(text))

	var words []string
	var current strings.Builder
	var last rune

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		last = 0
	}

	for i, r := range runes {
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case isWordRune(r):
			current.WriteRune(unicode.ToLower(r))
			last = r
		case isApostrophe(r) && current.Len() > 0 && unicode.IsLetter(last) && unicode.IsLetter(next):
			current.WriteRune('\'')
			last = r
		case (r == '.' || r == ',') && current.Len() > 0 && unicode.IsDigit(last) && unicode.IsDigit(next):
			current.WriteRune(r)
			last = r
		default:
			flush()
		}
	}
	flush()

	return words
}

// IsNumeric reports whether word consists of digits, optionally grouped or
// split by '.' and ','.
func IsNumeric(word string) bool {
	digits := 0
	for _, r := range word {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}
