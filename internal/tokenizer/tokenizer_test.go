package tokenizer

import (
	"reflect"
	"testing"
	"time"

	"news-textmining/internal/types"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercase", "Microsoft Beats Estimates", []string{"microsoft", "beats", "estimates"}},
		{"punctuation stripped", "Shares rose (sharply)!", []string{"shares", "rose", "sharply"}},
		{"contraction", "Don't panic", []string{"don't", "panic"}},
		{"curly apostrophe", "company’s outlook", []string{"company's", "outlook"}},
		{"trailing apostrophe", "investors' money", []string{"investors", "money"}},
		{"decimal", "revenue up 3.5 percent.", []string{"revenue", "up", "3.5", "percent"}},
		{"grouped number", "1,000 layoffs", []string{"1,000", "layoffs"}},
		{"comma after word", "Apple, Google", []string{"apple", "google"}},
		{"dash separates", "AI-driven", []string{"ai", "driven"}},
		{"empty", "  ...  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTokenizeCarriesArticleIdentity(t *testing.T) {
	ts := time.Date(2024, 10, 18, 21, 30, 0, 0, time.UTC)
	a := types.Article{
		Company:     "Apple",
		Ticker:      "NASDAQ:AAPL",
		ID:          "a1",
		PublishedAt: ts,
		Heading:     "Strong quarter",
		Text:        "Strong demand",
	}

	tokens := Tokenize(a)
	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(tokens))
	}
	for _, tok := range tokens {
		if tok.Company != "Apple" || tok.ArticleID != "a1" || !tok.PublishedAt.Equal(ts) || tok.Heading != "Strong quarter" {
			t.Errorf("Token lost article identity: %+v", tok)
		}
	}
	if tokens[0].Word != "strong" || tokens[1].Word != "demand" {
		t.Errorf("Unexpected words: %q, %q", tokens[0].Word, tokens[1].Word)
	}
}

func TestTokenizeIncludeHeading(t *testing.T) {
	a := types.Article{Ticker: "IBM", ID: "x", Heading: "Big News", Text: "body"}

	if got := len(TokenizeWith(a, Options{})); got != 1 {
		t.Errorf("Expected 1 token without heading, got %d", got)
	}
	tokens := TokenizeWith(a, Options{IncludeHeading: true})
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens with heading, got %d", len(tokens))
	}
	if tokens[0].Company != "IBM" {
		t.Errorf("Expected ticker fallback company IBM, got %s", tokens[0].Company)
	}
}

func TestTokenizeAllKeepsOrder(t *testing.T) {
	articles := []types.Article{
		{Company: "A", ID: "1", Text: "one two"},
		{Company: "B", ID: "2", Text: ""},
		{Company: "C", ID: "3", Text: "three"},
	}
	tokens := TokenizeAll(articles, Options{})

	var ids []string
	for _, tok := range tokens {
		ids = append(ids, tok.ArticleID)
	}
	if want := []string{"1", "1", "3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected article ids %v, got %v", want, ids)
	}
}

func TestIsNumeric(t *testing.T) {
	for w, want := range map[string]bool{
		"2024":  true,
		"3.5":   true,
		"1,000": true,
		"q3":    false,
		"apple": false,
		"":      false,
	} {
		if got := IsNumeric(w); got != want {
			t.Errorf("IsNumeric(%q): expected %v, got %v", w, want, got)
		}
	}
}
