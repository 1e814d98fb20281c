package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-textmining/internal/frequency"
	"news-textmining/internal/lexicon"
	"news-textmining/internal/types"
)

func repeat(company, word string, n int) []types.Token {
	out := make([]types.Token, n)
	for i := range out {
		out[i] = types.Token{Company: company, ArticleID: "a", Word: word}
	}
	return out
}

func testLexicon() *lexicon.Lexicon {
	return lexicon.New("test", []types.LexiconEntry{
		{Word: "strong", Sentiment: types.Positive},
		{Word: "volatility", Sentiment: types.Negative},
		{Word: "volatility", Sentiment: types.Uncertainty},
	})
}

func TestTallyAndPositivityExample(t *testing.T) {
	var tokens []types.Token
	tokens = append(tokens, repeat("Apple", "strong", 5)...)
	tokens = append(tokens, repeat("Apple", "volatility", 2)...)
	tokens = append(tokens, repeat("Apple", "iphone", 4)...)

	tallies := Tally(tokens, testLexicon())
	assert.Equal(t, []types.SentimentTally{
		{Company: "Apple", Sentiment: types.Positive, Count: 5},
		{Company: "Apple", Sentiment: types.Negative, Count: 2},
		{Company: "Apple", Sentiment: types.Uncertainty, Count: 2},
	}, tallies)

	scores := Positivity(tallies, []string{"Apple"})
	require.Len(t, scores, 1)
	require.True(t, scores[0].Defined())
	assert.InDelta(t, 0.4286, *scores[0].Score, 1e-4)
}

func TestPositivityBounds(t *testing.T) {
	s := Score("IBM", 3, 1)
	require.NotNil(t, s.Score)
	assert.Equal(t, 0.5, *s.Score)

	assert.Equal(t, 1.0, *Score("IBM", 4, 0).Score)
	assert.Equal(t, -1.0, *Score("IBM", 0, 4).Score)
}

func TestPositivityMissing(t *testing.T) {
	tallies := Tally(repeat("Apple", "strong", 1), testLexicon())
	scores := Positivity(tallies, []string{"Apple", "Netflix"})

	require.Len(t, scores, 2)
	assert.Equal(t, "Netflix", scores[1].Company)
	assert.Nil(t, scores[1].Score)
	assert.False(t, scores[1].Defined())
	assert.Zero(t, scores[1].Positive)
	assert.Zero(t, scores[1].Negative)
}

func TestContributions(t *testing.T) {
	lex := lexicon.New("scored", []types.LexiconEntry{
		{Word: "share", Sentiment: types.Positive, Score: 1, HasScore: true},
		{Word: "fool", Sentiment: types.Negative, Score: -2, HasScore: true},
		{Word: "loss", Sentiment: types.Negative},
	})
	var tokens []types.Token
	tokens = append(tokens, repeat("Apple", "share", 3)...)
	tokens = append(tokens, repeat("Meta", "share", 1)...)
	tokens = append(tokens, repeat("Meta", "fool", 2)...)
	tokens = append(tokens, repeat("Meta", "loss", 7)...)

	got := Contributions(tokens, lex)
	assert.Equal(t, []types.Contribution{
		{Word: "fool", Score: -2, Occurrences: 2, Contribution: -4},
		{Word: "share", Score: 1, Occurrences: 4, Contribution: 4},
	}, got)

	assert.Empty(t, Contributions(tokens, testLexicon()))
}

func TestTopWordsBySentiment(t *testing.T) {
	lex := lexicon.New("lm", []types.LexiconEntry{
		{Word: "strong", Sentiment: types.Positive},
		{Word: "gain", Sentiment: types.Positive},
		{Word: "record", Sentiment: types.Positive},
		{Word: "loss", Sentiment: types.Negative},
	})
	var tokens []types.Token
	tokens = append(tokens, repeat("A", "strong", 3)...)
	tokens = append(tokens, repeat("B", "gain", 3)...)
	tokens = append(tokens, repeat("B", "record", 1)...)
	tokens = append(tokens, repeat("B", "loss", 2)...)

	got := TopWordsBySentiment(tokens, lex, 2)
	assert.Equal(t, []types.SentimentWord{
		{Sentiment: types.Negative, Word: "loss", N: 2},
		{Sentiment: types.Positive, Word: "gain", N: 3},
		{Sentiment: types.Positive, Word: "strong", N: 3},
	}, got)
}

func TestLexiconSwapLeavesCountsUnchanged(t *testing.T) {
	var tokens []types.Token
	tokens = append(tokens, repeat("Apple", "strong", 2)...)
	tokens = append(tokens, repeat("Apple", "share", 1)...)

	before := frequency.Count(tokens)

	afinn, err := lexicon.Builtin("afinn")
	require.NoError(t, err)
	lm, err := lexicon.Builtin("loughran")
	require.NoError(t, err)

	a := Tally(tokens, afinn)
	b := Tally(tokens, lm)
	assert.NotEqual(t, a, b)
	assert.Equal(t, before, frequency.Count(tokens))
}
