package frequency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-textmining/internal/types"
)

func tokens(company string, words ...string) []types.Token {
	out := make([]types.Token, len(words))
	for i, w := range words {
		out[i] = types.Token{Company: company, ArticleID: company + "-1", Word: w}
	}
	return out
}

func sample() []types.Token {
	var all []types.Token
	all = append(all, tokens("Apple", "iphone", "sales", "iphone", "market")...)
	all = append(all, tokens("IBM", "cloud", "market", "2024")...)
	all = append(all, tokens("Meta", "ads", "market")...)
	return all
}

func TestCountSumsToTokenCount(t *testing.T) {
	toks := sample()
	counts := Count(toks)

	sum := 0
	for _, c := range counts {
		sum += c.N
	}
	assert.Equal(t, len(toks), sum)
}

func TestCountOrdering(t *testing.T) {
	counts := Count(sample())

	require.NotEmpty(t, counts)
	assert.Equal(t, types.WordCount{Company: "Apple", Word: "iphone", N: 2}, counts[0])
	assert.Equal(t, types.WordCount{Company: "Apple", Word: "market", N: 1}, counts[1])
	assert.Equal(t, types.WordCount{Company: "Apple", Word: "sales", N: 1}, counts[2])
	assert.Equal(t, "IBM", counts[3].Company)
}

func TestCountEmpty(t *testing.T) {
	assert.Empty(t, Count(nil))
	assert.Empty(t, TfIdf(nil))
}

func TestTfIdf(t *testing.T) {
	rows := TfIdf(Count(sample()))

	byKey := make(map[string]types.TfIdf)
	for _, r := range rows {
		byKey[r.Company+"/"+r.Word] = r
	}

	market := byKey["Apple/market"]
	assert.Equal(t, 0.0, market.IDF, "word used by every company must have idf 0")
	assert.Equal(t, 0.0, market.TfIdf)

	iphone := byKey["Apple/iphone"]
	assert.InDelta(t, 0.5, iphone.TF, 1e-12)
	assert.InDelta(t, math.Log(3), iphone.IDF, 1e-12)
	assert.InDelta(t, 0.5*math.Log(3), iphone.TfIdf, 1e-12)
}

func TestTfIdfSingleCompanyIsZero(t *testing.T) {
	rows := TfIdf(Count(tokens("Apple", "a", "b", "a")))
	for _, r := range rows {
		assert.Equal(t, 0.0, r.TfIdf, r.Word)
	}
}

func TestExcludeNumeric(t *testing.T) {
	counts := ExcludeNumeric(Count(sample()))
	for _, c := range counts {
		assert.NotEqual(t, "2024", c.Word)
	}
	assert.Len(t, counts, 7)
}

func TestTopTfIdf(t *testing.T) {
	rows := TopTfIdf(TfIdf(Count(sample())), 1)

	require.Len(t, rows, 3)
	assert.Equal(t, "Apple", rows[0].Company)
	assert.Equal(t, "iphone", rows[0].Word)
	// ties on tf_idf break on the word
	assert.Equal(t, "IBM", rows[1].Company)
	assert.Equal(t, "2024", rows[1].Word)
}

func TestTopWords(t *testing.T) {
	top := TopWords(Count(sample()), 2)

	require.Len(t, top, 6)
	assert.Equal(t, "iphone", top[0].Word)
	assert.Equal(t, "market", top[1].Word)
}

func TestTotals(t *testing.T) {
	totals := Totals(Count(sample()))
	assert.Equal(t, map[string]int{"Apple": 4, "IBM": 3, "Meta": 2}, totals)
}
