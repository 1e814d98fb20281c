// Package lexicon holds word -> sentiment dictionaries. A word may carry more
// than one label (Loughran-McDonald lists "uncertain" as both negative and
// uncertainty), so lookups return every matching entry.
package lexicon

import (
	"sort"
	"strings"

	"news-textmining/internal/types"
)

// Lexicon is an immutable, named set of entries indexed by word.
type Lexicon struct {
	name    string
	entries []types.LexiconEntry
	index   map[string][]types.LexiconEntry
	scored  bool
}

// New builds a lexicon. Words are lower-cased; exact duplicate
// (word, label) pairs keep the first occurrence.
func New(name string, entries []types.LexiconEntry) *Lexicon {
	l := &Lexicon{
		name:  name,
		index: make(map[string][]types.LexiconEntry, len(entries)),
	}

	for _, e := range entries {
		e.Word = strings.ToLower(strings.TrimSpace(e.Word))
		e.Sentiment = strings.ToLower(strings.TrimSpace(e.Sentiment))
		if e.Word == "" || e.Sentiment == "" || l.has(e.Word, e.Sentiment) {
			continue
		}
		l.entries = append(l.entries, e)
		l.index[e.Word] = append(l.index[e.Word], e)
		if e.HasScore {
			l.scored = true
		}
	}
	return l
}

func (l *Lexicon) has(word, sentiment string) bool {
	for _, e := range l.index[word] {
		if e.Sentiment == sentiment {
			return true
		}
	}
	return false
}

func (l *Lexicon) Name() string { return l.name }

// Named returns the same entries under another name.
func (l *Lexicon) Named(name string) *Lexicon {
	c := *l
	c.name = name
	return &c
}

// Lookup returns every entry for word. The caller must not modify the result.
func (l *Lexicon) Lookup(word string) []types.LexiconEntry {
	return l.index[word]
}

func (l *Lexicon) Entries() []types.LexiconEntry {
	return append([]types.LexiconEntry(nil), l.entries...)
}

// Len is the number of (word, label) entries.
func (l *Lexicon) Len() int { return len(l.entries) }

// Words is the number of distinct words.
func (l *Lexicon) Words() int { return len(l.index) }

// Scored reports whether any entry carries a numeric score.
func (l *Lexicon) Scored() bool { return l.scored }

// Labels returns the distinct sentiment labels, sorted.
func (l *Lexicon) Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, e := range l.entries {
		if !seen[e.Sentiment] {
			seen[e.Sentiment] = true
			labels = append(labels, e.Sentiment)
		}
	}
	sort.Strings(labels)
	return labels
}

// LabelForScore maps a signed score to positive or negative. Zero has no label.
func LabelForScore(score float64) string {
	switch {
	case score > 0:
		return types.Positive
	case score < 0:
		return types.Negative
	default:
		return ""
	}
}
