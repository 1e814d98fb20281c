package lexicon

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"

	"news-textmining/internal/types"
)

// File formats accepted by Load.
const (
	FormatAFINN    = "afinn"    // word<TAB>score, no header
	FormatLoughran = "loughran" // CSV with header word,sentiment
	FormatGeneric  = "generic"  // CSV with header word,sentiment,score
)

var (
	ErrUnknownLexicon = errors.New("unknown lexicon")
	ErrUnknownFormat  = errors.New("unknown lexicon format")
)

//go:embed data/afinn.tsv data/loughran.csv
var builtinData embed.FS

var builtinFiles = map[string]struct {
	path   string
	format string
}{
	FormatAFINN:    {"data/afinn.tsv", FormatAFINN},
	FormatLoughran: {"data/loughran.csv", FormatLoughran},
}

var (
	builtinOnce sync.Once
	builtins    map[string]*Lexicon
	builtinErr  error
)

// Builtin returns one of the embedded lexicons: "afinn" or "loughran".
func Builtin(name string) (*Lexicon, error) {
	builtinOnce.Do(func() {
		builtins = make(map[string]*Lexicon, len(builtinFiles))
		for n, f := range builtinFiles {
			r, err := builtinData.Open(f.path)
			if err != nil {
				builtinErr = err
				return
			}
			lex, err := Read(r, f.format)
			r.Close()
			if err != nil {
				builtinErr = fmt.Errorf("builtin lexicon %s: %w", n, err)
				return
			}
			builtins[n] = lex.Named(n)
		}
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	lex, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLexicon, name)
	}
	return lex, nil
}

// BuiltinNames lists the embedded lexicons.
func BuiltinNames() []string {
	return []string{FormatAFINN, FormatLoughran}
}

// Load reads a lexicon file. The lexicon is named after the file.
func Load(path, format string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("load lexicon %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return lex.Named(name), nil
}

type afinnRow struct {
	Word  string  `csv:"word"`
	Score float64 `csv:"score"`
}

type labelRow struct {
	Word      string `csv:"word"`
	Sentiment string `csv:"sentiment"`
	Score     string `csv:"score"`
}

// Read parses lexicon rows from r in the given format.
func Read(r io.Reader, format string) (*Lexicon, error) {
	var entries []types.LexiconEntry

	switch strings.ToLower(format) {
	case FormatAFINN:
		// AFINN files have no header row
		cr := csv.NewReader(io.MultiReader(strings.NewReader("word\tscore\n"), r))
		cr.Comma = '\t'
		cr.LazyQuotes = true
		cr.FieldsPerRecord = 2

		var rows []*afinnRow
		if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
			return nil, fmt.Errorf("parse afinn: %w", err)
		}
		for _, row := range rows {
			entries = append(entries, types.LexiconEntry{
				Word:      row.Word,
				Sentiment: LabelForScore(row.Score),
				Score:     row.Score,
				HasScore:  true,
			})
		}

	case FormatLoughran, FormatGeneric:
		var rows []*labelRow
		if err := gocsv.Unmarshal(r, &rows); err != nil {
			return nil, fmt.Errorf("parse %s: %w", format, err)
		}
		for i, row := range rows {
			e := types.LexiconEntry{Word: row.Word, Sentiment: row.Sentiment}
			if s := strings.TrimSpace(row.Score); s != "" {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: score %q: %w", i+1, s, err)
				}
				e.Score, e.HasScore = v, true
				if e.Sentiment == "" {
					e.Sentiment = LabelForScore(v)
				}
			}
			entries = append(entries, e)
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return New(format, entries), nil
}
