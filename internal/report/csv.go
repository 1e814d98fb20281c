package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"news-textmining/internal/pipeline"
	"news-textmining/internal/types"
)

// NA marks a missing positivity score in tabular output.
const NA = "NA"

type positivityRow struct {
	Company  string `csv:"company"`
	Positive int    `csv:"positive"`
	Negative int    `csv:"negative"`
	Score    string `csv:"score"`
}

type fetchRow struct {
	Company    string `csv:"company"`
	Ticker     string `csv:"ticker"`
	Source     string `csv:"source"`
	Articles   int    `csv:"articles"`
	Tokens     int    `csv:"tokens"`
	DurationMS int64  `csv:"duration_ms"`
	Error      string `csv:"error"`
}

// FormatScore renders a positivity score with four decimals, or NA.
func FormatScore(score *float64) string {
	if score == nil {
		return NA
	}
	return strconv.FormatFloat(*score, 'f', 4, 64)
}

func positivityRows(scores []types.PositivityScore) []*positivityRow {
	rows := make([]*positivityRow, len(scores))
	for i, s := range scores {
		rows[i] = &positivityRow{
			Company:  s.Company,
			Positive: s.Positive,
			Negative: s.Negative,
			Score:    FormatScore(s.Score),
		}
	}
	return rows
}

func fetchRows(res *pipeline.Result) []*fetchRow {
	byTicker := make(map[string]types.FetchStatus, len(res.Statuses))
	for _, s := range res.Statuses {
		byTicker[s.Ticker] = s
	}

	rows := make([]*fetchRow, 0, len(res.Companies))
	for _, c := range res.Companies {
		s := byTicker[c.Ticker]
		rows = append(rows, &fetchRow{
			Company:    c.Name,
			Ticker:     c.Ticker,
			Source:     s.Source,
			Articles:   res.ArticleCounts[c.Name],
			Tokens:     res.TokenTotals[c.Name],
			DurationMS: s.Duration.Milliseconds(),
			Error:      s.Error,
		})
	}
	return rows
}

type table struct {
	name string
	rows any
}

// WriteCSV writes one CSV file per table into dir and returns the paths.
func WriteCSV(dir string, res *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	tables := []table{
		{"companies.csv", fetchRows(res)},
		{"word_counts.csv", res.WordCounts},
		{"top_words.csv", res.TopWords},
		{"tf_idf.csv", res.TfIdf},
		{"top_tf_idf.csv", res.TopTfIdf},
	}
	for _, lr := range res.Lexicons {
		tables = append(tables,
			table{"sentiment_" + lr.Name + ".csv", lr.Tallies},
			table{"positivity_" + lr.Name + ".csv", positivityRows(lr.Positivity)},
			table{"sentiment_words_" + lr.Name + ".csv", lr.TopWords},
		)
		if lr.Scored {
			tables = append(tables, table{"contributions_" + lr.Name + ".csv", lr.Contributions})
		}
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		p := filepath.Join(dir, t.name)
		if err := writeTable(p, t.rows); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeTable(path string, rows any) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
