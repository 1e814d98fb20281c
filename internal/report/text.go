package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"news-textmining/internal/pipeline"
	"news-textmining/internal/types"
)

// WriteText prints a human-readable summary of res.
func WriteText(w io.Writer, res *pipeline.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	articles, tokens := 0, 0
	for _, c := range res.Companies {
		articles += res.ArticleCounts[c.Name]
		tokens += res.TokenTotals[c.Name]
	}
	fmt.Fprintf(tw, "%s companies, %s articles, %s tokens\n\n",
		humanize.Comma(int64(len(res.Companies))),
		humanize.Comma(int64(articles)),
		humanize.Comma(int64(tokens)),
	)

	fmt.Fprintln(tw, "COMPANY\tTICKER\tARTICLES\tTOKENS\tFETCH")
	for _, row := range fetchRows(res) {
		status := "ok"
		if row.Error != "" {
			status = "failed: " + row.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Company, row.Ticker,
			humanize.Comma(int64(row.Articles)),
			humanize.Comma(int64(row.Tokens)),
			status,
		)
	}

	fmt.Fprintln(tw, "\nTOP TF-IDF\tWORD\tN\tTF-IDF")
	for _, r := range res.TopTfIdf {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\n", r.Company, r.Word, r.N, r.TfIdf)
	}

	for _, lr := range res.Lexicons {
		writeLexicon(tw, lr)
	}

	return tw.Flush()
}

func writeLexicon(tw *tabwriter.Writer, lr pipeline.LexiconResult) {
	fmt.Fprintf(tw, "\n[%s]\n", lr.Name)

	fmt.Fprintln(tw, "COMPANY\tPOSITIVE\tNEGATIVE\tPOSITIVITY")
	for _, p := range lr.Positivity {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", p.Company, p.Positive, p.Negative, FormatScore(p.Score))
	}

	if others := otherLabels(lr.Tallies); len(others) > 0 {
		fmt.Fprintln(tw, "\nCOMPANY\tSENTIMENT\tCOUNT")
		for _, t := range others {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", t.Company, t.Sentiment, t.Count)
		}
	}

	if len(lr.TopWords) > 0 {
		fmt.Fprintln(tw, "\nSENTIMENT\tWORDS")
		for _, group := range groupWords(lr.TopWords) {
			fmt.Fprintf(tw, "%s\t%s\n", group.label, strings.Join(group.words, ", "))
		}
	}

	if lr.Scored && len(lr.Contributions) > 0 {
		fmt.Fprintln(tw, "\nWORD\tSCORE\tOCCURRENCES\tCONTRIBUTION")
		n := len(lr.Contributions)
		if n > 10 {
			n = 10
		}
		for _, c := range lr.Contributions[:n] {
			fmt.Fprintf(tw, "%s\t%+g\t%d\t%+g\n", c.Word, c.Score, c.Occurrences, c.Contribution)
		}
	}
}

// otherLabels keeps tallies beyond positive and negative, which the
// positivity table already shows.
func otherLabels(tallies []types.SentimentTally) []types.SentimentTally {
	var out []types.SentimentTally
	for _, t := range tallies {
		if t.Sentiment != types.Positive && t.Sentiment != types.Negative {
			out = append(out, t)
		}
	}
	return out
}

type wordGroup struct {
	label string
	words []string
}

func groupWords(words []types.SentimentWord) []wordGroup {
	var groups []wordGroup
	for _, w := range words {
		if len(groups) == 0 || groups[len(groups)-1].label != w.Sentiment {
			groups = append(groups, wordGroup{label: w.Sentiment})
		}
		g := &groups[len(groups)-1]
		g.words = append(g.words, fmt.Sprintf("%s (%d)", w.Word, w.N))
	}
	return groups
}
