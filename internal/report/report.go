// Package report renders an encoding and its analytics as plain text tables.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"textenc/internal/analytics"
	"textenc/internal/domain"
)

const (
	DefaultMaxColumns    = 12
	DefaultPrecision     = 3
	DefaultScatterWidth  = 48
	DefaultScatterHeight = 16
)

// Options controls how much of an encoding is printed.
type Options struct {
	MaxColumns    int
	Precision     int
	ScatterWidth  int
	ScatterHeight int
}

func (o Options) withDefaults() Options {
	if o.MaxColumns <= 0 {
		o.MaxColumns = DefaultMaxColumns
	}
	if o.Precision <= 0 {
		o.Precision = DefaultPrecision
	}
	if o.ScatterWidth <= 0 {
		o.ScatterWidth = DefaultScatterWidth
	}
	if o.ScatterHeight <= 0 {
		o.ScatterHeight = DefaultScatterHeight
	}
	return o
}

// Render writes the matrix, similarity, importance and projection sections.
func Render(w io.Writer, enc *domain.Encoding, rep analytics.Report, opts Options) error {
	opts = opts.withDefaults()
	var buf bytes.Buffer
	Matrix(&buf, enc, opts)
	buf.WriteString("\n")
	Similarity(&buf, enc.Labels(), rep.Similarity, opts)
	buf.WriteString("\n")
	Importance(&buf, rep.Importance, opts)
	buf.WriteString("\n")
	Projection(&buf, rep.Projection, opts)
	_, err := w.Write(buf.Bytes())
	return err
}

// Matrix prints the document-feature matrix, truncated to opts.MaxColumns.
func Matrix(w io.Writer, enc *domain.Encoding, opts Options) {
	opts = opts.withDefaults()
	rows, cols := enc.Dims()
	shown := min(cols, opts.MaxColumns)
	fmt.Fprintf(w, "== %s encoding: %d documents x %d features ==\n", enc.Strategy, rows, cols)

	table := newTable(w)
	table.SetHeader(append([]string{"Document"}, enc.Features[:shown]...))
	labels := enc.Labels()
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, enc.Matrix)[:shown]
		table.Append(append([]string{labels[i]}, formatAll(row, opts.Precision)...))
	}
	table.Render()
	if shown < cols {
		fmt.Fprintf(w, "(%d more features not shown)\n", cols-shown)
	}
}

// Similarity prints the cosine similarity matrix and the best pair.
func Similarity(w io.Writer, labels []string, res analytics.SimilarityResult, opts Options) {
	opts = opts.withDefaults()
	fmt.Fprintln(w, "== Cosine similarity ==")
	if res.Status != analytics.StatusOK {
		fmt.Fprintln(w, res.Reason)
		return
	}
	n := res.Matrix.SymmetricDim()
	table := newTable(w)
	table.SetHeader(append([]string{""}, labels...))
	for i := 0; i < n; i++ {
		row := lo.Times(n, func(j int) float64 { return res.Matrix.At(i, j) })
		table.Append(append([]string{labels[i]}, formatAll(row, opts.Precision)...))
	}
	table.Render()
	fmt.Fprintf(w, "Most similar: %s and %s (%s)\n",
		labels[res.Best.I], labels[res.Best.J], format(res.Best.Score, opts.Precision))
}

// Importance prints the feature ranking.
func Importance(w io.Writer, res analytics.ImportanceResult, opts Options) {
	opts = opts.withDefaults()
	fmt.Fprintln(w, "== Feature importance ==")
	if res.Status != analytics.StatusOK {
		fmt.Fprintln(w, res.Reason)
		return
	}
	table := newTable(w)
	table.SetHeader([]string{"Rank", "Feature", "Score"})
	for i, f := range res.Features {
		table.Append([]string{strconv.Itoa(i + 1), f.Feature, format(f.Score, opts.Precision)})
	}
	table.Render()
}

// Projection prints the 2-D coordinates and a scatter plot of them.
func Projection(w io.Writer, res analytics.ProjectionResult, opts Options) {
	opts = opts.withDefaults()
	fmt.Fprintln(w, "== t-SNE projection ==")
	switch res.Status {
	case analytics.StatusOK:
	case analytics.StatusPairSimilarity:
		fmt.Fprintf(w, "%s; cosine similarity of the two documents: %s\n", res.Reason, format(res.Similarity, opts.Precision))
		return
	default:
		fmt.Fprintln(w, res.Reason)
		return
	}
	fmt.Fprintf(w, "perplexity %s\n", strconv.FormatFloat(res.Perplexity, 'f', -1, 64))
	table := newTable(w)
	table.SetHeader([]string{"Mark", "Document", "X", "Y"})
	for i, p := range res.Points {
		table.Append([]string{string(marker(i)), p.Label, format(p.X, opts.Precision), format(p.Y, opts.Precision)})
	}
	table.Render()
	fmt.Fprint(w, Scatter(res.Points, opts.ScatterWidth, opts.ScatterHeight))
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func format(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func formatAll(vs []float64, precision int) []string {
	return lo.Map(vs, func(v float64, _ int) string { return format(v, precision) })
}
