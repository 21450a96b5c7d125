package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"goquade/domain/quade"
)

// Markdown renders a test run as a markdown report. treatments labels the
// columns; pass nil to fall back to T1..Tc. matrix is optional: when given,
// a descriptive summary of each treatment is included.
func Markdown(run *quade.TestRun, treatments []string, matrix quade.Matrix) string {
	res := run.Result
	labels := treatmentLabels(treatments, res.Treatments)

	var b strings.Builder
	b.WriteString("# Quade Test Report\n\n")
	if run.Dataset != "" {
		fmt.Fprintf(&b, "Dataset: **%s**\n\n", run.Dataset)
	}

	b.WriteString("## Test result\n\n")
	b.WriteString("| blocks | treatments | n | W | df | p-value | alpha | decision |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	decision := "fail to reject H0"
	if res.RejectNull {
		decision = "reject H0"
	}
	fmt.Fprintf(&b, "| %d | %d | %d | %.4f | (%d, %d) | %.6f | %g | %s |\n\n",
		res.Blocks, res.Treatments, res.NObs, res.Statistic, res.DFNumer, res.DFDenom, res.PValue, res.Alpha, decision)

	if matrix != nil {
		writeTreatmentSummary(&b, labels, matrix)
	}

	if run.Comparison != nil {
		writeComparison(&b, labels, run.Comparison)
	}

	return b.String()
}

// HTML renders the markdown report to HTML for the report viewer
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func treatmentLabels(treatments []string, count int) []string {
	if len(treatments) == count {
		return treatments
	}
	labels := make([]string, count)
	for j := range labels {
		labels[j] = fmt.Sprintf("T%d", j+1)
	}
	return labels
}

func writeTreatmentSummary(b *strings.Builder, labels []string, matrix quade.Matrix) {
	b.WriteString("## Treatment summary\n\n")
	b.WriteString("| treatment | mean | median | min | max |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for j, label := range labels {
		column := make([]float64, matrix.Rows())
		for i := range matrix {
			column[i] = matrix[i][j]
		}
		mean, _ := stats.Mean(column)
		median, _ := stats.Median(column)
		min, _ := stats.Min(column)
		max, _ := stats.Max(column)
		fmt.Fprintf(b, "| %s | %.3f | %.3f | %.3f | %.3f |\n", label, mean, median, min, max)
	}
	b.WriteString("\n")
}

func writeComparison(b *strings.Builder, labels []string, mc *quade.MultipleComparison) {
	fmt.Fprintf(b, "## Pairwise comparisons (%s)\n\n", mc.Method)
	fmt.Fprintf(b, "Critical value: **%.4f**. Differences above it are marked with `*`.\n\n", mc.CriticalValue)

	// Lower triangle only: each unordered pair once
	b.WriteString("| pair | |score diff| | significant |\n")
	b.WriteString("|---|---|---|\n")
	for a := 1; a < len(mc.Diffs); a++ {
		for bIdx := 0; bIdx < a; bIdx++ {
			mark := ""
			if mc.Significant[a][bIdx] {
				mark = "*"
			}
			fmt.Fprintf(b, "| %s vs %s | %.4f | %s |\n", labels[a], labels[bIdx], mc.Diffs[a][bIdx], mark)
		}
	}
	b.WriteString("\n")
}
