// Package disclosure builds the borrower-facing summary of a projection as
// Markdown and renders it to HTML for the document layer. It formats what
// the engine computed; no financial logic lives here.
package disclosure

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"equity_release/pkg/core/projection"
)

// md renders pipe tables, which the summary relies on.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown builds the disclosure summary for a full projection result.
func Markdown(result *projection.Result) string {
	var b strings.Builder

	b.WriteString("# Loan Projection Summary\n\n")
	fmt.Fprintf(&b, "Effective comparison rate: %.2f%% p.a.\n\n", result.EffectiveComparisonRate)

	b.WriteString("## Projected position\n\n")
	b.WriteString("| Year | Age | Loan balance | Home value | Home equity | Equity % |\n")
	b.WriteString("|------|-----|--------------|------------|-------------|----------|\n")
	for _, p := range result.Points {
		fmt.Fprintf(&b, "| %d | %.0f | $%s | $%s | $%s | %.1f%% |\n",
			p.Years, p.Age, money(p.Balance), money(p.HouseValue), money(p.HomeEquity), p.HomeEquityPct)
	}
	b.WriteString("\n")

	b.WriteString("## Scenario comparison at end of term\n\n")
	b.WriteString("| Scenario | Loan balance | Home equity |\n")
	b.WriteString("|----------|--------------|-------------|\n")
	rows := []struct {
		label string
		tr    projection.Trajectory
	}{
		{"Expected rates", result.Base},
		{"No house price growth", result.HousePriceStress},
		{"Interest rates +2%", result.RateStress},
		{"With interest payments", result.InterestPayment},
	}
	for _, r := range rows {
		final := r.tr.Final()
		fmt.Fprintf(&b, "| %s | $%s | $%s |\n", r.label, money(final.Balance), money(final.HomeEquity))
	}
	b.WriteString("\n")

	final := result.Base.Final()
	fmt.Fprintf(&b, "Under expected rates your home equity at the end of the projection is **%.1f%%** of your home's value.\n",
		final.HomeEquityPct)

	return b.String()
}

// HTML renders a Markdown disclosure to HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render disclosure: %w", err)
	}
	return buf.String(), nil
}

// money formats a whole-currency amount with thousands separators.
func money(v float64) string {
	if v < 0 {
		return "-" + money(-v)
	}
	s := fmt.Sprintf("%.0f", v)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
