package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/voltwise/internal/batch"
	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/greenops"
)

const (
	dayColumnWidth    = 6
	idColumnWidth     = 16
	ratingColumnWidth = 10
	statusColumnWidth = 14
)

// staticTable renders a non-interactive table showing every row.
func staticTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+tableHeaderLines),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// NewProjectionTable lists the cumulative cost and energy of every day.
func NewProjectionTable(points []estimator.ProjectionPoint, precision int) table.Model {
	columns := []table.Column{
		{Title: "Day", Width: dayColumnWidth},
		{Title: "Cost", Width: numberColumnWidth},
		{Title: "Energy", Width: numberColumnWidth + dayColumnWidth},
	}
	rows := make([]table.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.Day),
			Money(p.CostTotal, precision),
			greenops.FormatKWh(p.KWhTotal, precision),
		})
	}
	return staticTable(columns, rows)
}

// RenderProjectionTable renders the full projection with a heading.
func RenderProjectionTable(result estimator.ConsumptionResult, points []estimator.ProjectionPoint, precision int) string {
	heading := HeaderStyle.Render(fmt.Sprintf("%d-DAY PROJECTION (%s)", len(points), result.HousingType))
	rate := SubtleStyle.Render(fmt.Sprintf("%s/day at %s per kWh",
		Money(result.DailyCost, precision), Money(estimator.UnitRate, precision)))
	t := NewProjectionTable(points, precision)
	return heading + "\n" + rate + "\n" + t.View()
}

// NewBatchTable lists one row per household.
func NewBatchTable(rows []batch.Row, precision int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: idColumnWidth},
		{Title: "Housing", Width: dayColumnWidth},
		{Title: "kWh/day", Width: numberColumnWidth},
		{Title: "Monthly", Width: numberColumnWidth},
		{Title: "Rating", Width: ratingColumnWidth},
		{Title: "Status", Width: statusColumnWidth},
	}
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			r.ID,
			r.Result.HousingType.String(),
			greenops.FormatFloat(r.Result.DailyEnergyKWh, precision),
			Money(r.Result.MonthlyCost, precision),
			r.Result.EfficiencyRating.String(),
			string(r.Comparison.Status),
		})
	}
	return staticTable(columns, out)
}

// RenderBatch renders the household table followed by the run summary.
func RenderBatch(rows []batch.Row, summary batch.Summary, opts ReportOptions) string {
	opts = opts.withDefaults()
	p := opts.Precision

	t := NewBatchTable(rows, p)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("HOUSEHOLDS"))
	sb.WriteString("\n")
	sb.WriteString(t.View())
	sb.WriteString("\n\n")
	sb.WriteString(HeaderStyle.Render("SUMMARY"))
	sb.WriteString("\n")

	line := func(label, value string) {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelColumnWidth, label)))
		sb.WriteString(ValueStyle.Render(value))
		sb.WriteString("\n")
	}
	line("Households:", greenops.FormatNumber(int64(summary.Households)))
	line("Total daily:", greenops.FormatKWh(summary.TotalDailyKWh, p))
	line("Average daily:", greenops.FormatKWh(summary.AverageDailyKWh, p))
	line("Total monthly:", Money(summary.TotalMonthlyCost, p))
	line("Total yearly CO2:", greenops.FormatCO2(summary.TotalYearlyCO2Kg, opts.CO2Unit, p))
	line("Above average:", greenops.FormatNumber(int64(summary.AboveAverage)))

	ratings := make([]estimator.Rating, 0, len(summary.Ratings))
	for r := range summary.Ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i] < ratings[j] })
	for _, r := range ratings {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s", labelColumnWidth-2, r.String()+":")))
		sb.WriteString(RatingStyle(r).Render(greenops.FormatNumber(int64(summary.Ratings[r]))))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
