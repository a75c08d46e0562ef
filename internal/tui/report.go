package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/voltwise/internal/estimator"
	"github.com/rshade/voltwise/internal/greenops"
)

const (
	defaultBarWidth   = 30
	labelColumnWidth  = 20
	numberColumnWidth = 12
	borderPadding     = 4
	minReportWidth    = 40
	percentMultiplier = 100
	tableHeaderLines  = 2
)

// ReportOptions tune RenderReport.
type ReportOptions struct {
	Precision int
	CO2Unit   string
	Width     int
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.CO2Unit == "" {
		o.CO2Unit = "kg"
	}
	if o.Width < minReportWidth {
		o.Width = minReportWidth
	}
	return o
}

// RatingStyle colours an efficiency rating from green to red.
func RatingStyle(r estimator.Rating) lipgloss.Style {
	switch r {
	case estimator.RatingExcellent, estimator.RatingGood:
		return OKStyle
	case estimator.RatingAverage:
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// Money formats a currency amount with the tariff symbol.
func Money(amount float64, precision int) string {
	return estimator.CurrencySymbol + greenops.FormatFloat(amount, precision)
}

// RenderMetrics renders the energy, cost, rating and emissions summary box.
func RenderMetrics(result estimator.ConsumptionResult, opts ReportOptions) string {
	opts = opts.withDefaults()
	p := opts.Precision

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("CONSUMPTION SUMMARY"))
	sb.WriteString("\n\n")

	line := func(label, value string) {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelColumnWidth, label)))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	line("Daily energy:", ValueStyle.Render(greenops.FormatKWh(result.DailyEnergyKWh, p)))
	line("Monthly energy:", ValueStyle.Render(greenops.FormatKWh(result.MonthlyEnergyKWh, p)))
	line("Yearly energy:", ValueStyle.Render(greenops.FormatKWh(result.YearlyEnergyKWh, p)))
	line("Daily cost:", ValueStyle.Render(Money(result.DailyCost, p)))
	line("Monthly cost:", ValueStyle.Render(Money(result.MonthlyCost, p)))
	line("Yearly cost:", ValueStyle.Render(Money(result.YearlyCost, p)))
	line("Efficiency:", RatingStyle(result.EfficiencyRating).Render(result.EfficiencyRating.String()))
	line("Yearly CO2:", ValueStyle.Render(greenops.FormatCO2(result.CO2YearlyKg, opts.CO2Unit, p)))
	line("Trees to offset:", ValueStyle.Render(greenops.FormatFloat(result.TreesToOffset, 1)))

	if eq := greenops.CalculateForEnergy(result.YearlyEnergyKWh); !eq.IsEmpty {
		sb.WriteString(SubtleStyle.Render(eq.DisplayText))
		sb.WriteString("\n")
	}

	return BoxStyle.Width(opts.Width - borderPadding).Render(strings.TrimRight(sb.String(), "\n"))
}

// NewBreakdownTable builds a static table of the breakdown entries.
func NewBreakdownTable(result estimator.ConsumptionResult, precision int) table.Model {
	columns := []table.Column{
		{Title: "Component", Width: labelColumnWidth},
		{Title: "kWh/day", Width: numberColumnWidth},
		{Title: "Share", Width: numberColumnWidth},
	}

	rows := make([]table.Row, 0, len(result.Breakdown))
	for _, e := range result.Breakdown {
		rows = append(rows, table.Row{
			e.Label,
			greenops.FormatFloat(e.DailyKWh, precision),
			greenops.FormatFloat(share(e.DailyKWh, result.DailyEnergyKWh), 1) + "%",
		})
	}

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

// RenderBars draws one horizontal bar per breakdown entry, scaled so the
// largest entry spans width cells.
func RenderBars(breakdown []estimator.BreakdownEntry, width int) string {
	if len(breakdown) == 0 {
		return InfoStyle.Render("No consumption to display.")
	}
	if width <= 0 {
		width = defaultBarWidth
	}

	largest := 0.0
	for _, e := range breakdown {
		largest = math.Max(largest, e.DailyKWh)
	}

	var sb strings.Builder
	for _, e := range breakdown {
		n := 0
		if largest > 0 {
			n = int(math.Round(e.DailyKWh / largest * float64(width)))
		}
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelColumnWidth, e.Label)))
		sb.WriteString(BarStyle.Render(strings.Repeat("█", n)))
		sb.WriteString(fmt.Sprintf(" %s\n", greenops.FormatFloat(e.DailyKWh, 1)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * percentMultiplier
}

// RenderDelta renders a kWh/day delta with its direction arrow.
func RenderDelta(delta float64, precision int) string {
	switch {
	case delta > 0:
		return WarningStyle.Render(fmt.Sprintf("+%s kWh/day %s", greenops.FormatFloat(delta, precision), IconArrowUp))
	case delta < 0:
		return OKStyle.Render(fmt.Sprintf("%s kWh/day %s", greenops.FormatFloat(delta, precision), IconArrowDown))
	default:
		return SubtleStyle.Render(fmt.Sprintf("0 kWh/day %s", IconArrowRight))
	}
}

// RenderComparison renders the regional comparison section.
func RenderComparison(c estimator.Comparison, precision int) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("REGIONAL COMPARISON"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelColumnWidth, "Regional average:")))
	sb.WriteString(ValueStyle.Render(greenops.FormatKWh(c.RegionalAverage, precision) + "/day"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", labelColumnWidth, "Difference:")))
	sb.WriteString(RenderDelta(c.Delta, precision))
	sb.WriteString("\n")

	statusStyle := OKStyle
	if c.IsAboveAverage() {
		statusStyle = WarningStyle
	}
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%s: %s", c.Status, c.Advice)))
	return sb.String()
}

// RenderProjection summarizes a cumulative projection by its first, middle
// and last points.
func RenderProjection(points []estimator.ProjectionPoint, precision int) string {
	if len(points) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("%d-DAY PROJECTION", len(points))))
	sb.WriteString("\n")

	picks := []int{0, len(points)/2 - 1, len(points) - 1}
	seen := make(map[int]bool, len(picks))
	for _, i := range picks {
		if i < 0 || seen[i] {
			continue
		}
		seen[i] = true
		pt := points[i]
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("Day %-4d", pt.Day)))
		sb.WriteString(fmt.Sprintf("%s  %s\n",
			ValueStyle.Render(Money(pt.CostTotal, precision)),
			SubtleStyle.Render(greenops.FormatKWh(pt.KWhTotal, precision))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderTips renders the energy-saving advice.
func RenderTips() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("ENERGY SAVING TIPS"))
	sb.WriteString("\n")
	for _, g := range estimator.SavingTips() {
		sb.WriteString(ValueStyle.Render(g.Title))
		sb.WriteString("\n")
		for _, tip := range g.Tips {
			sb.WriteString("  • " + tip + "\n")
		}
	}
	sb.WriteString(InfoStyle.Render(estimator.ClosingAdvice))
	return sb.String()
}

// RenderReport renders the complete analysis: greeting, metrics, breakdown,
// comparison, optional projection and tips.
func RenderReport(
	resident estimator.Resident,
	result estimator.ConsumptionResult,
	projection []estimator.ProjectionPoint,
	opts ReportOptions,
) string {
	opts = opts.withDefaults()

	sections := make([]string, 0, 7)
	if resident.HasName() {
		greeting := ValueStyle.Render(resident.Greeting())
		if resident.City != "" || resident.Area != "" {
			greeting += "\n" + LabelStyle.Render(resident.LocationLine(result.HousingType))
		}
		sections = append(sections, greeting)
	}

	breakdownTable := NewBreakdownTable(result, opts.Precision)
	sections = append(sections,
		RenderMetrics(result, opts),
		HeaderStyle.Render("APPLIANCE BREAKDOWN")+"\n"+breakdownTable.View(),
		RenderBars(result.Breakdown, opts.Width-labelColumnWidth-numberColumnWidth),
		RenderComparison(estimator.Compare(result), opts.Precision),
	)
	if p := RenderProjection(projection, opts.Precision); p != "" {
		sections = append(sections, p)
	}
	sections = append(sections, RenderTips())

	return strings.Join(sections, "\n\n")
}
