package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMetricsReport outputs the derived metrics, dispatching based on the output format configured.
func PrintMetricsReport(m *schema.Metrics, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, m)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
				return writeCSVRowsForMetrics(cw, m, fmtFloat, fmtPtr)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTable(m, cfg, fmtFloat, fmtPtr, duration, w)
		}, "Wrote table")
	}
	return nil
}

// metricRows flattens the metric set into name/value pairs in report order.
func metricRows(m *schema.Metrics, fmtFloat func(float64) string, fmtPtr func(*float64) string) [][2]string {
	vo2Label := "vo2max (estimated)"
	if m.VO2MaxMeasured {
		vo2Label = "vo2max (measured)"
	}
	return [][2]string{
		{"weekly_pai", fmtFloat(m.WeeklyPAI)},
		{"ctl", fmtFloat(m.Load.CTL)},
		{"atl", fmtFloat(m.Load.ATL)},
		{"tsb", fmtFloat(m.Load.TSB)},
		{vo2Label, fmtFloat(m.VO2Max)},
		{"weight_kg", fmtPtr(m.CurrentWeight)},
		{"weight_week_ago_kg", fmtPtr(m.WeightWeekAgo)},
		{"avg_weight_7d_kg", fmtPtr(m.AvgWeight7d)},
		{"body_fat_pct", fmtPtr(m.BodyFatPct)},
		{"lean_mass_kg", fmtPtr(m.LeanMassKg)},
		{"avg_sleep_hours", fmtPtr(m.AvgSleepHours)},
		{"avg_resting_hr", fmtPtr(m.AvgRestingHR)},
		{"avg_spo2_pct", fmtPtr(m.AvgSpO2)},
		{"avg_daily_steps", fmtPtr(m.AvgSteps)},
		{"avg_systolic", fmtPtr(m.AvgSystolic)},
		{"avg_diastolic", fmtPtr(m.AvgDiastolic)},
		{"glucose_fasting", fmtPtr(m.Glucose.Fasting)},
		{"glucose_postprandial", fmtPtr(m.Glucose.Postprandial)},
		{"gmi_pct", fmtPtr(m.Glucose.GMI)},
		{"longevity_score", strconv.Itoa(m.LongevityScore)},
		{"healthspan_index", strconv.Itoa(m.Healthspan.Index)},
	}
}

// writeMetricsTable generates and writes the human-readable report.
func writeMetricsTable(m *schema.Metrics, cfg *contract.Config, fmtFloat func(float64) string, fmtPtr func(*float64) string, duration time.Duration, writer io.Writer) error {
	title := "Health Metrics"
	if cfg.UseEmojis {
		title = "📊 " + title
	}
	if _, err := fmt.Fprintln(writer, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range metricRows(m, fmtFloat, fmtPtr) {
		data = append(data, []string{row[0], row[1]})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeAlerts(writer, m.Alerts, cfg); err != nil {
		return err
	}
	if err := writeRecommendations(writer, m.Recommendations, cfg); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Report completed in %v (glucose samples: %d)\n", duration, m.Glucose.Samples)
	return err
}

// writeAlerts prints the lab threshold alerts, most urgent first.
func writeAlerts(w io.Writer, alerts []schema.Alert, cfg *contract.Config) error {
	if len(alerts) == 0 {
		return nil
	}
	header := "Alerts:"
	if cfg.UseEmojis {
		header = "🔔 " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, a := range alerts {
		label := contract.GetSeverityLabel(a.Severity, cfg.UseColors)
		if _, err := fmt.Fprintf(w, "  [%s] %s: %s %s\n", label, a.Title, a.Detail, a.Action); err != nil {
			return err
		}
	}
	return nil
}

// writeRecommendations prints actionable suggestions grouped by priority.
func writeRecommendations(w io.Writer, recs []schema.Recommendation, cfg *contract.Config) error {
	if len(recs) == 0 {
		return nil
	}
	header := "Recommendations:"
	if cfg.UseEmojis {
		header = "💡 " + header
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "  [%s] %s\n", r.Priority, r.Text); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVRowsForMetrics writes the metrics in CSV format.
func writeCSVRowsForMetrics(w *csv.Writer, m *schema.Metrics, fmtFloat func(float64) string, fmtPtr func(*float64) string) error {
	for _, row := range metricRows(m, fmtFloat, fmtPtr) {
		if err := w.Write([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	return nil
}
