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

// PrintHealthspanReport outputs the healthspan index and its sub-scores,
// dispatching based on the output format configured.
func PrintHealthspanReport(m *schema.Metrics, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		type jsonReport struct {
			Healthspan      schema.HealthspanScore  `json:"healthspan"`
			Lab             *schema.LabScores       `json:"lab,omitempty"`
			Recommendations []schema.Recommendation `json:"recommendations,omitempty"`
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, jsonReport{
				Healthspan:      m.Healthspan,
				Lab:             m.Lab,
				Recommendations: m.Recommendations,
			})
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"dimension", "score", "label"}, func(cw *csv.Writer) error {
				return writeCSVRowsForHealthspan(cw, m)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHealthspanTable(m, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// healthspanRows flattens the sub-scores into dimension/score pairs.
func healthspanRows(hs schema.HealthspanScore) [][2]any {
	return [][2]any{
		{"fitness", hs.Fitness},
		{"body", hs.Body},
		{"recovery", hs.Recovery},
		{"metabolic", hs.Metabolic},
		{"functional", hs.Functional},
	}
}

// writeHealthspanTable generates and writes the human-readable report.
func writeHealthspanTable(m *schema.Metrics, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	title := fmt.Sprintf("Healthspan Index: %d (%s)", m.Healthspan.Index, m.Healthspan.Status)
	if cfg.UseEmojis {
		title = "🧬 " + title
	}
	if _, err := fmt.Fprintln(writer, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dimension", "Score", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range healthspanRows(m.Healthspan) {
		score := row[1].(int)
		data = append(data, []string{
			row[0].(string),
			strconv.Itoa(score),
			label(float64(score)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if m.Lab != nil {
		fmtFloat, _ := createFormatters(cfg.Precision)
		if _, err := fmt.Fprintf(writer,
			"Lab panel: cardio %s, metabolic %s, inflammation %s, hormone %s -> longevity %s\n",
			fmtFloat(m.Lab.Cardio), fmtFloat(m.Lab.Metabolic),
			fmtFloat(m.Lab.Inflammation), fmtFloat(m.Lab.Hormone),
			fmtFloat(m.Lab.Longevity)); err != nil {
			return err
		}
	}
	if err := writeRecommendations(writer, m.Recommendations, cfg); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Report completed in %v\n", duration)
	return err
}

// writeCSVRowsForHealthspan writes the sub-scores in CSV format.
func writeCSVRowsForHealthspan(w *csv.Writer, m *schema.Metrics) error {
	for _, row := range healthspanRows(m.Healthspan) {
		score := row[1].(int)
		rec := []string{
			row[0].(string),
			strconv.Itoa(score),
			contract.GetPlainLabel(float64(score)),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Write([]string{"index", strconv.Itoa(m.Healthspan.Index), m.Healthspan.Status})
}
