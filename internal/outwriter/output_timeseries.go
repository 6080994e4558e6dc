package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTimeseriesResults outputs the per-day chart series, dispatching based
// on the output format configured. Both series cover the same trailing days,
// so they join into one row per day.
func PrintTimeseriesResults(pai []schema.PAIPoint, load []schema.TrainingLoadPoint, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := joinSeries(pai, load)

	switch cfg.Output {
	case schema.JSONOut:
		type jsonSeries struct {
			WeeklyPAI    []schema.PAIPoint          `json:"weekly_pai"`
			TrainingLoad []schema.TrainingLoadPoint `json:"training_load"`
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, jsonSeries{WeeklyPAI: pai, TrainingLoad: load})
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"day", "weekly_pai", "ctl", "atl", "tsb"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					rec := []string{r.day, fmtFloat(r.pai), fmtFloat(r.ctl), fmtFloat(r.atl), fmtFloat(r.tsb)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTimeseriesTable(rows, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// seriesRow is one joined day of both chart series.
type seriesRow struct {
	day                string
	pai, ctl, atl, tsb float64
}

// joinSeries merges the two series on day key, preserving day order.
func joinSeries(pai []schema.PAIPoint, load []schema.TrainingLoadPoint) []seriesRow {
	loadByDay := make(map[string]schema.TrainingLoadPoint, len(load))
	for _, p := range load {
		loadByDay[p.Day] = p
	}

	rows := make([]seriesRow, 0, len(pai))
	for _, p := range pai {
		r := seriesRow{day: p.Day, pai: p.Value}
		if lp, ok := loadByDay[p.Day]; ok {
			r.ctl, r.atl, r.tsb = lp.CTL, lp.ATL, lp.TSB
		}
		rows = append(rows, r)
	}
	return rows
}

// writeTimeseriesTable generates and writes the human-readable table.
func writeTimeseriesTable(rows []seriesRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	title := fmt.Sprintf("Training Trend (last %d days)", len(rows))
	if cfg.UseEmojis {
		title = "📈 " + title
	}
	if _, err := fmt.Fprintln(writer, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Day", "Weekly PAI", "CTL", "ATL", "TSB"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{r.day, fmtFloat(r.pai), fmtFloat(r.ctl), fmtFloat(r.atl), fmtFloat(r.tsb)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Report completed in %v\n", duration)
	return err
}
