package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

func fptr(v float64) *float64 {
	return &v
}

// writerConfig returns a config for plain text rendering without terminal
// decoration.
func writerConfig() *contract.Config {
	return &contract.Config{
		Precision: 1,
		Output:    schema.TextOut,
		UseEmojis: false,
		UseColors: false,
	}
}

// sampleMetrics returns a metric set with a mix of present and absent values.
func sampleMetrics() *schema.Metrics {
	return &schema.Metrics{
		WeeklyPAI:      87.5,
		Load:           schema.TrainingLoad{CTL: 12.3, ATL: 18.1, TSB: -5.8},
		VO2Max:         36.2,
		VO2MaxMeasured: false,
		CurrentWeight:  fptr(81.5),
		AvgSleepHours:  fptr(6.8),
		Glucose:        schema.GlucoseSummary{Fasting: fptr(95.0), Samples: 12},
		LongevityScore: 78,
		Healthspan: schema.HealthspanScore{
			Index: 72, Status: "good",
			Fitness: 80, Body: 65, Recovery: 70, Metabolic: 75, Functional: 65,
		},
		Recommendations: []schema.Recommendation{
			{Priority: schema.PriorityHigh, Text: "Protect your sleep window."},
		},
		Alerts: []schema.Alert{
			{ID: "ldl", Title: "LDL cholesterol", Severity: schema.SeverityModerate, Detail: "LDL at 120 mg/dL", Action: "Favor unsaturated fats."},
		},
	}
}

// TestCreateFormatters tests the shared formatter closures.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtPtr := createFormatters(1)
	assert.Equal(t, "87.5", fmtFloat(87.5))
	assert.Equal(t, "n/a", fmtPtr(nil))
	assert.Equal(t, "81.5", fmtPtr(fptr(81.5)))

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "88", fmtFloat(87.5))
}

// TestMetricRows tests the report row set and ordering.
func TestMetricRows(t *testing.T) {
	fmtFloat, fmtPtr := createFormatters(1)
	rows := metricRows(sampleMetrics(), fmtFloat, fmtPtr)

	require.NotEmpty(t, rows)
	assert.Equal(t, [2]string{"weekly_pai", "87.5"}, rows[0])

	byName := map[string]string{}
	for _, r := range rows {
		byName[r[0]] = r[1]
	}
	assert.Equal(t, "36.2", byName["vo2max (estimated)"])
	assert.Equal(t, "81.5", byName["weight_kg"])
	assert.Equal(t, "n/a", byName["body_fat_pct"])
	assert.Equal(t, "95.0", byName["glucose_fasting"])
	assert.Equal(t, "78", byName["longevity_score"])
	assert.Equal(t, "72", byName["healthspan_index"])
}

// TestMetricRowsMeasuredVO2Max tests the measured label variant.
func TestMetricRowsMeasuredVO2Max(t *testing.T) {
	m := sampleMetrics()
	m.VO2MaxMeasured = true

	fmtFloat, fmtPtr := createFormatters(1)
	rows := metricRows(m, fmtFloat, fmtPtr)
	assert.Equal(t, "vo2max (measured)", rows[4][0])
}

// TestWriteMetricsTable tests the rendered text report.
func TestWriteMetricsTable(t *testing.T) {
	cfg := writerConfig()
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeMetricsTable(sampleMetrics(), cfg, fmtFloat, fmtPtr, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Health Metrics")
	assert.Contains(t, out, "weekly_pai")
	assert.Contains(t, out, "87.5")
	assert.Contains(t, out, "Alerts:")
	assert.Contains(t, out, "[MODERATE] LDL cholesterol")
	assert.Contains(t, out, "Recommendations:")
	assert.Contains(t, out, "[high] Protect your sleep window.")
	assert.Contains(t, out, "glucose samples: 12")
	assert.NotContains(t, out, "📊")
}

// TestWriteMetricsTableEmojis tests title decoration when emojis are on.
func TestWriteMetricsTableEmojis(t *testing.T) {
	cfg := writerConfig()
	cfg.UseEmojis = true
	fmtFloat, fmtPtr := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeMetricsTable(sampleMetrics(), cfg, fmtFloat, fmtPtr, time.Millisecond, &buf))
	assert.Contains(t, buf.String(), "📊 Health Metrics")
}

// TestMetricsCSV tests the CSV rendition of the metric rows.
func TestMetricsCSV(t *testing.T) {
	fmtFloat, fmtPtr := createFormatters(1)

	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"metric", "value"}, func(cw *csv.Writer) error {
		return writeCSVRowsForMetrics(cw, sampleMetrics(), fmtFloat, fmtPtr)
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "value"}, records[0])
	assert.Equal(t, []string{"weekly_pai", "87.5"}, records[1])
}

// TestWriteJSON tests the shared JSON encoder against the metric set.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleMetrics()))

	var decoded schema.Metrics
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 87.5, decoded.WeeklyPAI, 0.001)
	assert.Equal(t, 72, decoded.Healthspan.Index)
}

// TestWriteHealthspanTable tests the healthspan report rendition.
func TestWriteHealthspanTable(t *testing.T) {
	cfg := writerConfig()
	m := sampleMetrics()
	m.Lab = &schema.LabScores{Cardio: 82.1, Metabolic: 90.0, Inflammation: 95.5, Hormone: 88.0, Longevity: 86.9}

	var buf bytes.Buffer
	require.NoError(t, writeHealthspanTable(m, cfg, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "Healthspan Index: 72 (good)")
	assert.Contains(t, out, "fitness")
	assert.Contains(t, out, "functional")
	assert.Contains(t, out, "Lab panel: cardio 82.1")
	assert.Contains(t, out, "longevity 86.9")
}

// TestHealthspanCSV tests the CSV rendition including the index footer row.
func TestHealthspanCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"dimension", "score", "label"}, func(cw *csv.Writer) error {
		return writeCSVRowsForHealthspan(cw, sampleMetrics())
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7) // header, five dimensions, index row
	assert.Equal(t, []string{"fitness", "80", contract.GetPlainLabel(80)}, records[1])
	assert.Equal(t, []string{"index", "72", "good"}, records[6])
}

// TestJoinSeries tests merging the chart series on day key.
func TestJoinSeries(t *testing.T) {
	pai := []schema.PAIPoint{
		{Day: "2026-08-19", Value: 80},
		{Day: "2026-08-20", Value: 75},
	}
	load := []schema.TrainingLoadPoint{
		{Day: "2026-08-20", CTL: 12, ATL: 18, TSB: -6},
	}

	rows := joinSeries(pai, load)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-08-19", rows[0].day)
	assert.Zero(t, rows[0].ctl) // no load point for the day
	assert.InDelta(t, -6.0, rows[1].tsb, 0.001)
}

// TestWriteTimeseriesTable tests the trend table rendition.
func TestWriteTimeseriesTable(t *testing.T) {
	cfg := writerConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := joinSeries(
		[]schema.PAIPoint{{Day: "2026-08-20", Value: 75}},
		[]schema.TrainingLoadPoint{{Day: "2026-08-20", CTL: 12, ATL: 18, TSB: -6}},
	)

	var buf bytes.Buffer
	require.NoError(t, writeTimeseriesTable(rows, cfg, fmtFloat, time.Millisecond, &buf))

	out := buf.String()
	assert.Contains(t, out, "Training Trend (last 1 days)")
	assert.Contains(t, out, "2026-08-20")
	assert.Contains(t, out, "-6.0")
}

// TestWriteRunSummary tests the processing cycle summary line.
func TestWriteRunSummary(t *testing.T) {
	cfg := writerConfig()

	var buf bytes.Buffer
	require.NoError(t, writeRunSummary(&buf, &schema.RunSummary{
		SnapshotsProcessed: 2,
		RecordsAdded:       150,
		DuplicatesRemoved:  1,
		Sources:            map[string]int{"watch": 120, "phone": 30},
	}, cfg))
	assert.Contains(t, buf.String(), "Snapshots: 2 processed, 0 failed.")
	assert.Contains(t, buf.String(), "150 added")
	assert.Contains(t, buf.String(), "Records by source: phone 30, watch 120.")

	buf.Reset()
	require.NoError(t, writeRunSummary(&buf, &schema.RunSummary{}, cfg))
	assert.Contains(t, buf.String(), "No new snapshots found.")
}
