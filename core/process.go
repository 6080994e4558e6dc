package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// extractorFunc ingests one category of a snapshot into the cache and returns
// the number of records added.
type extractorFunc func(*Snapshot, *schema.CacheDocument, *contract.Config) int

// extractors lists every category pass, in ingestion order. Resting heart
// rate reads the same raw section as heart rate, so both run over one
// snapshot.
var extractors = []struct {
	name string
	fn   extractorFunc
}{
	{"exercise", extractExercise},
	{"sleep", extractSleep},
	{"weight", extractWeight},
	{"heart_rate", extractHeartRate},
	{"resting_heart_rate", extractRestingHR},
	{"steps", extractSteps},
	{"distance", extractDistance},
	{"calories", extractCalories},
	{"bmr", extractBMR},
	{"glucose", extractGlucose},
	{"nutrition", extractNutrition},
	{"spo2", extractSpO2},
	{"body_fat", extractBodyFat},
	{"lean_mass", extractLeanMass},
	{"body_water", extractBodyWater},
	{"bone_mass", extractBoneMass},
	{"blood_pressure", extractBloodPressure},
	{"vo2max", extractVO2Max},
}

// FindNewSnapshots lists unprocessed snapshot files in the input directory,
// sorted by name so timestamped exports ingest in chronological order.
func FindNewSnapshots(doc *schema.CacheDocument, cfg *contract.Config) ([]string, error) {
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, cfg.FilePrefix) || !strings.HasSuffix(name, cfg.FileExt) {
			continue
		}
		if doc.HasProcessed(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ProcessSnapshots ingests every new snapshot in the input directory into the
// cache document. A snapshot that fails to parse is skipped and left in
// place for the next cycle; the error never aborts the batch. Ingested files
// move to the archive directory. The caller persists the document.
func ProcessSnapshots(doc *schema.CacheDocument, cfg *contract.Config) (*schema.RunSummary, error) {
	result := &schema.RunSummary{}

	// Caches built before the dedup passes existed get one catch-up sweep.
	if doc.TotalRecords() > 0 && len(doc.ProcessedFiles) <= 1 {
		result.DuplicatesRemoved += CleanupExercise(doc)
		result.DuplicatesRemoved += CleanupDailyMetrics(doc)
		result.DuplicatesRemoved += CleanupWeight(doc)
	}

	names, err := FindNewSnapshots(doc, cfg)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return result, nil
	}
	contract.LogInfo("found %d new snapshot(s)", len(names))

	for _, name := range names {
		path := filepath.Join(cfg.InputDir, name)
		if err := processOne(doc, cfg, path, name, result); err != nil {
			contract.LogWarn(fmt.Sprintf("skipping snapshot %s", name), err)
			result.SnapshotsFailed++
			continue
		}
		result.SnapshotsProcessed++
	}
	if result.SnapshotsProcessed > 0 {
		result.Sources = SourceCounts(doc)
	}
	return result, nil
}

// SourceCounts tallies cached records per originating device or app, across
// every category. Records without a source land under "unknown".
func SourceCounts(doc *schema.CacheDocument) map[string]int {
	counts := make(map[string]int)
	add := func(source string) {
		if source == "" {
			source = "unknown"
		}
		counts[source]++
	}

	for _, r := range doc.Exercise {
		add(r.Source)
	}
	for _, r := range doc.Weight {
		add(r.Source)
	}
	for _, r := range doc.Sleep {
		add(r.Source)
	}
	for _, r := range doc.HeartRate {
		add(r.Source)
	}
	for _, r := range doc.RestingHeartRate {
		add(r.Source)
	}
	for _, r := range doc.Steps {
		add(r.Source)
	}
	for _, r := range doc.Distance {
		add(r.Source)
	}
	for _, r := range doc.Calories {
		add(r.Source)
	}
	for _, r := range doc.BMR {
		add(r.Source)
	}
	for _, r := range doc.Glucose {
		add(r.Source)
	}
	for _, r := range doc.Nutrition {
		add(r.Source)
	}
	for _, r := range doc.SpO2 {
		add(r.Source)
	}
	for _, r := range doc.BodyFat {
		add(r.Source)
	}
	for _, r := range doc.LeanMass {
		add(r.Source)
	}
	for _, r := range doc.BodyWater {
		add(r.Source)
	}
	for _, r := range doc.BoneMass {
		add(r.Source)
	}
	for _, r := range doc.BloodPressure {
		add(r.Source)
	}
	for _, r := range doc.VO2Max {
		add(r.Source)
	}
	return counts
}

// processOne ingests a single snapshot file and archives it.
func processOne(doc *schema.CacheDocument, cfg *contract.Config, path, name string, result *schema.RunSummary) error {
	snap, err := LoadSnapshot(path)
	if err != nil {
		return err
	}
	kind := KindFromFilename(name)
	contract.LogInfo("processing %s (%s)", name, kind)

	// Deletions run first so a snapshot can delete and re-add in one file.
	result.RecordsDeleted += ApplyDeletions(doc, snap.DeletionIDs())

	added := 0
	exerciseAdded := 0
	for _, ex := range extractors {
		n := ex.fn(snap, doc, cfg)
		if ex.name == "exercise" {
			exerciseAdded = n
		}
		added += n
	}
	result.RecordsAdded += added

	// Full exports re-send history, so fresh exercise rows can duplicate
	// sessions the cache already holds.
	if kind == schema.FullSnapshot && exerciseAdded > 0 {
		result.DuplicatesRemoved += CleanupExercise(doc)
	}

	doc.MarkProcessed(name)
	if err := archiveSnapshot(cfg, path, name); err != nil {
		contract.LogWarn("could not archive snapshot", err)
	}
	contract.LogInfo("ingested %s: %d records", name, added)
	return nil
}

// archiveSnapshot moves an ingested file into the archive directory under the
// input directory.
func archiveSnapshot(cfg *contract.Config, path, name string) error {
	archiveDir := filepath.Join(cfg.InputDir, cfg.ArchiveDirName)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.Rename(path, filepath.Join(archiveDir, name)); err != nil {
		return fmt.Errorf("moving snapshot to archive: %w", err)
	}
	return nil
}
