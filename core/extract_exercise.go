package core

import (
	"fmt"

	"github.com/lw2die/vitalis/internal/contract"
	"github.com/lw2die/vitalis/schema"
)

// extractExercise converts raw exercise sessions into cache records, deriving
// PAI, training stress and heart-rate zone at ingestion time.
func extractExercise(snap *Snapshot, doc *schema.CacheDocument, cfg *contract.Config) int {
	added := 0
	for _, e := range snap.exerciseData() {
		ts, ok := ParseSnapshotTime(e.StartTime)
		if !ok {
			contract.LogWarn("skipping exercise with bad timestamp", fmt.Errorf("start_time %q", e.StartTime))
			continue
		}

		name := e.ExerciseTypeName
		if name == "" {
			name = schema.ExerciseTypeName(e.ExerciseType)
		}

		if e.AvgHeartRate == nil || *e.AvgHeartRate == 0 {
			contract.LogWarn("exercise without heart-rate data",
				fmt.Errorf("type %s, duration %.0f min", name, e.DurationMinutes))
		}

		sessionID := e.SessionID
		if sessionID == "" {
			sessionID = e.RecordID
		}

		doc.Exercise = append(doc.Exercise, schema.ExerciseRecord{
			SessionID:   sessionID,
			Timestamp:   ts,
			Source:      e.Source,
			Type:        name,
			DurationMin: e.DurationMinutes,
			Calories:    e.CaloriesBurned,
			DistanceM:   e.DistanceMeters,
			AvgHR:       e.AvgHeartRate,
			MaxHR:       e.MaxHeartRate,
			Steps:       e.TotalSteps,
			PAI:         SessionPAI(e.AvgHeartRate, e.DurationMinutes, cfg),
			HrTSS:       SessionHrTSS(e.AvgHeartRate, e.DurationMinutes, cfg),
			Zone:        ClassifyZone(e.AvgHeartRate, cfg),
		})
		added++
	}
	return added
}

// extractSleep converts raw sleep sessions into cache records, summing the
// stage intervals into per-stage minutes.
func extractSleep(snap *Snapshot, doc *schema.CacheDocument, _ *contract.Config) int {
	added := 0
	for _, s := range snap.sleepData() {
		ts, ok := ParseSnapshotTime(s.StartTime)
		if !ok {
			contract.LogWarn("skipping sleep session with bad timestamp", fmt.Errorf("start_time %q", s.StartTime))
			continue
		}

		awake, light, deep, rem, total := sleepStageMinutes(s.Stages)

		sessionID := s.SessionID
		if sessionID == "" {
			sessionID = s.RecordID
		}

		doc.Sleep = append(doc.Sleep, schema.SleepRecord{
			SessionID: sessionID,
			Timestamp: ts,
			Source:    s.Source,
			AwakeMin:  contract.RoundTo(awake, 1),
			LightMin:  contract.RoundTo(light, 1),
			DeepMin:   contract.RoundTo(deep, 1),
			RemMin:    contract.RoundTo(rem, 1),
			TotalMin:  contract.RoundTo(total, 1),
		})
		added++
	}
	return added
}
