package schema

import "fmt"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// HRZone represents a heart-rate training zone.
	HRZone string

	// SnapshotKind distinguishes full exports from incremental ones.
	SnapshotKind string

	// SubScore represents one component of the healthspan index.
	SubScore string

	// Severity represents an alert severity level.
	Severity string

	// Priority represents a recommendation priority.
	Priority string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All heart-rate zones, bucketed by percentage of max heart rate.
const (
	ZoneRecovery  HRZone = "recovery"  // < 60%
	ZoneAerobic   HRZone = "aerobic"   // 60-70%
	ZoneTempo     HRZone = "tempo"     // 70-80%
	ZoneThreshold HRZone = "threshold" // 80-90%
	ZoneVO2Max    HRZone = "vo2max"    // > 90%
	ZoneUnknown   HRZone = "unknown"   // no heart-rate data
)

// Snapshot kinds, detected from the file name.
const (
	FullSnapshot    SnapshotKind = "full"
	DiffSnapshot    SnapshotKind = "diff"
	UnknownSnapshot SnapshotKind = "unknown"
)

// All healthspan sub-scores.
const (
	SubScoreFitness    SubScore = "fitness"
	SubScoreBody       SubScore = "body"
	SubScoreRecovery   SubScore = "recovery"
	SubScoreMetabolic  SubScore = "metabolic"
	SubScoreFunctional SubScore = "functional"
)

// All alert severities, most urgent first.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityGood     Severity = "good"
)

// All recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Zone boundaries as fractions of max heart rate.
const (
	ZoneAerobicFloor   = 0.60
	ZoneTempoFloor     = 0.70
	ZoneThresholdFloor = 0.80
	ZoneVO2MaxFloor    = 0.90
)

// Sleep stage type codes as exported by Health Connect.
const (
	StageAwake = 1
	StageLight = 4
	StageDeep  = 5
	StageREM   = 6
)

// AllSubScores returns a list of all healthspan sub-scores.
var AllSubScores = []SubScore{SubScoreFitness, SubScoreBody, SubScoreRecovery, SubScoreMetabolic, SubScoreFunctional}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultHealthspanWeights returns the default weight map for the
// healthspan index. Weights sum to 1.0.
func GetDefaultHealthspanWeights() map[SubScore]float64 {
	return map[SubScore]float64{
		SubScoreFitness:    0.30,
		SubScoreBody:       0.20,
		SubScoreRecovery:   0.20,
		SubScoreMetabolic:  0.20,
		SubScoreFunctional: 0.10,
	}
}

// exerciseTypeNames maps Health Connect / Samsung Health exercise type codes
// to readable names.
var exerciseTypeNames = map[int]string{
	13:  "Badminton",
	56:  "Baseball",
	57:  "Basketball",
	58:  "Biathlon",
	59:  "Calisthenics",
	60:  "Cricket",
	61:  "Dancing",
	62:  "Elliptical",
	63:  "Fencing",
	64:  "Football (American)",
	65:  "Football (Soccer)",
	66:  "Frisbee",
	67:  "Golf",
	68:  "Guided Breathing",
	69:  "Gymnastics",
	70:  "Handball",
	71:  "HIIT",
	72:  "Hiking",
	73:  "Ice Hockey",
	74:  "Swimming",
	75:  "Ice Skating",
	76:  "Martial Arts",
	77:  "Paddling",
	78:  "Paragliding",
	79:  "Walking",
	80:  "Pilates",
	81:  "Racquetball",
	82:  "Rock Climbing",
	83:  "Roller Hockey",
	84:  "Rowing",
	85:  "Running",
	86:  "Sailing",
	87:  "Scuba Diving",
	88:  "Skating",
	89:  "Skiing",
	90:  "Snowboarding",
	91:  "Snowshoeing",
	92:  "Softball",
	93:  "Squash",
	94:  "Stair Climbing",
	95:  "Strength Training",
	96:  "Stretching",
	97:  "Surfing",
	98:  "Table Tennis",
	99:  "Tennis",
	100: "Volleyball",
	101: "Water Polo",
	102: "Weightlifting",
	103: "Wheelchair",
	104: "Yoga",
}

// ExerciseTypeName translates a numeric exercise type code to a name.
func ExerciseTypeName(code *int) string {
	if code == nil {
		return "Unknown"
	}
	if name, ok := exerciseTypeNames[*code]; ok {
		return name
	}
	return fmt.Sprintf("Other (%d)", *code)
}
