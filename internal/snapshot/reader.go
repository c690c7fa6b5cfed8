// Package snapshot reads the most recent sensor snapshot from the shared
// data file written by the external producer. The file is the only data
// path into the service: a single most-recent-snapshot JSON object with no
// durability guarantees. Absence and corruption are expected, recoverable
// conditions represented as a Status, never as an error that could escape
// the monitoring cycle. A torn read (file open mid-write by the producer)
// surfaces as Corrupt.
package snapshot

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/buildwatch/safesite/internal/models"
)

// Status is the outcome of a snapshot read.
type Status int

const (
	// StatusOK means the file existed and parsed into a valid reading.
	StatusOK Status = iota
	// StatusAbsent means the file does not exist (producer not started yet).
	StatusAbsent
	// StatusCorrupt means the file exists but could not be parsed or
	// contained invalid values.
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// payload mirrors the snapshot file contract with the producer.
type payload struct {
	Temperature      float64 `json:"temperature"`
	GasLevel         float64 `json:"gas_level"`
	HelmetViolations int     `json:"helmet_violations"`
	Vibration        string  `json:"vibration"`
}

// Reader reads the latest snapshot from one well-known path.
type Reader struct {
	path   string
	logger zerolog.Logger
}

// NewReader creates a reader for the given snapshot path.
func NewReader(path string, logger zerolog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Path returns the snapshot file path.
func (r *Reader) Path() string {
	return r.path
}

// Read returns the latest reading and its status. On Absent or Corrupt the
// returned reading is zero-valued with unknown vibration; callers must not
// fold it into history. On OK, ObservedAt carries the file's last-modified
// time.
func (r *Reader) Read() (models.Reading, Status) {
	info, err := os.Stat(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn().Err(err).Str("path", r.path).Msg("failed to stat snapshot file")
		}
		return models.ZeroReading(), StatusAbsent
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("failed to read snapshot file")
		return models.ZeroReading(), StatusCorrupt
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("snapshot file is not valid JSON")
		return models.ZeroReading(), StatusCorrupt
	}

	reading := models.Reading{
		Temperature:      p.Temperature,
		GasLevel:         p.GasLevel,
		HelmetViolations: p.HelmetViolations,
		Vibration:        models.ParseVibration(p.Vibration),
		ObservedAt:       info.ModTime(),
	}
	if err := reading.Validate(); err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("snapshot contains invalid values")
		return models.ZeroReading(), StatusCorrupt
	}
	r.logger.Debug().Str("reading", reading.String()).Msg("snapshot read")
	return reading, StatusOK
}

// Raw returns the snapshot file's bytes unmodified. Used by the HTTP API,
// which serves the producer's JSON as-is.
func (r *Reader) Raw() ([]byte, error) {
	return os.ReadFile(r.path)
}
