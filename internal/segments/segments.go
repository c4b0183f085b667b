// Package segments reads duty logs from YAML or JSON documents into
// domain.DutySegment values. Status strings are mapped to canonical
// statuses while decoding, so nothing downstream sees raw strings.
package segments

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"hosline/internal/domain"
)

// File is a driver's duty log as written on disk.
type File struct {
	DriverID             string               `yaml:"driverId,omitempty"`
	OtherEmployerMinutes int                  `yaml:"otherEmployerMinutes,omitempty"`
	Segments             []domain.DutySegment `yaml:"segments"`
}

// Decode parses a YAML (or JSON) duty log. Segments inherit the file's
// driver ID, instants are normalized to UTC, and segments without an ID get
// a deterministic one derived from their content.
func Decode(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("invalid segment document: %w", err)
	}
	if f.OtherEmployerMinutes < 0 {
		return File{}, errors.New("otherEmployerMinutes must not be negative")
	}
	for i := range f.Segments {
		s := &f.Segments[i]
		if s.Start.IsZero() || s.End.IsZero() {
			return File{}, fmt.Errorf("segment %d: startUtc and endUtc are required", i)
		}
		s.Start, s.End = s.Start.UTC(), s.End.UTC()
		if s.DriverID == "" {
			s.DriverID = f.DriverID
		}
		if s.Status == "" {
			s.Status = domain.ParseDutyStatus("")
		}
		if s.ID == "" {
			s.ID = SegmentID(*s)
		}
	}
	return f, nil
}

// SegmentID derives a stable ID from a segment's driver, span and status.
func SegmentID(s domain.DutySegment) string {
	key := fmt.Sprintf("%s|%s|%s|%s", s.DriverID, s.Start.UTC().Format(time.RFC3339Nano), s.End.UTC().Format(time.RFC3339Nano), s.Status)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Read decodes a duty log from r.
func Read(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	return Decode(data)
}

// FromFile decodes the duty log at path; "-" reads standard input.
func FromFile(path string) (File, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Decode(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
