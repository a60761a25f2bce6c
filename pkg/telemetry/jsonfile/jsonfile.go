// Package jsonfile reads a recorded session from a JSON document. This is the
// reference Provider implementation used by the CLI; production ingestion
// (CSV import, schema normalization) lives outside this repository.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/racelytics/corner-analysis-go/pkg/model"
	"github.com/racelytics/corner-analysis-go/pkg/telemetry"
)

type (
	driverSamples struct {
		DriverID string         `json:"driverId"`
		Samples  []model.Sample `json:"samples"`
	}
	sessionDocument struct {
		Track   string          `json:"track"`
		Race    string          `json:"race"`
		Drivers []driverSamples `json:"drivers"`
	}

	// Session implements telemetry.Provider on top of a parsed document.
	Session struct {
		doc      sessionDocument
		byDriver map[string][]model.Sample
	}
)

var _ telemetry.Provider = (*Session)(nil)

// Load parses the session document at fileName. Absent or JSON-null channel
// values decode to nil pointers, keeping missing sensor data explicit.
func Load(fileName string) (*Session, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	ret := &Session{byDriver: make(map[string][]model.Sample)}
	if err := json.Unmarshal(data, &ret.doc); err != nil {
		return nil, fmt.Errorf("could not parse session document: %w", err)
	}
	for i := range ret.doc.Drivers {
		d := &ret.doc.Drivers[i]
		ret.byDriver[d.DriverID] = d.Samples
	}
	return ret, nil
}

func (s *Session) Track() string { return s.doc.Track }
func (s *Session) Race() string  { return s.doc.Race }

func (s *Session) DriverIDs() []string {
	ids := make([]string, 0, len(s.doc.Drivers))
	for i := range s.doc.Drivers {
		ids = append(ids, s.doc.Drivers[i].DriverID)
	}
	return ids
}

func (s *Session) Samples(driverID string) ([]model.Sample, error) {
	samples, ok := s.byDriver[driverID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", telemetry.ErrUnknownDriver, driverID)
	}
	return samples, nil
}
