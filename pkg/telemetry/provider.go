// Package telemetry defines the boundary to the telemetry ingestion
// collaborators. The analysis core makes no assumptions about file formats or
// storage; it only consumes ordered Sample streams per driver.
package telemetry

import (
	"errors"

	"github.com/racelytics/corner-analysis-go/pkg/model"
)

var ErrUnknownDriver = errors.New("unknown driver")

// Provider supplies the lap-tagged sample streams of one recorded session.
type Provider interface {
	Track() string
	Race() string
	// DriverIDs returns the drivers of the session in document order.
	DriverIDs() []string
	// Samples returns the ordered sample stream of the given driver.
	// ErrUnknownDriver when the driver is not part of the session.
	Samples(driverID string) ([]model.Sample, error)
}
