// Package feed decodes incident feed files into domain incidents.
//
// A feed is a JSON array of crime records using the open-data column names
// (TYPE, NEIGHBOURHOOD, YEAR, MONTH, DAY, HOUR, MINUTE). Records must already
// carry geodetic LAT/LNG columns; projected X/Y coordinates are converted by
// the database repository, not here.
package feed

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// Record is one row of the incident feed
type Record struct {
	Lat           *float64 `json:"LAT"`
	Lng           *float64 `json:"LNG"`
	X             *float64 `json:"X"`
	Y             *float64 `json:"Y"`
	Type          string   `json:"TYPE"`
	Neighbourhood string   `json:"NEIGHBOURHOOD"`
	Year          flexInt  `json:"YEAR"`
	Month         flexInt  `json:"MONTH"`
	Day           flexInt  `json:"DAY"`
	Hour          flexInt  `json:"HOUR"`
	Minute        flexInt  `json:"MINUTE"`
}

// Incident converts the record. ok is false when the record has no usable
// coordinates.
func (r Record) Incident() (domain.IncidentPoint, bool) {
	if r.Lat == nil || r.Lng == nil {
		return domain.IncidentPoint{}, false
	}
	if *r.Lat < -90 || *r.Lat > 90 || *r.Lng < -180 || *r.Lng > 180 {
		return domain.IncidentPoint{}, false
	}
	return domain.IncidentPoint{
		Point:     geo.Point{Lat: *r.Lat, Lng: *r.Lng},
		Category:  r.Type,
		ZoneName:  r.Neighbourhood,
		Timestamp: domain.IncidentTimestamp(int(r.Year), int(r.Month), int(r.Day), int(r.Hour), int(r.Minute)),
	}, true
}

// projectedOnly reports whether the record carries only projected X/Y
// coordinates, which need the database repository to convert.
func (r Record) projectedOnly() bool {
	return (r.Lat == nil || r.Lng == nil) && r.X != nil && r.Y != nil
}

// Decode reads a JSON feed. Records that fail to decode or have no usable
// coordinates are skipped and counted rather than failing the batch.
func Decode(r io.Reader) ([]domain.IncidentPoint, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "feed: decode records")
	}

	points := make([]domain.IncidentPoint, 0, len(raw))
	var malformed, projected, unlocated int
	for _, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			malformed++
			continue
		}
		p, ok := rec.Incident()
		if !ok {
			if rec.projectedOnly() {
				projected++
			} else {
				unlocated++
			}
			continue
		}
		points = append(points, p)
	}

	if malformed+unlocated > 0 {
		zap.L().Warn("feed: skipped records",
			zap.Int("malformed", malformed),
			zap.Int("without_coordinates", unlocated),
			zap.Int("kept", len(points)),
		)
	}
	if projected > 0 {
		zap.L().Warn("feed: skipped records with only projected X/Y coordinates; "+
			"set DATABASE_URL to load them through PostGIS",
			zap.Int("skipped", projected),
			zap.Int("kept", len(points)),
		)
	}
	return points, nil
}

// LoadFile decodes the feed stored at path.
func LoadFile(path string) ([]domain.IncidentPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "feed: open %s", path)
	}
	defer f.Close()

	return Decode(f)
}

// flexInt accepts both 2024 and "2024". Blank or unparseable values decode
// as zero, which leaves the incident without a timestamp.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(bytes.Trim(data, `"`)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}
