// Package utm maps geographic coordinates onto the UTM grid: zone numbers,
// latitude band letters and the rectangular extent of a zone/band cell.
//
// The extent is a plain latitude/longitude rectangle meant for drawing on a
// web map. It ignores the Norway and Svalbard exceptions of the real grid.
package utm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Limits of the area covered by latitude bands and by zone numbers.
const (
	MinLatitude  = -80.0
	MaxLatitude  = 84.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	ZoneCount  = 60
	zoneWidth  = 6.0
	bandHeight = 8.0

	// lastRegularBandTop is where band X starts; X runs 12 degrees up to MaxLatitude.
	lastRegularBandTop = 72.0
)

// bandLetters lists the latitude bands from south to north. I and O are skipped.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

var (
	// ErrOutOfDefinedRange is returned for latitudes outside [-80, 84] where no band exists.
	ErrOutOfDefinedRange = errors.New("latitude outside the UTM band range [-80, 84]")
	// ErrUnrecognizedBand is returned by LookupBand for letters that are not band letters.
	ErrUnrecognizedBand = errors.New("unrecognized latitude band letter")
	// ErrLongitudeOutOfRange is returned for longitudes outside [-180, 180].
	ErrLongitudeOutOfRange = errors.New("longitude outside [-180, 180]")
	// ErrInvalidLabel is returned when a zone label such as "33U" cannot be parsed.
	ErrInvalidLabel = errors.New("invalid UTM zone label")
)

// Band is a latitude band of the UTM grid.
type Band struct {
	Letter byte
	LatMin float64
	LatMax float64
}

// Rect is a latitude/longitude rectangle.
type Rect struct {
	LatMin float64
	LonMin float64
	LatMax float64
	LonMax float64
}

// Corners returns the south-west and north-east corners as [lat, lon] pairs,
// the shape Leaflet expects for L.rectangle.
func (r Rect) Corners() [2][2]float64 {
	return [2][2]float64{{r.LatMin, r.LonMin}, {r.LatMax, r.LonMax}}
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (r Rect) Contains(c models.Coordinates) bool {
	return c.Latitude >= r.LatMin && c.Latitude <= r.LatMax &&
		c.Longitude >= r.LonMin && c.Longitude <= r.LonMax
}

// Zone is a located UTM grid cell.
type Zone struct {
	Number     int
	Letter     byte
	Hemisphere string // "N" or "S"
	Bounds     Rect
}

// Label returns the conventional zone name, e.g. "33U".
func (z Zone) Label() string {
	return strconv.Itoa(z.Number) + string(z.Letter)
}

// ZoneNumber returns the zone for a longitude in [-180, 180].
// Callers validate the range; 180 itself is folded into zone 60.
func ZoneNumber(longitude float64) int {
	zone := int(math.Floor((longitude-MinLongitude)/zoneWidth)) + 1
	if zone > ZoneCount {
		return ZoneCount
	}

	return zone
}

// ZoneLetter returns the latitude band letter, or ErrOutOfDefinedRange when
// the latitude lies outside [-80, 84].
func ZoneLetter(latitude float64) (byte, error) {
	switch {
	case latitude >= MinLatitude && latitude < lastRegularBandTop:
		return bandLetters[int(math.Floor((latitude-MinLatitude)/bandHeight))], nil
	case latitude >= lastRegularBandTop && latitude <= MaxLatitude:
		return 'X', nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrOutOfDefinedRange, latitude)
	}
}

// BandBounds returns the latitude span of a band letter.
//
// Letters outside the band table yield (0, 0). The degenerate span is kept
// as a silent fallback; use LookupBand to get an error instead.
func BandBounds(letter byte) (float64, float64) {
	band, err := LookupBand(letter)
	if err != nil {
		return 0, 0
	}

	return band.LatMin, band.LatMax
}

// LookupBand returns the band for a letter. Lowercase letters are not accepted.
func LookupBand(letter byte) (Band, error) {
	if letter == 'X' {
		return Band{Letter: 'X', LatMin: lastRegularBandTop, LatMax: MaxLatitude}, nil
	}

	idx := strings.IndexByte(bandLetters, letter)
	if idx < 0 {
		return Band{}, fmt.Errorf("%w: %q", ErrUnrecognizedBand, letter)
	}

	latMin := MinLatitude + float64(idx)*bandHeight

	return Band{Letter: letter, LatMin: latMin, LatMax: latMin + bandHeight}, nil
}

// ZoneBounds returns the rectangle of a zone number and the band containing latitude.
// A latitude without a band gives a degenerate (0, 0) latitude span.
func ZoneBounds(zoneNumber int, latitude float64) Rect {
	letter, _ := ZoneLetter(latitude)
	latMin, latMax := BandBounds(letter)

	return Rect{
		LatMin: latMin,
		LonMin: float64(zoneNumber-1)*zoneWidth + MinLongitude,
		LatMax: latMax,
		LonMax: float64(zoneNumber)*zoneWidth + MinLongitude,
	}
}

// Locate validates a coordinate and returns its zone.
func Locate(coords models.Coordinates) (Zone, error) {
	letter, err := ZoneLetter(coords.Latitude)
	if err != nil {
		return Zone{}, err
	}

	if math.IsNaN(coords.Longitude) || coords.Longitude < MinLongitude || coords.Longitude > MaxLongitude {
		return Zone{}, fmt.Errorf("%w: %v", ErrLongitudeOutOfRange, coords.Longitude)
	}

	number := ZoneNumber(coords.Longitude)

	return Zone{
		Number:     number,
		Letter:     letter,
		Hemisphere: hemisphere(coords.Latitude),
		Bounds:     ZoneBounds(number, coords.Latitude),
	}, nil
}

// ParseLabel splits a label such as "33U" or "7x" into zone number and band letter.
func ParseLabel(label string) (int, byte, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 || len(label) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	letter := label[len(label)-1]
	number, err := strconv.Atoi(label[:len(label)-1])
	if err != nil || number < 1 || number > ZoneCount {
		return 0, 0, fmt.Errorf("%w: zone number in %q", ErrInvalidLabel, label)
	}

	if _, err = LookupBand(letter); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidLabel, err)
	}

	return number, letter, nil
}

// ZoneFromLabel returns the full zone cell named by a label.
func ZoneFromLabel(label string) (Zone, error) {
	number, letter, err := ParseLabel(label)
	if err != nil {
		return Zone{}, err
	}

	const half = 2
	band, _ := LookupBand(letter)
	center := band.LatMin + (band.LatMax-band.LatMin)/half

	return Zone{
		Number:     number,
		Letter:     letter,
		Hemisphere: hemisphere(center),
		Bounds:     ZoneBounds(number, center),
	}, nil
}

func hemisphere(latitude float64) string {
	if latitude >= 0 {
		return "N"
	}

	return "S"
}
