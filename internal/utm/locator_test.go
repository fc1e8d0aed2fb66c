package utm_test

import (
	"testing"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/utm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, utm.ZoneNumber(-180))
	assert.Equal(t, 1, utm.ZoneNumber(-174.0001))
	assert.Equal(t, 2, utm.ZoneNumber(-174))
	assert.Equal(t, 31, utm.ZoneNumber(0))
	assert.Equal(t, 33, utm.ZoneNumber(12.6247))
	assert.Equal(t, 60, utm.ZoneNumber(179.999))
	assert.Equal(t, 60, utm.ZoneNumber(180), "the antimeridian belongs to the last zone")

	t.Run("monotonic and bounded", func(t *testing.T) {
		t.Parallel()
		prev := utm.ZoneNumber(-180)
		for lon := -180.0; lon < 180; lon += 0.25 {
			zone := utm.ZoneNumber(lon)
			require.GreaterOrEqual(t, zone, prev, "lon %v", lon)
			require.GreaterOrEqual(t, zone, 1)
			require.LessOrEqual(t, zone, 60)
			prev = zone
		}
	})
}

func TestZoneLetter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lat    float64
		letter byte
	}{
		{-80, 'C'},
		{-72.5, 'C'},
		{-72, 'D'},
		{-0.0001, 'M'},
		{0, 'N'},
		{48.2283, 'U'},
		{71.999, 'W'},
		{72, 'X'},
		{80, 'X'},
		{84, 'X'},
	}

	for _, tc := range cases {
		letter, err := utm.ZoneLetter(tc.lat)
		require.NoError(t, err, "lat %v", tc.lat)
		assert.Equal(t, string(tc.letter), string(letter), "lat %v", tc.lat)
	}

	t.Run("never I or O", func(t *testing.T) {
		t.Parallel()
		for lat := -80.0; lat < 72; lat += 0.5 {
			letter, err := utm.ZoneLetter(lat)
			require.NoError(t, err)
			assert.NotEqual(t, byte('I'), letter)
			assert.NotEqual(t, byte('O'), letter)
		}
	})

	t.Run("out of defined range", func(t *testing.T) {
		t.Parallel()
		for _, lat := range []float64{-80.001, 84.001, -90, 90} {
			letter, err := utm.ZoneLetter(lat)
			require.ErrorIs(t, err, utm.ErrOutOfDefinedRange, "lat %v", lat)
			assert.Zero(t, letter)
		}
	})
}

func TestBandBounds(t *testing.T) {
	t.Parallel()

	latMin, latMax := utm.BandBounds('X')
	assert.InDelta(t, 72.0, latMin, 0)
	assert.InDelta(t, 84.0, latMax, 0)

	latMin, latMax = utm.BandBounds('C')
	assert.InDelta(t, -80.0, latMin, 0)
	assert.InDelta(t, -72.0, latMax, 0)

	latMin, latMax = utm.BandBounds('N')
	assert.InDelta(t, 0.0, latMin, 0)
	assert.InDelta(t, 8.0, latMax, 0)

	t.Run("unrecognized letters fall back to zero span", func(t *testing.T) {
		t.Parallel()
		for _, letter := range []byte{'A', 'I', 'O', 'Z', 'c', 0} {
			latMin, latMax := utm.BandBounds(letter)
			assert.Zero(t, latMin)
			assert.Zero(t, latMax)

			_, err := utm.LookupBand(letter)
			require.ErrorIs(t, err, utm.ErrUnrecognizedBand)
		}
	})

	t.Run("band contains its latitudes", func(t *testing.T) {
		t.Parallel()
		for lat := -80.0; lat <= 84; lat += 0.125 {
			letter, err := utm.ZoneLetter(lat)
			require.NoError(t, err)
			latMin, latMax := utm.BandBounds(letter)
			assert.LessOrEqual(t, latMin, lat)
			if letter == 'X' {
				assert.LessOrEqual(t, lat, latMax)
			} else {
				assert.Less(t, lat, latMax)
			}
		}
	})
}

func TestZoneBounds(t *testing.T) {
	t.Parallel()

	rect := utm.ZoneBounds(31, 0.0)
	assert.Equal(t, utm.Rect{LatMin: 0, LonMin: 0, LatMax: 8, LonMax: 6}, rect)
	assert.Equal(t, [2][2]float64{{0, 0}, {8, 6}}, rect.Corners())

	rect = utm.ZoneBounds(1, 80)
	assert.Equal(t, utm.Rect{LatMin: 72, LonMin: -180, LatMax: 84, LonMax: -174}, rect)

	t.Run("latitude without band", func(t *testing.T) {
		t.Parallel()
		rect := utm.ZoneBounds(60, -85)
		assert.Equal(t, utm.Rect{LatMin: 0, LonMin: 174, LatMax: 0, LonMax: 180}, rect)
	})
}

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("scenario 33U", func(t *testing.T) {
		t.Parallel()
		coords := models.Coordinates{Latitude: 48.2283, Longitude: 12.6247}

		zone, err := utm.Locate(coords)

		require.NoError(t, err)
		assert.Equal(t, 33, zone.Number)
		assert.Equal(t, "33U", zone.Label())
		assert.Equal(t, "N", zone.Hemisphere)
		assert.Equal(t, utm.Rect{LatMin: 48, LonMin: 12, LatMax: 56, LonMax: 18}, zone.Bounds)
		assert.True(t, zone.Bounds.Contains(coords))
	})

	t.Run("southern hemisphere", func(t *testing.T) {
		t.Parallel()
		zone, err := utm.Locate(models.Coordinates{Latitude: -33.8688, Longitude: 151.2093})

		require.NoError(t, err)
		assert.Equal(t, "56H", zone.Label())
		assert.Equal(t, "S", zone.Hemisphere)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		t.Parallel()
		_, err := utm.Locate(models.Coordinates{Latitude: 84.5, Longitude: 10})
		require.ErrorIs(t, err, utm.ErrOutOfDefinedRange)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		t.Parallel()
		_, err := utm.Locate(models.Coordinates{Latitude: 10, Longitude: 180.5})
		require.ErrorIs(t, err, utm.ErrLongitudeOutOfRange)
	})
}

func TestParseLabel(t *testing.T) {
	t.Parallel()

	number, letter, err := utm.ParseLabel("33U")
	require.NoError(t, err)
	assert.Equal(t, 33, number)
	assert.Equal(t, byte('U'), letter)

	number, letter, err = utm.ParseLabel(" 7x ")
	require.NoError(t, err)
	assert.Equal(t, 7, number)
	assert.Equal(t, byte('X'), letter)

	for _, label := range []string{"", "U", "0U", "61U", "33I", "33O", "33", "abc", "1234U"} {
		_, _, err = utm.ParseLabel(label)
		require.ErrorIs(t, err, utm.ErrInvalidLabel, "label %q", label)
	}
}

func TestZoneFromLabel(t *testing.T) {
	t.Parallel()

	zone, err := utm.ZoneFromLabel("32V")
	require.NoError(t, err)
	assert.Equal(t, "32V", zone.Label())
	assert.Equal(t, "N", zone.Hemisphere)
	assert.Equal(t, utm.Rect{LatMin: 56, LonMin: 6, LatMax: 64, LonMax: 12}, zone.Bounds)

	zone, err = utm.ZoneFromLabel("1C")
	require.NoError(t, err)
	assert.Equal(t, "S", zone.Hemisphere)
	assert.Equal(t, utm.Rect{LatMin: -80, LonMin: -180, LatMax: -72, LonMax: -174}, zone.Bounds)

	_, err = utm.ZoneFromLabel("99Q")
	require.ErrorIs(t, err, utm.ErrInvalidLabel)
}
