package selection_test

import (
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/selection"
	"github.com/UnknownOlympus/meridian/internal/utm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelection(t *testing.T, lat, lon float64) selection.Selection {
	t.Helper()
	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	zone, err := utm.Locate(coords)
	require.NoError(t, err)

	return selection.Selection{
		Coordinates: coords,
		Zone:        zone,
		Source:      models.SourceManual,
		SelectedAt:  time.Now(),
	}
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()
		var store selection.Store

		sel, ok := store.Current()

		assert.False(t, ok)
		assert.Equal(t, selection.Selection{}, sel)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()
		store := selection.NewStore()
		first := newSelection(t, 48.2283, 12.6247)
		second := newSelection(t, -33.8688, 151.2093)

		store.Set(first)
		store.Set(second)
		sel, ok := store.Current()

		require.True(t, ok)
		assert.Equal(t, second, sel)
		assert.Equal(t, "56H", sel.Zone.Label())
	})

	t.Run("reset clears", func(t *testing.T) {
		t.Parallel()
		store := selection.NewStore()
		store.Set(newSelection(t, 0, 0))

		store.Reset()
		_, ok := store.Current()

		assert.False(t, ok)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		t.Parallel()
		store := selection.NewStore()
		store.Set(newSelection(t, 10, 10))

		sel, _ := store.Current()
		sel.Coordinates.Latitude = 55
		again, _ := store.Current()

		assert.InDelta(t, 10.0, again.Coordinates.Latitude, 0)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		t.Parallel()
		store := selection.NewStore()
		sel := newSelection(t, 1, 1)
		var wg sync.WaitGroup

		for range 16 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				store.Set(sel)
			}()
			go func() {
				defer wg.Done()
				store.Current()
			}()
		}
		wg.Wait()

		got, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, sel, got)
	})
}
