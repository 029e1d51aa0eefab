package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAvailabilityRequestValidate(t *testing.T) {
	t.Run("remaining defaults to capacity", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "2026-10-01", Capacity: 12}
		date, remaining, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, "2026-10-01", date.Format(DateLayout))
		assert.Equal(t, 12, remaining)
	})

	t.Run("explicit remaining within bounds", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "2026-10-01", Capacity: 10, Remaining: intPtr(4)}
		_, remaining, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, 4, remaining)
	})

	t.Run("remaining above capacity rejected", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "2026-10-01", Capacity: 10, Remaining: intPtr(15)}
		_, _, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 0 and capacity")
	})

	t.Run("negative remaining rejected", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "2026-10-01", Capacity: 10, Remaining: intPtr(-1)}
		_, _, err := req.Validate()
		require.Error(t, err)
	})

	t.Run("negative capacity rejected", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "2026-10-01", Capacity: -5}
		_, _, err := req.Validate()
		require.Error(t, err)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		req := UpsertAvailabilityRequest{AvailableDate: "01/10/2026", Capacity: 10}
		_, _, err := req.Validate()
		require.Error(t, err)
	})
}
