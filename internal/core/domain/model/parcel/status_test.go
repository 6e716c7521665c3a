package parcel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid wire strings", func(t *testing.T) {
		testCases := map[string]parcel.Status{
			"REQUESTED":  parcel.StatusRequested,
			"APPROVED":   parcel.StatusApproved,
			"DECLINED":   parcel.StatusDeclined,
			"PICKED_UP":  parcel.StatusPickedUp,
			"IN_TRANSIT": parcel.StatusInTransit,
			"DELIVERED":  parcel.StatusDelivered,
			"CANCELLED":  parcel.StatusCancelled,
			"ON_HOLD":    parcel.StatusOnHold,
			"RETURNED":   parcel.StatusReturned,
		}

		for str, expected := range testCases {
			t.Run(str, func(t *testing.T) {
				status, err := parcel.StatusFromString(str)

				require.NoError(t, err)
				assert.Equal(t, expected, status)
				assert.Equal(t, str, status.String())
			})
		}
	})

	t.Run("should fail for unknown strings", func(t *testing.T) {
		for _, str := range []string{"", "UNKNOWN", "requested", "SHIPPED"} {
			status, err := parcel.StatusFromString(str)

			require.Error(t, err)
			assert.Equal(t, parcel.StatusUnknown, status)
			assert.Contains(t, err.Error(), "is not a valid status")
		}
	})
}

func TestStatusValidate(t *testing.T) {
	t.Run("should accept all valid statuses", func(t *testing.T) {
		validStatuses := []parcel.Status{
			parcel.StatusRequested,
			parcel.StatusApproved,
			parcel.StatusDeclined,
			parcel.StatusPickedUp,
			parcel.StatusInTransit,
			parcel.StatusDelivered,
			parcel.StatusCancelled,
			parcel.StatusOnHold,
			parcel.StatusReturned,
		}

		for _, status := range validStatuses {
			assert.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject unknown and out of range values", func(t *testing.T) {
		assert.Error(t, parcel.StatusUnknown.Validate())
		assert.Error(t, parcel.Status(-1).Validate())
		assert.Error(t, parcel.Status(100).Validate())
	})
}

func TestStatusString(t *testing.T) {
	t.Run("should return UNKNOWN for invalid values", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", parcel.StatusUnknown.String())
		assert.Equal(t, "UNKNOWN", parcel.Status(42).String())
	})
}

func TestStatusIsTerminal(t *testing.T) {
	t.Run("should report terminal statuses", func(t *testing.T) {
		assert.True(t, parcel.StatusDelivered.IsTerminal())
		assert.True(t, parcel.StatusCancelled.IsTerminal())
		assert.True(t, parcel.StatusDeclined.IsTerminal())
		assert.True(t, parcel.StatusReturned.IsTerminal())
	})

	t.Run("should report non terminal statuses", func(t *testing.T) {
		assert.False(t, parcel.StatusRequested.IsTerminal())
		assert.False(t, parcel.StatusApproved.IsTerminal())
		assert.False(t, parcel.StatusPickedUp.IsTerminal())
		assert.False(t, parcel.StatusInTransit.IsTerminal())
		assert.False(t, parcel.StatusOnHold.IsTerminal())
	})
}

func TestEventFromString(t *testing.T) {
	t.Run("should round trip all valid events", func(t *testing.T) {
		for _, event := range parcel.AllEvents() {
			parsed, err := parcel.EventFromString(event.String())

			require.NoError(t, err)
			assert.Equal(t, event, parsed)
		}
	})

	t.Run("should fail for unknown strings", func(t *testing.T) {
		event, err := parcel.EventFromString("Teleport")

		require.Error(t, err)
		assert.Equal(t, parcel.EventUnknown, event)
		assert.Contains(t, err.Error(), "is not a valid event")
	})
}

func TestEventRequiresNote(t *testing.T) {
	t.Run("should require note only for cancel and decline", func(t *testing.T) {
		for _, event := range parcel.AllEvents() {
			expected := event == parcel.EventCancel || event == parcel.EventDecline
			assert.Equal(t, expected, event.RequiresNote(), event.String())
		}
	})
}
