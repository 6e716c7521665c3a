package actor_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/actor"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("creates_valid_actor", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()

		// When
		a, err := actor.NewActor(id, "Rahim Uddin", actor.RoleSender)

		// Then
		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.Equal(t, "Rahim Uddin", a.DisplayName())
		assert.Equal(t, actor.RoleSender, a.Role())
		assert.True(t, a.IsSender())
		assert.False(t, a.IsAdmin())
		assert.False(t, a.IsReceiver())
	})

	t.Run("rejects_zero_value_id", func(t *testing.T) {
		var id kernel.UUID

		_, err := actor.NewActor(id, "Rahim Uddin", actor.RoleSender)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_empty_display_name", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), "", actor.RoleAdmin)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), "Rahim Uddin", actor.RoleUnknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestActor_Validate(t *testing.T) {
	t.Run("zero_value_actor_is_invalid", func(t *testing.T) {
		var a actor.Actor

		err := a.Validate()

		require.Error(t, err)
		assert.Equal(t, actor.ErrActorIsNotConstructed, err)
	})
}

func TestRole(t *testing.T) {
	t.Run("string_representations", func(t *testing.T) {
		assert.Equal(t, "ADMIN", actor.RoleAdmin.String())
		assert.Equal(t, "SENDER", actor.RoleSender.String())
		assert.Equal(t, "RECEIVER", actor.RoleReceiver.String())
		assert.Equal(t, "UNKNOWN", actor.RoleUnknown.String())
		assert.Equal(t, "UNKNOWN", actor.Role(99).String())
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, actor.RoleAdmin.Validate())
		require.NoError(t, actor.RoleSender.Validate())
		require.NoError(t, actor.RoleReceiver.Validate())
		require.Error(t, actor.RoleUnknown.Validate())
		require.Error(t, actor.Role(99).Validate())
	})

	t.Run("role_from_string", func(t *testing.T) {
		for _, tc := range []struct {
			in   string
			want actor.Role
		}{
			{"ADMIN", actor.RoleAdmin},
			{"SENDER", actor.RoleSender},
			{"RECEIVER", actor.RoleReceiver},
		} {
			got, err := actor.RoleFromString(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		}
	})

	t.Run("role_from_string_rejects_unknown", func(t *testing.T) {
		_, err := actor.RoleFromString("SUPERUSER")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
