package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionRequests(t *testing.T) {
	t.Parallel()

	const key = "event-2024-06-05-10:00"

	t.Run("issued token confirms once", func(t *testing.T) {
		t.Parallel()

		d := NewDeletionRequests()

		token, expiresAt := d.Issue(key)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(DeletionTTL), expiresAt, time.Second)

		require.NoError(t, d.Confirm(key, token))

		// Single use: the same token never confirms twice.
		assert.ErrorIs(t, d.Confirm(key, token), ErrDeletionNotPending)
	})

	t.Run("unknown token does not confirm", func(t *testing.T) {
		t.Parallel()

		d := NewDeletionRequests()

		assert.ErrorIs(t, d.Confirm(key, "made-up"), ErrDeletionNotPending)
		assert.ErrorIs(t, d.Confirm(key, ""), ErrDeletionNotPending)
	})

	t.Run("token is bound to its key", func(t *testing.T) {
		t.Parallel()

		d := NewDeletionRequests()

		token, _ := d.Issue(key)

		assert.ErrorIs(t, d.Confirm("event-2024-06-06-10:00", token), ErrDeletionNotPending)
	})

	t.Run("expired token does not confirm", func(t *testing.T) {
		t.Parallel()

		d := NewDeletionRequests()

		now := time.Now()
		d.now = func() time.Time { return now }

		token, _ := d.Issue(key)

		d.now = func() time.Time { return now.Add(DeletionTTL + time.Second) }

		assert.ErrorIs(t, d.Confirm(key, token), ErrDeletionNotPending)
	})

	t.Run("distinct requests get distinct tokens", func(t *testing.T) {
		t.Parallel()

		d := NewDeletionRequests()

		first, _ := d.Issue(key)
		second, _ := d.Issue(key)

		assert.NotEqual(t, first, second)

		// Both stay valid until confirmed or expired.
		require.NoError(t, d.Confirm(key, second))
		require.NoError(t, d.Confirm(key, first))
	})
}
