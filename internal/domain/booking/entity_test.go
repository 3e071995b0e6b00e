//go:build unit

package booking_test

import (
	"testing"
	"time"

	"roombook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newRequest(t *testing.T, kind booking.RequestKind) *booking.Request {
	t.Helper()
	req, err := booking.NewRequest(uuid.New(), testDate, mustWindow(t, "09:00", "10:00"), 20, kind, "")
	require.NoError(t, err)
	return req
}

func TestNewRequest(t *testing.T) {
	t.Run("lanes initialized per kind", func(t *testing.T) {
		cases := []struct {
			kind booking.RequestKind
			room booking.LaneStatus
			zoom booking.LaneStatus
		}{
			{booking.KindRoom, booking.LanePending, booking.LaneNotRequired},
			{booking.KindZoom, booking.LaneNotRequired, booking.LanePending},
			{booking.KindBoth, booking.LanePending, booking.LanePending},
		}
		for _, tc := range cases {
			req := newRequest(t, tc.kind)
			assert.Equal(t, tc.room, req.RoomStatus(), "kind=%s", tc.kind)
			assert.Equal(t, tc.zoom, req.ZoomStatus(), "kind=%s", tc.kind)
			assert.Equal(t, booking.StatusPending, req.Status())
		}
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := booking.NewRequest(uuid.New(), testDate, mustWindow(t, "09:00", "10:00"), 0, booking.KindRoom, "")
		assert.ErrorIs(t, err, booking.ErrInvalidCapacity)
	})

	t.Run("kind must be known", func(t *testing.T) {
		_, err := booking.NewRequest(uuid.New(), testDate, mustWindow(t, "09:00", "10:00"), 5, booking.RequestKind("teams"), "")
		assert.ErrorIs(t, err, booking.ErrInvalidRequestKind)
	})
}

func TestApproveLane(t *testing.T) {
	actor := uuid.New()
	roomID := uuid.New()
	now := testDate.Add(8 * time.Hour)

	t.Run("room-only request approves to terminal", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)

		require.NoError(t, req.ApproveLane(booking.LaneRoom, actor, roomID, now))

		assert.Equal(t, booking.LaneApproved, req.RoomStatus())
		assert.Equal(t, booking.StatusApproved, req.Status())
		require.NotNil(t, req.RoomID())
		assert.Equal(t, roomID, *req.RoomID())
		assert.Equal(t, actor, *req.RoomActedBy())
	})

	t.Run("approving an already approved lane is a conflict", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)
		require.NoError(t, req.ApproveLane(booking.LaneRoom, actor, roomID, now))

		before := *req
		err := req.ApproveLane(booking.LaneRoom, actor, uuid.New(), now.Add(time.Minute))

		assert.ErrorIs(t, err, booking.ErrLaneFinalized)
		assert.Equal(t, before, *req, "failed transition must leave the request unchanged")
	})

	t.Run("acting on a not_required lane is refused", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)
		err := req.ApproveLane(booking.LaneZoom, actor, uuid.New(), now)
		assert.ErrorIs(t, err, booking.ErrLaneNotRequired)
	})

	t.Run("approval without a resource is refused", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)
		err := req.ApproveLane(booking.LaneRoom, actor, uuid.Nil, now)
		assert.ErrorIs(t, err, booking.ErrMissingResource)
	})
}

func TestBothKindDerivation(t *testing.T) {
	actor := uuid.New()
	now := testDate.Add(8 * time.Hour)

	t.Run("one lane approved yields partial_approved", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)

		require.NoError(t, req.ApproveLane(booking.LaneRoom, actor, uuid.New(), now))
		assert.Equal(t, booking.StatusPartialApproved, req.Status())

		require.NoError(t, req.ApproveLane(booking.LaneZoom, actor, uuid.New(), now))
		assert.Equal(t, booking.StatusApproved, req.Status())
	})

	t.Run("room rejection forces overall rejected", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)

		require.NoError(t, req.RejectLane(booking.LaneRoom, actor, now))
		assert.Equal(t, booking.StatusRejected, req.Status())
	})

	t.Run("zoom rejection forces overall rejected even after room approval", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)

		require.NoError(t, req.ApproveLane(booking.LaneRoom, actor, uuid.New(), now))
		require.NoError(t, req.RejectLane(booking.LaneZoom, actor, now))

		assert.Equal(t, booking.StatusRejected, req.Status())
	})

	t.Run("no lane can act once overall rejected", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)
		require.NoError(t, req.RejectLane(booking.LaneZoom, actor, now))

		err := req.ApproveLane(booking.LaneRoom, actor, uuid.New(), now)
		assert.ErrorIs(t, err, booking.ErrLaneFinalized)
	})
}

func TestCancel(t *testing.T) {
	now := testDate.Add(8 * time.Hour)

	t.Run("owner cancels a pending request", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)

		require.NoError(t, req.Cancel(req.UserID(), now))
		assert.Equal(t, booking.StatusCancelled, req.Status())
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)
		err := req.Cancel(uuid.New(), now)
		assert.ErrorIs(t, err, booking.ErrNotOwner)
	})

	t.Run("partial_approved is no longer cancellable", func(t *testing.T) {
		req := newRequest(t, booking.KindBoth)
		require.NoError(t, req.ApproveLane(booking.LaneRoom, uuid.New(), uuid.New(), now))

		err := req.Cancel(req.UserID(), now)
		assert.ErrorIs(t, err, booking.ErrNotCancellable)
	})

	t.Run("cancelled request refuses lane actions", func(t *testing.T) {
		req := newRequest(t, booking.KindRoom)
		require.NoError(t, req.Cancel(req.UserID(), now))

		err := req.ApproveLane(booking.LaneRoom, uuid.New(), uuid.New(), now)
		assert.ErrorIs(t, err, booking.ErrLaneFinalized)
	})
}

func TestLaneStatusBlocking(t *testing.T) {
	assert.True(t, booking.LanePending.IsBlocking())
	assert.True(t, booking.LaneApproved.IsBlocking())
	assert.False(t, booking.LaneRejected.IsBlocking())
	assert.False(t, booking.LaneNotRequired.IsBlocking())
}
