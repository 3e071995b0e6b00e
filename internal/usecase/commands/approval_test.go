//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
)

// ---- fakes -----------------------------------------------------------------

type fakeUoW struct {
	commits int
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	if err := fn(ctx, nil); err != nil {
		return err
	}
	f.commits++
	return nil
}

type fakeRequestRepo struct {
	byID            map[uuid.UUID]*booking.Request
	approvedOverlap bool
	updates         int
}

func newFakeRequestRepo(reqs ...*booking.Request) *fakeRequestRepo {
	m := make(map[uuid.UUID]*booking.Request, len(reqs))
	for _, r := range reqs {
		m[r.ID()] = r
	}
	return &fakeRequestRepo{byID: m}
}

func (f *fakeRequestRepo) Create(_ context.Context, _ db.DBTX, req *booking.Request) error {
	f.byID[req.ID()] = req
	return nil
}

func (f *fakeRequestRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Request, error) {
	req, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("request not found", nil, infra.KindNotFound)
	}
	return req, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, _ db.DBTX, req *booking.Request) error {
	f.byID[req.ID()] = req
	f.updates++
	return nil
}

func (f *fakeRequestRepo) HasApprovedOverlap(_ context.Context, _ db.DBTX, _ uuid.UUID, _ booking.Lane, _ time.Time, _ booking.TimeWindow, _ uuid.UUID) (bool, error) {
	return f.approvedOverlap, nil
}

type fakeResourceRepo struct {
	byID map[uuid.UUID]*resource.Resource
}

func (f *fakeResourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return res, nil
}

type fakeAuditRepo struct {
	entries []booking.AuditEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, _ db.DBTX, entry booking.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) Notify(_ context.Context, _, _ uuid.UUID, _, _ string) error {
	f.calls++
	return f.err
}

type fakeAvailability struct {
	optimal *queries.ResourceView
}

func (f *fakeAvailability) FindAvailable(_ context.Context, _ queries.AvailabilitySpec) ([]queries.ResourceView, error) {
	if f.optimal == nil {
		return nil, nil
	}
	return []queries.ResourceView{*f.optimal}, nil
}

func (f *fakeAvailability) FindOptimal(_ context.Context, _ queries.AvailabilitySpec) (*queries.ResourceView, error) {
	return f.optimal, nil
}

func (f *fakeAvailability) FindAlternativeSlots(_ context.Context, _ queries.AvailabilitySpec) ([]queries.SlotOption, error) {
	return nil, nil
}

type fakeRequestViews struct {
	repo *fakeRequestRepo
}

func (f *fakeRequestViews) GetByID(_ context.Context, id uuid.UUID) (*queries.RequestView, error) {
	req, ok := f.repo.byID[id]
	if !ok {
		return nil, errs.ErrRequestNotFound
	}
	return &queries.RequestView{
		ID:         req.ID(),
		UserID:     req.UserID(),
		Status:     req.Status(),
		RoomStatus: req.RoomStatus(),
		ZoomStatus: req.ZoomStatus(),
	}, nil
}

func (f *fakeRequestViews) ListByUser(_ context.Context, _ uuid.UUID) ([]*queries.RequestView, error) {
	return nil, nil
}

func (f *fakeRequestViews) AuditTrail(_ context.Context, _ uuid.UUID) ([]*queries.AuditView, error) {
	return nil, nil
}

// ---- harness ---------------------------------------------------------------

type approvalHarness struct {
	cmd      commands.ApprovalCommands
	requests *fakeRequestRepo
	audits   *fakeAuditRepo
	notifier *fakeNotifier
	uow      *fakeUoW
}

func newApprovalHarness(t *testing.T, avail *fakeAvailability, resources map[uuid.UUID]*resource.Resource, reqs ...*booking.Request) *approvalHarness {
	t.Helper()
	repo := newFakeRequestRepo(reqs...)
	audits := &fakeAuditRepo{}
	notifier := &fakeNotifier{}
	uow := &fakeUoW{}
	cmd := commands.NewApprovalCommands(
		repo,
		&fakeResourceRepo{byID: resources},
		audits,
		avail,
		&fakeRequestViews{repo: repo},
		notifier,
		uow,
		clock.NewMockClock(testNow),
	)
	return &approvalHarness{cmd: cmd, requests: repo, audits: audits, notifier: notifier, uow: uow}
}

func pendingRequest(t *testing.T, kind booking.RequestKind) *booking.Request {
	t.Helper()
	start, err := booking.ParseTimeOfDay("09:00")
	require.NoError(t, err)
	end, err := booking.ParseTimeOfDay("10:00")
	require.NoError(t, err)
	window, err := booking.NewTimeWindow(start, end)
	require.NoError(t, err)
	req, err := booking.NewRequest(uuid.New(), testDate, window, 20, kind, "")
	require.NoError(t, err)
	return req
}

func roomResource(t *testing.T, capacity int32) *resource.Resource {
	t.Helper()
	res, err := resource.NewResource(resource.KindRoom, "meeting-a", capacity)
	require.NoError(t, err)
	return res
}

// ---- tests -----------------------------------------------------------------

func TestApproveLane(t *testing.T) {
	actor := uuid.New()

	t.Run("selector-backed approval commits and notifies", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		free := queries.ResourceView{ID: uuid.New(), Kind: resource.KindRoom, Name: "meeting-a", Capacity: 25, Active: true}
		h := newApprovalHarness(t, &fakeAvailability{optimal: &free}, nil, req)

		view, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})
		require.NoError(t, err)

		assert.Equal(t, booking.StatusApproved, view.Status)
		assert.Equal(t, 1, h.uow.commits)
		assert.Equal(t, 1, h.notifier.calls)
		require.Len(t, h.audits.entries, 1)
		assert.Equal(t, booking.LaneRoom, h.audits.entries[0].Lane)
		assert.Equal(t, "pending", h.audits.entries[0].PrevStatus)
		assert.Equal(t, "approved", h.audits.entries[0].NewStatus)
		require.NotNil(t, req.RoomID())
		assert.Equal(t, free.ID, *req.RoomID())
	})

	t.Run("pinned resource must fit the request", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		small := roomResource(t, 5)
		h := newApprovalHarness(t, &fakeAvailability{}, map[uuid.UUID]*resource.Resource{small.ID(): small}, req)

		id := small.ID()
		_, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom, ResourceID: &id,
		})

		assert.ErrorIs(t, err, errs.ErrResourceTooSmall)
		assert.Zero(t, h.uow.commits)
		assert.Zero(t, h.notifier.calls)
	})

	t.Run("already approved lane is a conflict and changes nothing", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		require.NoError(t, req.ApproveLane(booking.LaneRoom, actor, uuid.New(), testNow))
		h := newApprovalHarness(t, &fakeAvailability{}, nil, req)

		_, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})

		assert.ErrorIs(t, err, errs.ErrRequestFinalized)
		assert.Zero(t, h.requests.updates)
		assert.Empty(t, h.audits.entries)
	})

	t.Run("approved overlap on the resource is a conflict", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		free := queries.ResourceView{ID: uuid.New(), Kind: resource.KindRoom, Name: "meeting-a", Capacity: 25, Active: true}
		h := newApprovalHarness(t, &fakeAvailability{optimal: &free}, nil, req)
		h.requests.approvedOverlap = true

		_, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})

		assert.ErrorIs(t, err, errs.ErrResourceConflict)
		assert.Equal(t, booking.LanePending, req.RoomStatus())
	})

	t.Run("no resource available is reported, not invented", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		h := newApprovalHarness(t, &fakeAvailability{}, nil, req)

		_, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})

		assert.ErrorIs(t, err, errs.ErrNoResourceAvailable)
	})

	t.Run("unknown request id", func(t *testing.T) {
		h := newApprovalHarness(t, &fakeAvailability{}, nil)

		_, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: uuid.New(), Actor: actor, Lane: booking.LaneRoom,
		})

		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("notifier failure never fails a committed approval", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		free := queries.ResourceView{ID: uuid.New(), Kind: resource.KindRoom, Name: "meeting-a", Capacity: 25, Active: true}
		h := newApprovalHarness(t, &fakeAvailability{optimal: &free}, nil, req)
		h.notifier.err = errs.New("broker unreachable")

		view, err := h.cmd.ApproveLane(context.Background(), commands.ApproveLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})

		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, view.Status)
		assert.Equal(t, 1, h.uow.commits)
	})
}

func TestRejectLane(t *testing.T) {
	actor := uuid.New()

	t.Run("rejecting one lane of a both request rejects overall", func(t *testing.T) {
		req := pendingRequest(t, booking.KindBoth)
		h := newApprovalHarness(t, &fakeAvailability{}, nil, req)

		view, err := h.cmd.RejectLane(context.Background(), commands.RejectLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneZoom, Note: "no accounts left",
		})
		require.NoError(t, err)

		assert.Equal(t, booking.StatusRejected, view.Status)
		require.Len(t, h.audits.entries, 1)
		assert.Equal(t, "no accounts left", h.audits.entries[0].Note)
	})

	t.Run("rejecting a rejected lane is a conflict", func(t *testing.T) {
		req := pendingRequest(t, booking.KindRoom)
		require.NoError(t, req.RejectLane(booking.LaneRoom, actor, testNow))
		h := newApprovalHarness(t, &fakeAvailability{}, nil, req)

		_, err := h.cmd.RejectLane(context.Background(), commands.RejectLaneParams{
			RequestID: req.ID(), Actor: actor, Lane: booking.LaneRoom,
		})

		assert.ErrorIs(t, err, errs.ErrRequestFinalized)
	})
}
