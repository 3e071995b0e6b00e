//go:build unit

package queries_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeResourceStore struct {
	resources []queries.ResourceView
}

func (f *fakeResourceStore) FindActiveByKind(_ context.Context, kind resource.Kind, minCapacity int32) ([]queries.ResourceView, error) {
	var out []queries.ResourceView
	for _, r := range f.resources {
		if r.Kind == kind && r.Active && r.Capacity >= minCapacity {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeResourceStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	for _, r := range f.resources {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

type fakeReservationStore struct {
	blocking map[uuid.UUID][]booking.TimeWindow
}

func (f *fakeReservationStore) FindBlockingWindows(_ context.Context, resourceID uuid.UUID, _ resource.Kind, _ time.Time) ([]booking.TimeWindow, error) {
	return f.blocking[resourceID], nil
}

func room(name string, capacity int32) queries.ResourceView {
	return queries.ResourceView{ID: uuid.New(), Kind: resource.KindRoom, Name: name, Capacity: capacity, Active: true}
}

func zoom(name string, capacity int32) queries.ResourceView {
	return queries.ResourceView{ID: uuid.New(), Kind: resource.KindZoom, Name: name, Capacity: capacity, Active: true}
}

func window(t *testing.T, start, end string) booking.TimeWindow {
	t.Helper()
	s, err := booking.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := booking.ParseTimeOfDay(end)
	require.NoError(t, err)
	w, err := booking.NewTimeWindow(s, e)
	require.NoError(t, err)
	return w
}

func spec(t *testing.T, kind resource.Kind, start, end string, capacity int32) queries.AvailabilitySpec {
	t.Helper()
	return queries.AvailabilitySpec{
		Kind:     kind,
		Date:     testDate,
		Window:   window(t, start, end),
		Capacity: capacity,
	}
}

func TestFindAvailable(t *testing.T) {
	small := room("alpha", 10)
	big := room("omega", 50)
	store := &fakeResourceStore{resources: []queries.ResourceView{big, small}}
	held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{}}
	q := queries.NewAvailabilityQueries(store, held)

	t.Run("ordered by capacity then name", func(t *testing.T) {
		got, err := q.FindAvailable(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 5))
		require.NoError(t, err)
		if diff := cmp.Diff([]queries.ResourceView{small, big}, got); diff != "" {
			t.Errorf("resource order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("capacity filter applies", func(t *testing.T) {
		got, err := q.FindAvailable(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "omega", got[0].Name)
	})

	t.Run("blocking overlap excludes the resource", func(t *testing.T) {
		held.blocking[small.ID] = []booking.TimeWindow{window(t, "09:30", "10:30")}
		defer delete(held.blocking, small.ID)

		got, err := q.FindAvailable(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 5))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "omega", got[0].Name)
	})

	t.Run("back-to-back booking does not block", func(t *testing.T) {
		held.blocking[small.ID] = []booking.TimeWindow{window(t, "10:00", "11:00")}
		defer delete(held.blocking, small.ID)

		got, err := q.FindAvailable(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 5))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("validation errors fire before any lookup", func(t *testing.T) {
		bad := spec(t, resource.KindRoom, "09:00", "10:00", 5)
		bad.Capacity = 0
		_, err := q.FindAvailable(context.Background(), bad)
		assert.ErrorIs(t, err, errs.ErrInvalidCapacity)

		bad = spec(t, resource.KindRoom, "09:00", "10:00", 5)
		bad.Kind = resource.Kind("projector")
		_, err = q.FindAvailable(context.Background(), bad)
		assert.ErrorIs(t, err, errs.ErrInvalidResourceKind)

		bad = spec(t, resource.KindRoom, "09:00", "10:00", 5)
		bad.Date = time.Time{}
		_, err = q.FindAvailable(context.Background(), bad)
		assert.ErrorIs(t, err, errs.ErrInvalidTimeWindow)
	})
}

func TestFindOptimal(t *testing.T) {
	small := room("alpha", 25)
	mid := room("beta", 30)
	big := room("omega", 100)
	store := &fakeResourceStore{resources: []queries.ResourceView{big, mid, small}}
	held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{}}
	q := queries.NewAvailabilityQueries(store, held)

	t.Run("least-capacity sufficient resource wins", func(t *testing.T) {
		got, err := q.FindOptimal(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alpha", got.Name)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		s := spec(t, resource.KindRoom, "09:00", "10:00", 20)
		first, err := q.FindOptimal(context.Background(), s)
		require.NoError(t, err)
		second, err := q.FindOptimal(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("capacity monotonicity: smaller fits are always exhausted first", func(t *testing.T) {
		held.blocking[small.ID] = []booking.TimeWindow{window(t, "09:00", "10:00")}
		defer delete(held.blocking, small.ID)

		got, err := q.FindOptimal(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "beta", got.Name, "next-smallest free resource must be chosen")
	})

	t.Run("nothing available is a nil result, not an error", func(t *testing.T) {
		got, err := q.FindOptimal(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 500))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("name breaks capacity ties", func(t *testing.T) {
		tieStore := &fakeResourceStore{resources: []queries.ResourceView{room("zulu", 25), room("alpha", 25)}}
		tieQ := queries.NewAvailabilityQueries(tieStore, held)

		got, err := tieQ.FindOptimal(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alpha", got.Name)
	})
}

func TestFindAlternativeSlots(t *testing.T) {
	only := room("alpha", 25)
	store := &fakeResourceStore{resources: []queries.ResourceView{only}}

	t.Run("at most three, in order, inside working hours, same duration", func(t *testing.T) {
		held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{}}
		q := queries.NewAvailabilityQueries(store, held)

		got, err := q.FindAlternativeSlots(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		require.Len(t, got, 3)

		workStart, _ := booking.ParseTimeOfDay("08:00")
		workEnd, _ := booking.ParseTimeOfDay("17:00")
		var prev booking.TimeOfDay
		for i, opt := range got {
			assert.Equal(t, time.Hour, opt.Window.Duration())
			assert.GreaterOrEqual(t, int(opt.Window.Start()), int(workStart))
			assert.LessOrEqual(t, int(opt.Window.End()), int(workEnd))
			if i > 0 {
				assert.Greater(t, int(opt.Window.Start()), int(prev))
			}
			prev = opt.Window.Start()
		}
		// 08:00 comes first and the requested 09:00 window is skipped
		assert.Equal(t, "08:00", got[0].Window.Start().String())
		assert.Equal(t, "08:30", got[1].Window.Start().String())
		assert.Equal(t, "09:30", got[2].Window.Start().String())
	})

	t.Run("fully booked day yields no alternatives", func(t *testing.T) {
		held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{
			only.ID: {window(t, "08:00", "17:00")},
		}}
		q := queries.NewAvailabilityQueries(store, held)

		got, err := q.FindAlternativeSlots(context.Background(), spec(t, resource.KindRoom, "09:00", "10:00", 20))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("next free slot after an approved hold", func(t *testing.T) {
		// existing approved reservation holds 09:30-10:30
		held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{
			only.ID: {window(t, "09:30", "10:30")},
		}}
		q := queries.NewAvailabilityQueries(store, held)

		s := spec(t, resource.KindRoom, "09:00", "10:00", 20)

		direct, err := q.FindOptimal(context.Background(), s)
		require.NoError(t, err)
		assert.Nil(t, direct)

		got, err := q.FindAlternativeSlots(context.Background(), s)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "08:00", got[0].Window.Start().String())
		assert.Equal(t, "08:30", got[1].Window.Start().String())
		// first slot after the hold starts exactly where it ends
		assert.Equal(t, "10:30", got[2].Window.Start().String())
	})

	t.Run("duration longer than the workday yields nothing", func(t *testing.T) {
		held := &fakeReservationStore{blocking: map[uuid.UUID][]booking.TimeWindow{}}
		q := queries.NewAvailabilityQueries(store, held)

		got, err := q.FindAlternativeSlots(context.Background(), spec(t, resource.KindRoom, "07:00", "17:30", 20))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
