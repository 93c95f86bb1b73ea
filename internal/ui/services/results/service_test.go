package results

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatyard/internal/dataservice"
	"boatyard/internal/dataservice/fake"
	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
	"boatyard/internal/loop"
)

var (
	r1 = domain.Boat{ID: "r1", Name: "Wave Dancer", Length: 32, Price: 48000, BoatTypeID: "Sailboat"}
	r2 = domain.Boat{ID: "r2", Name: "Blue Heron", Length: 27, Price: 31500, BoatTypeID: "Sailboat"}
	p1 = domain.Boat{ID: "p1", Name: "Thunder Run", Length: 24, Price: 62000, BoatTypeID: "Power"}
)

type fixture struct {
	svc  *Service
	data *fake.Service
	rec  *eventbus.Recorder
}

func newFixture(runner loop.Runner) *fixture {
	data := fake.New()
	data.Boats["Sailboat"] = []domain.Boat{r1, r2}
	data.Boats["Power"] = []domain.Boat{p1}
	data.Boats[domain.FilterAll] = []domain.Boat{r1, r2, p1}
	rec := eventbus.NewRecorder(eventbus.New())
	return &fixture{
		svc:  NewService(rec, runner, data, nil),
		data: data,
		rec:  rec,
	}
}

// run executes queued tasks in the given order, applying each continuation
func run(t *testing.T, pending []loop.Pending, order ...int) {
	t.Helper()
	for _, i := range order {
		require.Less(t, i, len(pending))
		if next := pending[i].Task(context.Background()); next != nil {
			next()
		}
	}
}

func loadingTypes(rec *eventbus.Recorder) []domain.EventType {
	var out []domain.EventType
	for _, typ := range rec.Types() {
		if typ == domain.EventLoading || typ == domain.EventDoneLoading {
			out = append(out, typ)
		}
	}
	return out
}

func TestSetFilterQueriesOnceBracketedByLoading(t *testing.T) {
	for _, f := range []domain.Filter{"", "Sailboat", "Power", "Unknown"} {
		t.Run(string(f), func(t *testing.T) {
			fx := newFixture(loop.Inline{})
			fx.svc.SetFilter(f)

			calls := fx.data.CallsTo(fake.OpFetchBoats)
			require.Len(t, calls, 1)
			assert.Equal(t, f, calls[0].Arg)
			assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))
			assert.False(t, fx.svc.IsLoading())
		})
	}
}

func TestSailboatScenario(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")

	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
	assert.Equal(t, []domain.Boat{r1, r2}, fx.svc.Records())
	assert.False(t, fx.svc.IsLoading())
	assert.NoError(t, fx.svc.Err())
	assert.Equal(t, 2, fx.svc.Grid().Len())

	loaded := fx.rec.OfType(domain.EventBoatsLoaded)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.BoatsLoadedEvent{Filter: "Sailboat", Count: 2}, loaded[0])
}

func TestLoadingWhileQueryOutstanding(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)
	fx.svc.SetFilter("Sailboat")

	assert.Equal(t, PhaseLoading, fx.svc.Phase())
	assert.True(t, fx.svc.IsLoading())
	assert.Equal(t, []domain.EventType{domain.EventLoading}, loadingTypes(fx.rec))

	q.RunAll(context.Background())
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
}

func TestSameFilterQueriesAgain(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")
	fx.svc.SetFilter("Sailboat")
	assert.Len(t, fx.data.CallsTo(fake.OpFetchBoats), 2)
}

func TestQueryErrorClearsRecords(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")
	require.Len(t, fx.svc.Records(), 2)

	fx.data.BoatsErr = &dataservice.Error{Op: "FetchBoats", Message: "service unavailable"}
	fx.svc.SetFilter("Power")

	assert.Equal(t, PhaseError, fx.svc.Phase())
	assert.Nil(t, fx.svc.Records())
	assert.Zero(t, fx.svc.Grid().Len())
	assert.EqualError(t, fx.svc.Err(), "FetchBoats: service unavailable")
	assert.False(t, fx.svc.IsLoading())
	assert.Equal(t, []domain.EventType{
		domain.EventLoading, domain.EventDoneLoading,
		domain.EventLoading, domain.EventDoneLoading,
	}, loadingTypes(fx.rec))
}

func TestSuccessClearsPriorError(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.data.BoatsErr = errors.New("down")
	fx.svc.SetFilter("Sailboat")
	require.Error(t, fx.svc.Err())

	fx.data.BoatsErr = nil
	fx.svc.SetFilter("Sailboat")
	assert.NoError(t, fx.svc.Err())
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
}

func TestOutOfOrderResponsesKeepNewest(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)

	fx.svc.SetFilter("Sailboat")
	fx.svc.SetFilter("Power")
	pending := q.Drain()
	require.Len(t, pending, 2)

	// Newest lands first, then the superseded one
	run(t, pending, 1, 0)

	assert.Equal(t, domain.Filter("Power"), fx.svc.Filter())
	assert.Equal(t, []domain.Boat{p1}, fx.svc.Records())
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
	assert.Len(t, fx.rec.OfType(domain.EventBoatsLoaded), 1)
	assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))
}

func TestStaleResponseWhileNewerOutstanding(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)

	fx.svc.SetFilter("Sailboat")
	fx.svc.SetFilter("Power")
	pending := q.Drain()

	run(t, pending, 0)
	assert.Equal(t, PhaseLoading, fx.svc.Phase())
	assert.Nil(t, fx.svc.Records())

	run(t, pending, 1)
	assert.Equal(t, []domain.Boat{p1}, fx.svc.Records())
}

func TestStaleErrorIsDiscarded(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)

	fx.svc.SetFilter("Sailboat")
	fx.svc.SetFilter("Power")
	pending := q.Drain()

	run(t, pending, 1)
	fx.data.BoatsErr = errors.New("late failure")
	run(t, pending, 0)

	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
	assert.NoError(t, fx.svc.Err())
}

func TestRefreshWaitsForResponse(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)
	fx.svc.SetFilter("Sailboat")
	q.RunAll(context.Background())

	done := false
	fx.svc.Refresh(func() { done = true })
	assert.False(t, done)
	assert.True(t, fx.svc.IsLoading())

	q.RunAll(context.Background())
	assert.True(t, done)
	assert.False(t, fx.svc.IsLoading())
	calls := fx.data.CallsTo(fake.OpFetchBoats)
	require.Len(t, calls, 2)
	assert.Equal(t, domain.Filter("Sailboat"), calls[1].Arg)
}

func TestSaveSuccessRefreshesBeforeToast(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")
	fx.data.ResetCalls()
	fx.rec.Reset()

	var order []string
	fx.rec.Subscribe(domain.EventBoatsLoaded, func(eventbus.DomainEvent) { order = append(order, "refreshed") })
	fx.rec.Subscribe(domain.EventToast, func(eventbus.DomainEvent) { order = append(order, "toast") })

	fx.svc.HandleSave(domain.UpdateBatch{"r1": {domain.FieldPrice: 45000.0}})

	assert.Equal(t, []string{fake.OpUpdateBoats, fake.OpFetchBoats}, ops(fx.data.Calls()))
	assert.Equal(t, []string{"refreshed", "toast"}, order)

	toasts := fx.rec.OfType(domain.EventToast)
	require.Len(t, toasts, 1)
	assert.Equal(t, domain.Toast{Title: "Success", Message: "Ship it!", Variant: domain.ToastSuccess}, toasts[0].(domain.ToastEvent).Toast)
	assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
}

func TestRefreshOnlyStartsAfterUpdateConfirms(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)
	fx.svc.SetFilter("Sailboat")
	q.RunAll(context.Background())
	fx.data.ResetCalls()

	fx.svc.HandleSave(domain.UpdateBatch{"r1": {domain.FieldName: "x"}})
	assert.Equal(t, PhaseSaving, fx.svc.Phase())
	pending := q.Drain()
	require.Len(t, pending, 1)
	assert.Equal(t, "UpdateBoats", pending[0].Name)
	assert.Empty(t, fx.data.CallsTo(fake.OpFetchBoats))

	run(t, pending, 0)
	assert.Equal(t, 1, q.Len())
	assert.Empty(t, fx.rec.OfType(domain.EventToast))
	q.RunAll(context.Background())
	assert.Len(t, fx.rec.OfType(domain.EventToast), 1)
}

func TestSaveFailureShowsServerMessage(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")
	fx.data.ResetCalls()
	fx.rec.Reset()

	fx.data.UpdateErr = &dataservice.Error{Op: "UpdateBoats", Message: "Validation error"}
	fx.svc.HandleSave(domain.UpdateBatch{"r1": {domain.FieldName: ""}})

	assert.Empty(t, fx.data.CallsTo(fake.OpFetchBoats))
	toasts := fx.rec.OfType(domain.EventToast)
	require.Len(t, toasts, 1)
	assert.Equal(t, domain.Toast{Title: "Error", Message: "Validation error", Variant: domain.ToastError}, toasts[0].(domain.ToastEvent).Toast)
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
	assert.False(t, fx.svc.IsLoading())
	assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))
}

func TestSaveFailureWithPlainError(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.data.UpdateErr = errors.New("connection reset")
	fx.svc.HandleSave(domain.UpdateBatch{})

	toasts := fx.rec.OfType(domain.EventToast)
	require.Len(t, toasts, 1)
	assert.Equal(t, "connection reset", toasts[0].(domain.ToastEvent).Toast.Message)
	assert.Equal(t, PhaseIdle, fx.svc.Phase())
}

func TestDraftsClearedAfterEverySave(t *testing.T) {
	batches := map[string]domain.UpdateBatch{
		"empty":    {},
		"one":      {"r1": {domain.FieldName: "Renamed"}},
		"multiple": {"r1": {domain.FieldPrice: 1.0}, "r2": {domain.FieldLength: 30.0, domain.FieldDescription: "x"}},
	}
	for name, batch := range batches {
		for _, failing := range []bool{false, true} {
			t.Run(name, func(t *testing.T) {
				fx := newFixture(loop.Inline{})
				fx.svc.SetFilter("Sailboat")
				g := fx.svc.Grid()
				g.BeginEdit()
				require.NoError(t, g.CommitEdit("Draft"))
				require.True(t, g.HasDrafts())

				if failing {
					fx.data.UpdateErr = errors.New("rejected")
				}
				fx.svc.HandleSave(batch)
				assert.False(t, g.HasDrafts())
			})
		}
	}
}

func TestSaveDraftsSubmitsGridBatch(t *testing.T) {
	fx := newFixture(loop.Inline{})
	fx.svc.SetFilter("Sailboat")
	g := fx.svc.Grid()
	g.MoveColumn(1)
	g.BeginEdit()
	require.NoError(t, g.CommitEdit("33"))

	fx.svc.SaveDrafts()

	updates := fx.data.CallsTo(fake.OpUpdateBoats)
	require.Len(t, updates, 1)
	assert.Equal(t, domain.UpdateBatch{"r1": {domain.FieldLength: 33.0}}, updates[0].Arg)
}

func TestQueryLandingDuringSaveKeepsSaving(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)

	fx.svc.SetFilter("Sailboat")
	fx.svc.HandleSave(domain.UpdateBatch{"r1": {domain.FieldName: "x"}})
	pending := q.Drain()
	require.Len(t, pending, 2)

	run(t, pending, 0)
	assert.Equal(t, PhaseSaving, fx.svc.Phase())
	assert.Len(t, fx.svc.Records(), 2)

	fx.data.UpdateErr = errors.New("rejected")
	run(t, pending, 1)
	assert.Equal(t, PhaseLoaded, fx.svc.Phase())
	assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))
}

func TestOverlappingSavesStayLoadingUntilRefreshLands(t *testing.T) {
	tests := []struct {
		name  string
		order []int // which save settles first
		fail  int   // the save that is rejected
	}{
		{name: "success then failure", order: []int{0, 1}, fail: 1},
		{name: "failure then success", order: []int{1, 0}, fail: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := loop.NewQueue()
			fx := newFixture(q)
			fx.svc.SetFilter("Sailboat")
			q.RunAll(context.Background())
			fx.rec.Reset()

			fx.svc.HandleSave(domain.UpdateBatch{"r1": {domain.FieldPrice: 45000.0}})
			fx.svc.HandleSave(domain.UpdateBatch{"r2": {domain.FieldName: ""}})
			saves := q.Drain()
			require.Len(t, saves, 2)

			for _, i := range tt.order {
				fx.data.UpdateErr = nil
				if i == tt.fail {
					fx.data.UpdateErr = &dataservice.Error{Op: "UpdateBoats", Message: "Validation error"}
				}
				run(t, saves, i)
			}

			// only the refresh of the accepted save is left
			require.Equal(t, 1, q.Len())
			assert.True(t, fx.svc.IsLoading())
			assert.Equal(t, PhaseLoading, fx.svc.Phase())
			assert.Equal(t, []domain.EventType{domain.EventLoading}, loadingTypes(fx.rec))

			q.RunAll(context.Background())
			assert.False(t, fx.svc.IsLoading())
			assert.Equal(t, PhaseLoaded, fx.svc.Phase())
			assert.Equal(t, []domain.EventType{domain.EventLoading, domain.EventDoneLoading}, loadingTypes(fx.rec))

			var variants []domain.ToastVariant
			for _, e := range fx.rec.OfType(domain.EventToast) {
				variants = append(variants, e.(domain.ToastEvent).Toast.Variant)
			}
			assert.ElementsMatch(t, []domain.ToastVariant{domain.ToastError, domain.ToastSuccess}, variants)
		})
	}
}

func TestSupersededRefreshWaitsForNewerQuery(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)
	fx.svc.SetFilter("Sailboat")
	q.RunAll(context.Background())

	done := false
	fx.svc.Refresh(func() { done = true })
	fx.svc.SetFilter("Power")
	pending := q.Drain()
	require.Len(t, pending, 2)

	run(t, pending, 0)
	assert.False(t, done, "stale refresh must wait for the newer query")

	run(t, pending, 1)
	assert.True(t, done)
	assert.Equal(t, []domain.Boat{p1}, fx.svc.Records())
}

func TestSupersededRefreshRunsWhenNewerAlreadyLanded(t *testing.T) {
	q := loop.NewQueue()
	fx := newFixture(q)

	done := false
	fx.svc.Refresh(func() { done = true })
	fx.svc.SetFilter("Power")
	pending := q.Drain()

	run(t, pending, 1)
	assert.True(t, done)
	run(t, pending, 0)
	assert.Equal(t, []domain.Boat{p1}, fx.svc.Records())
}

func TestSelectionPublishesOnChannelOnly(t *testing.T) {
	fx := newFixture(loop.Inline{})
	var got []string
	fx.rec.Subscribe(eventbus.BoatMessageChannel, func(e eventbus.DomainEvent) {
		got = append(got, e.(domain.BoatSelectedEvent).RecordID)
	})

	fx.svc.UpdateSelectedTile("b1")

	assert.Equal(t, []string{"b1"}, got)
	assert.Equal(t, "b1", fx.svc.Selected())
	assert.Equal(t, []domain.EventType{domain.EventBoatSelected}, fx.rec.Types())
	assert.Empty(t, fx.rec.OfType(domain.EventNavigate))
	assert.Empty(t, fx.data.Calls())
}

func TestColumnsSnapshotUnaffectedByRecords(t *testing.T) {
	fx := newFixture(loop.Inline{})
	before := fx.svc.Grid().Columns()
	fx.svc.SetFilter("Sailboat")
	assert.Equal(t, before, fx.svc.Grid().Columns())
}

func ops(calls []fake.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}
