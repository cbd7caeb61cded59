package allocation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rac_reservation/internal/core/allocation"
	"github.com/srgjo27/rac_reservation/internal/core/domain"
)

func class(c domain.BerthClass) *domain.BerthClass {
	return &c
}

func newEngine(t *testing.T, c domain.Capacity) *allocation.Engine {
	t.Helper()
	e, err := allocation.NewEngine(c)
	require.NoError(t, err)
	return e
}

func createAndBook(t *testing.T, e *allocation.Engine, name string, preferred *domain.BerthClass) (domain.Passenger, domain.BookingOutcome) {
	t.Helper()
	p, err := e.CreatePassenger(name, 30)
	require.NoError(t, err)
	out, err := e.Book(p.ID, preferred)
	require.NoError(t, err)
	checkInvariants(t, e)
	return p, out
}

func ids(ps []domain.Passenger) []domain.PassengerID {
	out := make([]domain.PassengerID, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func checkInvariants(t *testing.T, e *allocation.Engine) {
	t.Helper()

	avail := e.Availability()
	tickets := e.Tickets()

	held := make(map[domain.BerthClass]int)
	labels := make(map[domain.BerthClass]map[string]bool)
	seen := make(map[domain.PassengerID]int)
	for _, tk := range tickets {
		held[tk.Class]++
		if labels[tk.Class] == nil {
			labels[tk.Class] = make(map[string]bool)
		}
		assert.False(t, labels[tk.Class][tk.SeatLabel], "duplicate label %s", tk.SeatLabel)
		labels[tk.Class][tk.SeatLabel] = true
		seen[tk.Passenger.ID]++
	}

	for _, ca := range avail.Classes {
		assert.Equal(t, ca.Capacity, held[ca.Class]+ca.Available, "class %s", ca.Class)
		assert.GreaterOrEqual(t, ca.Available, 0)
	}

	rac := e.RACQueue()
	assert.Len(t, rac, held[domain.BerthRAC])
	for _, p := range rac {
		_, status, _ := e.Passenger(p.ID)
		assert.Equal(t, domain.PassengerRACHeld, status)
	}

	for _, p := range e.Waitlist() {
		seen[p.ID]++
		_, status, _ := e.Passenger(p.ID)
		assert.Equal(t, domain.PassengerWaitlisted, status)
	}

	for id, n := range seen {
		assert.Equal(t, 1, n, "passenger %d appears %d times", id, n)
	}
}

func TestBook_PreferredClassGranted(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 2, Upper: 2, Middle: 2, RAC: 1})

	_, out := createAndBook(t, e, "Asha", class(domain.BerthMiddle))

	assert.Equal(t, domain.BookingBerth, out.Kind)
	assert.Equal(t, domain.BerthMiddle, out.Class)
	assert.Equal(t, "M1", out.SeatLabel)
}

func TestBook_NoPreferenceScansLowerFirst(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 1, Middle: 1, RAC: 0})

	_, first := createAndBook(t, e, "A", nil)
	_, second := createAndBook(t, e, "B", nil)
	_, third := createAndBook(t, e, "C", nil)

	assert.Equal(t, "L1", first.SeatLabel)
	assert.Equal(t, "U1", second.SeatLabel)
	assert.Equal(t, "M1", third.SeatLabel)
}

func TestBook_LabelsAreDense(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 3, Upper: 0, Middle: 0, RAC: 2})

	var labels []string
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, out := createAndBook(t, e, name, class(domain.BerthLower))
		labels = append(labels, out.SeatLabel)
	}

	assert.Equal(t, []string{"L1", "L2", "L3", "RAC1", "RAC2"}, labels)
}

func TestBook_FullTrainFallsBackToRACThenWaitlist(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 0, Middle: 0, RAC: 1})

	_, berth := createAndBook(t, e, "A", nil)
	racP, rac := createAndBook(t, e, "B", nil)
	wlP, wl := createAndBook(t, e, "C", class(domain.BerthUpper))

	assert.Equal(t, domain.BookingBerth, berth.Kind)
	assert.Equal(t, domain.BookingRAC, rac.Kind)
	assert.Equal(t, "RAC1", rac.SeatLabel)
	assert.Equal(t, domain.BookingWaitlisted, wl.Kind)
	assert.Empty(t, wl.SeatLabel)

	assert.Equal(t, []domain.PassengerID{racP.ID}, ids(e.RACQueue()))
	assert.Equal(t, []domain.PassengerID{wlP.ID}, ids(e.Waitlist()))
	assert.Len(t, e.Tickets(), 2)
}

func TestBook_Errors(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, RAC: 1})

	_, err := e.Book(42, nil)
	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)

	p, _ := createAndBook(t, e, "A", nil)
	_, err = e.Book(p.ID, nil)
	assert.ErrorIs(t, err, domain.ErrPassengerNotBookable)

	q, err := e.CreatePassenger("B", 20)
	require.NoError(t, err)
	_, err = e.Book(q.ID, class(domain.BerthRAC))
	assert.ErrorIs(t, err, domain.ErrInvalidClassSelector)

	_, status, ok := e.Passenger(q.ID)
	require.True(t, ok)
	assert.Equal(t, domain.PassengerUnbooked, status)
}

func TestNewEngine_RejectsNegativeCapacity(t *testing.T) {
	_, err := allocation.NewEngine(domain.Capacity{Lower: -1})
	assert.Error(t, err)
}

func TestCancel_TwiceIsNotFound(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 1, Middle: 1, RAC: 1})
	p, _ := createAndBook(t, e, "A", nil)

	out, err := e.Cancel(p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CancellationCancelled, out.Kind)

	out, err = e.Cancel(p.ID)
	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)
	assert.Equal(t, domain.CancellationNotFound, out.Kind)
	checkInvariants(t, e)
}

func TestCancel_CancelledPassengerCannotRebook(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1})
	p, _ := createAndBook(t, e, "A", nil)

	_, err := e.Cancel(p.ID)
	require.NoError(t, err)

	_, err = e.Book(p.ID, nil)
	assert.ErrorIs(t, err, domain.ErrPassengerNotBookable)
}

func TestCancel_WaitlistedPassengerIsNotFound(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1})
	createAndBook(t, e, "A", nil)
	wl, out := createAndBook(t, e, "B", nil)
	require.Equal(t, domain.BookingWaitlisted, out.Kind)

	res, err := e.Cancel(wl.ID)

	assert.ErrorIs(t, err, domain.ErrPassengerNotFound)
	assert.Equal(t, domain.CancellationNotFound, res.Kind)
	assert.Equal(t, []domain.PassengerID{wl.ID}, ids(e.Waitlist()))
}

func TestCancel_BerthPromotesRACHeadThenWaitlistHead(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 1, Middle: 0, RAC: 2})

	holder, _ := createAndBook(t, e, "A", class(domain.BerthUpper))
	createAndBook(t, e, "B", nil)
	rac1, _ := createAndBook(t, e, "C", nil)
	rac2, _ := createAndBook(t, e, "D", nil)
	wl1, _ := createAndBook(t, e, "E", nil)
	wl2, _ := createAndBook(t, e, "F", nil)

	out, err := e.Cancel(holder.ID)
	require.NoError(t, err)
	checkInvariants(t, e)

	require.Len(t, out.Promotions, 2)
	assert.Equal(t, rac1.ID, out.Promotions[0].Passenger.ID)
	assert.Equal(t, domain.PassengerRACHeld, out.Promotions[0].From)
	assert.Equal(t, domain.PassengerBerthHeld, out.Promotions[0].To)
	assert.Equal(t, domain.BerthUpper, out.Promotions[0].Class)
	assert.Equal(t, "U1", out.Promotions[0].SeatLabel)

	assert.Equal(t, wl1.ID, out.Promotions[1].Passenger.ID)
	assert.Equal(t, domain.PassengerRACHeld, out.Promotions[1].To)
	assert.Equal(t, "RAC1", out.Promotions[1].SeatLabel)

	assert.Equal(t, []domain.PassengerID{rac2.ID, wl1.ID}, ids(e.RACQueue()))
	assert.Equal(t, []domain.PassengerID{wl2.ID}, ids(e.Waitlist()))
}

func TestCancel_BerthWithNoRACCapacityLeavesWaitlist(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, RAC: 0})
	holder, _ := createAndBook(t, e, "A", nil)
	createAndBook(t, e, "B", nil)

	out, err := e.Cancel(holder.ID)
	require.NoError(t, err)

	assert.Empty(t, out.Promotions)
	assert.Len(t, e.Waitlist(), 1)
	assert.Equal(t, 1, e.Availability().Classes[0].Available)
	checkInvariants(t, e)
}

func TestCancel_RACTicketPromotesWaitlistHead(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, RAC: 1})
	createAndBook(t, e, "A", nil)
	racP, _ := createAndBook(t, e, "B", nil)
	wl1, _ := createAndBook(t, e, "C", nil)
	wl2, _ := createAndBook(t, e, "D", nil)

	out, err := e.Cancel(racP.ID)
	require.NoError(t, err)
	checkInvariants(t, e)

	assert.Equal(t, domain.BerthRAC, out.Ticket.Class)
	require.Len(t, out.Promotions, 1)
	assert.Equal(t, wl1.ID, out.Promotions[0].Passenger.ID)
	assert.Equal(t, "RAC1", out.Promotions[0].SeatLabel)

	assert.Equal(t, []domain.PassengerID{wl1.ID}, ids(e.RACQueue()))
	assert.Equal(t, []domain.PassengerID{wl2.ID}, ids(e.Waitlist()))
	assert.Equal(t, 0, e.Availability().Classes[3].Available)
}

func TestCancel_RACTicketWithEmptyWaitlistFreesSeat(t *testing.T) {
	e := newEngine(t, domain.Capacity{RAC: 1})
	racP, _ := createAndBook(t, e, "A", nil)

	out, err := e.Cancel(racP.ID)
	require.NoError(t, err)

	assert.Empty(t, out.Promotions)
	assert.Empty(t, e.RACQueue())
	assert.Equal(t, 1, e.Availability().Classes[3].Available)
}

func TestScenario_SingleSeatTrain(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 1, Middle: 1, RAC: 1})

	p1, o1 := createAndBook(t, e, "P1", class(domain.BerthLower))
	p2, o2 := createAndBook(t, e, "P2", class(domain.BerthLower))
	p3, o3 := createAndBook(t, e, "P3", class(domain.BerthLower))
	p4, o4 := createAndBook(t, e, "P4", nil)

	assert.Equal(t, "L1", o1.SeatLabel)
	assert.Equal(t, "U1", o2.SeatLabel)
	assert.Equal(t, "M1", o3.SeatLabel)
	assert.Equal(t, domain.BookingRAC, o4.Kind)

	out, err := e.Cancel(p1.ID)
	require.NoError(t, err)
	require.Len(t, out.Promotions, 1)
	assert.Equal(t, p4.ID, out.Promotions[0].Passenger.ID)
	assert.Equal(t, "L1", out.Promotions[0].SeatLabel)
	assert.Empty(t, e.RACQueue())

	out, err = e.Cancel(p4.ID)
	require.NoError(t, err)
	assert.Empty(t, out.Promotions)
	checkInvariants(t, e)

	var holders []domain.PassengerID
	for _, tk := range e.Tickets() {
		holders = append(holders, tk.Passenger.ID)
	}
	assert.Equal(t, []domain.PassengerID{p2.ID, p3.ID}, holders)
}

func TestScenario_SingleSeatTrainWithWaitlist(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, Upper: 1, Middle: 1, RAC: 1})

	p1, _ := createAndBook(t, e, "P1", class(domain.BerthLower))
	createAndBook(t, e, "P2", class(domain.BerthLower))
	createAndBook(t, e, "P3", class(domain.BerthLower))
	p4, _ := createAndBook(t, e, "P4", nil)
	p5, o5 := createAndBook(t, e, "P5", nil)
	require.Equal(t, domain.BookingWaitlisted, o5.Kind)

	out, err := e.Cancel(p1.ID)
	require.NoError(t, err)
	require.Len(t, out.Promotions, 2)
	assert.Equal(t, p4.ID, out.Promotions[0].Passenger.ID)
	assert.Equal(t, p5.ID, out.Promotions[1].Passenger.ID)
	assert.Equal(t, []domain.PassengerID{p5.ID}, ids(e.RACQueue()))
	assert.Empty(t, e.Waitlist())

	out, err = e.Cancel(p4.ID)
	require.NoError(t, err)
	require.Len(t, out.Promotions, 1)
	assert.Equal(t, p5.ID, out.Promotions[0].Passenger.ID)
	assert.Equal(t, "L1", out.Promotions[0].SeatLabel)
	assert.Empty(t, e.RACQueue())
	checkInvariants(t, e)
}

func TestLabelReuseAfterCancellation(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 3})
	a, _ := createAndBook(t, e, "A", nil)
	createAndBook(t, e, "B", nil)

	_, err := e.Cancel(a.ID)
	require.NoError(t, err)

	_, out := createAndBook(t, e, "C", nil)
	assert.Equal(t, "L1", out.SeatLabel)

	_, out = createAndBook(t, e, "D", nil)
	assert.Equal(t, "L3", out.SeatLabel)
}

func TestBerthTicketsExcludeRAC(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 1, RAC: 1})
	createAndBook(t, e, "A", nil)
	createAndBook(t, e, "B", nil)

	assert.Len(t, e.Tickets(), 2)
	berths := e.BerthTickets()
	require.Len(t, berths, 1)
	assert.Equal(t, domain.BerthLower, berths[0].Class)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	e := newEngine(t, domain.Capacity{Lower: 3, Upper: 2, Middle: 2, RAC: 2})
	rng := rand.New(rand.NewSource(7))
	prefs := []*domain.BerthClass{nil, class(domain.BerthLower), class(domain.BerthUpper), class(domain.BerthMiddle)}

	var booked []domain.PassengerID
	for i := 0; i < 500; i++ {
		if len(booked) == 0 || rng.Intn(3) > 0 {
			p, err := e.CreatePassenger("P", 1+rng.Intn(90))
			require.NoError(t, err)
			_, err = e.Book(p.ID, prefs[rng.Intn(len(prefs))])
			require.NoError(t, err)
			booked = append(booked, p.ID)
		} else {
			id := booked[rng.Intn(len(booked))]
			_, _ = e.Cancel(id)
		}
		checkInvariants(t, e)
	}
}
