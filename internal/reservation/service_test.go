package reservation_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/events"
	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
	"github.com/hoteldesk/hotel-booking-backend/internal/reservation"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

// newBookingService wires a booking engine on in-memory stores with events
// disabled.
func newBookingService(t *testing.T) (reservation.Service, room.Service) {
	t.Helper()
	roomService := room.NewService(room.NewMemoryRepository())
	svc := reservation.NewService(reservation.NewMemoryRepository(), roomService, events.NewPublisher(""))
	return svc, roomService
}

func createRoom(t *testing.T, roomService room.Service, roomType, roomNumber string) *room.Room {
	t.Helper()
	rm, err := roomService.Create(context.Background(), room.CreateRequest{
		RoomType:   roomType,
		RoomNumber: roomNumber,
		PriceCents: 120_00,
	})
	require.NoError(t, err)
	return rm
}

func TestBookOverlapRejection(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Double", "201")

	_, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-a",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-03-10"),
		EndDate:    date(t, "2026-03-15"),
	})
	require.NoError(t, err)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"identical range", "2026-03-10", "2026-03-15"},
		{"partial overlap at start", "2026-03-08", "2026-03-11"},
		{"partial overlap at end", "2026-03-14", "2026-03-18"},
		{"contained within", "2026-03-11", "2026-03-13"},
		{"containing", "2026-03-08", "2026-03-18"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(ctx, reservation.BookRequest{
				CustomerID: "customer-b",
				RoomID:     rm.ID,
				StartDate:  date(t, tc.start),
				EndDate:    date(t, tc.end),
			})
			assert.ErrorIs(t, err, reservation.ErrConflict)
		})
	}
}

func TestBookBackToBackStays(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Double", "202")

	_, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-a",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-03-10"),
		EndDate:    date(t, "2026-03-15"),
	})
	require.NoError(t, err)

	// Checkout day equals the next check-in day; half-open ranges do not
	// overlap there.
	t.Run("new stay starts on checkout day", func(t *testing.T) {
		_, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "customer-b",
			RoomID:     rm.ID,
			StartDate:  date(t, "2026-03-15"),
			EndDate:    date(t, "2026-03-20"),
		})
		assert.NoError(t, err)
	})

	t.Run("new stay ends on check-in day", func(t *testing.T) {
		_, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "customer-c",
			RoomID:     rm.ID,
			StartDate:  date(t, "2026-03-05"),
			EndDate:    date(t, "2026-03-10"),
		})
		assert.NoError(t, err)
	})
}

func TestBookValidation(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Single", "101")

	t.Run("zero-length stay", func(t *testing.T) {
		_, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "customer-a",
			RoomID:     rm.ID,
			StartDate:  date(t, "2026-03-10"),
			EndDate:    date(t, "2026-03-10"),
		})
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "customer-a",
			RoomID:     rm.ID,
			StartDate:  date(t, "2026-03-15"),
			EndDate:    date(t, "2026-03-10"),
		})
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "customer-a",
			RoomID:     "11111111-1111-1111-1111-111111111111",
			StartDate:  date(t, "2026-03-10"),
			EndDate:    date(t, "2026-03-15"),
		})
		assert.ErrorIs(t, err, reservation.ErrRoomNotFound)
	})
}

func TestBookDenormalizesRoomFields(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Suite", "501")

	res, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-a",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-04-01"),
		EndDate:    date(t, "2026-04-03"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, rm.RoomNumber, res.RoomNumber)
	assert.Equal(t, rm.RoomType, res.RoomType)
	assert.Equal(t, rm.PriceCents, res.PriceCents)
	assert.Equal(t, 2, res.Stay.Nights())
}

func TestCancelFreesRoom(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Double", "203")

	res, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-a",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-03-10"),
		EndDate:    date(t, "2026-03-15"),
	})
	require.NoError(t, err)

	// Occupied while the reservation stands.
	_, err = svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-b",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-03-12"),
		EndDate:    date(t, "2026-03-14"),
	})
	require.ErrorIs(t, err, reservation.ErrConflict)

	require.NoError(t, svc.Cancel(ctx, res.ID, "customer-a", false))

	// Free again after cancellation.
	_, err = svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-b",
		RoomID:     rm.ID,
		StartDate:  date(t, "2026-03-12"),
		EndDate:    date(t, "2026-03-14"),
	})
	assert.NoError(t, err)

	// A second cancel of the same reservation reports not found.
	err = svc.Cancel(ctx, res.ID, "customer-a", false)
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

func TestCancelAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Double", "204")

	book := func(t *testing.T) *reservation.Reservation {
		res, err := svc.Book(ctx, reservation.BookRequest{
			CustomerID: "owner",
			RoomID:     rm.ID,
			StartDate:  date(t, "2026-05-01"),
			EndDate:    date(t, "2026-05-05"),
		})
		require.NoError(t, err)
		return res
	}

	t.Run("stranger is denied", func(t *testing.T) {
		res := book(t)
		err := svc.Cancel(ctx, res.ID, "stranger", false)
		assert.ErrorIs(t, err, reservation.ErrPermissionDenied)
		require.NoError(t, svc.Cancel(ctx, res.ID, "owner", false))
	})

	t.Run("owner may cancel", func(t *testing.T) {
		res := book(t)
		assert.NoError(t, svc.Cancel(ctx, res.ID, "owner", false))
	})

	t.Run("admin may cancel any", func(t *testing.T) {
		res := book(t)
		assert.NoError(t, svc.Cancel(ctx, res.ID, "someone-else", true))
	})
}

func TestSearchAvailability(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)

	d1 := createRoom(t, roomService, "Double", "301")
	d2 := createRoom(t, roomService, "Double", "302")
	createRoom(t, roomService, "Suite", "601")

	_, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "customer-a",
		RoomID:     d1.ID,
		StartDate:  date(t, "2026-06-10"),
		EndDate:    date(t, "2026-06-15"),
	})
	require.NoError(t, err)

	t.Run("only free rooms of the exact type", func(t *testing.T) {
		available, err := svc.SearchAvailability(ctx, "Double", date(t, "2026-06-12"), date(t, "2026-06-14"))
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, d2.ID, available[0].RoomID)
		assert.Equal(t, "302", available[0].RoomNumber)
	})

	t.Run("booked room reappears outside its stay", func(t *testing.T) {
		available, err := svc.SearchAvailability(ctx, "Double", date(t, "2026-06-15"), date(t, "2026-06-18"))
		require.NoError(t, err)
		assert.Len(t, available, 2)
	})

	t.Run("type match is exact", func(t *testing.T) {
		available, err := svc.SearchAvailability(ctx, "double", date(t, "2026-06-12"), date(t, "2026-06-14"))
		require.NoError(t, err)
		assert.Empty(t, available)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := svc.SearchAvailability(ctx, "Double", date(t, "2026-06-14"), date(t, "2026-06-12"))
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm := createRoom(t, roomService, "Double", "401")

	const attempts = 50

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Book(ctx, reservation.BookRequest{
				CustomerID: fmt.Sprintf("customer-%d", i),
				RoomID:     rm.ID,
				StartDate:  date(t, "2026-07-01"),
				EndDate:    date(t, "2026-07-05"),
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, reservation.ErrConflict):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won, "exactly one booking attempt must win")
	assert.Equal(t, attempts-1, lost)
}

func TestConcurrentBookingNoOverlapInvariant(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)

	rooms := []*room.Room{
		createRoom(t, roomService, "Double", "701"),
		createRoom(t, roomService, "Double", "702"),
		createRoom(t, roomService, "Suite", "703"),
	}

	base := date(t, "2026-08-01")
	rng := rand.New(rand.NewSource(42))

	type attempt struct {
		roomID string
		start  time.Time
		end    time.Time
	}

	attempts := make([]attempt, 200)
	for i := range attempts {
		offset := rng.Intn(30)
		nights := 1 + rng.Intn(7)
		attempts[i] = attempt{
			roomID: rooms[rng.Intn(len(rooms))].ID,
			start:  base.AddDate(0, 0, offset),
			end:    base.AddDate(0, 0, offset+nights),
		}
	}

	var wg sync.WaitGroup
	for i, a := range attempts {
		wg.Add(1)
		go func(i int, a attempt) {
			defer wg.Done()
			_, err := svc.Book(ctx, reservation.BookRequest{
				CustomerID: fmt.Sprintf("customer-%d", i),
				RoomID:     a.roomID,
				StartDate:  a.start,
				EndDate:    a.end,
			})
			if err != nil && !errors.Is(err, reservation.ErrConflict) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i, a)
	}
	wg.Wait()

	// Whatever won, no room may hold two overlapping stays.
	all, _, err := svc.List(ctx, reservation.Filter{PageSize: 1000})
	require.NoError(t, err)
	require.NotEmpty(t, all)

	byRoom := make(map[string][]interval.Range)
	for _, res := range all {
		byRoom[res.RoomID] = append(byRoom[res.RoomID], res.Stay)
	}
	for roomID, stays := range byRoom {
		for i := 0; i < len(stays); i++ {
			for j := i + 1; j < len(stays); j++ {
				assert.False(t, stays[i].Overlaps(stays[j]),
					"room %s holds overlapping stays %s and %s", roomID, stays[i], stays[j])
			}
		}
	}
}

func TestListMineAndFilter(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newBookingService(t)
	rm1 := createRoom(t, roomService, "Double", "801")
	rm2 := createRoom(t, roomService, "Double", "802")

	_, err := svc.Book(ctx, reservation.BookRequest{
		CustomerID: "alice", RoomID: rm1.ID,
		StartDate: date(t, "2026-09-01"), EndDate: date(t, "2026-09-03"),
	})
	require.NoError(t, err)
	_, err = svc.Book(ctx, reservation.BookRequest{
		CustomerID: "bob", RoomID: rm2.ID,
		StartDate: date(t, "2026-09-01"), EndDate: date(t, "2026-09-03"),
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, rm1.ID, mine[0].RoomID)

	byRoom, total, err := svc.List(ctx, reservation.Filter{RoomID: rm2.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byRoom, 1)
	assert.Equal(t, "bob", byRoom[0].CustomerID)
}
