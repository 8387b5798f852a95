package store

import (
	"errors"
	"fmt"
	"testing"

	"kampung-service-server/models"
)

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("BK-%04d", n)
	}
}

func TestInsertAndGetReturnsCopies(t *testing.T) {
	s := NewBookingStore(sequentialIDs())

	b := models.Booking{ID: s.NextID(), UserID: "user-001", Status: models.BookingStatusPending}
	if _, err := s.Insert(b); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := s.Get(b.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// mutating the returned copy must not touch the store
	got.Status = models.BookingStatusCancelled
	again, _ := s.Get(b.ID)
	if again.Status != models.BookingStatusPending {
		t.Fatalf("store record was mutated through a copy")
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	b := models.Booking{ID: "BK-0001", UserID: "user-001"}
	s.Insert(b)
	if _, err := s.Insert(b); err == nil {
		t.Fatalf("expected duplicate id to be rejected")
	}
}

func TestNextIDSkipsExistingIDs(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	s.Insert(models.Booking{ID: "BK-0001"})

	if id := s.NextID(); id != "BK-0002" {
		t.Fatalf("expected BK-0002, got %s", id)
	}
}

func TestMutateRollsBackOnError(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	s.Insert(models.Booking{ID: "BK-0001", Status: models.BookingStatusPending})

	boom := errors.New("boom")
	_, err := s.Mutate("BK-0001", func(b *models.Booking) error {
		b.Status = models.BookingStatusCompleted
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	got, _ := s.Get("BK-0001")
	if got.Status != models.BookingStatusPending {
		t.Fatalf("expected rollback to pending, got %s", got.Status)
	}
}

func TestMutateUnknownID(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	if _, err := s.Mutate("BK-9999", func(*models.Booking) error { return nil }); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestListByUserMostRecentFirst(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	s.Insert(models.Booking{ID: "BK-0001", UserID: "user-001"})
	s.Insert(models.Booking{ID: "BK-0002", UserID: "user-002"})
	s.Insert(models.Booking{ID: "BK-0003", UserID: "user-001"})

	list := s.ListByUser("user-001")
	if len(list) != 2 || list[0].ID != "BK-0003" || list[1].ID != "BK-0001" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestListByWorker(t *testing.T) {
	s := NewBookingStore(sequentialIDs())
	w1 := "w1"
	s.Insert(models.Booking{ID: "BK-0001", UserID: "user-001"})
	s.Insert(models.Booking{ID: "BK-0002", UserID: "user-001", WorkerID: &w1})

	list := s.ListByWorker("w1")
	if len(list) != 1 || list[0].ID != "BK-0002" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
