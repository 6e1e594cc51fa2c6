package session

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreGetReturnsFreshSession(t *testing.T) {
	store := NewMemoryStore()

	s, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ChatID != 42 || s.Step != StepStart {
		t.Errorf("fresh session = %+v", s)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	s := New(42)
	s.Step = StepSelectingService
	s.Role = RoleClient
	if err := store.Put(context.Background(), s); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Step != StepSelectingService || got.Role != RoleClient {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Put(context.Background(), New(42))

	first, _ := store.Get(context.Background(), 42)
	first.Step = StepConfirmingBooking

	second, _ := store.Get(context.Background(), 42)
	if second.Step == StepConfirmingBooking {
		t.Error("mutating a returned session must not leak into the store")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()

	s := New(42)
	s.Step = StepMainMenu
	store.Put(context.Background(), s)
	store.Delete(context.Background(), 42)

	got, _ := store.Get(context.Background(), 42)
	if got.Step != StepStart {
		t.Error("deleted session should come back fresh")
	}
}

func TestChatLocksSerializePerChat(t *testing.T) {
	store := NewMemoryStore()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Lock(42)
			counter++
			store.Unlock(42)
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestChatLocksIndependentChats(t *testing.T) {
	store := NewMemoryStore()

	store.Lock(1)
	done := make(chan struct{})
	go func() {
		store.Lock(2)
		store.Unlock(2)
		close(done)
	}()
	<-done
	store.Unlock(1)
}

func TestResetBookingKeepsIdentity(t *testing.T) {
	s := New(42)
	s.Role = RoleClient
	s.ClientID = 7
	s.ServiceID = 3
	s.Photographer = PhotographerChoice{Kind: ChoiceSpecific, ID: 5}

	s.ResetBooking()

	if s.Role != RoleClient || s.ClientID != 7 {
		t.Error("identity must survive a booking reset")
	}
	if s.ServiceID != 0 || s.Photographer.Kind != ChoiceUnselected {
		t.Error("booking selection must be cleared")
	}
}
