package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/loop"
)

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	s := NewServer(Options{MaxSessions: 4})
	a, err := s.Register(context.Background(), "ann")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	b, err := s.Register(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("IDs %q and %q should be distinct and non-empty", a.ID, b.ID)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestRegisterRejectsWhenFull(t *testing.T) {
	s := NewServer(Options{MaxSessions: 1})
	h, err := s.Register(context.Background(), "ann")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(context.Background(), "bob"); !errors.Is(err, ErrServerFull) {
		t.Fatalf("second Register = %v, want ErrServerFull", err)
	}

	s.Unregister(h, loop.Result{})
	if _, err := s.Register(context.Background(), "bob"); err != nil {
		t.Fatalf("Register after Unregister: %v", err)
	}
}

func TestUnregisterCancelsAndRecords(t *testing.T) {
	s := NewServer(Options{})
	a, _ := s.Register(context.Background(), "ann")
	b, _ := s.Register(context.Background(), "bob")

	s.Unregister(a, loop.Result{Score: 40, Reason: loop.EndGameOver})
	s.Unregister(b, loop.Result{Score: 70, Reason: loop.EndQuit})
	s.Unregister(b, loop.Result{Score: 900})

	if a.Context().Err() == nil {
		t.Fatal("unregistered handle context not cancelled")
	}
	st := s.Stats()
	if st.Active != 0 || st.Finished != 2 || st.BestScore != 70 || st.BestName != "bob" {
		t.Fatalf("Stats() = %+v", st)
	}
}

func TestHandleContextFollowsParent(t *testing.T) {
	s := NewServer(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	h, _ := s.Register(ctx, "ann")
	cancel()
	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("handle context not cancelled with parent")
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(Options{})
	h, _ := s.Register(context.Background(), "ann")

	go func() {
		<-h.ShuttingDown()
		s.Unregister(h, loop.Result{})
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the session left")
	}
	if h.Context().Err() == nil {
		t.Fatal("handle context still live")
	}
	if _, err := s.Register(context.Background(), "bob"); !errors.Is(err, ErrShuttingDown) {
		t.Fatalf("Register during shutdown = %v, want ErrShuttingDown", err)
	}
}

func TestShutdownCancelsStragglers(t *testing.T) {
	s := NewServer(Options{})
	h, _ := s.Register(context.Background(), "ann")

	s.Shutdown(20 * time.Millisecond)

	if h.Context().Err() == nil {
		t.Fatal("straggler context not cancelled after grace")
	}
	select {
	case <-h.ShuttingDown():
	default:
		t.Fatal("shutdown channel not closed")
	}
}
