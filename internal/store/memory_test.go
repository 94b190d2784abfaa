package store

import (
	"context"
	"testing"

	"github.com/nagare-games/wordstrike/internal/game"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s := &Session{ID: NewID(), Round: game.NewRound(game.DefaultConfig(), nil, nil)}
	if s.ID == "" {
		t.Fatal("expected a generated session ID")
	}
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := m.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("get: %v, %v", got, err)
	}
	if _, err := m.Get(ctx, "nonexistent"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	m.Delete(ctx, s.ID)
	if _, err := m.Get(ctx, s.ID); err != ErrNotFound {
		t.Fatal("expected session gone after delete")
	}
	m.Delete(ctx, s.ID) // no-op
}

func TestTakeInputClearsEdgesKeepsLevel(t *testing.T) {
	s := &Session{}
	s.Pending = game.Input{Up: true, Accelerate: true}

	in := s.TakeInput()
	if !in.Up || !in.Accelerate {
		t.Fatalf("first sample: %+v", in)
	}
	in = s.TakeInput()
	if in.Up || in.Down {
		t.Fatal("row-change edges must be consumed by sampling")
	}
	if !in.Accelerate {
		t.Fatal("accelerate is level-triggered and must persist until released")
	}
}
