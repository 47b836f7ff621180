package ristretto

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	s, err := New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "tok", []byte(`{"principal_id":"p1"}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, ok, err := s.Get(ctx, "tok")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(val) != `{"principal_id":"p1"}` {
		t.Errorf("val = %s", val)
	}

	if err := s.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "tok"); ok {
		t.Error("Get after Delete: still present")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s, err := New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "tok", []byte("x"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, ok, _ := s.Get(ctx, "tok"); ok {
		t.Error("entry survived past TTL")
	}
}

func TestStore_MissingKey(t *testing.T) {
	s, err := New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, ok, _ := s.Get(context.Background(), "nope"); ok {
		t.Error("Get on missing key reported present")
	}
}
