package tick

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
)

type stubResizeSource struct{ size geometry.Size }

func (s stubResizeSource) UpdateSize() geometry.Size { return s.size }

func TestLoopStopsWhenOnEventReturnsFalse(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(geometry.Size{Width: 10, Height: 3}, 60, &out, stubResizeSource{geometry.Size{Width: 10, Height: 3}})

	events := make(chan input.Event, 1)
	events <- input.Event{Kind: input.KindQuit}

	loop.OnEvent = func(ev input.Event) bool {
		return ev.Kind != input.KindQuit
	}

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background(), events) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after OnEvent returned false")
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(geometry.Size{Width: 10, Height: 3}, 60, &out, stubResizeSource{geometry.Size{Width: 10, Height: 3}})
	loop.OnEvent = func(input.Event) bool { return true }

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan input.Event)

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, events) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on context cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after context cancellation")
	}
}

func TestLoopConvertsHandlerPanicToError(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(geometry.Size{Width: 4, Height: 1}, 60, &out, stubResizeSource{geometry.Size{Width: 4, Height: 1}})
	loop.OnEvent = func(input.Event) bool { panic("boom") }

	events := make(chan input.Event, 1)
	events <- input.Event{Kind: input.KindKey, Key: input.KeyEnter}

	err := loop.Run(context.Background(), events)
	var he *HandlerError
	if !errors.As(err, &he) {
		t.Fatalf("expected HandlerError, got %v", err)
	}
	if he.Recovered != "boom" {
		t.Errorf("expected recovered value %q, got %v", "boom", he.Recovered)
	}
}

func TestLoopRendersAtLeastOnceWhenFrameDue(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(geometry.Size{Width: 4, Height: 1}, 1000, &out, stubResizeSource{geometry.Size{Width: 4, Height: 1}})

	loop.OnRender = func(back *buffer.Buffer) {
		back.SetString(0, 0, "hi", back.Get(0, 0).Style, "")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	events := make(chan input.Event)

	if err := loop.Run(ctx, events); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if out.Len() == 0 {
		t.Errorf("expected at least one frame written to out")
	}
}
