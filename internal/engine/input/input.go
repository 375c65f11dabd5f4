// Package input turns SDL2 events into application actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventAction
)

// Action is a key-bound command.
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionSelectStar
	ActionToggleTour
	ActionQuit
)

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_LEFT:   ActionPrevious,
	sdl.SCANCODE_A:      ActionPrevious,
	sdl.SCANCODE_RIGHT:  ActionNext,
	sdl.SCANCODE_D:      ActionNext,
	sdl.SCANCODE_HOME:   ActionSelectStar,
	sdl.SCANCODE_T:      ActionToggleTour,
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_Q:      ActionQuit,
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Action Action
	Width  int
	Height int
}

// Translate maps one SDL event. The bool is false for events the
// application ignores.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return Event{}, false
		}
		if a, ok := keyActions[e.Keysym.Scancode]; ok {
			return Event{Type: EventAction, Action: a}, true
		}
	}
	return Event{}, false
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := Translate(event)
		if !ok {
			continue
		}
		if ev.Type == EventQuit {
			quit = true
		}
		i.events = append(i.events, ev)
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
