package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is a *MouseEvent with Button and position set.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is a *MouseEvent with Button and position set.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is a *MouseEvent with the position set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled. Data is a *MouseEvent with Scroll set.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// The config file changed on disk and was parsed again. Data is whatever
	// the config loader produced.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
	Shift   bool
}

type MouseEvent struct {
	Button Button
	PosX   float32
	PosY   float32
	Scroll float32
	Shift  bool
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// FnOnEvent is invoked synchronously by EventFire.
type FnOnEvent func(context EventContext)

type registeredEvent struct {
	handle   uint32
	callback FnOnEvent
}

// State structure.
type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES][]registeredEvent
	nextHandle uint32
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	// Free the events arrays. And objects pointed to should be destroyed on their own.
	for i := range eventState.registered {
		eventState.registered[i] = nil
	}
	return nil
}

// EventRegister adds callback as a listener for code and returns a handle
// that can be passed to EventUnregister. Zero means registration failed.
func EventRegister(code EventCode, callback FnOnEvent) uint32 {
	if eventState == nil || callback == nil || int(code) >= MAX_MESSAGE_CODES {
		return 0
	}
	eventState.nextHandle++
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		handle:   eventState.nextHandle,
		callback: callback,
	})
	return eventState.nextHandle
}

// EventUnregister removes the listener registered under handle for code.
func EventUnregister(code EventCode, handle uint32) bool {
	if eventState == nil || int(code) >= MAX_MESSAGE_CODES {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.handle == handle {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

// EventFire delivers context to every listener of context.Type, in
// registration order. Returns false when nobody is listening.
func EventFire(context EventContext) bool {
	if eventState == nil || int(context.Type) >= MAX_MESSAGE_CODES {
		return false
	}
	// Copy, listeners may unregister themselves while being called.
	events := append([]registeredEvent(nil), eventState.registered[context.Type]...)
	if len(events) == 0 {
		return false
	}
	for _, e := range events {
		e.callback(context)
	}
	return true
}
