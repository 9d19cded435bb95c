package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRegisterFireUnregister(t *testing.T) {
	require.True(t, EventSystemInitialize())
	defer EventSystemShutdown()

	var got []EventCode
	h1 := EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) { got = append(got, ctx.Type) })
	h2 := EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) {
		se, ok := ctx.Data.(*SystemEvent)
		require.True(t, ok)
		assert.Equal(t, uint32(640), se.WindowWidth)
	})
	require.NotZero(t, h1)
	require.NotEqual(t, h1, h2)

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480}}))
	assert.Equal(t, []EventCode{EVENT_CODE_RESIZED}, got)

	assert.True(t, EventUnregister(EVENT_CODE_RESIZED, h1))
	assert.False(t, EventUnregister(EVENT_CODE_RESIZED, h1))
	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 640}}))
	assert.Len(t, got, 1)

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL}))
}

func TestInputKeyAndButtonEvents(t *testing.T) {
	require.True(t, EventSystemInitialize())
	defer EventSystemShutdown()
	require.NoError(t, InputInitialize())
	defer InputShutdown()

	var keys []*KeyEvent
	var buttons []*MouseEvent
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) { keys = append(keys, ctx.Data.(*KeyEvent)) })
	EventRegister(EVENT_CODE_BUTTON_PRESSED, func(ctx EventContext) { buttons = append(buttons, ctx.Data.(*MouseEvent)) })

	require.NoError(t, InputProcessKey(KEY_LSHIFT, true))
	require.NoError(t, InputProcessKey(KEY_LSHIFT, true)) // no state change, no event
	require.NoError(t, InputProcessMouseMove(120, 45))
	require.NoError(t, InputProcessButton(BUTTON_LEFT, true))

	require.Len(t, keys, 1)
	assert.Equal(t, KEY_LSHIFT, keys[0].KeyCode)
	require.Len(t, buttons, 1)
	assert.Equal(t, BUTTON_LEFT, buttons[0].Button)
	assert.Equal(t, float32(120), buttons[0].PosX)
	assert.Equal(t, float32(45), buttons[0].PosY)
	assert.True(t, buttons[0].Shift)

	assert.True(t, InputIsKeyDown(KEY_LSHIFT))
	assert.False(t, InputWasKeyDown(KEY_LSHIFT))
	require.NoError(t, InputUpdate(0))
	assert.True(t, InputWasKeyDown(KEY_LSHIFT))
	assert.True(t, InputWasButtonDown(BUTTON_LEFT))

	require.NoError(t, InputProcessKey(KEY_LSHIFT, false))
	require.NoError(t, InputProcessButton(BUTTON_LEFT, false))
	assert.False(t, InputIsShiftDown())
	assert.True(t, InputIsButtonUp(BUTTON_LEFT))
}

func TestIdentifierPool(t *testing.T) {
	p := NewIdentifierPool(2)
	a := p.Acquire("a")
	b := p.Acquire("b")
	c := p.Acquire("c")
	assert.Equal(t, []uint32{0, 1, 2}, []uint32{a, b, c})
	assert.Equal(t, 3, p.InUse())

	require.NoError(t, p.Release(b))
	assert.Error(t, p.Release(b))
	assert.Error(t, p.Release(42))
	assert.Nil(t, p.Owner(b))

	// freed slots are reused first
	assert.Equal(t, b, p.Acquire("d"))
	assert.Equal(t, "d", p.Owner(b))
}

func TestFrameMetrics(t *testing.T) {
	fm := NewFrameMetrics()
	for i := 0; i < 100; i++ {
		fm.Update(0.010)
	}
	assert.InDelta(t, 10.0, fm.FrameTime(), 1e-9)
	assert.InDelta(t, 100.0, fm.FPS(), 1.0)

	// only the last AVG_COUNT frames count towards the average
	for i := 0; i < AVG_COUNT; i++ {
		fm.Update(0.020)
	}
	fps, avg := fm.Frame()
	assert.InDelta(t, 20.0, avg, 1e-9)
	assert.Greater(t, fps, 0.0)
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Zero(t, c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	first := c.Elapsed()
	assert.Greater(t, first, 0.0)

	c.Stop()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	assert.Equal(t, first, c.Elapsed())
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("debug")

	SetLogLevel("WARN")
	assert.Equal(t, "warn", GetLogLevel())

	SetLogLevel("nonsense")
	assert.Equal(t, "info", GetLogLevel())
}
