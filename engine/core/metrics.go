package core

import (
	"github.com/spaghettifunk/navview/engine/containers"
)

const AVG_COUNT = 30

// FrameMetrics keeps a rolling average of the frame time and counts frames
// per second.
type FrameMetrics struct {
	frameTimes         *containers.RingQueue[float64]
	msAverage          float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records a frame that took frameElapsedTime seconds.
func (fm *FrameMetrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0

	if fm.frameTimes.IsFull() {
		_, _ = fm.frameTimes.Dequeue()
	}
	_ = fm.frameTimes.Enqueue(frameMS)

	total := 0.0
	for _, ms := range fm.frameTimes.Values() {
		total += ms
	}
	fm.msAverage = total / float64(fm.frameTimes.Len())

	// Calculate frames per second.
	fm.frames++
	fm.accumulatedFrameMS += frameMS
	if fm.accumulatedFrameMS >= 1000 {
		fm.fps = float64(fm.frames)
		fm.accumulatedFrameMS -= 1000
		fm.frames = 0
	}
}

// FPS returns the frames counted during the last full second.
func (fm *FrameMetrics) FPS() float64 {
	return fm.fps
}

// FrameTime returns the average frame time in milliseconds.
func (fm *FrameMetrics) FrameTime() float64 {
	return fm.msAverage
}

func (fm *FrameMetrics) Frame() (float64, float64) {
	return fm.fps, fm.msAverage
}
