package tick

import "time"

// Governor paces rendering to a target frame rate. It holds the target frame duration and the monotonic time
// the last frame started, and answers "how long until the next frame is
// due" so the tick loop can compute its poll timeout from it.
type Governor struct {
	targetFPS     int
	frameDuration time.Duration
	lastFrameTime time.Time
	frameCount    uint64
	statsStart    time.Time
	statsFrames   uint64
	observedFPS   float64
}

// NewGovernor returns a Governor paced to targetFPS frames per second. A
// non-positive targetFPS is clamped to 1 to avoid a zero frame duration.
func NewGovernor(targetFPS int) *Governor {
	if targetFPS <= 0 {
		targetFPS = 1
	}
	now := time.Now()
	return &Governor{
		targetFPS:     targetFPS,
		frameDuration: time.Second / time.Duration(targetFPS),
		lastFrameTime: now,
		statsStart:    now,
	}
}

// RemainingFrameTime returns max(0, frameDuration - (now - lastFrameTime)).
func (g *Governor) RemainingFrameTime() time.Duration {
	elapsed := time.Since(g.lastFrameTime)
	remaining := g.frameDuration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldRender reports whether a new frame is due: true iff
// RemainingFrameTime() == 0.
func (g *Governor) ShouldRender() bool {
	return g.RemainingFrameTime() == 0
}

// PollTimeout is the value the tick loop should pass to its blocking
// input wait: max(1ms, RemainingFrameTime()), the 1ms floor preventing
// busy-spinning when a frame is already due.
func (g *Governor) PollTimeout() time.Duration {
	remaining := g.RemainingFrameTime()
	if remaining < time.Millisecond {
		return time.Millisecond
	}
	return remaining
}

// StartFrame marks the beginning of a render pass.
func (g *Governor) StartFrame() {
	g.lastFrameTime = time.Now()
}

// EndFrame updates pacing and the rolling FPS statistic, reset once per
// second so ObservedFPS reflects recent behavior rather than a lifetime
// average.
func (g *Governor) EndFrame() {
	g.frameCount++
	g.statsFrames++
	if elapsed := time.Since(g.statsStart); elapsed >= time.Second {
		g.observedFPS = float64(g.statsFrames) / elapsed.Seconds()
		g.statsFrames = 0
		g.statsStart = time.Now()
	}
}

// FrameCount returns the total number of frames rendered since creation.
func (g *Governor) FrameCount() uint64 { return g.frameCount }

// ObservedFPS returns the most recently computed rolling frame rate, 0
// until a full statistics window has elapsed.
func (g *Governor) ObservedFPS() float64 { return g.observedFPS }

// TargetFPS returns the configured target frame rate.
func (g *Governor) TargetFPS() int { return g.targetFPS }
