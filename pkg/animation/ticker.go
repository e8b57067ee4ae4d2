// Package animation provides the timing primitives that drive the clock's
// continuous second-hand sweep.
//
// # Core Components
//
//   - [AnimationController]: drives a value from LowerBound to UpperBound
//     once per Duration, forever ([AnimationController.Repeat]).
//
//   - [Tween]: maps the controller's 0-1 value onto another range, such as
//     0-360 degrees.
//
//   - [Ticker]: the frame callback primitive. Tickers do nothing on their own;
//     the owner of the frame loop calls [StepTickers] once per frame.
//
// # Basic Usage
//
//	sweep := animation.NewAnimationController(time.Second)
//	sweep.Repeat()
//	degrees := animation.TweenFloat64(0, 360)
//
//	// each frame
//	animation.StepTickers()
//	angle := degrees.Evaluate(sweep.Value)
//
//	// on teardown
//	sweep.Dispose()
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [AnimationController].
// Most code should use AnimationController directly rather than Ticker.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker. Elapsed time is measured from this call.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// StepTickers advances all active tickers.
// This should be called once per frame by whoever owns the frame loop.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start or stop tickers.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	now := Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}
