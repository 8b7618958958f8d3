package mapview

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Surface lifecycle errors. Graphics loss is terminal until the user retries;
// layout readiness is recoverable (a window resize usually fixes it); a
// failed background load is non-fatal and only surfaces as a banner.
var (
	ErrGraphicsUnavailable = errors.New("mapview: graphics context unavailable")
	ErrLayoutNotReady      = errors.New("mapview: layout has zero dimensions")
	ErrSetupCancelled      = errors.New("mapview: setup cancelled")
)

// readyStatus is the typed outcome of a bounded readiness wait.
type readyStatus uint8

const (
	statusReady readyStatus = iota
	statusTimeout
	statusCancelled
)

// retryPolicy is a bounded poll: at most Attempts checks, Interval apart,
// each interval stretched by Backoff. It replaces ad hoc frame-counted loops
// so a dead host fails fast instead of hanging.
type retryPolicy struct {
	Attempts int
	Interval time.Duration
	Backoff  float64 // multiplier applied to the interval after each attempt
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{Attempts: 30, Interval: 50 * time.Millisecond, Backoff: 1.2}
}

// await polls check until it passes, the attempt budget runs out, or the
// cancelled flag flips. The flag is read between attempts only; cancellation
// is cooperative, never preemptive.
func (p retryPolicy) await(cancelled *bool, check func() bool) readyStatus {
	interval := p.Interval
	for i := 0; i < p.Attempts; i++ {
		if cancelled != nil && *cancelled {
			return statusCancelled
		}
		if check() {
			return statusReady
		}
		time.Sleep(interval)
		if p.Backoff > 1 {
			interval = time.Duration(float64(interval) * p.Backoff)
		}
	}
	if cancelled != nil && *cancelled {
		return statusCancelled
	}
	return statusTimeout
}

// loadBackground reads the map background image from disk. Failure is
// non-fatal for the surface; callers log it and show the banner.
func loadBackground(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, nil
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load background %q: %w", path, err)
	}
	return img, nil
}
