package tetris

import "time"

// Speed maps a score to the gravity delay: the delay starts at Max, shrinks
// by Step per point and never drops below Min.
type Speed struct {
	Min  time.Duration
	Max  time.Duration
	Step time.Duration
}

var DefaultSpeed = Speed{
	Min:  75 * time.Millisecond,
	Max:  1000 * time.Millisecond,
	Step: 25 * time.Millisecond,
}

// Delay returns the time to wait before the next gravity tick at score.
func (s Speed) Delay(score int) time.Duration {
	if score < 0 {
		score = 0
	}
	d := s.Max - time.Duration(score)*s.Step
	if d < s.Min {
		return s.Min
	}
	return d
}
