package engine

import "time"

// Pacer spaces out the steps of a run and reports whether it may continue.
type Pacer struct {
	tokens       *Tokens
	settings     *Settings
	PollInterval time.Duration
	sleep        func(time.Duration)
}

func NewPacer(tokens *Tokens, settings *Settings) *Pacer {
	return &Pacer{
		tokens:       tokens,
		settings:     settings,
		PollInterval: DefaultPollInterval,
		sleep:        time.Sleep,
	}
}

// AwaitStep blocks while playback is paused, then for the configured delay.
// It returns false as soon as tok is observed to be superseded.
//
// The delay is read once per call, so a speed change applies from the next
// step on.
func (p *Pacer) AwaitStep(tok uint64) bool {
	for p.settings.Paused() {
		if !p.tokens.IsCurrent(tok) {
			return false
		}
		p.sleep(p.PollInterval)
	}
	if !p.tokens.IsCurrent(tok) {
		return false
	}
	p.sleep(p.settings.Delay())
	return p.tokens.IsCurrent(tok)
}
