package engine

import "sync/atomic"

// Tokens issues run tokens. The zero value is ready to use and no token is
// current until the first Issue.
type Tokens struct {
	latest atomic.Uint64
}

// Issue makes a new token current and returns it.
func (t *Tokens) Issue() uint64 {
	return t.latest.Add(1)
}

func (t *Tokens) Current() uint64 {
	return t.latest.Load()
}

func (t *Tokens) IsCurrent(tok uint64) bool {
	return t.latest.Load() == tok
}
