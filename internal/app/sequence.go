package app

import (
	"sync"
	"sync/atomic"
)

// sequencer hands out supersession tokens scoped to one client key. Each key
// owns an independent counter, so operations from different clients never
// supersede each other; only a newer operation under the same key does.
// Counters are never removed: one word per client that ever searched.
type sequencer struct {
	seqs sync.Map // client key -> *atomic.Uint64
}

// begin issues the next token for the client and returns the counter so the
// caller can check staleness as stages complete.
func (s *sequencer) begin(client string) (*atomic.Uint64, uint64) {
	c, ok := s.seqs.Load(client)
	if !ok {
		c, _ = s.seqs.LoadOrStore(client, new(atomic.Uint64))
	}
	ctr := c.(*atomic.Uint64)
	return ctr, ctr.Add(1)
}
