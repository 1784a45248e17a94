package snapshot

import (
	"context"
	"sync"
)

// ChannelSink hands snapshots to an in-process viewer over a channel. The channel is closed
// right after the terminal snapshot, so a range over Snapshots ends exactly when the run ends.
type ChannelSink struct {
	mu     sync.Mutex
	ch     chan Snapshot
	closed bool
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan Snapshot, buffer)}
}

func (c *ChannelSink) Snapshots() <-chan Snapshot {
	return c.ch
}

func (c *ChannelSink) Publish(ctx context.Context, s Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.ch <- s:
	case <-ctx.Done():
		return ctx.Err()
	}
	if s.Done {
		c.closed = true
		close(c.ch)
	}
	return nil
}

// Close ends the stream without a terminal snapshot, e.g. when the run was aborted.
func (c *ChannelSink) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}
