package demoserver

import "sync"

// feed fans echoed requests out to websocket subscribers.
type feed struct {
	mu     sync.Mutex
	subs   map[chan EchoRecord]struct{}
	buffer int
}

func newFeed(buffer int) *feed {
	if buffer <= 0 {
		buffer = 1
	}
	return &feed{subs: make(map[chan EchoRecord]struct{}), buffer: buffer}
}

func (f *feed) subscribe() chan EchoRecord {
	ch := make(chan EchoRecord, f.buffer)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *feed) unsubscribe(ch chan EchoRecord) {
	f.mu.Lock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
	f.mu.Unlock()
}

// publish never blocks; a full subscriber queue drops the record.
func (f *feed) publish(rec EchoRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- rec:
		default:
		}
	}
}

func (f *feed) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
