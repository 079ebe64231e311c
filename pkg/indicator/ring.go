package indicator

// Fixed-capacity rings backing the bounded RSI and price histories.
// Overwrite-oldest on push, O(1), no shifting.

type sampleRing struct {
	buf   []Sample
	head  int // index of oldest element
	count int
}

func newSampleRing(capacity int) *sampleRing {
	return &sampleRing{buf: make([]Sample, capacity)}
}

func (r *sampleRing) push(s Sample) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = s
		r.count++
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
}

func (r *sampleRing) last() (Sample, bool) {
	if r.count == 0 {
		return Sample{}, false
	}
	return r.buf[(r.head+r.count-1)%len(r.buf)], true
}

func (r *sampleRing) len() int {
	return r.count
}

// snapshot returns the retained samples oldest first.
func (r *sampleRing) snapshot() []Sample {
	out := make([]Sample, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *sampleRing) reset() {
	r.head = 0
	r.count = 0
}

type priceRing struct {
	buf   []PricePoint
	head  int
	count int
}

func newPriceRing(capacity int) *priceRing {
	return &priceRing{buf: make([]PricePoint, capacity)}
}

func (r *priceRing) push(p PricePoint) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = p
		r.count++
		return
	}
	r.buf[r.head] = p
	r.head = (r.head + 1) % len(r.buf)
}

func (r *priceRing) len() int {
	return r.count
}

func (r *priceRing) snapshot() []PricePoint {
	out := make([]PricePoint, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *priceRing) reset() {
	r.head = 0
	r.count = 0
}
