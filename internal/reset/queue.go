package reset

import "github.com/pixil98/go-worldcore/internal/world"

// QueueCapacity is how many outcomes a ResultQueue remembers. It covers
// every offset a command may name.
const QueueCapacity = world.MaxConditionalOffset + 1

// ResultQueue is a ring of the most recent command outcomes of one reset
// pass. Commands address it by signed offset:
//
//	 0  always true
//	+k  the outcome of the command k places back
//	-k  the inverse of that outcome
//
// A slot that was never written reads as false, so -k on it reads true.
type ResultQueue struct {
	buf  [QueueCapacity]bool
	head int
	n    int
}

// Push records the outcome of the command just executed.
func (q *ResultQueue) Push(ok bool) {
	q.buf[q.head] = ok
	q.head = (q.head + 1) % QueueCapacity
	if q.n < QueueCapacity {
		q.n++
	}
}

// Test evaluates a conditional offset. Offsets beyond the queue are false.
func (q *ResultQueue) Test(offset int) bool {
	if offset == 0 {
		return true
	}

	k := offset
	if k < 0 {
		k = -k
	}
	if k > QueueCapacity-1 {
		return false
	}

	v := false
	if k <= q.n {
		v = q.buf[(q.head-k+QueueCapacity)%QueueCapacity]
	}
	if offset < 0 {
		return !v
	}
	return v
}

// Len reports how many outcomes are remembered.
func (q *ResultQueue) Len() int {
	return q.n
}
