// Implements the TenantQueue, which holds a tenant's pending tasks.
// Tasks are enqueued on arrival and dispatched oldest-first.

package sim

import (
	"fmt"
	"strings"
)

// TenantQueue represents a FIFO queue of a single tenant's pending tasks.
// In the count profile only the depth is meaningful; in the timestamped
// profile each entry is the logical tick at which the task arrived.
type TenantQueue struct {
	queue []int64 // FIFO arrival ticks, oldest first
}

// Enqueue adds n tasks that arrived at tick to the back of the queue.
func (tq *TenantQueue) Enqueue(tick int64, n int) {
	if n < 0 {
		panic(fmt.Sprintf("Enqueue: negative task count %d", n))
	}
	for i := 0; i < n; i++ {
		tq.queue = append(tq.queue, tick)
	}
}

func (tq *TenantQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range tq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(tq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of pending tasks.
func (tq *TenantQueue) Len() int {
	return len(tq.queue)
}

// Oldest returns the arrival tick of the task at the front of the queue.
// Returns false if the queue is empty.
func (tq *TenantQueue) Oldest() (int64, bool) {
	if len(tq.queue) == 0 {
		return 0, false
	}
	return tq.queue[0], true
}

// Span returns the tick distance between the newest and oldest pending task.
// Zero for an empty or single-entry queue.
func (tq *TenantQueue) Span() int64 {
	if len(tq.queue) < 2 {
		return 0
	}
	return tq.queue[len(tq.queue)-1] - tq.queue[0]
}

// Dequeue removes the task at the front of the queue and returns its arrival tick.
// Returns false if the queue is empty.
func (tq *TenantQueue) Dequeue() (int64, bool) {
	if len(tq.queue) == 0 {
		return 0, false
	}
	tick := tq.queue[0]
	tq.queue = tq.queue[1:]
	return tick, true
}

// Clear drops every pending task.
func (tq *TenantQueue) Clear() {
	tq.queue = tq.queue[:0]
}
