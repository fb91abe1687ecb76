package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriscan/platform/internal/core/ports"
)

type recordingAssessor struct {
	mu        sync.Mutex
	processed []string
	done      chan struct{}
	want      int
}

func newRecordingAssessor(want int) *recordingAssessor {
	return &recordingAssessor{done: make(chan struct{}), want: want}
}

func (r *recordingAssessor) Process(_ context.Context, in ports.AssessmentInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, in.ReportID)
	if len(r.processed) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_ProcessesAllJobs(t *testing.T) {
	assessor := newRecordingAssessor(20)
	d := NewDispatcher(4, assessor, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		d.Enqueue(ports.AssessmentInput{ReportID: fmt.Sprintf("r%d", i)})
	}

	select {
	case <-assessor.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out: processed %d of 20", len(assessor.processed))
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingAssessor(0), zerolog.Nop())

	for _, id := range []string{"r1", "r2", "abc", ""} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shardIndex(%q) not stable: %d then %d", id, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shardIndex(%q) out of range: %d", id, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingAssessor(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
