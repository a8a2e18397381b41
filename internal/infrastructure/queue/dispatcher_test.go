package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/talenthub/job-board/internal/core/domain"
)

type captureRecorder struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *captureRecorder) Record(_ context.Context, event domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *captureRecorder) recorded() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}

func TestDispatcher_EventsForOneSubjectStayOrdered(t *testing.T) {
	const perSubject = 20
	subjects := []string{"a@b.test", "c@d.test", "e@f.test"}

	recorder := &captureRecorder{}
	d := NewDispatcher(4, recorder, zerolog.Nop())
	d.Start()

	for i := 0; i < perSubject; i++ {
		for _, subject := range subjects {
			d.Enqueue(domain.AuthEvent{
				Type:     domain.AuthEventLogin,
				Subject:  subject,
				RemoteIP: fmt.Sprintf("10.0.0.%d", i),
			})
		}
	}
	d.Stop()

	seen := make(map[string]int)
	for _, event := range recorder.recorded() {
		i, err := lastOctet(event.RemoteIP)
		if err != nil {
			t.Fatalf("bad marker ip %q: %v", event.RemoteIP, err)
		}
		if i != seen[event.Subject] {
			t.Fatalf("subject %s observed event %d before %d", event.Subject, i, seen[event.Subject])
		}
		seen[event.Subject]++
	}
	for _, subject := range subjects {
		if seen[subject] != perSubject {
			t.Fatalf("subject %s recorded %d of %d events", subject, seen[subject], perSubject)
		}
	}
}

func TestDispatcher_StopDrainsQueuedEvents(t *testing.T) {
	const total = 50

	recorder := &captureRecorder{}
	d := NewDispatcher(2, recorder, zerolog.Nop())

	// Events enqueued before the workers even start must survive shutdown.
	for i := 0; i < total; i++ {
		d.Enqueue(domain.AuthEvent{
			Type:    domain.AuthEventLogout,
			Subject: fmt.Sprintf("user%d@b.test", i),
		})
	}
	d.Start()
	d.Stop()

	if got := len(recorder.recorded()); got != total {
		t.Fatalf("expected all %d queued events recorded after Stop, got %d", total, got)
	}
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &captureRecorder{}, zerolog.Nop())
	first := d.shardIndex("someone@example.test")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("someone@example.test"); got != first {
			t.Fatalf("shard changed between calls: %d then %d", first, got)
		}
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &captureRecorder{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func lastOctet(ip string) (int, error) {
	var a, b, c, d int
	if _, err := fmt.Sscanf(ip, "%d.%d.%d.%d", &a, &b, &c, &d); err != nil {
		return 0, err
	}
	return d, nil
}
