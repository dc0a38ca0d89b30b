package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"licoreria-api/internal/infra"
	"licoreria-api/internal/usecase/commands"

	"github.com/google/uuid"
)

const (
	queueSize    = 256
	writeTimeout = 5 * time.Second
)

type entry struct {
	actorID uuid.UUID
	action  string
	module  string
	details []byte
}

// Recorder appends operation records to audit_logs from a background
// worker. Record never blocks the calling command: when the queue is full
// the entry is dropped with a warning rather than slowing the write path.
type Recorder struct {
	db    infra.DBTX
	queue chan entry
	wg    sync.WaitGroup
	once  sync.Once
}

func NewRecorder(db infra.DBTX) *Recorder {
	r := &Recorder{
		db:    db,
		queue: make(chan entry, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

var _ commands.AuditRecorder = (*Recorder)(nil)

func (r *Recorder) Record(_ context.Context, actorID uuid.UUID, action, module string, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		slog.Warn("audit details not serializable", "action", action, "error", err.Error())
		payload = []byte("{}")
	}

	select {
	case r.queue <- entry{actorID: actorID, action: action, module: module, details: payload}:
	default:
		slog.Warn("audit queue full, dropping record", "action", action, "module", module)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for e := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		_, err := r.db.Exec(ctx, `
			INSERT INTO audit_logs (actor_id, action, module, details)
			VALUES ($1, $2, $3, $4)`,
			e.actorID, e.action, e.module, e.details,
		)
		cancel()
		if err != nil {
			slog.Warn("failed to write audit record", "action", e.action, "error", err.Error())
		}
	}
}

// Close drains the queue and stops the worker.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	r.wg.Wait()
}
