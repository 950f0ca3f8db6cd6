// Package engine implements the publication and engagement rules of the
// platform: chapter/story publication transitions, denormalized counter
// maintenance, per-user reaction and view idempotency, the follow graph
// and notification fan-out.
package engine

import (
	"log"
	"os"

	"storyloom.com/storyloom/store"
)

type Engine struct {
	st       store.Store
	ledger   Ledger
	notifier *Notifier
	log      *log.Logger
}

// New wires an Engine over a store. pusher may be nil, in which case
// notifications are row-only with no device push.
func New(st store.Store, pusher Pusher, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stdout, "[engine] ", log.LstdFlags)
	}
	return &Engine{
		st:       st,
		ledger:   Ledger{st: st},
		notifier: newNotifier(st, pusher, logger),
		log:      logger,
	}
}
