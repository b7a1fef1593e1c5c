// Package worker hosts the background persistence subscriber. Persistence
// is a side effect of committed mutations, not an inline call at every
// mutation site: the store stays authoritative in memory and a gateway
// outage never blocks or fails a sale.
package worker

import (
	"context"
	"time"

	"shoetrack/internal/persist"
	"shoetrack/internal/store"
	"shoetrack/internal/util"

	"go.uber.org/zap"
)

// PersistenceWorker saves the touched blob after every store mutation
type PersistenceWorker struct {
	store     *store.Store
	gateway   persist.Gateway
	mutations <-chan store.Mutation
	logger    *zap.Logger
}

// NewPersistenceWorker subscribes to the store's mutation feed
func NewPersistenceWorker(st *store.Store, gateway persist.Gateway) *PersistenceWorker {
	return &PersistenceWorker{
		store:     st,
		gateway:   gateway,
		mutations: st.Subscribe(),
		logger:    util.GetLogger(),
	}
}

// Start consumes mutations until the context is cancelled
func (w *PersistenceWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting persistence worker")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Persistence worker stopping")
			return ctx.Err()
		case m := <-w.mutations:
			w.save(ctx, m.Scope)
		}
	}
}

// SaveAll rewrites every blob; used at shutdown to flush any mutation
// whose notification was dropped
func (w *PersistenceWorker) SaveAll(ctx context.Context) {
	w.save(ctx, store.ScopeCatalog)
	w.save(ctx, store.ScopeLedger)
	w.save(ctx, store.ScopeSettings)
}

func (w *PersistenceWorker) save(ctx context.Context, scope store.Scope) {
	// detach from the worker context so an in-flight save completes
	// during graceful shutdown
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	var err error
	switch scope {
	case store.ScopeCatalog:
		err = w.gateway.SaveCatalog(saveCtx, w.store.Products())
	case store.ScopeLedger:
		err = w.gateway.SaveLedger(saveCtx, w.store.Sales())
	case store.ScopeSettings:
		err = w.gateway.SaveSettings(saveCtx, w.store.Settings())
	}

	if err != nil {
		util.PersistenceSavesTotal.WithLabelValues(string(scope), "error").Inc()
		w.logger.Error("Failed to persist blob",
			zap.String("scope", string(scope)),
			zap.Error(err))
		return
	}
	util.PersistenceSavesTotal.WithLabelValues(string(scope), "ok").Inc()
}
