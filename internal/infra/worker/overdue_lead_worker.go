package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// OverdueLeadWorker periodically counts open leads past their expected close
// date and hands the count to Report.
type OverdueLeadWorker struct {
	store        *crm.Store
	tickInterval time.Duration
	now          func() time.Time
	Report       func(n int)
}

const DefaultInterval = time.Hour

func NewOverdueLeadWorker(store *crm.Store, every time.Duration) *OverdueLeadWorker {
	if every <= 0 {
		log.Printf("⚠️ Overdue Lead Worker: intervalo inválido (%s), usando %s", every, DefaultInterval)
		every = DefaultInterval
	}
	return &OverdueLeadWorker{
		store:        store,
		tickInterval: every,
		now:          time.Now,
	}
}

// Start blocks until ctx is cancelled or the store goes away.
func (w *OverdueLeadWorker) Start(ctx context.Context) {
	log.Printf("🕒 Overdue Lead Worker iniciado (a cada %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Overdue Lead Worker encerrado")
			return
		case <-ticker.C:
			if !w.check() {
				log.Println("⚠️ Overdue Lead Worker: store indisponível, encerrando")
				return
			}
		}
	}
}

// check reports the current count. It returns false once the store is gone,
// including when it is closed mid-check.
func (w *OverdueLeadWorker) check() bool {
	var overdue []entity.Lead
	loading := false
	err := crm.Do(w.store, func(st *crm.Store) {
		if loading = st.Loading(); loading {
			return
		}
		overdue = st.OverdueLeads(w.now().Format(entity.DateLayout))
	})
	if err != nil {
		return false
	}
	if loading {
		return true
	}

	if len(overdue) > 0 {
		log.Printf("⏰ %d lead(s) com fechamento previsto vencido", len(overdue))
	}
	if w.Report != nil {
		w.Report(len(overdue))
	}
	return true
}
