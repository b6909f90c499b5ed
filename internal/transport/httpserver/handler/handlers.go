package handler

import (
	"net/http"
	"time"

	categoriesdomain "budgeteer-go/internal/domain/categories"
	historydomain "budgeteer-go/internal/domain/history"
	settingsdomain "budgeteer-go/internal/domain/settings"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"budgeteer-go/internal/events"
	"budgeteer-go/pkg/logger"
)

const defaultMaxRangeDays = 90

type Services struct {
	Transactions *transactionsdomain.Service
	Categories   *categoriesdomain.Service
	History      *historydomain.Service
	Settings     *settingsdomain.Service
}

type Handlers struct {
	Transactions *transactionsdomain.Service
	Categories   *categoriesdomain.Service
	History      *historydomain.Service
	Settings     *settingsdomain.Service
	events       events.Publisher
	maxRangeDays int
	log          logger.Logger
	now          func() time.Time
}

func New(services Services, publisher events.Publisher, maxRangeDays int, log logger.Logger) *Handlers {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if maxRangeDays <= 0 {
		maxRangeDays = defaultMaxRangeDays
	}

	return &Handlers{
		Transactions: services.Transactions,
		Categories:   services.Categories,
		History:      services.History,
		Settings:     services.Settings,
		events:       publisher,
		maxRangeDays: maxRangeDays,
		log:          log,
		now:          time.Now,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
