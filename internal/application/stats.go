package application

import (
	"log/slog"

	statisticsDomain "webpconv/internal/domain/statistics"
	"webpconv/internal/session"
	"webpconv/internal/transport"
)

// StatsManager forwards session changes to the frontend and records batch
// totals in the statistics service.
type StatsManager struct {
	emitter transport.EventEmitter
	stats   statisticsDomain.Service
	session *session.Manager
	logger  *slog.Logger
}

func NewStatsManager(emitter transport.EventEmitter, stats statisticsDomain.Service, manager *session.Manager, logger *slog.Logger) *StatsManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsManager{
		emitter: emitter,
		stats:   stats,
		session: manager,
		logger:  logger,
	}
}

func (m *StatsManager) SessionChanged() {
	m.emitter.Emit(EventSessionUpdated, transport.NewSessionView(m.session))
}

func (m *StatsManager) BatchStarted(count int) {
	m.emitter.Emit(EventConversionStarted, map[string]any{"count": count})
}

func (m *StatsManager) BatchFinished(summary session.BatchSummary) {
	if summary.Converted > 0 {
		stats := m.stats.UpdateStats(summary.Converted, summary.OriginalBytes, summary.ConvertedBytes)
		m.emitter.Emit(EventStatsUpdate, transport.NewAppStats(stats))
	}

	m.emitter.Emit(EventConversionFinished, transport.NewConversionResult(summary))
}
