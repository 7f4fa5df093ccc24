package repository

import (
	"time"

	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/metrics"
)

const component = "repository"

// publish reports the stored sizes.
func publish(c model.Collections) {
	for _, k := range model.Keys {
		metrics.UpdatePlayersStored(string(k), len(c[k]))
	}
	metrics.UpdateRepositoryRecordsTotal(len(c[model.All]))
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(metrics.Millis(time.Since(start)))
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(metrics.Millis(time.Since(start)))
}

func recordError(kind string) { metrics.RecordErrorByComponent(component, kind) }
