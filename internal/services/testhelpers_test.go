package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
)

type recordingNotifier struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, _ string, notification models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, notification)
}

func (r *recordingNotifier) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.items...)
}

func (r *recordingNotifier) Last() models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return models.Notification{}
	}
	return r.items[len(r.items)-1]
}

func loadSeed(t *testing.T) *repository.Fixtures {
	t.Helper()
	fixtures, err := repository.LoadFixtures("")
	require.NoError(t, err)
	return fixtures
}

func newSeedCatalog(t *testing.T) *repository.ListingRepository {
	t.Helper()
	catalog, err := repository.NewListingRepository(loadSeed(t).Listings)
	require.NoError(t, err)
	return catalog
}

func instantSimulator() *Simulator {
	return NewSimulator(SimulatorConfig{})
}

func failingSimulator() *Simulator {
	return NewSimulator(SimulatorConfig{FailureRate: 1})
}

var testLogger = zerolog.Nop()
