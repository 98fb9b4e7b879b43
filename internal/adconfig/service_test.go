package adconfig

import (
	"errors"
	"testing"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	payload []byte
	saveErr error
	saves   int
}

func (r *memoryRepo) Load() ([]byte, error) {
	if r.payload == nil {
		return nil, ErrNotFound
	}
	return r.payload, nil
}

func (r *memoryRepo) Save(payload []byte) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.payload = append([]byte(nil), payload...)
	return nil
}

type countingActivator struct {
	calls       int
	publisherID string
}

func (a *countingActivator) Activate(publisherID string) {
	a.calls++
	a.publisherID = publisherID
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.NewCLI("adconfig-test")
	require.NoError(t, err)
	return logger
}

func withPublisher(id string) Settings {
	settings := DefaultSettings()
	settings.PublisherID = id
	return settings
}

func TestLoadInitialMissingBlobKeepsDefaults(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil, testLogger(t))
	svc.LoadInitial()
	require.Equal(t, DefaultSettings(), svc.Settings())
}

func TestLoadInitialMalformedBlobKeepsDefaults(t *testing.T) {
	repo := &memoryRepo{payload: []byte("{broken")}
	svc := NewService(repo, nil, testLogger(t))
	svc.LoadInitial()
	require.Equal(t, DefaultSettings(), svc.Settings())
}

func TestLoadInitialMergesStoredState(t *testing.T) {
	repo := &memoryRepo{payload: []byte(`{"publisherId": "ca-pub-9"}`)}
	activator := &countingActivator{}
	svc := NewService(repo, activator, testLogger(t))
	svc.LoadInitial()

	require.Equal(t, "ca-pub-9", svc.Settings().PublisherID)
	require.Equal(t, 1, activator.calls)
	require.Equal(t, "ca-pub-9", activator.publisherID)
}

func TestUpdatePersistsAndNotifies(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil, testLogger(t))

	var seen []string
	svc.Subscribe(func(s Settings) { seen = append(seen, s.PublisherID) })

	svc.Update(withPublisher("ca-pub-1"))

	require.Equal(t, 1, repo.saves)
	require.NotNil(t, repo.payload)
	require.Equal(t, []string{"ca-pub-1"}, seen)
}

func TestUpdateSurvivesPersistFailure(t *testing.T) {
	repo := &memoryRepo{saveErr: errors.New("disk full")}
	svc := NewService(repo, nil, testLogger(t))

	svc.Update(withPublisher("ca-pub-2"))

	// In-memory state is committed even though persistence failed.
	require.Equal(t, "ca-pub-2", svc.Settings().PublisherID)
}

func TestActivationHappensAtMostOnce(t *testing.T) {
	activator := &countingActivator{}
	svc := NewService(&memoryRepo{}, activator, testLogger(t))

	svc.Update(withPublisher("ca-pub-3"))
	svc.Update(withPublisher("ca-pub-3"))
	svc.Update(withPublisher("ca-pub-other"))

	require.Equal(t, 1, activator.calls)
	require.Equal(t, "ca-pub-3", activator.publisherID)
}

func TestNoActivationWithoutPublisherOrWhenDisabled(t *testing.T) {
	activator := &countingActivator{}
	svc := NewService(&memoryRepo{}, activator, testLogger(t))

	svc.Update(DefaultSettings())
	require.Zero(t, activator.calls)

	disabled := withPublisher("ca-pub-4")
	disabled.GlobalEnabled = false
	svc.Update(disabled)
	require.Zero(t, activator.calls)

	// Re-enabling with the publisher id set finally activates.
	svc.Update(withPublisher("ca-pub-4"))
	require.Equal(t, 1, activator.calls)
}

func TestSettingsReturnsCopy(t *testing.T) {
	svc := NewService(nil, nil, testLogger(t))
	settings := svc.Settings()
	placement := settings.Placements[PlacementHeader]
	placement.SlotID = "mutated"
	settings.Placements[PlacementHeader] = placement

	require.Empty(t, svc.Settings().Placements[PlacementHeader].SlotID)
}
