package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/mock"
	"github.com/shelfsync/shelfsync/models"
)

type stubSyncer struct {
	mu         sync.Mutex
	calls      int
	watermarks []time.Time
	result     models.SyncResult
	errs       []error // consumed one per call; nil-padded
	block      chan struct{}
}

func (s *stubSyncer) Reconcile(_ context.Context, watermark time.Time) (models.SyncResult, error) {
	s.mu.Lock()
	s.calls++
	s.watermarks = append(s.watermarks, watermark)
	var err error
	if len(s.errs) > 0 {
		err = s.errs[0]
		s.errs = s.errs[1:]
	}
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return models.SyncResult{}, err
	}
	return s.result, nil
}

func (s *stubSyncer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubMonitor struct {
	mu     sync.Mutex
	online bool
	ch     chan bool
}

func newStubMonitor(online bool) *stubMonitor {
	return &stubMonitor{online: online, ch: make(chan bool, 1)}
}

func (s *stubMonitor) IsOnline(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *stubMonitor) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *stubMonitor) Changes() <-chan bool { return s.ch }

func (s *stubMonitor) setOnline(state bool) {
	s.mu.Lock()
	s.online = state
	s.mu.Unlock()
	s.ch <- state
}

type stubNotifier struct {
	ch chan struct{}
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{ch: make(chan struct{}, 1)}
}

func (s *stubNotifier) Notifications(context.Context) <-chan struct{} { return s.ch }

func newTestOrchestrator(t *testing.T, syncer Syncer, monitor ConnectivityMonitor) (*Orchestrator, *mock.MockProductRepository, *stubNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockProductRepository(ctrl)
	notifier := newStubNotifier()

	orch := NewOrchestrator(syncer, monitor, notifier, repo, "shop-a", time.Hour, logger.Nop())
	return orch, repo, notifier
}

func TestManualSync_AdvancesWatermark(t *testing.T) {
	newWatermark := time.UnixMilli(9000)
	syncer := &stubSyncer{result: models.SyncResult{NewWatermark: newWatermark, Pushed: 1}}
	monitor := newStubMonitor(true)
	orch, repo, _ := newTestOrchestrator(t, syncer, monitor)

	ctx := context.Background()
	require.NoError(t, orch.ManualSync(ctx))
	require.Equal(t, 1, syncer.callCount())

	// the next pass runs against the advanced watermark
	require.NoError(t, orch.ManualSync(ctx))
	assert.Equal(t, newWatermark, syncer.watermarks[1])

	repo.EXPECT().CountChangedSince(ctx, newWatermark, "shop-a").Return(0, nil)
	status := orch.Status(ctx)
	assert.Equal(t, models.SyncIdle, status.State)
	assert.Equal(t, newWatermark, status.LastSync)
	assert.Empty(t, status.LastErr)
}

func TestManualSync_RetriesTransientFailure(t *testing.T) {
	syncer := &stubSyncer{errs: []error{errors.New("transient")}}
	monitor := newStubMonitor(true)
	orch, _, _ := newTestOrchestrator(t, syncer, monitor)

	require.NoError(t, orch.ManualSync(context.Background()))
	assert.Equal(t, 2, syncer.callCount(), "first attempt fails, second succeeds")
}

func TestManualSync_GivesUpAfterThreeAttempts(t *testing.T) {
	failure := errors.New("persistent")
	syncer := &stubSyncer{errs: []error{failure, failure, failure, failure}}
	monitor := newStubMonitor(true)
	orch, _, _ := newTestOrchestrator(t, syncer, monitor)

	err := orch.ManualSync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, syncer.callCount())
}

func TestManualSync_OfflineFailsWithoutCallingSyncer(t *testing.T) {
	syncer := &stubSyncer{}
	monitor := newStubMonitor(false)
	orch, _, _ := newTestOrchestrator(t, syncer, monitor)

	err := orch.ManualSync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOffline)
	assert.Zero(t, syncer.callCount())
}

func TestSyncOnce_ConcurrentRunsCoalesce(t *testing.T) {
	block := make(chan struct{})
	syncer := &stubSyncer{block: block}
	monitor := newStubMonitor(true)
	orch, _, _ := newTestOrchestrator(t, syncer, monitor)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- orch.syncOnce(ctx) }()

	require.Eventually(t, func() bool { return syncer.callCount() == 1 }, time.Second, 5*time.Millisecond)

	err := orch.syncOnce(ctx)
	assert.ErrorIs(t, err, ErrSyncInFlight, "a second request while running is dropped, not queued")

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, syncer.callCount())
}

func TestRun_SyncsImmediatelyOnReconnect(t *testing.T) {
	syncer := &stubSyncer{}
	monitor := newStubMonitor(false)
	orch, repo, _ := newTestOrchestrator(t, syncer, monitor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orch.Run(ctx)

	repo.EXPECT().CountChangedSince(gomock.Any(), gomock.Any(), "shop-a").Return(0, nil).AnyTimes()

	require.Eventually(t, func() bool {
		return orch.Status(ctx).State == models.SyncOffline
	}, time.Second, 5*time.Millisecond)

	monitor.setOnline(true)

	require.Eventually(t, func() bool { return syncer.callCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestRun_SharedStoreHintTriggersSync(t *testing.T) {
	syncer := &stubSyncer{}
	monitor := newStubMonitor(true)
	orch, _, notifier := newTestOrchestrator(t, syncer, monitor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orch.Run(ctx)

	// startup pass for an online instance
	require.Eventually(t, func() bool { return syncer.callCount() == 1 }, time.Second, 5*time.Millisecond)

	notifier.ch <- struct{}{}

	require.Eventually(t, func() bool { return syncer.callCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestRun_NotifySavedTriggersSync(t *testing.T) {
	syncer := &stubSyncer{}
	monitor := newStubMonitor(true)
	orch, _, _ := newTestOrchestrator(t, syncer, monitor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orch.Run(ctx)

	require.Eventually(t, func() bool { return syncer.callCount() == 1 }, time.Second, 5*time.Millisecond)

	orch.NotifySaved()

	require.Eventually(t, func() bool { return syncer.callCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestStatus_ReportsFailureAndPendingCount(t *testing.T) {
	failure := errors.New("bridge down")
	syncer := &stubSyncer{errs: []error{failure, failure, failure}}
	monitor := newStubMonitor(true)
	orch, repo, _ := newTestOrchestrator(t, syncer, monitor)

	ctx := context.Background()
	require.Error(t, orch.ManualSync(ctx))

	repo.EXPECT().CountChangedSince(ctx, gomock.Any(), "shop-a").Return(3, nil)

	status := orch.Status(ctx)
	assert.Equal(t, models.SyncError, status.State)
	assert.Contains(t, status.LastErr, "bridge down")
	assert.Equal(t, 3, status.Pending, "failed pushes stay pending")
}
