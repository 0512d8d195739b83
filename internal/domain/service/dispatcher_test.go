package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/entity"
	"github.com/noteminder/noteminder/mocks"
)

func newTestDispatcher(t *testing.T, deliverers map[domain.Channel]contract.Deliverer, nowFn func() time.Time) (*dispatcher, *occurrenceStore) {
	t.Helper()
	store := newOccurrenceStore()
	// Long interval: tests drive due-checks explicitly instead of sleeping.
	d := newDispatcher(store, deliverers, time.Hour, nowFn, &sync.Mutex{})
	return d, store
}

func dueOccurrence(id string, fireTime time.Time, channels ...domain.Channel) *entity.Occurrence {
	if len(channels) == 0 {
		channels = []domain.Channel{domain.ChannelInApp}
	}
	return &entity.Occurrence{ID: id, FireTime: fireTime, Message: "msg", Channels: channels}
}

func TestDispatcher_DeliversDueExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	deliverer := mocks.NewMockDeliverer(ctrl)
	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	d, store := newTestDispatcher(t, map[domain.Channel]contract.Deliverer{domain.ChannelInApp: deliverer}, func() time.Time { return now })
	store.ReplaceAll([]*entity.Occurrence{dueOccurrence("a", now.Add(-time.Minute))})

	assert.Equal(t, 1, d.CheckDue())
	assert.Equal(t, 0, d.CheckDue(), "second pass has nothing left to fire")
}

func TestDispatcher_PauseResumeCatchUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	nowFn := func() time.Time { return clock }

	deliverer := mocks.NewMockDeliverer(ctrl)
	d, store := newTestDispatcher(t, map[domain.Channel]contract.Deliverer{domain.ChannelInApp: deliverer}, nowFn)

	d.mu.Lock()
	d.state = dispatchRunning // as if Start had run with an empty store
	d.mu.Unlock()

	d.Pause()
	require.True(t, d.IsPaused())

	// An occurrence comes due while paused.
	store.ReplaceAll([]*entity.Occurrence{dueOccurrence("a", now.Add(time.Minute))})
	clock = now.Add(2 * time.Minute)

	// Resume fires it exactly once, immediately.
	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	d.Resume()
	require.False(t, d.IsPaused())

	assert.Equal(t, 0, d.CheckDue(), "already caught up on resume")
}

func TestDispatcher_StartIdempotentStopTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d, _ := newTestDispatcher(t, nil, func() time.Time { return now })

	d.Start()
	d.Start() // no-op
	require.True(t, d.IsRunning())

	d.Stop()
	require.False(t, d.IsRunning())

	d.Start() // stopped is terminal
	assert.False(t, d.IsRunning())

	assert.ErrorIs(t, d.FireNow("whatever"), domain.ErrDispatcherStopped)
}

func TestDispatcher_ChannelFailuresAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	failing := mocks.NewMockDeliverer(ctrl)
	failing.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(errors.New("boom")).Times(1)
	unsupported := mocks.NewMockDeliverer(ctrl)
	unsupported.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(domain.ErrDeliveryUnsupported).Times(1)
	working := mocks.NewMockDeliverer(ctrl)
	working.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	d, store := newTestDispatcher(t, map[domain.Channel]contract.Deliverer{
		domain.ChannelInApp:  failing,
		domain.ChannelSystem: unsupported,
		domain.ChannelSlack:  working,
	}, func() time.Time { return now })

	store.ReplaceAll([]*entity.Occurrence{dueOccurrence("a", now.Add(-time.Minute),
		domain.ChannelInApp, domain.ChannelSystem, domain.ChannelSlack)})

	assert.Equal(t, 1, d.CheckDue())
	// Failures did not prevent the fired flag.
	assert.True(t, store.Get("a").Fired)
}

func TestDispatcher_FireNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	deliverer := mocks.NewMockDeliverer(ctrl)
	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	d, store := newTestDispatcher(t, map[domain.Channel]contract.Deliverer{domain.ChannelInApp: deliverer}, func() time.Time { return now })

	// Fire time is tomorrow; FireNow bypasses the due-time check.
	store.ReplaceAll([]*entity.Occurrence{dueOccurrence("a", now.Add(24*time.Hour))})

	require.NoError(t, d.FireNow("a"))
	assert.True(t, store.Get("a").Fired)

	assert.ErrorIs(t, d.FireNow("missing"), domain.ErrOccurrenceNotFound)
}
