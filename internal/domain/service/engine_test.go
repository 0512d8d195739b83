package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/entity"
)

func enabledDueRule() *entity.Rule {
	return &entity.Rule{
		ID:              1,
		Field:           "due",
		Offsets:         []string{"-PT30M"},
		Repeat:          domain.RepeatNone,
		MessageTemplate: "{title}",
		Channels:        []domain.Channel{domain.ChannelInApp},
		Enabled:         true,
	}
}

func TestEngine_Rebuild(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	services := New(m.mockDataManager, nil, Options{Now: func() time.Time { return now }})

	m.mockRuleRepo.EXPECT().GetEnabled().Return([]*entity.Rule{enabledDueRule()}, nil)
	m.mockOccurrenceRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	count, err := services.Engine.RebuildWith(context.Background(), entity.Index{
		"tasks/report.md": {Title: "Report", Dates: []entity.ExtractedDate{
			{Field: "due", Value: "2025-10-01T14:00:00"},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, services.Engine.Size())

	upcoming := services.Engine.GetUpcoming(10)
	require.Len(t, upcoming, 1)
	assert.Equal(t, time.Date(2025, 10, 1, 13, 30, 0, 0, time.UTC), upcoming[0].FireTime)
}

func TestEngine_RebuildReplacesPriorCycle(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	services := New(m.mockDataManager, nil, Options{Now: func() time.Time { return now }})

	m.mockRuleRepo.EXPECT().GetEnabled().Return([]*entity.Rule{enabledDueRule()}, nil).Times(2)
	m.mockOccurrenceRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	index := entity.Index{
		"tasks/report.md": {Title: "Report", Dates: []entity.ExtractedDate{
			{Field: "due", Value: "2025-10-01T14:00:00"},
		}},
	}
	_, err := services.Engine.RebuildWith(context.Background(), index)
	require.NoError(t, err)

	// The document disappears from the index; its occurrence goes with it.
	count, err := services.Engine.RebuildWith(context.Background(), entity.Index{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, services.Engine.Size())
}

func TestEngine_RebuildWithoutIndexYieldsEmptyCycle(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	services := New(m.mockDataManager, nil, Options{})

	m.mockRuleRepo.EXPECT().GetEnabled().Return([]*entity.Rule{enabledDueRule()}, nil)
	m.mockOccurrenceRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	count, err := services.Engine.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_RebuildRuleLoadFailure(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	services := New(m.mockDataManager, nil, Options{})

	m.mockRuleRepo.EXPECT().GetEnabled().Return(nil, errors.New("db gone"))

	_, err := services.Engine.Rebuild(context.Background())
	require.Error(t, err)
}

func TestEngine_PersistFailureIsNonFatal(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	services := New(m.mockDataManager, nil, Options{Now: func() time.Time { return now }})

	m.mockRuleRepo.EXPECT().GetEnabled().Return([]*entity.Rule{enabledDueRule()}, nil)
	m.mockOccurrenceRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	count, err := services.Engine.RebuildWith(context.Background(), entity.Index{
		"tasks/report.md": {Title: "Report", Dates: []entity.ExtractedDate{
			{Field: "due", Value: "2025-10-01T14:00:00"},
		}},
	})
	require.NoError(t, err, "in-memory schedule stays authoritative")
	assert.Equal(t, 1, count)
}

func TestEngine_DueCheckWaitsForPersist(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	services := New(m.mockDataManager, nil, Options{})

	persistStarted := make(chan struct{})
	releasePersist := make(chan struct{})
	m.mockRuleRepo.EXPECT().GetEnabled().Return(nil, nil)
	m.mockOccurrenceRepo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(string, []*entity.Occurrence) error {
			close(persistStarted)
			<-releasePersist
			return nil
		})

	rebuildDone := make(chan struct{})
	go func() {
		defer close(rebuildDone)
		_, err := services.Engine.Rebuild(context.Background())
		assert.NoError(t, err)
	}()

	<-persistStarted

	// A due-check pass must not interleave with the snapshot write: the
	// dispatcher would be flipping Fired flags on the very occurrences the
	// snapshot is serializing.
	checkDone := make(chan struct{})
	go func() {
		defer close(checkDone)
		services.Engine.dispatcher.CheckDue()
	}()

	select {
	case <-checkDone:
		t.Fatal("due check completed while the snapshot was still being persisted")
	case <-time.After(50 * time.Millisecond):
	}

	close(releasePersist)

	select {
	case <-checkDone:
	case <-time.After(time.Second):
		t.Fatal("due check never ran after persistence finished")
	}
	<-rebuildDone
}

func TestEngine_PrivacyModeSkipsPersistence(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	services := New(m.mockDataManager, nil, Options{PrivacyMode: true, Now: func() time.Time { return now }})

	// No SaveSnapshot / LoadSnapshot expectations: any call would fail the test.
	m.mockRuleRepo.EXPECT().GetEnabled().Return([]*entity.Rule{enabledDueRule()}, nil)

	services.Engine.LoadPrior(context.Background())
	_, err := services.Engine.RebuildWith(context.Background(), entity.Index{
		"tasks/report.md": {Title: "Report", Dates: []entity.ExtractedDate{
			{Field: "due", Value: "2025-10-01T14:00:00"},
		}},
	})
	require.NoError(t, err)
}

func TestEngine_LoadPriorSeedsStore(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	services := New(m.mockDataManager, nil, Options{Now: func() time.Time { return now }})

	m.mockOccurrenceRepo.EXPECT().LoadSnapshot().Return([]*entity.Occurrence{
		{ID: "prior", FireTime: now.Add(time.Hour), Channels: []domain.Channel{domain.ChannelInApp}},
	}, nil)

	services.Engine.LoadPrior(context.Background())
	assert.Equal(t, 1, services.Engine.Size())
}

func TestEngine_PauseResumeState(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	services := New(m.mockDataManager, nil, Options{DispatchInterval: time.Hour})
	engine := services.Engine
	t.Cleanup(engine.Stop)

	assert.False(t, engine.IsPaused())

	engine.Start()
	engine.Pause()
	assert.True(t, engine.IsPaused())

	engine.Resume()
	assert.False(t, engine.IsPaused())
}
