package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/noteminder/noteminder/mocks"
)

type allMocks struct {
	mockDataManager    *mocks.MockDataManager
	mockRuleRepo       *mocks.MockRuleRepo
	mockOccurrenceRepo *mocks.MockOccurrenceRepo
	mockFeedRepo       *mocks.MockFeedRepo
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	ruleRepo := mocks.NewMockRuleRepo(ctrl)
	dm.EXPECT().Rule().Return(ruleRepo).AnyTimes()

	occurrenceRepo := mocks.NewMockOccurrenceRepo(ctrl)
	dm.EXPECT().Occurrence().Return(occurrenceRepo).AnyTimes()

	feedRepo := mocks.NewMockFeedRepo(ctrl)
	dm.EXPECT().Feed().Return(feedRepo).AnyTimes()

	m = allMocks{
		mockDataManager:    dm,
		mockRuleRepo:       ruleRepo,
		mockOccurrenceRepo: occurrenceRepo,
		mockFeedRepo:       feedRepo,
	}

	// validate service creation
	services := New(dm, nil, Options{})
	require.NotNil(t, services)

	return
}
