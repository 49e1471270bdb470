package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

func TestService_AddGoal(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateGoal", mock.Anything, mock.MatchedBy(func(g models.FinancialGoal) bool {
		return g.Title == "Reserva" && g.CurrentAmount.IsZero() && !g.IsCompleted && g.TargetDate != nil
	})).Return(3, nil).Once()

	g, err := newService(repo, new(CacheMock), new(PublisherMock)).AddGoal(context.Background(), userUID, models.DummyGoal{
		Title:        "Reserva",
		TargetAmount: "1000",
		TargetDate:   "2024-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, g.ID)
	repo.AssertExpectations(t)
}

func TestService_AddGoal_AlreadyReached(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateGoal", mock.Anything, mock.MatchedBy(func(g models.FinancialGoal) bool {
		return g.IsCompleted
	})).Return(4, nil).Once()

	_, err := newService(repo, new(CacheMock), new(PublisherMock)).AddGoal(context.Background(), userUID, models.DummyGoal{
		Title:         "Done",
		TargetAmount:  "100",
		CurrentAmount: "150",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_ListGoals(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListGoals", mock.Anything, userUID, false).Return([]*models.FinancialGoal{
		{ID: 1, TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.NewFromInt(50)},
		{ID: 2, TargetAmount: decimal.Zero, CurrentAmount: decimal.NewFromInt(50)},
		{ID: 3, TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(300), IsCompleted: true},
	}, nil).Once()

	views, err := newService(repo, new(CacheMock), new(PublisherMock)).ListGoals(context.Background(), userUID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].Progress.Equal(decimal.NewFromInt(25)))
	assert.True(t, views[1].Progress.IsZero())
	assert.True(t, views[2].Progress.Equal(decimal.NewFromInt(100)))
}

func TestService_ContributeToGoal(t *testing.T) {
	t.Run("completes goal", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("AddToGoal", mock.Anything, userUID, 1, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromInt(50))
		})).Return(&models.FinancialGoal{
			ID: 1, TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100), IsCompleted: true,
		}, nil).Once()

		v, err := newService(repo, new(CacheMock), new(PublisherMock)).
			ContributeToGoal(context.Background(), userUID, 1, models.DummyContribution{Amount: "50"})
		require.NoError(t, err)
		assert.True(t, v.IsCompleted)
		assert.True(t, v.Progress.Equal(decimal.NewFromInt(100)))
	})

	t.Run("zero contribution rejected", func(t *testing.T) {
		repo := new(RepoMock)
		_, err := newService(repo, new(CacheMock), new(PublisherMock)).
			ContributeToGoal(context.Background(), userUID, 1, models.DummyContribution{Amount: "0"})
		require.ErrorIs(t, err, models.ErrInvalidAmount)
		repo.AssertNotCalled(t, "AddToGoal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign goal is not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("AddToGoal", mock.Anything, userUID, 9, mock.Anything).Return(nil, models.ErrNotFound).Once()
		_, err := newService(repo, new(CacheMock), new(PublisherMock)).
			ContributeToGoal(context.Background(), userUID, 9, models.DummyContribution{Amount: "10"})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}
