package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListMine(ctx context.Context, q ListQuery) (*List, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*List), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) Cancel(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context, q ListQuery) (*List, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*List), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Tests ---

func TestService_Place(t *testing.T) {
	ctx := context.Background()
	req := PlaceRequest{Address: "x", PaymentMethod: "upi", Items: []Item{{ProductID: "p1", Quantity: 1}}}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Place", ctx, req).Return(&Order{ID: "o-1", Status: StatusPending}, nil)

		o, err := svc.Place(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID)
	})

	t.Run("NoItems", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Place(ctx, PlaceRequest{Address: "x"})
		assert.ErrorIs(t, err, ErrNoItems)
		mockRepo.AssertNotCalled(t, "Place", mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("Place", ctx, req).Return(nil, errors.New("boom"))

		_, err := svc.Place(ctx, req)
		assert.Error(t, err)
	})
}

func TestService_ListMine_Defaults(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	mockRepo.On("ListMine", ctx, ListQuery{Page: 1, Limit: 100}).Return(&List{}, nil)

	_, err := svc.ListMine(ctx, ListQuery{Limit: 500})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_GetAndCancel(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	_, err := svc.Get(ctx, " ")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	mockRepo.On("Cancel", ctx, "o-1").Return(&Order{ID: "o-1", Status: StatusCancelled}, nil)
	o, err := svc.Cancel(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Out_For_Delivery")
	require.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, st)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
