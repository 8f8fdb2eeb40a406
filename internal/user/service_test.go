package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"localmart/internal/auth"
	"localmart/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context) (*Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context, q ListQuery) (*List, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*List), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id string, role auth.Role) (*Profile, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) SaveUser(ctx context.Context, u *auth.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetProfile", ctx).Return(&Profile{ID: "u1", Name: "Asha"}, nil)

		p, err := NewService(mockRepo, nil).GetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Asha", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetProfile", ctx).Return(nil, ErrProfileNotFound)

		_, err := NewService(mockRepo, nil).GetProfile(ctx)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		sessions := new(MockSessions)
		svc := NewService(mockRepo, sessions)

		want := UpdateProfileParams{Name: strPtr("Asha Rao"), Phone: strPtr("9845012345")}
		updated := &Profile{ID: "u1", Name: "Asha Rao", Email: "asha@example.com", Phone: "9845012345", Role: auth.RoleUser}
		mockRepo.On("UpdateProfile", ctx, want).Return(updated, nil)
		sessions.On("SaveUser", ctx, updated.SessionUser()).Return(nil)

		p, err := svc.UpdateProfile(ctx, UpdateProfileParams{Name: strPtr("  Asha Rao "), Phone: strPtr("9845012345")})
		require.NoError(t, err)
		assert.Equal(t, updated, p)
		mockRepo.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("SessionWriteFailureIsNotFatal", func(t *testing.T) {
		mockRepo := new(MockRepository)
		sessions := new(MockSessions)
		mockRepo.On("UpdateProfile", ctx, mock.Anything).Return(&Profile{ID: "u1"}, nil)
		sessions.On("SaveUser", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := NewService(mockRepo, sessions).UpdateProfile(ctx, UpdateProfileParams{Bio: strPtr("hi")})
		assert.NoError(t, err)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		future := time.Now().Add(48 * time.Hour)
		_, err := svc.UpdateProfile(ctx, UpdateProfileParams{
			Name:        strPtr(" "),
			Email:       strPtr("asha@"),
			Phone:       strPtr("12345"),
			DateOfBirth: &future,
		})

		var fe validators.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.True(t, fe.Has("name"))
		assert.True(t, fe.Has("email"))
		assert.True(t, fe.Has("phone"))
		assert.True(t, fe.Has("dateOfBirth"))
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("ClearPhone", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("UpdateProfile", ctx, UpdateProfileParams{Phone: strPtr("")}).Return(&Profile{ID: "u1"}, nil)

		_, err := NewService(mockRepo, nil).UpdateProfile(ctx, UpdateProfileParams{Phone: strPtr("")})
		assert.NoError(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewService(new(MockRepository), nil).UpdateProfile(ctx, UpdateProfileParams{})
		assert.ErrorIs(t, err, ErrNothingToUpdate)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("UpdateProfile", ctx, mock.Anything).Return(nil, errors.New("db error"))

		_, err := NewService(mockRepo, nil).UpdateProfile(ctx, UpdateProfileParams{Bio: strPtr("x")})
		assert.EqualError(t, err, "db error")
	})
}
