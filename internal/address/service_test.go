package address

import (
	"context"
	"errors"
	"testing"

	"localmart/internal/validators"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Address), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, in Input) (*Address, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, in Input) (*Address, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Address), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func validInput() Input {
	return Input{
		Name:    "Home",
		Phone:   "9845012345",
		Line1:   "42, 1st Floor",
		Area:    "Koramangala",
		City:    "Bengaluru",
		Pincode: "560034",
	}
}

func TestInput_Validate(t *testing.T) {
	lat, badLng := 12.9, 200.0

	cases := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"Valid", func(*Input) {}, ""},
		{"ShortPhone", func(in *Input) { in.Phone = "98450" }, "phone"},
		{"BadPincode", func(in *Input) { in.Pincode = "5600" }, "pincode"},
		{"MissingLine1", func(in *Input) { in.Line1 = "" }, "line1"},
		{"MissingCity", func(in *Input) { in.City = "" }, "city"},
		{"HalfCoordinates", func(in *Input) { in.Lat = &lat }, "coordinates"},
		{"BadCoordinates", func(in *Input) { in.Lat, in.Lng = &lat, &badLng }, "coordinates"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.edit(&in)
			err := in.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var fe validators.FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Len(t, fe, 1)
			assert.True(t, fe.Has(tc.field))
		})
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		blank := "  "
		in := validInput()
		in.Name = " Home "
		in.Landmark = &blank

		want := validInput()
		created := &Address{ID: uuid.New(), Name: "Home"}
		mockRepo.On("Create", ctx, want).Return(created, nil)

		addr, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, created, addr)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		in := validInput()
		in.Pincode = "12"

		_, err := NewService(mockRepo).Create(ctx, in)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateDeleteSetDefault(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("Update", ctx, id, validInput()).Return(&Address{ID: id}, nil)
	mockRepo.On("Delete", ctx, id).Return(nil)
	mockRepo.On("SetDefault", ctx, id).Return(ErrAddressNotFound)

	_, err := svc.Update(ctx, id.String(), validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, id.String()))
	assert.ErrorIs(t, svc.SetDefault(ctx, id.String()), ErrAddressNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "not-a-uuid"), ErrAddressNotFound)
	_, err = svc.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrAddressNotFound)
	mockRepo.AssertExpectations(t)
}

func TestService_Default(t *testing.T) {
	ctx := context.Background()
	first := &Address{ID: uuid.New(), Name: "Office"}
	home := &Address{ID: uuid.New(), Name: "Home", IsDefault: true}

	t.Run("Marked", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("List", ctx).Return([]*Address{first, home}, nil)

		a, err := NewService(mockRepo).Default(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Home", a.Name)
	})

	t.Run("FirstWhenNoneMarked", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("List", ctx).Return([]*Address{first}, nil)

		a, err := NewService(mockRepo).Default(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Office", a.Name)
	})

	t.Run("Empty", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("List", ctx).Return([]*Address{}, nil)

		_, err := NewService(mockRepo).Default(ctx)
		assert.ErrorIs(t, err, ErrNoDefault)
	})

	t.Run("Error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("List", ctx).Return(nil, errors.New("db error"))

		_, err := NewService(mockRepo).Default(ctx)
		assert.EqualError(t, err, "db error")
	})
}
