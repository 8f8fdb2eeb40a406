package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"localmart/internal/api"
	"localmart/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, req Request) (*Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) ListMine(ctx context.Context, q ListQuery) (*List, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*List), args.Error(1)
}

func (m *MockRepository) Cancel(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

type staticUser struct {
	u   *auth.User
	err error
}

func (s staticUser) Current(context.Context) (*auth.User, error) { return s.u, s.err }

// --- Helpers ---

func newTestFlow(repo Repository, opts ...Option) *Flow {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewFlow(repo, opts...)
}

func fill(t *testing.T, f *Flow, req Request) {
	t.Helper()
	require.NoError(t, f.Edit(func(r *Request) { *r = req }))
}

// --- Tests ---

func TestFlow_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, validRequest()).
		Return(&Booking{ID: "b-1", TrackingID: "LM-1001", ServiceType: ServicePlumbing, Date: "2026-03-12", TimeSlot: "10:30"}, nil)

	f := newTestFlow(repo)
	fill(t, f, validRequest())

	b, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LM-1001", b.Tracking())

	v := f.View()
	assert.Equal(t, StateSuccess, v.State)
	assert.Equal(t, "b-1", v.Booking.ID)
	// The form is not reset by itself.
	assert.Equal(t, "Ravi Kumar", v.Draft.Name)

	assert.ErrorIs(t, f.Edit(func(*Request) {}), ErrNotEditing)
	_, err = f.Submit(ctx)
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestFlow_ShortPhoneNeverReachesNetwork(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	f := newTestFlow(repo)

	req := validRequest()
	req.Phone = "12345"
	fill(t, f, req)

	_, err := f.Submit(ctx)
	fe := fieldErrors(t, err)
	assert.True(t, fe.Has("phone"))

	v := f.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Equal(t, "phone must be exactly 10 digits", v.Errors["phone"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFlow_DuplicateConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	first := validRequest()
	forced := validRequest()
	forced.AllowDuplicate = true

	repo.On("Create", ctx, first).
		Return(nil, &api.Error{Status: 409, Message: "You already booked plumbing for this date"}).Once()
	repo.On("Create", ctx, forced).
		Return(&Booking{ID: "b-2", ServiceType: ServicePlumbing}, nil).Once()

	f := newTestFlow(repo)
	fill(t, f, first)

	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, api.ErrConflict)

	v := f.View()
	assert.Equal(t, StateDuplicateConflict, v.State)
	assert.Equal(t, "You already booked plumbing for this date", v.Conflict)

	b, err := f.ConfirmDuplicate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b-2", b.Tracking())
	assert.Equal(t, StateSuccess, f.View().State)
	repo.AssertExpectations(t)

	// Apart from the flag, the resubmission is identical.
	sent := repo.Calls[1].Arguments.Get(1).(Request)
	sent.AllowDuplicate = false
	assert.Equal(t, first, sent)
}

func TestFlow_CancelDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil, &api.Error{Status: 409})

	f := newTestFlow(repo)
	fill(t, f, validRequest())
	_, _ = f.Submit(ctx)

	assert.Contains(t, f.View().Conflict, "Plumbing")
	require.NoError(t, f.CancelDuplicate())

	v := f.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Equal(t, "Ravi Kumar", v.Draft.Name)

	_, err := f.ConfirmDuplicate(ctx)
	assert.ErrorIs(t, err, ErrNoPendingConflict)
	assert.ErrorIs(t, f.CancelDuplicate(), ErrNoPendingConflict)
}

func TestFlow_SecondConflictIsAFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil, &api.Error{Status: 409, Message: "slot taken"})

	f := newTestFlow(repo)
	fill(t, f, validRequest())
	_, _ = f.Submit(ctx)

	_, err := f.ConfirmDuplicate(ctx)
	assert.Error(t, err)
	v := f.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Equal(t, "slot taken", v.Banner)
}

func TestFlow_OtherFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil, errors.Join(api.ErrNetwork, errors.New("dial tcp")))

	f := newTestFlow(repo)
	fill(t, f, validRequest())

	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, api.ErrNetwork)

	v := f.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Contains(t, v.Banner, "Could not reach the server")
	assert.Equal(t, "Ravi Kumar", v.Draft.Name)
}

func TestFlow_SetLocation(t *testing.T) {
	f := newTestFlow(new(MockRepository))
	require.NoError(t, f.SetLocation("MG Road, Bengaluru", 12.975, 77.606))

	loc := f.View().Draft.Location
	assert.Equal(t, "MG Road, Bengaluru", loc.Address)
	require.NotNil(t, loc.Lat)
	assert.Equal(t, 12.975, *loc.Lat)
	assert.Equal(t, 77.606, *loc.Lng)
}

func TestFlow_SetLocationAfterSubmit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, validRequest()).Return(&Booking{ID: "b-9"}, nil)

	f := newTestFlow(repo)
	fill(t, f, validRequest())
	_, err := f.Submit(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, f.SetLocation("Elsewhere", 1, 2), ErrNotEditing)
	assert.Equal(t, validRequest().Location, f.View().Draft.Location)
}

func TestFlow_BookAnother(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Create", ctx, mock.Anything).Return(&Booking{ID: "b-3"}, nil)

	user := &auth.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9845012345"}
	f := newTestFlow(repo, WithUserSource(staticUser{u: user}))
	require.NoError(t, f.Start(ctx))
	assert.Equal(t, "Asha", f.View().Draft.Name)

	req := validRequest()
	fill(t, f, req)
	_, err := f.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, f.BookAnother(ctx))
	v := f.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Nil(t, v.Booking)
	assert.Equal(t, Request{Name: "Asha", Email: "asha@example.com", Phone: "9845012345"}, v.Draft)

	anon := newTestFlow(repo, WithUserSource(staticUser{err: auth.ErrNotSignedIn}))
	require.NoError(t, anon.BookAnother(ctx))
	assert.Equal(t, Request{}, anon.View().Draft)
}

type blockingRepo struct {
	MockRepository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRepo) Create(ctx context.Context, req Request) (*Booking, error) {
	close(b.entered)
	<-b.release
	return &Booking{ID: "b-4"}, nil
}

func TestFlow_DoubleSubmit(t *testing.T) {
	ctx := context.Background()
	repo := &blockingRepo{entered: make(chan struct{}), release: make(chan struct{})}
	f := newTestFlow(repo)
	fill(t, f, validRequest())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(ctx)
		done <- err
	}()
	<-repo.entered

	_, err := f.Submit(ctx)
	assert.ErrorIs(t, err, ErrAlreadySubmitting)
	assert.ErrorIs(t, f.BookAnother(ctx), ErrAlreadySubmitting)

	close(repo.release)
	require.NoError(t, <-done)
}
