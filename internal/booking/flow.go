package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"localmart/internal/api"
	"localmart/internal/auth"
	"localmart/internal/logger"
	"localmart/internal/validators"

	"go.uber.org/zap"
)

type State string

const (
	StateEditing           State = "editing"
	StateSubmitting        State = "submitting"
	StateSuccess           State = "success"
	StateDuplicateConflict State = "duplicate_conflict"
)

// UserSource supplies the signed-in user whose contact details pre-fill the
// form.
type UserSource interface {
	Current(ctx context.Context) (*auth.User, error)
}

type Option func(*Flow)

// WithClock replaces time.Now for the date window.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

func WithUserSource(users UserSource) Option {
	return func(f *Flow) { f.users = users }
}

// View is what the booking page renders.
type View struct {
	State    State
	Draft    Request
	Errors   validators.FieldErrors
	Banner   string
	Conflict string
	Booking  *Booking
}

// Flow drives the booking form:
//
//	Editing -> Submitting -> Success
//	                      -> DuplicateConflict -> (confirm) Submitting
//	                                           -> (cancel)  Editing
//	                      -> Editing with a banner
type Flow struct {
	repo  Repository
	users UserSource
	now   func() time.Time

	mu   sync.Mutex
	view View
	// pending is the exact request that hit the conflict.
	pending *Request
}

func NewFlow(repo Repository, opts ...Option) *Flow {
	f := &Flow{
		repo: repo,
		now:  time.Now,
		view: View{State: StateEditing},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Edit applies fn to the draft. Only allowed while editing.
func (f *Flow) Edit(fn func(*Request)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.view.State != StateEditing {
		return ErrNotEditing
	}
	fn(&f.view.Draft)
	return nil
}

// SetLocation is the map picker's confirm callback. Like Edit it fails with
// ErrNotEditing once the form has been sent.
func (f *Flow) SetLocation(address string, lat, lng float64) error {
	return f.Edit(func(r *Request) {
		r.Location.Address = address
		r.Location.Lat = &lat
		r.Location.Lng = &lng
	})
}

// Submit validates the draft and sends it. Field errors never reach the
// network; a 409 moves the flow to DuplicateConflict.
func (f *Flow) Submit(ctx context.Context) (*Booking, error) {
	f.mu.Lock()
	switch f.view.State {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrAlreadySubmitting
	case StateEditing:
	default:
		f.mu.Unlock()
		return nil, ErrNotEditing
	}

	req := normalize(f.view.Draft)
	req.AllowDuplicate = false
	if err := req.Validate(f.now()); err != nil {
		var fe validators.FieldErrors
		errors.As(err, &fe)
		f.view.Errors = fe
		f.view.Banner = ""
		f.mu.Unlock()
		return nil, err
	}

	f.view.Errors = nil
	f.view.Banner = ""
	f.view.State = StateSubmitting
	f.mu.Unlock()

	return f.send(ctx, req)
}

// ConfirmDuplicate resends the request that conflicted, unchanged except for
// AllowDuplicate.
func (f *Flow) ConfirmDuplicate(ctx context.Context) (*Booking, error) {
	f.mu.Lock()
	if f.view.State != StateDuplicateConflict || f.pending == nil {
		f.mu.Unlock()
		return nil, ErrNoPendingConflict
	}
	req := *f.pending
	req.AllowDuplicate = true
	f.view.State = StateSubmitting
	f.view.Conflict = ""
	f.mu.Unlock()

	return f.send(ctx, req)
}

// CancelDuplicate goes back to editing with the draft intact.
func (f *Flow) CancelDuplicate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.view.State != StateDuplicateConflict {
		return ErrNoPendingConflict
	}
	f.pending = nil
	f.view.State = StateEditing
	f.view.Conflict = ""
	return nil
}

// BookAnother clears the form, keeping the signed-in user's contact details.
func (f *Flow) BookAnother(ctx context.Context) error {
	f.mu.Lock()
	if f.view.State == StateSubmitting {
		f.mu.Unlock()
		return ErrAlreadySubmitting
	}
	f.mu.Unlock()

	draft := f.contactDraft(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = nil
	f.view = View{State: StateEditing, Draft: draft}
	return nil
}

// Start seeds a fresh form; same as BookAnother on a new flow.
func (f *Flow) Start(ctx context.Context) error {
	return f.BookAnother(ctx)
}

func (f *Flow) send(ctx context.Context, req Request) (*Booking, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "booking"),
		zap.String("method", "Submit"),
		zap.String("service_type", string(req.ServiceType)),
		zap.String("date", req.Date),
		zap.Bool("allow_duplicate", req.AllowDuplicate),
	)

	b, err := f.repo.Create(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case err == nil:
		log.Info("booking created", zap.String("booking_id", b.ID))
		f.pending = nil
		f.view.State = StateSuccess
		f.view.Booking = b
		return b, nil

	case errors.Is(err, api.ErrConflict) && !req.AllowDuplicate:
		log.Info("duplicate booking reported")
		pending := req
		f.pending = &pending
		f.view.State = StateDuplicateConflict
		f.view.Conflict = conflictMessage(err, req)
		return nil, err

	default:
		log.Warn("booking failed", zap.Error(err))
		f.pending = nil
		f.view.State = StateEditing
		f.view.Banner = api.Message(err)
		return nil, err
	}
}

func (f *Flow) contactDraft(ctx context.Context) Request {
	if f.users == nil {
		return Request{}
	}
	u, err := f.users.Current(ctx)
	if err != nil || u == nil {
		return Request{}
	}
	return Request{Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func conflictMessage(err error, req Request) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "You already have a " + req.ServiceType.Label() + " booking on " + req.Date + ". Book again anyway?"
}

func normalize(r Request) Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Date = strings.TrimSpace(r.Date)
	r.TimeSlot = strings.TrimSpace(r.TimeSlot)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Location.Address = strings.TrimSpace(r.Location.Address)
	r.Location.Street = strings.TrimSpace(r.Location.Street)
	r.Location.Landmark = strings.TrimSpace(r.Location.Landmark)
	r.Location.Area = strings.TrimSpace(r.Location.Area)
	r.Location.Pincode = strings.TrimSpace(r.Location.Pincode)
	return r
}
