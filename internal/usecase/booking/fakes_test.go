package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errRepoDown = errors.New("repo: down")

type testRepo struct {
	mu    sync.Mutex
	items []models.Booking
	now   time.Time

	listErr   error
	writeErr  error
	listCalls int
	block     map[int]chan struct{}
	entered   chan int
}

func newTestRepo(items ...models.Booking) *testRepo {
	return &testRepo{
		items: items,
		now:   time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		block: map[int]chan struct{}{},
	}
}

func (r *testRepo) ListMine(ctx context.Context, actor domain.Actor) ([]models.Booking, error) {
	r.mu.Lock()
	r.listCalls++
	n := r.listCalls
	err := r.listErr
	out := make([]models.Booking, 0)
	for _, b := range r.items {
		if (actor.IsClient() && b.ClientID == actor.ID) || (actor.IsSitter() && b.SitterID == actor.ID) {
			out = append(out, b)
		}
	}
	wait := r.block[n]
	entered := r.entered
	r.mu.Unlock()

	if entered != nil {
		entered <- n
	}
	if wait != nil {
		<-wait
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.items = append(r.items, *b)
	return nil
}

func (r *testRepo) Update(ctx context.Context, id string, expectedVersion int64, p domain.Patch) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if expectedVersion != 0 && r.items[i].Version != expectedVersion {
			return nil, httperr.ErrConflict("stale_version")
		}
		domain.Apply(&r.items[i], p, r.now)
		out := r.items[i]
		return &out, nil
	}
	return nil, httperr.ErrNotFound("booking_not_found")
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return httperr.ErrNotFound("booking_not_found")
}

// bump changes a stored booking behind the session's back.
func (r *testRepo) bump(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Version++
		}
	}
}

type testReviews struct {
	mu        sync.Mutex
	byBooking map[string]*models.Review
}

func newTestReviews() *testReviews {
	return &testReviews{byBooking: map[string]*models.Review{}}
}

func (r *testReviews) GetByBooking(ctx context.Context, bookingID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.byBooking[bookingID]
	if !ok {
		return nil, review.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *testReviews) Create(ctx context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byBooking[rv.BookingID]; ok {
		return httperr.ErrConflict("review_exists")
	}
	cp := *rv
	r.byBooking[rv.BookingID] = &cp
	return nil
}

func (r *testReviews) Update(ctx context.Context, reviewID string, s review.Submission) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.byBooking {
		if rv.ID == reviewID {
			rv.Rating = s.Rating
			rv.Comment = s.Comment
			cp := *rv
			return &cp, nil
		}
	}
	return nil, errRepoDown
}

type testAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *testAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *testAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

// -------------------------
// Fixtures
// -------------------------

var (
	client = domain.Actor{ID: "client-1", Role: domain.RoleClient}
	sitter = domain.Actor{ID: "sitter-1", Role: domain.RoleSitter}
)

func ptr[T any](v T) *T { return &v }

func fixture(id string, status domain.Status) models.Booking {
	return models.Booking{
		ID:            id,
		ClientID:      client.ID,
		SitterID:      sitter.ID,
		PetID:         "pet-1",
		StartDateTime: time.Date(2024, time.March, 30, 10, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2024, time.April, 1, 14, 0, 0, 0, time.UTC),
		Status:        string(status),
		Version:       1,
	}
}

func newTestController(actor domain.Actor, repo *testRepo, reviews *testReviews) (*Controller, *testAuditor) {
	aud := &testAuditor{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewController(actor, repo, reviews, nil, aud, log)
	c.now = func() time.Time { return repo.now }
	return c, aud
}
