package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/petsit-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/petsit-scheduler/internal/usecase/booking")

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// CHANGES
// ======================================================

type ChangeKind string

const (
	ChangeReloaded ChangeKind = "reloaded"
	ChangeReview   ChangeKind = "review"
)

// Change is pushed to subscribers after the booking list or a review changed.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	Action    string     `json:"action,omitempty"`
	BookingID string     `json:"booking_id,omitempty"`
	Count     int        `json:"count"`
	At        time.Time  `json:"at"`
}

// ======================================================
// CONTROLLER
// ======================================================

// Controller is one actor's booking session: the cached list, the open view
// and every mutation, all checked by the domain rules before reaching the
// repositories. Collaborator calls run without holding the state lock.
type Controller struct {
	actor   domain.Actor
	repo    domain.Repository
	reviews review.Repository
	locker  lock.Locker
	audit   Auditor
	log     *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	bookings   []models.Booking
	loaded     bool
	loadSeq    uint64
	appliedSeq uint64
	view       View
	epoch      uint64
	subs       map[int]chan Change
	nextSub    int
}

func NewController(
	actor domain.Actor,
	repo domain.Repository,
	reviews review.Repository,
	locker lock.Locker,
	auditor Auditor,
	log *slog.Logger,
) *Controller {
	if locker == nil {
		locker = lock.NewMemory()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		actor:   actor,
		repo:    repo,
		reviews: reviews,
		locker:  locker,
		audit:   auditor,
		log:     log.With(slog.String("actor_id", actor.ID), slog.String("role", string(actor.Role))),
		now:     time.Now,
		view:    View{Kind: ViewList},
		subs:    make(map[int]chan Change),
	}
}

func (c *Controller) Actor() domain.Actor {
	return c.actor
}

// ======================================================
// LOAD
// ======================================================

// Load replaces the cached list. When two loads overlap, the one started
// last wins and the older response is discarded.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	ctx, span := c.startSpan(ctx, "bookings.list")
	list, err := c.repo.ListMine(ctx, c.actor)
	endSpan(span, err)
	if err != nil {
		c.log.Warn("list bookings failed", slog.Any("error", err))
		return httperr.ErrRemote("list_bookings", err)
	}

	c.mu.Lock()
	if seq < c.appliedSeq {
		c.mu.Unlock()
		c.log.Debug("discarding stale booking list", slog.Uint64("seq", seq))
		return nil
	}
	c.appliedSeq = seq
	c.bookings = append([]models.Booking(nil), list...)
	c.loaded = true
	count := len(c.bookings)
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeReloaded, Count: count})
	return nil
}

func (c *Controller) ensureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

// Bookings returns a copy of the cached list in collaborator order.
func (c *Controller) Bookings() []models.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Booking(nil), c.bookings...)
}

func (c *Controller) Booking(id string) (models.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Lookup returns a booking of the actor's list, loading the list if needed.
func (c *Controller) Lookup(ctx context.Context, id string) (models.Booking, error) {
	return c.lookup(ctx, id)
}

func (c *Controller) lookup(ctx context.Context, id string) (models.Booking, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return models.Booking{}, err
	}
	b, ok := c.Booking(id)
	if !ok {
		return models.Booking{}, httperr.ErrNotFound("booking_not_found")
	}
	return b, nil
}

// ======================================================
// CALENDAR
// ======================================================

func (c *Controller) MonthGrid(year int, month time.Month) []calendar.Cell {
	return calendar.BuildMonthGrid(year, month, c.Bookings())
}

func (c *Controller) Days(ctx context.Context, id string) ([]calendar.BookingDayEntry, error) {
	b, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return calendar.DecomposeBookingIntoDays(b), nil
}

// ======================================================
// SUBSCRIPTIONS
// ======================================================

// Subscribe returns a channel of changes and a func that cancels it.
// Slow subscribers miss changes rather than block the session.
func (c *Controller) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 8)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers is the number of open subscriptions.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *Controller) notify(ch Change) {
	if ch.At.IsZero() {
		ch.At = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subs {
		select {
		case s <- ch:
		default:
		}
	}
}

// ======================================================
// HELPERS
// ======================================================

func (c *Controller) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("actor.id", c.actor.ID),
		attribute.String("actor.role", string(c.actor.Role)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Controller) dispatch(action, entity, id string, meta any) {
	if c.audit == nil {
		return
	}
	c.audit.Dispatch(audit.Event{
		ActorID:   c.actor.ID,
		ActorRole: string(c.actor.Role),
		Action:    action,
		Entity:    entity,
		EntityID:  id,
		Metadata:  meta,
		At:        c.now(),
	})
}
