package booking

import (
	"context"
	"log/slog"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// ======================================================
// VALIDATE (dry run)
// ======================================================

// Validate runs the field rules without sending anything. An empty id
// validates a create.
func (c *Controller) Validate(ctx context.Context, id string, p domain.Patch) (domain.Patch, error) {
	if id == "" {
		return domain.ValidatePatch(nil, c.actor, p)
	}
	b, err := c.lookup(ctx, id)
	if err != nil {
		return domain.Patch{}, err
	}
	return domain.ValidatePatch(&b, c.actor, p)
}

// ======================================================
// CREATE
// ======================================================

func (c *Controller) Create(ctx context.Context, p domain.Patch) (*models.Booking, error) {
	clean, err := domain.ValidatePatch(nil, c.actor, p)
	if err != nil {
		return nil, err
	}

	return c.mutate(ctx, "create:"+c.actor.ID, "create_booking", func(ctx context.Context) (*models.Booking, error) {
		b := domain.NewBooking(c.actor, clean, c.now())
		if err := c.repo.Create(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	})
}

// ======================================================
// EDIT (client)
// ======================================================

// Edit sends a client change of dates or notes. Without an explicit version
// the cached one is used, so editing a stale copy fails with a conflict.
// A patch carrying a status is a status change whoever sends it.
func (c *Controller) Edit(ctx context.Context, id string, p domain.Patch) (*models.Booking, error) {
	op := "update_booking"
	if p.Status != nil {
		op = "change_status"
	}
	return c.update(ctx, id, p, op)
}

// ======================================================
// STATUS (sitter)
// ======================================================

func (c *Controller) ChangeStatus(ctx context.Context, id string, to domain.Status) (*models.Booking, error) {
	return c.update(ctx, id, domain.Patch{Status: &to}, "change_status")
}

func (c *Controller) update(ctx context.Context, id string, p domain.Patch, op string) (*models.Booking, error) {
	current, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	clean, err := domain.ValidatePatch(&current, c.actor, p)
	if err != nil {
		return nil, err
	}
	if clean.Version == 0 {
		clean.Version = current.Version
	}

	return c.mutate(ctx, id, op, func(ctx context.Context) (*models.Booking, error) {
		return c.repo.Update(ctx, id, clean.Version, clean)
	})
}

// ======================================================
// DELETE
// ======================================================

// Delete needs the user's explicit confirmation and only the booking's
// client may ask for it.
func (c *Controller) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return httperr.ErrBusiness("delete_not_confirmed")
	}

	current, err := c.lookup(ctx, id)
	if err != nil {
		return err
	}
	if !c.actor.IsClient() || current.ClientID != c.actor.ID {
		return httperr.ErrBusiness("not_owner")
	}

	_, err = c.mutate(ctx, id, "delete_booking", func(ctx context.Context) (*models.Booking, error) {
		if err := c.repo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return &current, nil
	})
	if err != nil {
		return err
	}

	c.leaveDeleted(id)
	return nil
}

// ======================================================
// SHARED MUTATION PATH
// ======================================================

// mutate serializes work per key, calls the collaborator and reloads on
// success. A failed call leaves the cached list untouched.
func (c *Controller) mutate(
	ctx context.Context,
	key string,
	op string,
	call func(ctx context.Context) (*models.Booking, error),
) (*models.Booking, error) {

	unlock, err := c.locker.Lock(ctx, "booking:"+key)
	if err != nil {
		return nil, httperr.ErrRemote("lock", err)
	}
	defer unlock()

	epoch := c.currentEpoch()

	spanCtx, span := c.startSpan(ctx, "bookings."+op)
	b, err := call(spanCtx)
	endSpan(span, err)
	if err != nil {
		c.log.Warn("booking mutation failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil, httperr.ErrRemote(op, err)
	}

	c.dispatch(auditAction(op, b), "booking", b.ID, map[string]any{
		"status":  b.Status,
		"version": b.Version,
	})

	if err := c.Load(ctx); err != nil {
		// the write is confirmed; keep the cache in step with it
		c.log.Warn("reload after mutation failed", slog.String("op", op), slog.Any("error", err))
		c.reconcile(op, b)
		c.notify(Change{Kind: ChangeReloaded, Action: op, BookingID: b.ID, Count: len(c.Bookings())})
	}

	c.afterMutation(epoch, b.ID)
	return b, nil
}

// reconcile applies a confirmed result to the cache when a reload is not possible.
func (c *Controller) reconcile(op string, b *models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.bookings {
		if c.bookings[i].ID != b.ID {
			continue
		}
		if op == "delete_booking" {
			c.bookings = append(c.bookings[:i], c.bookings[i+1:]...)
		} else {
			c.bookings[i] = *b
		}
		return
	}
	if op != "delete_booking" {
		c.bookings = append(c.bookings, *b)
	}
}

func auditAction(op string, b *models.Booking) string {
	switch op {
	case "create_booking":
		return "booking.created"
	case "delete_booking":
		return "booking.deleted"
	case "change_status":
		return "booking.status_changed." + b.Status
	}
	return "booking.updated"
}
