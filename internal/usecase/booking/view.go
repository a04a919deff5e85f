package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
)

type ViewKind string

const (
	ViewList     ViewKind = "list"
	ViewCalendar ViewKind = "calendar"
	ViewDetail   ViewKind = "detail"
	ViewEdit     ViewKind = "edit"
)

// View is what the session currently shows.
type View struct {
	Kind      ViewKind   `json:"kind"`
	Year      int        `json:"year,omitempty"`
	Month     time.Month `json:"month,omitempty"`
	BookingID string     `json:"booking_id,omitempty"`
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// setView swaps the view and starts a new epoch. Responses that belong to
// an older epoch no longer touch the view.
func (c *Controller) setView(v View) {
	c.mu.Lock()
	c.view = v
	c.epoch++
	c.mu.Unlock()
}

func (c *Controller) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

func (c *Controller) ShowList() {
	c.setView(View{Kind: ViewList})
}

func (c *Controller) ShowCalendar(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return httperr.ErrValidation("month", "invalid_month")
	}
	c.setView(View{Kind: ViewCalendar, Year: year, Month: month})
	return nil
}

func (c *Controller) OpenDetail(ctx context.Context, id string) error {
	if _, err := c.lookup(ctx, id); err != nil {
		return err
	}
	c.setView(View{Kind: ViewDetail, BookingID: id})
	return nil
}

// OpenEdit is refused when the actor could not submit any edit for the booking.
func (c *Controller) OpenEdit(ctx context.Context, id string) error {
	b, err := c.lookup(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case c.actor.IsClient():
		if b.ClientID != c.actor.ID {
			return httperr.ErrBusiness("not_owner")
		}
		if domain.Status(b.Status) != domain.StatusPending {
			return httperr.ErrBusiness("booking_locked")
		}
	case c.actor.IsSitter():
		if b.SitterID != c.actor.ID {
			return httperr.ErrBusiness("not_owner")
		}
		if domain.Status(b.Status).IsTerminal() {
			return httperr.ErrBusiness("booking_locked")
		}
	}

	c.setView(View{Kind: ViewEdit, BookingID: id})
	return nil
}

func (c *Controller) CloseView() {
	c.ShowList()
}

// afterMutation moves an edit view that is still open, and still the same
// epoch, to the booking's detail view.
func (c *Controller) afterMutation(epoch uint64, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	if c.view.Kind == ViewEdit && c.view.BookingID == id {
		c.view = View{Kind: ViewDetail, BookingID: id}
		c.epoch++
	}
}

// leaveDeleted drops a view that points at a deleted booking.
func (c *Controller) leaveDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view.BookingID == id {
		c.view = View{Kind: ViewList}
		c.epoch++
	}
}
