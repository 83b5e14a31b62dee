package notification

import (
	"context"
	"log"
	"sync"
	"time"
)

const deliveryTimeout = 10 * time.Second

// Dispatcher runs notification delivery on detached goroutines so a slow or
// failing channel can never block, or fail, the financial operation that
// produced the event.
type Dispatcher struct {
	notifier Notifier
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher around the given notifier.
func NewDispatcher(notifier Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// Dispatch hands the event off for asynchronous delivery. The delivery
// context is detached from the caller's: the request that committed the
// ledger entry may be long gone by the time the notifier runs.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil || d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("notification panic for user %d (%s): %v", event.UserID, event.Kind, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, event); err != nil {
			log.Printf("notification failed for user %d (%s): %v", event.UserID, event.Kind, err)
		}
	}()
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// LogNotifier writes events to the process log. Stands in until the
// platform's delivery channels are wired up.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, event Event) error {
	log.Printf("notify user %d: %s %s %s (%s)",
		event.UserID, event.Kind, event.Amount.StringFixed(2), event.Currency, event.Message)
	return nil
}
