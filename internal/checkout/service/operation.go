package service

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOperationNotFound = errors.New("checkout operation not found")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ItemFailure records a cart item whose purchase could not be recorded.
type ItemFailure struct {
	ProjectID string `json:"project_id"`
	Error     string `json:"error"`
}

// Operation tracks one checkout from payment confirmation to recorded
// purchases.
type Operation struct {
	ID          string        `json:"id"`
	DeviceID    string        `json:"-"`
	UserID      string        `json:"user_id"`
	Status      Status        `json:"status"`
	Total       int64         `json:"total"`
	Items       []string      `json:"items"`
	Purchased   []string      `json:"purchased"`
	Failed      []ItemFailure `json:"failed"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

func (o Operation) clone() Operation {
	out := o
	out.Items = append([]string{}, o.Items...)
	out.Purchased = append([]string{}, o.Purchased...)
	out.Failed = append([]ItemFailure{}, o.Failed...)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// Pacer stands in for the wait on the bank confirming a transfer.
type Pacer interface {
	Wait(ctx context.Context) error
}

// DelayPacer waits a fixed duration.
type DelayPacer time.Duration

func (d DelayPacer) Wait(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay returns immediately.
var NoDelay Pacer = DelayPacer(0)
