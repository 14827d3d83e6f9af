package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "github.com/docusphere/docusphere-backend/internal/auth/domain"
	cartdomain "github.com/docusphere/docusphere-backend/internal/cart/domain"
)

// Purchaser is the signed-in session a checkout records purchases against.
type Purchaser interface {
	GetCurrentUser() *authdomain.User
	AddPurchasedProject(ctx context.Context, userID, projectID string) (bool, error)
}

// Cart is the device cart as read when the checkout starts.
type Cart interface {
	Items() []cartdomain.CartItem
	CalculateTotal() int64
}

// CartStore settles the device cart once purchases are recorded. It works on
// the stored cart, not the copy the checkout started from.
type CartStore interface {
	RemovePurchased(ctx context.Context, deviceID string, projectIDs []string) error
}

type CheckoutService struct {
	mu  sync.RWMutex
	ops map[string]*Operation

	pacer  Pacer
	carts  CartStore
	logger *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewCheckoutService(pacer Pacer, carts CartStore, logger *zap.Logger) *CheckoutService {
	if pacer == nil {
		pacer = NoDelay
	}
	return &CheckoutService{
		ops:    make(map[string]*Operation),
		pacer:  pacer,
		carts:  carts,
		logger: logger,
		now:    time.Now,
	}
}

// Checkout pays for the whole cart and returns the finished operation.
func (s *CheckoutService) Checkout(ctx context.Context, deviceID string, session Purchaser, cart Cart) (Operation, error) {
	op, err := s.begin(deviceID, session, cart)
	if err != nil {
		return Operation{}, err
	}
	s.run(ctx, op.ID, session)
	return s.Get(op.ID)
}

// Start is Checkout in the background. The returned operation is pending;
// poll Get for the outcome. The work outlives ctx's cancellation.
func (s *CheckoutService) Start(ctx context.Context, deviceID string, session Purchaser, cart Cart) (Operation, error) {
	op, err := s.begin(deviceID, session, cart)
	if err != nil {
		return Operation{}, err
	}

	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(runCtx, op.ID, session)
	}()
	return op, nil
}

func (s *CheckoutService) Get(id string) (Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	op, ok := s.ops[id]
	if !ok {
		return Operation{}, ErrOperationNotFound
	}
	return op.clone(), nil
}

// Wait blocks until every started checkout has finished.
func (s *CheckoutService) Wait() {
	s.wg.Wait()
}

func (s *CheckoutService) begin(deviceID string, session Purchaser, cart Cart) (Operation, error) {
	user := session.GetCurrentUser()
	if user == nil {
		return Operation{}, authdomain.ErrAuthRequired
	}
	items := cart.Items()
	if len(items) == 0 {
		return Operation{}, ErrEmptyCart
	}

	op := &Operation{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		UserID:    user.ID,
		Status:    StatusPending,
		Total:     cart.CalculateTotal(),
		Items:     make([]string, 0, len(items)),
		Purchased: []string{},
		Failed:    []ItemFailure{},
		CreatedAt: s.now().UTC(),
	}
	for _, it := range items {
		op.Items = append(op.Items, it.ProjectID)
	}

	s.mu.Lock()
	s.ops[op.ID] = op
	s.mu.Unlock()
	return op.clone(), nil
}

// run records each item independently; one failure does not undo the others.
// Only recorded items leave the cart, so failed ones can be retried and items
// added while payment was pending stay put.
func (s *CheckoutService) run(ctx context.Context, opID string, session Purchaser) {
	op, err := s.Get(opID)
	if err != nil {
		return
	}
	log := s.logger.With(zap.String("operation_id", opID), zap.String("user_id", op.UserID))

	if err := s.pacer.Wait(ctx); err != nil {
		log.Warn("checkout abandoned before confirmation", zap.Error(err))
		s.finish(opID, func(o *Operation) {
			now := s.now().UTC()
			o.CompletedAt = &now
			o.Status = StatusFailed
			o.Error = "payment confirmation interrupted"
		})
		return
	}

	purchased := make([]string, 0, len(op.Items))
	for _, projectID := range op.Items {
		if _, err := session.AddPurchasedProject(ctx, op.UserID, projectID); err != nil {
			log.Error("record purchase failed", zap.String("project_id", projectID), zap.Error(err))
			s.finish(opID, func(o *Operation) {
				o.Failed = append(o.Failed, ItemFailure{ProjectID: projectID, Error: err.Error()})
			})
			continue
		}
		purchased = append(purchased, projectID)
		s.finish(opID, func(o *Operation) {
			o.Purchased = append(o.Purchased, projectID)
		})
	}

	if len(purchased) > 0 && s.carts != nil {
		if err := s.carts.RemovePurchased(ctx, op.DeviceID, purchased); err != nil {
			log.Error("remove purchased items from cart failed", zap.Error(err))
		}
	}

	s.finish(opID, func(o *Operation) {
		now := s.now().UTC()
		o.CompletedAt = &now
		if len(o.Purchased) == 0 {
			o.Status = StatusFailed
			o.Error = fmt.Sprintf("none of %d purchases could be recorded", len(o.Items))
			return
		}
		o.Status = StatusSucceeded
	})
	log.Info("checkout finished", zap.Int("purchased", len(purchased)), zap.Int("items", len(op.Items)))
}

func (s *CheckoutService) finish(opID string, fn func(*Operation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if op, ok := s.ops[opID]; ok {
		fn(op)
	}
}
