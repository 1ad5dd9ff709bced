package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"saunahub/internal/storefront"
	"saunahub/pkg/models"
)

const tempLinePrefix = "temp-"

// CommerceAPI is the remote cart contract consumed by the synchronizer.
// *storefront.Client implements it; tests substitute fakes.
type CommerceAPI interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []storefront.CartLineInput) (*models.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []storefront.CartLineUpdate) (*models.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error)
	Cart(ctx context.Context, cartID string) (*models.Cart, error)
}

// Synchronizer keeps one session's visible cart consistent with the remote
// backend. Optimistic updates land on the store immediately; remote
// mutations run through a FIFO queue (one in flight); every optimistic
// apply snapshots the prior cart and any remote failure restores it.
type Synchronizer struct {
	sessionID string
	api       CommerceAPI
	sessions  *SessionRepo
	store     *Store
	queue     *Queue
	log       *zap.Logger

	mu      sync.Mutex // guards cartID
	cartID  string
	pending atomic.Int32
}

func NewSynchronizer(sessionID string, api CommerceAPI, sessions *SessionRepo, log *zap.Logger) *Synchronizer {
	return &Synchronizer{
		sessionID: sessionID,
		api:       api,
		sessions:  sessions,
		store:     NewStore(),
		queue:     NewQueue(32),
		log:       log,
	}
}

// Initialize loads the persisted cart id and fetches the remote cart. Any
// failure discards the id and starts the session with an empty cart; no
// retry, no error surfaced. No cart is created until the first mutation.
func (s *Synchronizer) Initialize(ctx context.Context) {
	cartID, err := s.sessions.CartID(ctx, s.sessionID)
	if err != nil {
		s.log.Warn("read persisted cart id", zap.String("session", s.sessionID), zap.Error(err))
		return
	}
	if cartID == "" {
		return
	}

	remote, err := s.api.Cart(ctx, cartID)
	if err != nil {
		s.log.Warn("stored cart unusable, discarding",
			zap.String("session", s.sessionID), zap.String("cart", cartID), zap.Error(err))
		if cerr := s.sessions.ClearCart(ctx, s.sessionID); cerr != nil {
			s.log.Warn("clear stale cart id", zap.Error(cerr))
		}
		return
	}

	s.mu.Lock()
	s.cartID = cartID
	s.mu.Unlock()
	s.store.Apply(func(c *models.Cart) *models.Cart { return reconcile(c, remote) })
}

// Cart returns the currently visible (optimistic) cart.
func (s *Synchronizer) Cart() *models.Cart { return s.store.Current() }

// TotalQuantity is derived from the visible cart.
func (s *Synchronizer) TotalQuantity() int { return s.store.Current().TotalQuantity() }

// Subscribe exposes the store's change feed.
func (s *Synchronizer) Subscribe() (<-chan *models.Cart, func()) { return s.store.Subscribe() }

// Close stops the mutation queue after draining it.
func (s *Synchronizer) Close() { s.queue.Close() }

// ensureCart lazily creates the remote cart and persists its id.
func (s *Synchronizer) ensureCart(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cartID != "" {
		return s.cartID, nil
	}

	remote, err := s.api.CreateCart(ctx)
	if err != nil {
		return "", err
	}
	s.cartID = remote.ID
	if err := s.sessions.SetCartID(ctx, s.sessionID, remote.ID); err != nil {
		s.log.Warn("persist cart id", zap.Error(err))
	}
	s.store.Apply(func(c *models.Cart) *models.Cart { return reconcile(c, remote) })
	return s.cartID, nil
}

// EnsureCart is the explicit "create" action of the cart API.
func (s *Synchronizer) EnsureCart(ctx context.Context) (*models.Cart, error) {
	if _, err := s.ensureCart(ctx); err != nil {
		return nil, err
	}
	return s.store.Current(), nil
}

// dispatch runs one mutation through the queue: optimistic apply now,
// remote call in order, reconcile on success, snapshot restore on failure.
func (s *Synchronizer) dispatch(
	ctx context.Context,
	reduce func(*models.Cart) *models.Cart,
	remote func(context.Context) (*models.Cart, error),
) error {
	snapshot := s.store.Apply(reduce)
	s.pending.Add(1)

	done := make(chan error, 1)
	err := s.queue.Enqueue(func() {
		server, err := remote(ctx)
		rest := s.pending.Add(-1)
		if err != nil {
			s.store.Restore(snapshot)
			done <- err
			return
		}
		// Skip the visible reconcile when later optimistic mutations are
		// already applied; their own reconcile carries the final state.
		if rest == 0 {
			s.store.Apply(func(c *models.Cart) *models.Cart { return reconcile(c, server) })
		}
		done <- nil
	})
	if err != nil {
		s.pending.Add(-1)
		s.store.Restore(snapshot)
		return err
	}

	mErr := <-done
	if mErr != nil {
		s.log.Warn("cart mutation failed, rolled back",
			zap.String("session", s.sessionID), zap.Error(mErr))
	}
	return mErr
}

// AddItem adds one variant to the cart, creating the cart first when none
// exists. The synthesized line carries the product display snapshot and a
// temporary id until the backend's authoritative cart replaces it.
func (s *Synchronizer) AddItem(ctx context.Context, variant models.Variant, product models.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	cartID, err := s.ensureCart(ctx)
	if err != nil {
		return err
	}

	line := models.CartLine{
		ID:       tempLinePrefix + uuid.NewString(),
		Quantity: quantity,
		Merchandise: models.Merchandise{
			ID:              variant.ID,
			Title:           variant.Title,
			Price:           variant.Price,
			SelectedOptions: variant.SelectedOptions,
			Product: models.LineProduct{
				Title:  product.Title,
				Handle: product.Handle,
				Images: product.Images,
			},
		},
	}

	return s.dispatch(ctx,
		func(c *models.Cart) *models.Cart { return applyAdd(c, line) },
		func(ctx context.Context) (*models.Cart, error) {
			return s.api.AddCartLines(ctx, cartID, []storefront.CartLineInput{
				{MerchandiseID: variant.ID, Quantity: quantity},
			})
		})
}

// UpdateItem rewrites a line's quantity. Quantity zero is translated into a
// removal rather than leaving a zero-quantity line.
func (s *Synchronizer) UpdateItem(ctx context.Context, lineID string, quantity int) error {
	s.mu.Lock()
	cartID := s.cartID
	s.mu.Unlock()
	if cartID == "" {
		return nil
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, lineID)
	}
	// A synthesized line has no backend id yet; adjust it locally and let
	// the in-flight add's reconcile carry the authoritative state.
	if isTempLine(lineID) {
		s.store.Apply(func(c *models.Cart) *models.Cart { return applyUpdate(c, lineID, quantity) })
		return nil
	}

	return s.dispatch(ctx,
		func(c *models.Cart) *models.Cart { return applyUpdate(c, lineID, quantity) },
		func(ctx context.Context) (*models.Cart, error) {
			return s.api.UpdateCartLines(ctx, cartID, []storefront.CartLineUpdate{
				{ID: lineID, Quantity: quantity},
			})
		})
}

// RemoveItem filters a line out of the cart.
func (s *Synchronizer) RemoveItem(ctx context.Context, lineID string) error {
	s.mu.Lock()
	cartID := s.cartID
	s.mu.Unlock()
	if cartID == "" {
		return nil
	}
	if isTempLine(lineID) {
		s.store.Apply(func(c *models.Cart) *models.Cart { return applyRemove(c, lineID) })
		return nil
	}

	return s.dispatch(ctx,
		func(c *models.Cart) *models.Cart { return applyRemove(c, lineID) },
		func(ctx context.Context) (*models.Cart, error) {
			return s.api.RemoveCartLines(ctx, cartID, []string{lineID})
		})
}
