package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/billing"
	"github.com/minimart/pos-api/internal/domain/repository"
	"github.com/minimart/pos-api/pkg/apperror"
)

// CartService keeps the open carts of active till sessions in memory.
// Carts are working state, not records: nothing is persisted until the
// checkout is recorded as a sale.
type CartService struct {
	productRepo repository.ProductRepository
	policy      billing.Policy
	ttl         time.Duration

	mu    sync.RWMutex
	carts map[string]*cartSession
}

type cartSession struct {
	cart     *billing.Cart
	lastSeen time.Time
}

// NewCartService creates a new cart service and starts the janitor that
// drops carts idle for longer than the TTL
func NewCartService(productRepo repository.ProductRepository, policy billing.Policy, ttl time.Duration) *CartService {
	s := &CartService{
		productRepo: productRepo,
		policy:      policy,
		ttl:         ttl,
		carts:       make(map[string]*cartSession),
	}
	go s.cleanupLoop()
	return s
}

func (s *CartService) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for id, session := range s.carts {
			if time.Since(session.lastSeen) > s.ttl {
				delete(s.carts, id)
			}
		}
		s.mu.Unlock()
	}
}

// CartLineView is one cart line rendered for API responses
type CartLineView struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// CartView is a cart with its computed totals rendered for API responses
type CartView struct {
	ID         string         `json:"id"`
	Items      []CartLineView `json:"items"`
	BagCharge  bool           `json:"bag_charge"`
	SubTotal   float64        `json:"sub_total"`
	Tax        float64        `json:"tax"`
	BagFee     float64        `json:"bag_fee"`
	Discount   float64        `json:"discount"`
	GrandTotal float64        `json:"grand_total"`
}

// CreateCart opens a new empty cart and returns its view
func (s *CartService) CreateCart() *CartView {
	id := uuid.New().String()
	cart := billing.NewCart(s.policy)

	s.mu.Lock()
	s.carts[id] = &cartSession{
		cart:     cart,
		lastSeen: time.Now(),
	}
	s.mu.Unlock()

	return s.view(id, cart)
}

// GetCart returns the current state of a cart
func (s *CartService) GetCart(cartID string) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view(cartID, session.cart), nil
}

// AddItem looks up the product and adds the quantity to the cart. The add
// is rejected when it would exceed the current stock.
func (s *CartService) AddItem(ctx context.Context, cartID, productCode string, quantity int) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := session.cart.AddItem(product.Code, product.Name, product.Price, quantity, product.StockQuantity); err != nil {
		return nil, err
	}
	session.lastSeen = time.Now()
	return s.view(cartID, session.cart), nil
}

// SetQuantity replaces the quantity of a line already in the cart
func (s *CartService) SetQuantity(ctx context.Context, cartID, productCode string, quantity int) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := session.cart.SetQuantity(product.Code, quantity, product.StockQuantity); err != nil {
		return nil, err
	}
	session.lastSeen = time.Now()
	return s.view(cartID, session.cart), nil
}

// RemoveItem removes a line from the cart. Removing an absent product is
// a no-op.
func (s *CartService) RemoveItem(cartID, productCode string) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session.cart.RemoveItem(productCode)
	session.lastSeen = time.Now()
	return s.view(cartID, session.cart), nil
}

// SetBagCharge toggles the carry bag fee on the cart
func (s *CartService) SetBagCharge(cartID string, on bool) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session.cart.SetBagCharge(on)
	session.lastSeen = time.Now()
	return s.view(cartID, session.cart), nil
}

// ClearCart empties a cart but keeps the session open
func (s *CartService) ClearCart(cartID string) (*CartView, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session.cart.Clear()
	session.lastSeen = time.Now()
	return s.view(cartID, session.cart), nil
}

// CloseCart drops a cart session entirely
func (s *CartService) CloseCart(cartID string) {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
}

// Checkout converts the cart lines into a checkout input. The cart is not
// closed here; the handler closes it once the sale is recorded.
func (s *CartService) Checkout(cartID string) ([]SaleItemInput, bool, error) {
	session, err := s.session(cartID)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if session.cart.IsEmpty() {
		return nil, false, apperror.NewBadRequestError("Cart is empty")
	}

	lines := session.cart.Lines()
	items := make([]SaleItemInput, len(lines))
	for i, line := range lines {
		items[i] = SaleItemInput{ProductCode: line.ProductCode, Quantity: line.Quantity}
	}
	return items, session.cart.BagCharge(), nil
}

func (s *CartService) session(cartID string) (*cartSession, error) {
	s.mu.RLock()
	session, ok := s.carts[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return session, nil
}

// view renders a cart. Callers must hold at least a read lock.
func (s *CartService) view(id string, cart *billing.Cart) *CartView {
	lines := cart.Lines()
	totals := cart.Totals()

	items := make([]CartLineView, len(lines))
	for i, line := range lines {
		items[i] = CartLineView{
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			UnitPrice:   float64(line.UnitPrice) / 100,
			Quantity:    line.Quantity,
			LineTotal:   float64(line.Total()) / 100,
		}
	}

	return &CartView{
		ID:         id,
		Items:      items,
		BagCharge:  cart.BagCharge(),
		SubTotal:   float64(totals.SubTotal) / 100,
		Tax:        float64(totals.Tax) / 100,
		BagFee:     float64(totals.BagFee) / 100,
		Discount:   float64(totals.Discount) / 100,
		GrandTotal: float64(totals.GrandTotal) / 100,
	}
}
