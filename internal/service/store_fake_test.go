package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
)

// fakeStore is an in-memory repository.Store. WithTx runs against a deep
// copy of the state and swaps it in only on success, so rollback behavior
// can be asserted in tests.
type fakeStore struct {
	mu    sync.Mutex
	state *fakeState

	// ledgerErr, when set, makes CreateInventoryTransaction fail. Lets a
	// test force a failure late in a transaction, after earlier writes
	// have already happened.
	ledgerErr error
}

type fakeState struct {
	nextID    int64
	products  map[int64]domain.Product
	carts     map[int64]domain.Cart
	cartItems map[int64]domain.CartItem
	orders    map[int64]domain.Order
	items     map[int64]domain.OrderItem
	ledger    map[int64]domain.InventoryTransaction
	users     map[int64]domain.User
	sessions  map[string]domain.Session
	addresses map[int64]domain.Address
	feedback  map[int64]domain.Feedback
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: &fakeState{
		products:  map[int64]domain.Product{},
		carts:     map[int64]domain.Cart{},
		cartItems: map[int64]domain.CartItem{},
		orders:    map[int64]domain.Order{},
		items:     map[int64]domain.OrderItem{},
		ledger:    map[int64]domain.InventoryTransaction{},
		users:     map[int64]domain.User{},
		sessions:  map[string]domain.Session{},
		addresses: map[int64]domain.Address{},
		feedback:  map[int64]domain.Feedback{},
	}}
}

func (st *fakeState) clone() *fakeState {
	c := &fakeState{
		nextID:    st.nextID,
		products:  map[int64]domain.Product{},
		carts:     map[int64]domain.Cart{},
		cartItems: map[int64]domain.CartItem{},
		orders:    map[int64]domain.Order{},
		items:     map[int64]domain.OrderItem{},
		ledger:    map[int64]domain.InventoryTransaction{},
		users:     map[int64]domain.User{},
		sessions:  map[string]domain.Session{},
		addresses: map[int64]domain.Address{},
		feedback:  map[int64]domain.Feedback{},
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.carts {
		c.carts[k] = v
	}
	for k, v := range st.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	for k, v := range st.ledger {
		c.ledger[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.sessions {
		c.sessions[k] = v
	}
	for k, v := range st.addresses {
		c.addresses[k] = v
	}
	for k, v := range st.feedback {
		c.feedback[k] = v
	}
	return c
}

func (st *fakeState) id() int64 {
	st.nextID++
	return st.nextID
}

var uniqueViolation = &pgconn.PgError{Code: "23505"}

func (s *fakeStore) WithTx(ctx context.Context, fn func(q repository.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeStore{state: s.state.clone(), ledgerErr: s.ledgerErr}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// seedProduct inserts a product directly, bypassing the service layer.
func (s *fakeStore) seedProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.state.id()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.state.products[p.ID] = p
	return p
}

// Products

func (s *fakeStore) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (domain.Product, error) {
	for _, p := range s.state.products {
		if p.Slug == arg.Slug {
			return domain.Product{}, uniqueViolation
		}
	}
	p := domain.Product{
		ID:            s.state.id(),
		Name:          arg.Name,
		Slug:          arg.Slug,
		Description:   arg.Description,
		Category:      arg.Category,
		Price:         arg.Price,
		StockQuantity: arg.StockQuantity,
		Weight:        arg.Weight,
		Dimensions:    arg.Dimensions,
		ImageURL:      arg.ImageURL,
		IsActive:      arg.IsActive,
		IsFeatured:    arg.IsFeatured,
		IsBestseller:  arg.IsBestseller,
		CreatedAt:     time.Now(),
		ModifiedAt:    time.Now(),
	}
	s.state.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	p, ok := s.state.products[id]
	if !ok {
		return domain.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	for _, p := range s.state.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, repository.ErrNotFound
}

func (s *fakeStore) GetProductForUpdate(ctx context.Context, id int64) (domain.Product, error) {
	return s.GetProductByID(ctx, id)
}

func (s *fakeStore) ListProducts(ctx context.Context, arg repository.ListProductsParams) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.state.products {
		if !arg.IncludeInactive && !p.IsActive {
			continue
		}
		if arg.Search != "" {
			needle := strings.ToLower(arg.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if len(arg.Categories) > 0 {
			match := false
			for _, c := range arg.Categories {
				if string(p.Category) == c {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, p)
	}
	sortProducts(out, arg.OrderBy)
	return out, nil
}

func sortProducts(ps []domain.Product, orderBy string) {
	sort.Slice(ps, func(i, j int) bool {
		switch orderBy {
		case "name DESC":
			return ps[i].Name > ps[j].Name
		case "price ASC, name ASC":
			if !ps[i].Price.Equal(ps[j].Price) {
				return ps[i].Price.LessThan(ps[j].Price)
			}
			return ps[i].Name < ps[j].Name
		case "price DESC, name ASC":
			if !ps[i].Price.Equal(ps[j].Price) {
				return ps[i].Price.GreaterThan(ps[j].Price)
			}
			return ps[i].Name < ps[j].Name
		case "created_at DESC":
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		default:
			return ps[i].Name < ps[j].Name
		}
	})
}

func (s *fakeStore) ListFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.listFlag(limit, func(p domain.Product) bool { return p.IsFeatured })
}

func (s *fakeStore) ListBestsellerProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.listFlag(limit, func(p domain.Product) bool { return p.IsBestseller })
}

func (s *fakeStore) listFlag(limit int, keep func(domain.Product) bool) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.state.products {
		if p.IsActive && keep(p) {
			out = append(out, p)
		}
	}
	sortProducts(out, "created_at DESC")
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) ListNewArrivals(ctx context.Context, since time.Time, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.state.products {
		if p.IsActive && p.CreatedAt.After(since) {
			out = append(out, p)
		}
	}
	sortProducts(out, "created_at DESC")
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) ListRelatedProducts(ctx context.Context, category domain.Category, excludeSlug string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.state.products {
		if p.IsActive && p.Category == category && p.Slug != excludeSlug {
			out = append(out, p)
		}
	}
	sortProducts(out, "")
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) ExistingCategories(ctx context.Context) ([]domain.Category, error) {
	seen := map[domain.Category]bool{}
	for _, p := range s.state.products {
		if p.IsActive {
			seen[p.Category] = true
		}
	}
	var out []domain.Category
	for _, c := range domain.Categories {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (domain.Product, error) {
	p, ok := s.state.products[arg.ID]
	if !ok {
		return domain.Product{}, repository.ErrNotFound
	}
	p.Name = arg.Name
	p.Slug = arg.Slug
	p.Description = arg.Description
	p.Category = arg.Category
	p.Price = arg.Price
	p.Weight = arg.Weight
	p.Dimensions = arg.Dimensions
	p.ImageURL = arg.ImageURL
	p.IsActive = arg.IsActive
	p.IsFeatured = arg.IsFeatured
	p.IsBestseller = arg.IsBestseller
	p.ModifiedAt = time.Now()
	s.state.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) SetProductStock(ctx context.Context, id int64, quantity int) error {
	p, ok := s.state.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity = quantity
	s.state.products[id] = p
	return nil
}

func (s *fakeStore) DecrementProductStock(ctx context.Context, id int64, quantity int) error {
	p, ok := s.state.products[id]
	if !ok || p.StockQuantity < quantity {
		return repository.ErrNotFound
	}
	p.StockQuantity -= quantity
	s.state.products[id] = p
	return nil
}

func (s *fakeStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, p := range s.state.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// Carts

func (s *fakeStore) CreateCart(ctx context.Context, arg repository.CreateCartParams) (domain.Cart, error) {
	for _, c := range s.state.carts {
		if !c.IsActive {
			continue
		}
		if arg.UserID != nil && c.UserID != nil && *c.UserID == *arg.UserID {
			return domain.Cart{}, uniqueViolation
		}
		if arg.SessionToken != nil && c.SessionToken != nil && *c.SessionToken == *arg.SessionToken {
			return domain.Cart{}, uniqueViolation
		}
	}
	c := domain.Cart{
		ID:           s.state.id(),
		UserID:       arg.UserID,
		SessionToken: arg.SessionToken,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.state.carts[c.ID] = c
	return c, nil
}

func (s *fakeStore) GetCartByID(ctx context.Context, id int64) (domain.Cart, error) {
	c, ok := s.state.carts[id]
	if !ok {
		return domain.Cart{}, repository.ErrNotFound
	}
	return c, nil
}

func (s *fakeStore) GetActiveCartByUser(ctx context.Context, userID int64) (domain.Cart, error) {
	for _, c := range s.state.carts {
		if c.IsActive && c.UserID != nil && *c.UserID == userID {
			return c, nil
		}
	}
	return domain.Cart{}, repository.ErrNotFound
}

func (s *fakeStore) GetActiveCartBySession(ctx context.Context, token string) (domain.Cart, error) {
	for _, c := range s.state.carts {
		if c.IsActive && c.UserID == nil && c.SessionToken != nil && *c.SessionToken == token {
			return c, nil
		}
	}
	return domain.Cart{}, repository.ErrNotFound
}

func (s *fakeStore) DeactivateCart(ctx context.Context, id int64) error {
	c, ok := s.state.carts[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = false
	s.state.carts[id] = c
	return nil
}

func (s *fakeStore) UpsertCartItem(ctx context.Context, arg repository.UpsertCartItemParams) (domain.CartItem, error) {
	for id, item := range s.state.cartItems {
		if item.CartID == arg.CartID && item.ProductID == arg.ProductID {
			item.Quantity += arg.Quantity
			item.UpdatedAt = time.Now()
			s.state.cartItems[id] = item
			return item, nil
		}
	}
	item := domain.CartItem{
		ID:        s.state.id(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		UnitPrice: arg.UnitPrice,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.state.cartItems[item.ID] = item
	return item, nil
}

func (s *fakeStore) GetCartItemByID(ctx context.Context, id int64) (domain.CartItem, error) {
	item, ok := s.state.cartItems[id]
	if !ok {
		return domain.CartItem{}, repository.ErrNotFound
	}
	return item, nil
}

func (s *fakeStore) SetCartItemQuantity(ctx context.Context, id int64, quantity int) error {
	item, ok := s.state.cartItems[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	s.state.cartItems[id] = item
	return nil
}

func (s *fakeStore) DeleteCartItem(ctx context.Context, id int64) error {
	if _, ok := s.state.cartItems[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.state.cartItems, id)
	return nil
}

func (s *fakeStore) ListCartItems(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, item := range s.state.cartItems {
		if item.CartID == cartID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) ListCartLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	items, _ := s.ListCartItems(ctx, cartID)
	var out []domain.CartLine
	for _, item := range items {
		p := s.state.products[item.ProductID]
		out = append(out, domain.CartLine{
			CartItem:     item,
			ProductName:  p.Name,
			ProductSlug:  p.Slug,
			ImageURL:     p.ImageURL,
			CurrentPrice: p.Price,
		})
	}
	return out, nil
}

func (s *fakeStore) ClearCartItems(ctx context.Context, cartID int64) error {
	for id, item := range s.state.cartItems {
		if item.CartID == cartID {
			delete(s.state.cartItems, id)
		}
	}
	return nil
}

// Orders

func (s *fakeStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (domain.Order, error) {
	o := domain.Order{
		ID:            s.state.id(),
		OrderNumber:   arg.OrderNumber,
		UserID:        arg.UserID,
		FullName:      arg.FullName,
		Email:         arg.Email,
		Address:       arg.Address,
		PaymentMethod: arg.PaymentMethod,
		Status:        arg.Status,
		Subtotal:      arg.Subtotal,
		ShippingFee:   arg.ShippingFee,
		TotalAmount:   arg.TotalAmount,
		PlacedAt:      time.Now(),
	}
	s.state.orders[o.ID] = o
	return o, nil
}

func (s *fakeStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (domain.OrderItem, error) {
	item := domain.OrderItem{
		ID:        s.state.id(),
		OrderID:   arg.OrderID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		UnitPrice: arg.UnitPrice,
	}
	s.state.items[item.ID] = item
	return item, nil
}

func (s *fakeStore) GetOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	o, ok := s.state.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (s *fakeStore) GetOrderByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	for _, o := range s.state.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return domain.Order{}, repository.ErrNotFound
}

func (s *fakeStore) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.state.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeStore) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, item := range s.state.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	o, ok := s.state.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	s.state.orders[id] = o
	return nil
}

// Inventory

func (s *fakeStore) CreateInventoryTransaction(ctx context.Context, arg repository.CreateInventoryTransactionParams) (domain.InventoryTransaction, error) {
	if s.ledgerErr != nil {
		return domain.InventoryTransaction{}, s.ledgerErr
	}
	t := domain.InventoryTransaction{
		ID:             s.state.id(),
		ProductID:      arg.ProductID,
		Type:           arg.Type,
		QuantityChange: arg.QuantityChange,
		StockBefore:    arg.StockBefore,
		StockAfter:     arg.StockAfter,
		OrderID:        arg.OrderID,
		ActorID:        arg.ActorID,
		Note:           arg.Note,
		CreatedAt:      time.Now(),
	}
	s.state.ledger[t.ID] = t
	return t, nil
}

func (s *fakeStore) ListInventoryTransactions(ctx context.Context, arg repository.ListInventoryTransactionsParams) ([]domain.InventoryTransaction, error) {
	var out []domain.InventoryTransaction
	for _, t := range s.state.ledger {
		if arg.ProductID != nil && t.ProductID != *arg.ProductID {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if arg.Limit > 0 && len(out) > arg.Limit {
		out = out[:arg.Limit]
	}
	return out, nil
}

func (s *fakeStore) SumMovementsByType(ctx context.Context, from, to time.Time) ([]domain.MovementSummary, error) {
	byType := map[domain.TransactionType]*domain.MovementSummary{}
	for _, t := range s.state.ledger {
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		sum, ok := byType[t.Type]
		if !ok {
			sum = &domain.MovementSummary{Type: t.Type}
			byType[t.Type] = sum
		}
		sum.Transactions++
		sum.TotalQuantity += t.QuantityChange
	}
	var out []domain.MovementSummary
	for _, sum := range byType {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *fakeStore) TopMovedProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductMovement, error) {
	sold := map[int64]int{}
	for _, t := range s.state.ledger {
		if t.Type != domain.TransactionSale {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		sold[t.ProductID] += -t.QuantityChange
	}
	var out []domain.ProductMovement
	for id, units := range sold {
		out = append(out, domain.ProductMovement{
			ProductID:   id,
			ProductName: s.state.products[id].Name,
			UnitsSold:   units,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) ListLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.state.products {
		if p.IsActive && p.StockQuantity <= threshold {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	return out, nil
}

// Users and sessions

func (s *fakeStore) CreateUser(ctx context.Context, arg repository.CreateUserParams) (domain.User, error) {
	for _, u := range s.state.users {
		if strings.EqualFold(u.Email, arg.Email) {
			return domain.User{}, uniqueViolation
		}
	}
	u := domain.User{
		ID:            s.state.id(),
		Email:         arg.Email,
		PasswordHash:  arg.PasswordHash,
		FullName:      arg.FullName,
		ContactNumber: arg.ContactNumber,
		HouseAddress:  arg.HouseAddress,
		IsAdmin:       arg.IsAdmin,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.state.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range s.state.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (s *fakeStore) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, ok := s.state.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) CreateSession(ctx context.Context, arg repository.CreateSessionParams) (domain.Session, error) {
	sess := domain.Session{
		ID:        s.state.id(),
		Token:     arg.Token,
		UserID:    arg.UserID,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: time.Now(),
	}
	s.state.sessions[sess.Token] = sess
	return sess, nil
}

func (s *fakeStore) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	sess, ok := s.state.sessions[token]
	if !ok {
		return domain.Session{}, repository.ErrNotFound
	}
	return sess, nil
}

func (s *fakeStore) AttachSessionUser(ctx context.Context, token string, userID int64) error {
	sess, ok := s.state.sessions[token]
	if !ok {
		return repository.ErrNotFound
	}
	sess.UserID = &userID
	s.state.sessions[token] = sess
	return nil
}

func (s *fakeStore) DeleteSession(ctx context.Context, token string) error {
	delete(s.state.sessions, token)
	return nil
}

func (s *fakeStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for token, sess := range s.state.sessions {
		if sess.ExpiresAt.Before(now) {
			delete(s.state.sessions, token)
			n++
		}
	}
	return n, nil
}

// Addresses

func (s *fakeStore) CreateAddress(ctx context.Context, arg repository.CreateAddressParams) (domain.Address, error) {
	a := domain.Address{
		ID:            s.state.id(),
		UserID:        arg.UserID,
		Recipient:     arg.Recipient,
		Line1:         arg.Line1,
		City:          arg.City,
		PostalCode:    arg.PostalCode,
		ContactNumber: arg.ContactNumber,
		IsDefault:     arg.IsDefault,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.state.addresses[a.ID] = a
	return a, nil
}

func (s *fakeStore) GetAddressByID(ctx context.Context, id int64) (domain.Address, error) {
	a, ok := s.state.addresses[id]
	if !ok {
		return domain.Address{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *fakeStore) ListAddressesByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range s.state.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *fakeStore) UpdateAddress(ctx context.Context, arg repository.UpdateAddressParams) (domain.Address, error) {
	a, ok := s.state.addresses[arg.ID]
	if !ok {
		return domain.Address{}, repository.ErrNotFound
	}
	a.Recipient = arg.Recipient
	a.Line1 = arg.Line1
	a.City = arg.City
	a.PostalCode = arg.PostalCode
	a.ContactNumber = arg.ContactNumber
	a.IsDefault = arg.IsDefault
	a.UpdatedAt = time.Now()
	s.state.addresses[a.ID] = a
	return a, nil
}

func (s *fakeStore) ClearDefaultAddress(ctx context.Context, userID int64) error {
	for id, a := range s.state.addresses {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			s.state.addresses[id] = a
		}
	}
	return nil
}

func (s *fakeStore) DeleteAddress(ctx context.Context, id int64) error {
	if _, ok := s.state.addresses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.state.addresses, id)
	return nil
}

// Feedback

func (s *fakeStore) CreateFeedback(ctx context.Context, arg repository.CreateFeedbackParams) (domain.Feedback, error) {
	f := domain.Feedback{
		ID:        s.state.id(),
		UserID:    arg.UserID,
		Name:      arg.Name,
		Email:     arg.Email,
		Message:   arg.Message,
		CreatedAt: time.Now(),
	}
	s.state.feedback[f.ID] = f
	return f, nil
}

func (s *fakeStore) ListFeedback(ctx context.Context, limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, f := range s.state.feedback {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Reporting

func (s *fakeStore) CountOrdersByStatus(ctx context.Context, from, to time.Time) ([]domain.StatusCount, error) {
	counts := map[domain.OrderStatus]int64{}
	for _, o := range s.state.orders {
		if o.PlacedAt.Before(from) || !o.PlacedAt.Before(to) {
			continue
		}
		counts[o.Status]++
	}
	var out []domain.StatusCount
	for status, n := range counts {
		out = append(out, domain.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (s *fakeStore) SalesByMonth(ctx context.Context, from, to time.Time) ([]domain.MonthlySales, error) {
	byMonth := map[time.Time]*domain.MonthlySales{}
	for _, o := range s.state.orders {
		if o.Status != domain.OrderStatusCompleted {
			continue
		}
		if o.PlacedAt.Before(from) || !o.PlacedAt.Before(to) {
			continue
		}
		month := time.Date(o.PlacedAt.Year(), o.PlacedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		m, ok := byMonth[month]
		if !ok {
			m = &domain.MonthlySales{Month: month}
			byMonth[month] = m
		}
		m.Orders++
		m.Revenue = m.Revenue.Add(o.TotalAmount)
	}
	var out []domain.MonthlySales
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

func (s *fakeStore) TopSellingProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	byProduct := map[int64]*domain.ProductSales{}
	for _, item := range s.state.items {
		o := s.state.orders[item.OrderID]
		if o.Status == domain.OrderStatusCancelled {
			continue
		}
		if o.PlacedAt.Before(from) || !o.PlacedAt.Before(to) {
			continue
		}
		ps, ok := byProduct[item.ProductID]
		if !ok {
			ps = &domain.ProductSales{
				ProductID:   item.ProductID,
				ProductName: s.state.products[item.ProductID].Name,
			}
			byProduct[item.ProductID] = ps
		}
		ps.UnitsSold += int64(item.Quantity)
		ps.Revenue = ps.Revenue.Add(item.TotalPrice())
	}
	var out []domain.ProductSales
	for _, ps := range byProduct {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) DashboardCounts(ctx context.Context, lowStockThreshold int) (domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	for _, p := range s.state.products {
		if p.IsActive {
			c.Products++
			if p.StockQuantity <= lowStockThreshold {
				c.LowStock++
			}
		}
	}
	for _, cart := range s.state.carts {
		if cart.IsActive {
			c.ActiveCarts++
		}
	}
	for _, o := range s.state.orders {
		c.Orders++
		if o.Status == domain.OrderStatusPending {
			c.PendingOrders++
		}
		if o.Status == domain.OrderStatusCompleted {
			c.Revenue = c.Revenue.Add(o.TotalAmount)
		}
	}
	c.Users = int64(len(s.state.users))
	return c, nil
}

var _ repository.Store = (*fakeStore)(nil)
