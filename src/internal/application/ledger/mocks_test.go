package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/customer"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/giftcard"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// Mock TransactionManager
// ===========================

type mockTx struct{}

type MockTransactionManager struct {
	InTransactionCallCount int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	m.InTransactionCallCount++
	return fn(mockTx{})
}

// ===========================
// Mock CardRepository
// ===========================

// MockCardRepository stores copies so a card loaded by a use case never
// aliases the stored one, like a real database.
type MockCardRepository struct {
	mu    sync.Mutex
	cards map[string]*giftcard.Card

	// UpdateErrors are returned, in order, by the next Update calls.
	UpdateErrors    []error
	UpdateCallCount int
	CreateCallCount int
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{cards: make(map[string]*giftcard.Card)}
}

func copyCard(c *giftcard.Card) *giftcard.Card {
	clone, err := giftcard.ReconstructCard(
		c.Code(), c.PIN(), c.Balance(), c.CustomerID(),
		c.CreatedAt(), c.UpdatedAt(), c.LastTransactionAt(), c.Version(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}

func (m *MockCardRepository) Create(tx shared.TransactionContext, card *giftcard.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCallCount++
	if _, exists := m.cards[card.Code().String()]; exists {
		return giftcard.ErrAlreadyActivated
	}
	m.cards[card.Code().String()] = copyCard(card)
	return nil
}

func (m *MockCardRepository) FindByCode(tx shared.TransactionContext, code giftcard.CardCode) (*giftcard.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.cards[code.String()]
	if !ok {
		return nil, giftcard.ErrCardNotFound
	}
	return copyCard(card), nil
}

func (m *MockCardRepository) Update(tx shared.TransactionContext, card *giftcard.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCallCount++
	if len(m.UpdateErrors) > 0 {
		err := m.UpdateErrors[0]
		m.UpdateErrors = m.UpdateErrors[1:]
		return err
	}
	stored, ok := m.cards[card.Code().String()]
	if !ok {
		return giftcard.ErrCardNotFound
	}
	if stored.Version() != card.Version()-1 {
		return shared.ErrConcurrentModification
	}
	m.cards[card.Code().String()] = copyCard(card)
	return nil
}

func (m *MockCardRepository) Delete(tx shared.TransactionContext, code giftcard.CardCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[code.String()]; !ok {
		return giftcard.ErrCardNotFound
	}
	delete(m.cards, code.String())
	return nil
}

func (m *MockCardRepository) List(tx shared.TransactionContext) ([]*giftcard.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*giftcard.Card, 0, len(m.cards))
	for _, card := range m.cards {
		all = append(all, copyCard(card))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code().String() < all[j].Code().String() })
	return all, nil
}

func (m *MockCardRepository) UnlinkCustomer(tx shared.TransactionContext, customerID shared.CustomerID) (int64, error) {
	return 0, nil
}

// put overwrites a stored card, bypassing the version check.
func (m *MockCardRepository) put(card *giftcard.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.Code().String()] = copyCard(card)
}

func (m *MockCardRepository) stored(code string) *giftcard.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cards[code]
}

// ===========================
// Mock TransactionLog
// ===========================

type MockTransactionLog struct {
	mu              sync.Mutex
	entries         []*giftcard.Transaction
	AppendCallCount int
}

func NewMockTransactionLog() *MockTransactionLog {
	return &MockTransactionLog{}
}

func (m *MockTransactionLog) Append(tx shared.TransactionContext, entry *giftcard.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCallCount++
	giftcard.EnsureIdentity(entry)
	for _, existing := range m.entries {
		if entry.RequestID() != "" && existing.CardCode() == entry.CardCode() && existing.RequestID() == entry.RequestID() {
			return giftcard.ErrDuplicateRequest
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockTransactionLog) FindByRequestID(tx shared.TransactionContext, code giftcard.CardCode, requestID string) (*giftcard.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.CardCode() == code && entry.RequestID() == requestID {
			return entry, nil
		}
	}
	return nil, giftcard.ErrTransactionNotFound
}

func (m *MockTransactionLog) Query(tx shared.TransactionContext, code giftcard.CardCode, q giftcard.HistoryQuery) giftcard.TransactionSeq {
	return func(yield func(*giftcard.Transaction, error) bool) {
		m.mu.Lock()
		selected := make([]*giftcard.Transaction, 0)
		for _, entry := range m.entries {
			if entry.CardCode() == code && !entry.Timestamp().Before(q.Since) {
				selected = append(selected, entry)
			}
		}
		m.mu.Unlock()

		sort.SliceStable(selected, func(i, j int) bool {
			if q.Ascending {
				return selected[i].Timestamp().Before(selected[j].Timestamp())
			}
			return selected[i].Timestamp().After(selected[j].Timestamp())
		})
		if q.Limit > 0 && len(selected) > q.Limit {
			selected = selected[:q.Limit]
		}
		for _, entry := range selected {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func (m *MockTransactionLog) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// ===========================
// Mock CustomerRepository
// ===========================

type MockCustomerRepository struct {
	customers     map[string]*customer.Customer
	SaveCallCount int
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*customer.Customer)}
}

func (m *MockCustomerRepository) Save(tx shared.TransactionContext, c *customer.Customer) error {
	m.SaveCallCount++
	m.customers[c.ID().String()] = c
	return nil
}

func (m *MockCustomerRepository) FindByID(tx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	c, ok := m.customers[id.String()]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (m *MockCustomerRepository) Search(tx shared.TransactionContext, criteria customer.SearchCriteria) ([]*customer.Customer, error) {
	return nil, nil
}

func (m *MockCustomerRepository) Update(tx shared.TransactionContext, c *customer.Customer) error {
	m.customers[c.ID().String()] = c
	return nil
}

func (m *MockCustomerRepository) Delete(tx shared.TransactionContext, id customer.CustomerID) error {
	delete(m.customers, id.String())
	return nil
}

func (m *MockCustomerRepository) List(tx shared.TransactionContext) ([]*customer.Customer, error) {
	return nil, nil
}

// ===========================
// Mock EventPublisher
// ===========================

type MockEventPublisher struct {
	mu     sync.Mutex
	Events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(event shared.DomainEvent) error {
	return m.PublishBatch([]shared.DomainEvent{event})
}

func (m *MockEventPublisher) PublishBatch(events []shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, events...)
	return nil
}

func (m *MockEventPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.EventType())
	}
	return types
}

// fastRetry keeps retry tests quick.
func fastRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: time.Microsecond, MaxDelay: time.Millisecond}
}
