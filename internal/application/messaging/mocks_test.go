package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository is a mock implementation of messaging.Repository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messaging.Message), args.Error(1)
}

func (m *MockMessageRepository) FindConversation(ctx context.Context, sellerID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	args := m.Called(ctx, sellerID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[messaging.Message]), args.Error(1)
}

func (m *MockMessageRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[messaging.Message]), args.Error(1)
}

func (m *MockMessageRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[messaging.Message]), args.Error(1)
}

func (m *MockMessageRepository) Save(ctx context.Context, msg *messaging.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) ExistsBetween(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sellerID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) CountUnreadForSeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, sellerID, customerID uuid.UUID, sellerReader bool) error {
	args := m.Called(ctx, sellerID, customerID, sellerReader)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkAllRead(ctx context.Context, participantID uuid.UUID, sellerParticipant bool) (int64, error) {
	args := m.Called(ctx, participantID, sellerParticipant)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountUnreadForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSellerRepository is a mock implementation of seller.Repository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*seller.Seller, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindBySubdomain(ctx context.Context, subdomain string) (*seller.Seller, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*seller.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[seller.Seller], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[seller.Seller]), args.Error(1)
}

func (m *MockSellerRepository) FindByApprovalStatus(ctx context.Context, status seller.ApprovalStatus, filter shared.Filter) (*shared.Paginated[seller.Seller], error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[seller.Seller]), args.Error(1)
}

func (m *MockSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSellerRepository) SaveWithLock(ctx context.Context, s *seller.Seller) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSellerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSellerRepository) CountByApprovalStatus(ctx context.Context, status seller.ApprovalStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSellerRepository) ExistsByCustomerID(ctx context.Context, customerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSellerRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	args := m.Called(ctx, subdomain)
	return args.Bool(0), args.Error(1)
}

// stubPolicies is a fixed-value marketplace.Policies implementation
type stubPolicies struct {
	disabled          bool
	messagingDisabled bool
	anonymousAllowed  bool
}

func defaultPolicies() *stubPolicies {
	return &stubPolicies{anonymousAllowed: true}
}

func (p *stubPolicies) Enabled() bool                          { return !p.disabled }
func (p *stubPolicies) SellerRegistrationAllowed() bool        { return true }
func (p *stubPolicies) AutoApproveSellers() bool               { return false }
func (p *stubPolicies) DefaultCommissionRate() decimal.Decimal { return decimal.NewFromInt(10) }
func (p *stubPolicies) CommissionBounds() (decimal.Decimal, decimal.Decimal) {
	return decimal.Zero, decimal.NewFromInt(100)
}
func (p *stubPolicies) MaxProductsPerSeller() int       { return 100 }
func (p *stubPolicies) AutoApproveProducts() bool       { return false }
func (p *stubPolicies) RatingEnabled() bool             { return true }
func (p *stubPolicies) ReviewModerationRequired() bool  { return false }
func (p *stubPolicies) PurchaseRequiredForReview() bool { return false }
func (p *stubPolicies) MessagingEnabled() bool          { return !p.messagingDisabled }
func (p *stubPolicies) AnonymousMessagingAllowed() bool { return p.anonymousAllowed }

// stubPublisher records published events
type stubPublisher struct {
	events []shared.DomainEvent
}

func (p *stubPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
