package seller

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

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

// MockListingRepository is a mock implementation of listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) FindBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, sellerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[listing.Listing]), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[listing.Listing]), args.Error(1)
}

func (m *MockListingRepository) FindPendingApproval(ctx context.Context, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[listing.Listing]), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) CountApprovedBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) ExistsBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sellerID, productID)
	return args.Bool(0), args.Error(1)
}

// MockReviewRepository is a mock implementation of review.Repository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[review.Review]), args.Error(1)
}

func (m *MockReviewRepository) FindApprovedBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[review.Review]), args.Error(1)
}

func (m *MockReviewRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[review.Review]), args.Error(1)
}

func (m *MockReviewRepository) FindPendingModeration(ctx context.Context, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[review.Review]), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) CountPendingModeration(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AggregateApproved(ctx context.Context) (*review.RatingAggregate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.RatingAggregate), args.Error(1)
}

func (m *MockReviewRepository) AggregateForSeller(ctx context.Context, sellerID uuid.UUID) (*review.RatingAggregate, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.RatingAggregate), args.Error(1)
}

func (m *MockReviewRepository) RatingDistribution(ctx context.Context, sellerID uuid.UUID) (map[int]int64, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}

func (m *MockReviewRepository) ExistsBySellerAndCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sellerID, customerID)
	return args.Bool(0), args.Error(1)
}

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

func (m *MockMessageRepository) CountUnreadForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
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

// =============================================================================
// Policy and event stubs
// =============================================================================

// stubPolicies is a fixed-value marketplace.Policies implementation
type stubPolicies struct {
	disabled            bool
	registrationClosed  bool
	autoApproveSellers  bool
	defaultCommission   decimal.Decimal
	minCommission       decimal.Decimal
	maxCommission       decimal.Decimal
	maxProducts         int
	autoApproveProducts bool
	ratingDisabled      bool
	moderationRequired  bool
	purchaseRequired    bool
	messagingDisabled   bool
	anonymousAllowed    bool
}

func defaultPolicies() *stubPolicies {
	return &stubPolicies{
		defaultCommission: decimal.NewFromInt(10),
		minCommission:     decimal.Zero,
		maxCommission:     decimal.NewFromInt(50),
		maxProducts:       100,
		anonymousAllowed:  true,
	}
}

func (p *stubPolicies) Enabled() bool                          { return !p.disabled }
func (p *stubPolicies) SellerRegistrationAllowed() bool        { return !p.registrationClosed }
func (p *stubPolicies) AutoApproveSellers() bool               { return p.autoApproveSellers }
func (p *stubPolicies) DefaultCommissionRate() decimal.Decimal { return p.defaultCommission }
func (p *stubPolicies) CommissionBounds() (decimal.Decimal, decimal.Decimal) {
	return p.minCommission, p.maxCommission
}
func (p *stubPolicies) MaxProductsPerSeller() int       { return p.maxProducts }
func (p *stubPolicies) AutoApproveProducts() bool       { return p.autoApproveProducts }
func (p *stubPolicies) RatingEnabled() bool             { return !p.ratingDisabled }
func (p *stubPolicies) ReviewModerationRequired() bool  { return p.moderationRequired }
func (p *stubPolicies) PurchaseRequiredForReview() bool { return p.purchaseRequired }
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
