package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service     *ListingService
	listingRepo *MockListingRepository
	sellerRepo  *MockSellerRepository
	policies    *stubPolicies
	publisher   *stubPublisher
}

func newFixture(policies *stubPolicies) *serviceFixture {
	listingRepo := new(MockListingRepository)
	sellerRepo := new(MockSellerRepository)
	publisher := &stubPublisher{}
	stats := sellerapp.NewStatsService(sellerRepo, new(MockReviewRepository), listingRepo)
	return &serviceFixture{
		service:     NewListingService(listingRepo, sellerRepo, policies, publisher, stats),
		listingRepo: listingRepo,
		sellerRepo:  sellerRepo,
		policies:    policies,
		publisher:   publisher,
	}
}

func newApprovedSeller(t *testing.T) *seller.Seller {
	t.Helper()
	sel, err := seller.NewSeller(uuid.New(), "Acme Trading Co", "acmetrading", seller.ApprovalApproved, decimal.NewFromInt(10))
	require.NoError(t, err)
	sel.ClearDomainEvents()
	return sel
}

func TestListingService_ListProduct_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel := newApprovedSeller(t)
	productID := uuid.New()

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(3), nil)
	f.listingRepo.On("ExistsBySellerAndProduct", ctx, sel.ID, productID).Return(false, nil)
	f.listingRepo.On("Save", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil)
	f.sellerRepo.On("SaveWithLock", ctx, sel).Return(nil)

	result, err := f.service.ListProduct(ctx, ListProductRequest{
		SellerID:  sel.ID,
		ProductID: productID,
		Condition: "used",
	})

	require.NoError(t, err)
	assert.Equal(t, "used", result.Condition)
	assert.False(t, result.IsApproved)
	// CountBySeller runs twice: quota check, then the recount
	assert.Equal(t, 3, sel.ProductCount)
	f.listingRepo.AssertExpectations(t)
}

func TestListingService_ListProduct_AutoApprove(t *testing.T) {
	policies := defaultPolicies()
	policies.autoApproveProducts = true
	f := newFixture(policies)
	ctx := context.Background()
	sel := newApprovedSeller(t)
	productID := uuid.New()

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(0), nil)
	f.listingRepo.On("ExistsBySellerAndProduct", ctx, sel.ID, productID).Return(false, nil)
	f.listingRepo.On("Save", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil)
	f.sellerRepo.On("SaveWithLock", ctx, sel).Return(nil)

	result, err := f.service.ListProduct(ctx, ListProductRequest{SellerID: sel.ID, ProductID: productID})

	require.NoError(t, err)
	assert.True(t, result.IsApproved)
	assert.Equal(t, "new", result.Condition)
}

func TestListingService_ListProduct_QuotaBoundary(t *testing.T) {
	policies := defaultPolicies()
	policies.maxProducts = 5
	f := newFixture(policies)
	ctx := context.Background()
	sel := newApprovedSeller(t)
	productID := uuid.New()

	// Exactly at the limit: the next listing is refused
	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(5), nil)

	_, err := f.service.ListProduct(ctx, ListProductRequest{SellerID: sel.ID, ProductID: productID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "QUOTA_EXCEEDED", domainErr.Code)
	f.listingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListingService_ListProduct_OneBelowQuota(t *testing.T) {
	policies := defaultPolicies()
	policies.maxProducts = 5
	f := newFixture(policies)
	ctx := context.Background()
	sel := newApprovedSeller(t)
	productID := uuid.New()

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(4), nil)
	f.listingRepo.On("ExistsBySellerAndProduct", ctx, sel.ID, productID).Return(false, nil)
	f.listingRepo.On("Save", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil)
	f.sellerRepo.On("SaveWithLock", ctx, sel).Return(nil)

	_, err := f.service.ListProduct(ctx, ListProductRequest{SellerID: sel.ID, ProductID: productID})

	require.NoError(t, err)
}

func TestListingService_ListProduct_Duplicate(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel := newApprovedSeller(t)
	productID := uuid.New()

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(0), nil)
	f.listingRepo.On("ExistsBySellerAndProduct", ctx, sel.ID, productID).Return(true, nil)

	_, err := f.service.ListProduct(ctx, ListProductRequest{SellerID: sel.ID, ProductID: productID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestListingService_ListProduct_SellerCannotSell(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel, err := seller.NewSeller(uuid.New(), "Acme Trading Co", "acmetrading", seller.ApprovalPending, decimal.NewFromInt(10))
	require.NoError(t, err)

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)

	_, err = f.service.ListProduct(ctx, ListProductRequest{SellerID: sel.ID, ProductID: uuid.New()})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestListingService_ListProduct_MarketplaceDisabled(t *testing.T) {
	policies := defaultPolicies()
	policies.disabled = true
	f := newFixture(policies)

	_, err := f.service.ListProduct(context.Background(), ListProductRequest{SellerID: uuid.New(), ProductID: uuid.New()})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "POLICY_VIOLATION", domainErr.Code)
}

func newTestListing(t *testing.T, approved bool) *listing.Listing {
	t.Helper()
	l, err := listing.NewListing(uuid.New(), uuid.New(), listing.ConditionNew, approved)
	require.NoError(t, err)
	l.ClearDomainEvents()
	return l
}

func TestListingService_Approve_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	lst := newTestListing(t, false)

	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("Save", ctx, lst).Return(nil)

	result, err := f.service.Approve(ctx, lst.ID)

	require.NoError(t, err)
	assert.True(t, result.IsApproved)
	assert.Len(t, f.publisher.events, 1)
}

func TestListingService_Reject_ReasonOnEventOnly(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	lst := newTestListing(t, true)

	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("Save", ctx, lst).Return(nil)

	result, err := f.service.Reject(ctx, lst.ID, "counterfeit suspicion")

	require.NoError(t, err)
	assert.False(t, result.IsApproved)

	require.Len(t, f.publisher.events, 1)
	event, ok := f.publisher.events[0].(*listing.ListingApprovalChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "counterfeit suspicion", event.Reason)
}

func TestListingService_BulkApprove_PartialFailure(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	lst := newTestListing(t, false)
	missing := uuid.New()

	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	f.listingRepo.On("Save", ctx, lst).Return(nil)

	result := f.service.BulkApprove(ctx, []uuid.UUID{lst.ID, missing})

	require.Len(t, result.Success, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, missing, result.Failed[0].ListingID)
}

func TestListingService_Delist_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel := newApprovedSeller(t)
	lst, err := listing.NewListing(sel.ID, uuid.New(), listing.ConditionNew, true)
	require.NoError(t, err)
	lst.ClearDomainEvents()

	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("Delete", ctx, lst.ID).Return(nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(0), nil)
	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.sellerRepo.On("SaveWithLock", ctx, sel).Return(nil)

	err = f.service.Delist(ctx, lst.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, sel.ProductCount)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, listing.EventTypeListingDeleted, f.publisher.events[0].EventType())
}

func TestListingService_UpdateCondition_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	lst := newTestListing(t, true)

	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("Save", ctx, lst).Return(nil)

	result, err := f.service.UpdateCondition(ctx, lst.ID, UpdateConditionRequest{Condition: "refurbished"})

	require.NoError(t, err)
	assert.Equal(t, "refurbished", result.Condition)
}

func TestListingService_CanAddProduct_UnderQuota(t *testing.T) {
	policies := defaultPolicies()
	policies.maxProducts = 5
	f := newFixture(policies)
	ctx := context.Background()
	sel := newApprovedSeller(t)

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(3), nil)

	result, err := f.service.CanAddProduct(ctx, sel.ID)

	require.NoError(t, err)
	assert.True(t, result.CanAdd)
	assert.Equal(t, int64(3), result.CurrentCount)
	assert.Equal(t, 5, result.MaxProducts)
}

func TestListingService_CanAddProduct_QuotaReached(t *testing.T) {
	policies := defaultPolicies()
	policies.maxProducts = 5
	f := newFixture(policies)
	ctx := context.Background()
	sel := newApprovedSeller(t)

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(5), nil)

	result, err := f.service.CanAddProduct(ctx, sel.ID)

	require.NoError(t, err)
	assert.False(t, result.CanAdd)
}

func TestListingService_CanAddProduct_UnapprovedSeller(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel, err := seller.NewSeller(uuid.New(), "Acme Trading Co", "acmetrading", seller.ApprovalPending, decimal.NewFromInt(10))
	require.NoError(t, err)

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(0), nil)

	result, err := f.service.CanAddProduct(ctx, sel.ID)

	require.NoError(t, err)
	assert.False(t, result.CanAdd)
}

func TestListingService_GetSellerStats_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel := newApprovedSeller(t)

	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(7), nil)
	f.listingRepo.On("CountApprovedBySeller", ctx, sel.ID).Return(int64(4), nil)

	result, err := f.service.GetSellerStats(ctx, sel.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.TotalListings)
	assert.Equal(t, int64(4), result.ApprovedListings)
	assert.Equal(t, int64(3), result.PendingListings)
}

func TestListingService_GetSellerStats_SellerNotFound(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	missing := uuid.New()

	f.sellerRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	_, err := f.service.GetSellerStats(ctx, missing)

	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListingService_DelistByProduct_Success(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sel := newApprovedSeller(t)
	lst, err := listing.NewListing(sel.ID, uuid.New(), listing.ConditionUsed, true)
	require.NoError(t, err)
	lst.ClearDomainEvents()

	f.listingRepo.On("FindBySellerAndProduct", ctx, sel.ID, lst.ProductID).Return(lst, nil)
	f.listingRepo.On("FindByID", ctx, lst.ID).Return(lst, nil)
	f.listingRepo.On("Delete", ctx, lst.ID).Return(nil)
	f.listingRepo.On("CountBySeller", ctx, sel.ID).Return(int64(0), nil)
	f.sellerRepo.On("FindByID", ctx, sel.ID).Return(sel, nil)
	f.sellerRepo.On("SaveWithLock", ctx, sel).Return(nil)

	err = f.service.DelistByProduct(ctx, sel.ID, lst.ProductID)

	require.NoError(t, err)
	assert.Equal(t, 0, sel.ProductCount)
}

func TestListingService_DelistByProduct_NotFound(t *testing.T) {
	f := newFixture(defaultPolicies())
	ctx := context.Background()
	sellerID := uuid.New()
	productID := uuid.New()

	f.listingRepo.On("FindBySellerAndProduct", ctx, sellerID, productID).Return(nil, shared.ErrNotFound)

	err := f.service.DelistByProduct(ctx, sellerID, productID)

	require.ErrorIs(t, err, shared.ErrNotFound)
}
