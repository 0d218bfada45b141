package seller

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/marketplace"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SellerService handles seller lifecycle operations
type SellerService struct {
	sellerRepo seller.Repository
	policies   marketplace.Policies
	eventBus   shared.EventPublisher
	stats      *StatsService
}

// NewSellerService creates a new SellerService
func NewSellerService(sellerRepo seller.Repository, policies marketplace.Policies, eventBus shared.EventPublisher, stats *StatsService) *SellerService {
	return &SellerService{
		sellerRepo: sellerRepo,
		policies:   policies,
		eventBus:   eventBus,
		stats:      stats,
	}
}

// Register registers a customer as a marketplace seller
func (s *SellerService) Register(ctx context.Context, req RegisterSellerRequest) (*SellerResponse, error) {
	if !s.policies.Enabled() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Marketplace is disabled")
	}
	if !s.policies.SellerRegistrationAllowed() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Seller registration is closed")
	}

	// One seller account per customer
	exists, err := s.sellerRepo.ExistsByCustomerID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer is already registered as a seller")
	}

	subdomain := req.Subdomain
	if subdomain == "" {
		subdomain, err = seller.GenerateSubdomain(ctx, s.sellerRepo, req.CompanyName)
		if err != nil {
			return nil, err
		}
	} else {
		if err := seller.ValidateSubdomain(subdomain); err != nil {
			return nil, err
		}
		taken, err := s.sellerRepo.ExistsBySubdomain(ctx, subdomain)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Subdomain is already taken")
		}
	}

	approval := seller.ApprovalPending
	if s.policies.AutoApproveSellers() {
		approval = seller.ApprovalApproved
	}

	commission := s.policies.DefaultCommissionRate()
	if req.CommissionRate != nil {
		commission = s.clampCommission(*req.CommissionRate)
	}

	sel, err := seller.NewSeller(req.CustomerID, req.CompanyName, subdomain, approval, commission)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Address != "" || req.City != "" || req.Region != "" || req.Postcode != "" || req.CountryID != "" {
		if err := sel.SetContact(req.Phone, req.Address, req.City, req.Region, req.Postcode, req.CountryID); err != nil {
			return nil, err
		}
	}
	if req.BusinessLicense != "" || req.TaxID != "" {
		if err := sel.SetBusinessInfo(req.BusinessLicense, req.TaxID); err != nil {
			return nil, err
		}
	}

	if err := s.sellerRepo.Save(ctx, sel); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sel)

	response := ToSellerResponse(sel)
	return &response, nil
}

// clampCommission forces a requested commission into the configured bounds
func (s *SellerService) clampCommission(rate decimal.Decimal) decimal.Decimal {
	min, max := s.policies.CommissionBounds()
	if rate.LessThan(min) {
		return min
	}
	if rate.GreaterThan(max) {
		return max
	}
	return rate
}

// GetByID retrieves a seller by ID
func (s *SellerService) GetByID(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	response := ToSellerResponse(sel)
	return &response, nil
}

// GetByCustomerID retrieves the seller account of a customer
func (s *SellerService) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToSellerResponse(sel)
	return &response, nil
}

// GetBySubdomain retrieves a seller by storefront subdomain
func (s *SellerService) GetBySubdomain(ctx context.Context, subdomain string) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	response := ToSellerResponse(sel)
	return &response, nil
}

// List retrieves sellers with filtering and pagination
func (s *SellerService) List(ctx context.Context, filter SellerListFilter) ([]SellerListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ApprovalStatus != "" {
		domainFilter.Filters["approval_status"] = filter.ApprovalStatus
	}

	page, err := s.sellerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSellerListResponses(page.Items), page.Total, nil
}

// Update updates a seller's profile
func (s *SellerService) Update(ctx context.Context, sellerID uuid.UUID, req UpdateSellerRequest) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		if err := sel.SetCompanyName(*req.CompanyName); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil || req.Address != nil || req.City != nil || req.Region != nil || req.Postcode != nil || req.CountryID != nil {
		phone, address, city := sel.Phone, sel.Address, sel.City
		region, postcode, countryID := sel.Region, sel.Postcode, sel.CountryID
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.Region != nil {
			region = *req.Region
		}
		if req.Postcode != nil {
			postcode = *req.Postcode
		}
		if req.CountryID != nil {
			countryID = *req.CountryID
		}
		if err := sel.SetContact(phone, address, city, region, postcode, countryID); err != nil {
			return nil, err
		}
	}

	if req.BusinessLicense != nil || req.TaxID != nil {
		license, taxID := sel.BusinessLicense, sel.TaxID
		if req.BusinessLicense != nil {
			license = *req.BusinessLicense
		}
		if req.TaxID != nil {
			taxID = *req.TaxID
		}
		if err := sel.SetBusinessInfo(license, taxID); err != nil {
			return nil, err
		}
	}

	if req.CommissionRate != nil {
		if err := sel.SetCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
	}

	if err := s.sellerRepo.Save(ctx, sel); err != nil {
		return nil, err
	}

	response := ToSellerResponse(sel)
	return &response, nil
}

// Activate activates a seller
func (s *SellerService) Activate(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	return s.transition(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.Activate()
	})
}

// Deactivate deactivates a seller
func (s *SellerService) Deactivate(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	return s.transition(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.Deactivate()
	})
}

// Suspend suspends a seller
func (s *SellerService) Suspend(ctx context.Context, sellerID uuid.UUID, reason string) (*SellerResponse, error) {
	return s.transition(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.Suspend(reason)
	})
}

func (s *SellerService) transition(ctx context.Context, sellerID uuid.UUID, op func(*seller.Seller) error) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := op(sel); err != nil {
		return nil, err
	}

	if err := s.sellerRepo.Save(ctx, sel); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sel)

	response := ToSellerResponse(sel)
	return &response, nil
}

// RecordSale credits a completed order amount to the seller's totals
func (s *SellerService) RecordSale(ctx context.Context, sellerID uuid.UUID, req RecordSaleRequest) error {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}

	if err := sel.RecordSale(req.Amount); err != nil {
		return err
	}

	return s.sellerRepo.SaveWithLock(ctx, sel)
}

// RefreshStatistics recomputes all derived seller statistics
func (s *SellerService) RefreshStatistics(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}

	if err := s.stats.RecalculateRating(ctx, sellerID); err != nil {
		return nil, err
	}
	if err := s.stats.RecalculateProductCount(ctx, sellerID); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, sellerID)
}

// Delete removes a seller account
func (s *SellerService) Delete(ctx context.Context, sellerID uuid.UUID) error {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}

	if err := s.sellerRepo.Delete(ctx, sellerID); err != nil {
		return err
	}

	_ = s.eventBus.Publish(ctx, seller.NewSellerDeletedEvent(sel))
	return nil
}

// publishEvents publishes pending domain events best-effort. Event
// delivery never rolls back a committed state change.
func (s *SellerService) publishEvents(ctx context.Context, sel *seller.Seller) {
	for _, event := range sel.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	sel.ClearDomainEvents()
}
