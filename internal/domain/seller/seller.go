package seller

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the operational status of a seller
type Status string

const (
	StatusInactive  Status = "inactive"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended" // Suspended by an admin, e.g. for policy abuse
)

// ApprovalStatus represents the moderation state of a seller,
// independent of its operational status
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Rating bounds for the derived seller rating
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Seller represents a marketplace participant selling through a dedicated
// subdomain storefront. It is the aggregate root for seller operations;
// Rating, ReviewCount, ProductCount and TotalSales are materialized views
// over child entities and are only written by the owning services.
type Seller struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_seller_customer"`
	CompanyName     string          `gorm:"type:varchar(200);not null"`
	Subdomain       string          `gorm:"type:varchar(32);not null;uniqueIndex:idx_seller_subdomain"`
	BusinessLicense string          `gorm:"type:varchar(100)"`
	TaxID           string          `gorm:"type:varchar(50)"`
	Phone           string          `gorm:"type:varchar(50)"`
	Address         string          `gorm:"type:text"`
	City            string          `gorm:"type:varchar(100)"`
	Region          string          `gorm:"type:varchar(100)"`
	Postcode        string          `gorm:"type:varchar(20)"`
	CountryID       string          `gorm:"type:varchar(2)"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'active'"`
	ApprovalStatus  ApprovalStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	RejectionReason string          `gorm:"type:text"`
	CommissionRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Rating          float64         `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount     int             `gorm:"not null;default:0"`
	ProductCount    int             `gorm:"not null;default:0"`
	TotalSales      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Seller) TableName() string {
	return "marketplace_sellers"
}

// NewSeller creates a new seller for the given customer account.
// The initial approval status is decided by the registration service
// (auto-approve policy); the operational status always starts active.
func NewSeller(customerID uuid.UUID, companyName, subdomain string, approval ApprovalStatus, commissionRate decimal.Decimal) (*Seller, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "customer ID is required")
	}
	if err := validateCompanyName(companyName); err != nil {
		return nil, err
	}
	if err := ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}
	if err := validateCommissionRate(commissionRate); err != nil {
		return nil, err
	}
	if err := validateApprovalStatus(approval); err != nil {
		return nil, err
	}

	s := &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CompanyName:       companyName,
		Subdomain:         subdomain,
		Status:            StatusActive,
		ApprovalStatus:    approval,
		CommissionRate:    commissionRate,
		TotalSales:        decimal.Zero,
	}

	s.AddDomainEvent(NewSellerRegisteredEvent(s))

	return s, nil
}

// SetCompanyName renames the seller's company. The subdomain is not
// regenerated; it stays stable for existing storefront links.
func (s *Seller) SetCompanyName(name string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}

	s.CompanyName = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact sets the seller's contact information
func (s *Seller) SetContact(phone, address, city, region, postcode, countryID string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewValidationError("address", "cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewValidationError("city", "cannot exceed 100 characters")
	}
	if region != "" && len(region) > 100 {
		return shared.NewValidationError("region", "cannot exceed 100 characters")
	}
	if postcode != "" && len(postcode) > 20 {
		return shared.NewValidationError("postcode", "cannot exceed 20 characters")
	}
	if countryID != "" && len(countryID) != 2 {
		return shared.NewValidationError("country_id", "must be a 2-letter country code")
	}

	s.Phone = phone
	s.Address = address
	s.City = city
	s.Region = region
	s.Postcode = postcode
	s.CountryID = strings.ToUpper(countryID)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetBusinessInfo sets the seller's business license and tax identification
func (s *Seller) SetBusinessInfo(businessLicense, taxID string) error {
	if businessLicense != "" && len(businessLicense) > 100 {
		return shared.NewValidationError("business_license", "cannot exceed 100 characters")
	}
	if taxID != "" && len(taxID) > 50 {
		return shared.NewValidationError("tax_id", "cannot exceed 50 characters")
	}

	s.BusinessLicense = businessLicense
	s.TaxID = taxID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetCommissionRate sets the seller's commission rate
func (s *Seller) SetCommissionRate(rate decimal.Decimal) error {
	if err := validateCommissionRate(rate); err != nil {
		return err
	}

	s.CommissionRate = rate
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Approve moves a pending or rejected seller to approved
func (s *Seller) Approve() error {
	if s.ApprovalStatus == ApprovalApproved {
		return shared.NewDomainError("INVALID_STATE", "Seller is already approved")
	}

	old := s.ApprovalStatus
	s.ApprovalStatus = ApprovalApproved
	s.RejectionReason = ""
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSellerApprovalChangedEvent(s, old, ApprovalApproved, ""))

	return nil
}

// Reject moves the seller to rejected from any approval state.
// The reason is stored for audit and notification. Rejecting an
// already rejected seller replaces the stored reason.
func (s *Seller) Reject(reason string) error {
	old := s.ApprovalStatus
	s.ApprovalStatus = ApprovalRejected
	s.RejectionReason = reason
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSellerApprovalChangedEvent(s, old, ApprovalRejected, reason))

	return nil
}

// Suspend suspends an active seller
func (s *Seller) Suspend(reason string) error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active sellers can be suspended")
	}

	old := s.Status
	s.Status = StatusSuspended
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSellerStatusChangedEvent(s, old, StatusSuspended, reason))

	return nil
}

// Activate activates an inactive or suspended seller
func (s *Seller) Activate() error {
	if s.Status == StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Seller is already active")
	}

	old := s.Status
	s.Status = StatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSellerStatusChangedEvent(s, old, StatusActive, ""))

	return nil
}

// Deactivate deactivates an active seller
func (s *Seller) Deactivate() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active sellers can be deactivated")
	}

	old := s.Status
	s.Status = StatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSellerStatusChangedEvent(s, old, StatusInactive, ""))

	return nil
}

// SetRatingStats sets the derived rating and review count together.
// Both fields are a materialized view over the seller's approved reviews
// and must never be written independently.
func (s *Seller) SetRatingStats(rating float64, reviewCount int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewValidationError("rating", "must be between 0 and 5")
	}
	if reviewCount < 0 {
		return shared.NewValidationError("review_count", "cannot be negative")
	}

	s.Rating = rating
	s.ReviewCount = reviewCount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetProductCount sets the derived listing count
func (s *Seller) SetProductCount(count int) error {
	if count < 0 {
		return shared.NewValidationError("product_count", "cannot be negative")
	}

	s.ProductCount = count
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// RecordSale adds a completed sale amount to the seller's running total
func (s *Seller) RecordSale(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("amount", "must be positive")
	}

	s.TotalSales = s.TotalSales.Add(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the seller is operationally active
func (s *Seller) IsActive() bool {
	return s.Status == StatusActive
}

// IsSuspended returns true if the seller is suspended
func (s *Seller) IsSuspended() bool {
	return s.Status == StatusSuspended
}

// IsApproved returns true if the seller has passed moderation
func (s *Seller) IsApproved() bool {
	return s.ApprovalStatus == ApprovalApproved
}

// IsPending returns true if the seller awaits moderation
func (s *Seller) IsPending() bool {
	return s.ApprovalStatus == ApprovalPending
}

// CanSell returns true if the seller may list products and appear on the
// storefront: operationally active and approved by moderation.
func (s *Seller) CanSell() bool {
	return s.IsActive() && s.IsApproved()
}

// Validation functions

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// ValidateSubdomain checks the storefront subdomain format
func ValidateSubdomain(subdomain string) error {
	if subdomain == "" {
		return shared.NewValidationError("subdomain", "cannot be empty")
	}
	if len(subdomain) > 32 {
		return shared.NewValidationError("subdomain", "cannot exceed 32 characters")
	}
	if !subdomainPattern.MatchString(subdomain) {
		return shared.NewValidationError("subdomain", "may only contain lowercase letters and digits")
	}
	return nil
}

func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("company_name", "is required")
	}
	if len(name) < 2 {
		return shared.NewValidationError("company_name", "must be at least 2 characters long")
	}
	if len(name) > 200 {
		return shared.NewValidationError("company_name", "cannot exceed 200 characters")
	}
	return nil
}

func validateCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("commission_rate", "must be between 0 and 100")
	}
	return nil
}

func validateApprovalStatus(status ApprovalStatus) error {
	switch status {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return nil
	default:
		return shared.NewValidationError("approval_status", "invalid approval status")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone", "cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewValidationError("phone", "invalid phone number format")
	}
	return nil
}
