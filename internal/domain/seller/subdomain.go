package seller

import (
	"context"
	"strconv"
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// maxSubdomainLen limits the sanitized base before suffixing
const maxSubdomainLen = 30

// maxSubdomainProbes bounds the collision-suffix search. A hostile company
// name colliding with many reserved subdomains must fail instead of spinning.
const maxSubdomainProbes = 64

// SubdomainChecker reports whether a subdomain is still available.
type SubdomainChecker interface {
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
}

// SanitizeSubdomain derives a subdomain candidate from a company name:
// lowercase, non-alphanumerics stripped, truncated to 30 characters.
func SanitizeSubdomain(companyName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(companyName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxSubdomainLen {
		s = s[:maxSubdomainLen]
	}
	return s
}

// GenerateSubdomain returns an available subdomain for the company name,
// appending an integer suffix starting at 1 when the base is taken.
func GenerateSubdomain(ctx context.Context, checker SubdomainChecker, companyName string) (string, error) {
	base := SanitizeSubdomain(companyName)
	if base == "" {
		return "", shared.NewValidationError("company_name", "must contain at least one letter or digit")
	}

	candidate := base
	for i := 0; i < maxSubdomainProbes; i++ {
		taken, err := checker.ExistsBySubdomain(ctx, candidate)
		if err != nil {
			return "", shared.NewOperationFailure("Unable to verify subdomain availability", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i+1)
	}

	return "", shared.NewOperationFailure("No available subdomain for company name", nil)
}
