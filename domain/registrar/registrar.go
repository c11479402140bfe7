// Package registrar provides the domain model for the Porkbun registrar API.
// All types are ephemeral snapshots reconstructed from each API response;
// nothing here is cached or persisted locally.
package registrar

// DomainStatus is a domain lifecycle status reported by the API.
type DomainStatus string

const (
	StatusActive          DomainStatus = "ACTIVE"
	StatusExpired         DomainStatus = "EXPIRED"
	StatusTransferPending DomainStatus = "TRANSFER PENDING"
	StatusWhoisPending    DomainStatus = "WHOIS PENDING"
)

// WhoisPrivacy is the WHOIS privacy state of a domain.
type WhoisPrivacy string

const (
	WhoisEnabled     WhoisPrivacy = "ENABLED"
	WhoisDisabled    WhoisPrivacy = "DISABLED"
	WhoisNotEligible WhoisPrivacy = "NOT ELIGIBLE"
)

// Domain is a single domain as returned by the registrar.
type Domain struct {
	// Domain is the fully qualified domain name.
	Domain string `json:"domain"`

	// Status is the registrar-reported lifecycle status.
	Status string `json:"status"`

	// TLD is the top-level domain suffix.
	TLD string `json:"tld"`

	// CreateDate is the registration date, as reported.
	CreateDate string `json:"create_date,omitempty"`

	// ExpireDate is the expiration date, as reported.
	ExpireDate string `json:"expire_date,omitempty"`

	// WhoisPrivacy is the WHOIS privacy state.
	WhoisPrivacy string `json:"whois_privacy,omitempty"`

	// AutoRenew indicates automatic renewal is enabled.
	AutoRenew bool `json:"auto_renew,omitempty"`

	// NotLocal indicates the domain is not managed at this registrar.
	NotLocal bool `json:"not_local,omitempty"`
}

// PricingInfo holds registration, renewal, and transfer prices for one TLD.
// Prices are opaque strings, passed through as the API reports them.
type PricingInfo struct {
	TLD          string `json:"tld,omitempty"`
	Registration string `json:"registration,omitempty"`
	Renewal      string `json:"renewal,omitempty"`
	Transfer     string `json:"transfer,omitempty"`
}

// AuthCode is a domain transfer authorization code (EPP code).
// The code is sensitive and must never be persisted.
type AuthCode struct {
	Domain   string `json:"domain"`
	AuthCode string `json:"auth_code"`
}

// RenewalResult is the outcome of a domain renewal.
type RenewalResult struct {
	Domain        string `json:"domain"`
	Years         int    `json:"years"`
	NewExpireDate string `json:"new_expire_date,omitempty"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
}
