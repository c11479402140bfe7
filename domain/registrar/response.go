package registrar

import "strings"

// Response is the uniform envelope every registrar API response carries.
type Response struct {
	// Status is "SUCCESS" or "ERROR" (matched case-insensitively).
	Status string `json:"status"`

	// Message is the error message when status is not SUCCESS.
	Message string `json:"message,omitempty"`
}

// Success reports whether the envelope indicates success.
func (r Response) Success() bool {
	return strings.EqualFold(r.Status, "SUCCESS")
}

// DomainsResponse is the envelope for the list-all-domains endpoint.
type DomainsResponse struct {
	Response
	Domains []Domain `json:"domains"`
}

// PricingResponse is the envelope for the pricing endpoint.
type PricingResponse struct {
	Response
	Pricing map[string]PricingInfo `json:"pricing"`
}

// AuthCodeResponse is the envelope for the auth-code endpoint.
type AuthCodeResponse struct {
	Response
	AuthCode string `json:"auth_code"`
}
