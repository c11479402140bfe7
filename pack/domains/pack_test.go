package domains_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/registrar"
	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/tool"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/storage/memory"
	"github.com/felixgeelhaar/porkbun-domain-mcp/pack/domains"
)

// fakeAPI implements domains.API with canned results.
type fakeAPI struct {
	domains []registrar.Domain
	pricing map[string]registrar.PricingInfo
	code    string
	renewal registrar.RenewalResult
	err     error

	lastDomain string
	lastYears  int
}

func (f *fakeAPI) ListDomains(ctx context.Context) ([]registrar.Domain, error) {
	return f.domains, f.err
}

func (f *fakeAPI) GetDomainInfo(ctx context.Context, domain string) (registrar.Domain, error) {
	f.lastDomain = domain
	if f.err != nil {
		return registrar.Domain{}, f.err
	}
	for _, d := range f.domains {
		if d.Domain == domain {
			return d, nil
		}
	}
	return registrar.Domain{}, registrar.NewNotFoundError(domain)
}

func (f *fakeAPI) GetAuthCode(ctx context.Context, domain string) (string, error) {
	f.lastDomain = domain
	return f.code, f.err
}

func (f *fakeAPI) RenewDomain(ctx context.Context, domain string, years int) (registrar.RenewalResult, error) {
	f.lastDomain = domain
	f.lastYears = years
	return f.renewal, f.err
}

func (f *fakeAPI) GetPricing(ctx context.Context, tld string) (map[string]registrar.PricingInfo, error) {
	return f.pricing, f.err
}

func execute(t *testing.T, tl tool.Tool, input string) domains.Response {
	t.Helper()

	result, err := tl.Execute(context.Background(), json.RawMessage(input))
	if err != nil {
		t.Fatalf("Execute(%s) returned error %v, tools must answer with an envelope", tl.Name(), err)
	}

	var resp domains.Response
	if err := json.Unmarshal(result.Output, &resp); err != nil {
		t.Fatalf("output is not a Response envelope: %v", err)
	}
	return resp
}

func findTool(t *testing.T, api domains.API, name string) tool.Tool {
	t.Helper()
	for _, tl := range domains.Tools(api) {
		if tl.Name() == name {
			return tl
		}
	}
	t.Fatalf("tool %s not found", name)
	return nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := memory.NewToolRegistry()
	if err := domains.Register(reg, &fakeAPI{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	want := []string{"list_domains", "get_domain_info", "get_auth_code", "renew_domain", "get_pricing"}
	for _, name := range want {
		if !reg.Has(name) {
			t.Errorf("registry missing tool %s", name)
		}
	}
	if reg.Count() != len(want) {
		t.Errorf("Count() = %d, want %d", reg.Count(), len(want))
	}
}

func TestListDomains(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{domains: []registrar.Domain{
			{Domain: "example.com", Status: string(registrar.StatusActive), TLD: "com"},
			{Domain: "other.net", Status: string(registrar.StatusExpired), TLD: "net"},
		}}
		resp := execute(t, findTool(t, api, "list_domains"), `{}`)

		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
		if resp.Message != "Found 2 domains in your account" {
			t.Errorf("Message = %q", resp.Message)
		}

		var data struct {
			Domains []registrar.Domain `json:"domains"`
			Count   int                `json:"count"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
		if data.Count != 2 || len(data.Domains) != 2 {
			t.Errorf("data = %+v, want 2 domains", data)
		}
		if len(resp.NextSteps) == 0 {
			t.Error("NextSteps should suggest follow-up tools")
		}
	})

	t.Run("api failure", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{err: registrar.NewAPIError("Invalid API key", 200, nil)}
		resp := execute(t, findTool(t, api, "list_domains"), `{}`)

		if resp.Success {
			t.Fatal("Success = true, want failure envelope")
		}
		if resp.Message != "Failed to list domains" {
			t.Errorf("Message = %q", resp.Message)
		}
		if !strings.Contains(resp.Error, "Invalid API key") {
			t.Errorf("Error = %q, want remote message included", resp.Error)
		}
		if len(resp.NextSteps) == 0 {
			t.Error("failure should carry recovery suggestions")
		}
	})
}

func TestGetDomainInfo(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{domains: []registrar.Domain{
		{Domain: "example.com", Status: string(registrar.StatusActive), TLD: "com", AutoRenew: true},
	}}
	tl := findTool(t, api, "get_domain_info")

	t.Run("found", func(t *testing.T) {
		resp := execute(t, tl, `{"domain":"example.com"}`)
		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
		if resp.Message != "Retrieved information for example.com" {
			t.Errorf("Message = %q", resp.Message)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp := execute(t, tl, `{"domain":"missing.io"}`)
		if resp.Success {
			t.Fatal("Success = true, want failure envelope")
		}
		if !strings.Contains(resp.Error, "missing.io") {
			t.Errorf("Error = %q, want domain name included", resp.Error)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		resp := execute(t, tl, `not json`)
		if resp.Success {
			t.Fatal("Success = true, want failure envelope for malformed input")
		}
	})
}

func TestGetAuthCode(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{code: "epp-secret-123"}
		resp := execute(t, findTool(t, api, "get_auth_code"), `{"domain":"example.com"}`)

		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}

		var data struct {
			Domain   string `json:"domain"`
			AuthCode string `json:"auth_code"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
		if data.AuthCode != "epp-secret-123" || data.Domain != "example.com" {
			t.Errorf("data = %+v", data)
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{err: errors.New("transfer locked")}
		resp := execute(t, findTool(t, api, "get_auth_code"), `{"domain":"example.com"}`)

		if resp.Success {
			t.Fatal("Success = true, want failure envelope")
		}
		if resp.Message != "Failed to get auth code for example.com" {
			t.Errorf("Message = %q", resp.Message)
		}
	})
}

func TestRenewDomain(t *testing.T) {
	t.Parallel()

	t.Run("explicit years", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{renewal: registrar.RenewalResult{
			Domain: "example.com", Years: 3, Success: true, Message: "Domain renewed successfully",
		}}
		resp := execute(t, findTool(t, api, "renew_domain"), `{"domain":"example.com","years":3}`)

		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
		if resp.Message != "Renewed example.com for 3 year(s)" {
			t.Errorf("Message = %q", resp.Message)
		}
		if api.lastYears != 3 {
			t.Errorf("years passed to API = %d, want 3", api.lastYears)
		}
	})

	t.Run("default years", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{renewal: registrar.RenewalResult{Domain: "example.com", Years: 1, Success: true}}
		resp := execute(t, findTool(t, api, "renew_domain"), `{"domain":"example.com"}`)

		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
		if api.lastYears != 1 {
			t.Errorf("years passed to API = %d, want default 1", api.lastYears)
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{err: registrar.NewAPIError("insufficient funds", 200, nil)}
		resp := execute(t, findTool(t, api, "renew_domain"), `{"domain":"example.com","years":2}`)

		if resp.Success {
			t.Fatal("Success = true, want failure envelope")
		}
		if resp.Message != "Failed to renew example.com" {
			t.Errorf("Message = %q", resp.Message)
		}
	})
}

func TestGetPricing(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{pricing: map[string]registrar.PricingInfo{
		"net": {TLD: "net", Registration: "11.16", Renewal: "12.82", Transfer: "11.16"},
		"com": {TLD: "com", Registration: "9.73", Renewal: "11.98", Transfer: "9.73"},
	}}
	tl := findTool(t, api, "get_pricing")

	t.Run("all tlds sorted", func(t *testing.T) {
		resp := execute(t, tl, `{}`)
		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
		if resp.Message != "Retrieved pricing for 2 TLD(s)" {
			t.Errorf("Message = %q", resp.Message)
		}

		var data struct {
			Pricing []registrar.PricingInfo `json:"pricing"`
			Count   int                     `json:"count"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
		if data.Count != 2 || len(data.Pricing) != 2 {
			t.Fatalf("data = %+v, want 2 entries", data)
		}
		if data.Pricing[0].TLD != "com" || data.Pricing[1].TLD != "net" {
			t.Errorf("pricing order = %s, %s, want alphabetical", data.Pricing[0].TLD, data.Pricing[1].TLD)
		}
	})

	t.Run("empty input allowed", func(t *testing.T) {
		resp := execute(t, tl, ``)
		if !resp.Success {
			t.Fatalf("Success = false, error = %s", resp.Error)
		}
	})

}

func TestGetPricingFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{err: errors.New("HTTP 500: upstream down")}
	resp := execute(t, findTool(t, api, "get_pricing"), `{}`)

	if resp.Success {
		t.Fatal("Success = true, want failure envelope")
	}
	if resp.Message != "Failed to get pricing information" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestToolAnnotations(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}

	readOnly := map[string]bool{
		"list_domains":    true,
		"get_domain_info": true,
		"get_auth_code":   true,
		"get_pricing":     true,
		"renew_domain":    false,
	}

	for _, tl := range domains.Tools(api) {
		want, ok := readOnly[tl.Name()]
		if !ok {
			t.Errorf("unexpected tool %s", tl.Name())
			continue
		}
		if tl.Annotations().ReadOnly != want {
			t.Errorf("%s ReadOnly = %v, want %v", tl.Name(), tl.Annotations().ReadOnly, want)
		}
	}

	renew := findTool(t, api, "renew_domain")
	if renew.Annotations().RiskLevel != tool.RiskHigh {
		t.Errorf("renew_domain risk = %v, want high", renew.Annotations().RiskLevel)
	}
}
