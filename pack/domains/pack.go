// Package domains provides the domain management tools exposed over MCP.
//
// Every tool answers with a Response envelope instead of a Go error, so
// failures reach the calling agent as structured, actionable text.
package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/registrar"
	"github.com/felixgeelhaar/porkbun-domain-mcp/domain/tool"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/logging"
)

// API is the registrar surface the tools need. Satisfied by
// *porkbun.Client; tests substitute a fake.
type API interface {
	ListDomains(ctx context.Context) ([]registrar.Domain, error)
	GetDomainInfo(ctx context.Context, domain string) (registrar.Domain, error)
	GetAuthCode(ctx context.Context, domain string) (string, error)
	RenewDomain(ctx context.Context, domain string, years int) (registrar.RenewalResult, error)
	GetPricing(ctx context.Context, tld string) (map[string]registrar.PricingInfo, error)
}

// Response is the standardized LLM-friendly tool response.
type Response struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	NextSteps []string        `json:"next_steps,omitempty"`
}

// Tools returns the five domain management tools bound to the given API.
func Tools(api API) []tool.Tool {
	return []tool.Tool{
		listDomainsTool(api),
		getDomainInfoTool(api),
		getAuthCodeTool(api),
		renewDomainTool(api),
		getPricingTool(api),
	}
}

// Register adds all domain tools to the registry.
func Register(reg tool.Registry, api API) error {
	for _, t := range Tools(api) {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func respond(resp Response) (tool.Result, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return tool.Result{}, err
	}
	return tool.Result{Output: data}, nil
}

func succeed(message string, data any, nextSteps ...string) (tool.Result, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return tool.Result{}, err
	}
	return respond(Response{
		Success:   true,
		Message:   message,
		Data:      encoded,
		NextSteps: nextSteps,
	})
}

func fail(message string, err error, nextSteps ...string) (tool.Result, error) {
	return respond(Response{
		Success:   false,
		Message:   message,
		Error:     err.Error(),
		NextSteps: nextSteps,
	})
}

func domainSchema() tool.Schema {
	return tool.ObjectSchema(map[string]json.RawMessage{
		"domain": json.RawMessage(`{"type":"string","description":"Domain name (e.g., 'example.com')"}`),
	}, []string{"domain"})
}

func listDomainsTool(api API) tool.Tool {
	return tool.NewBuilder("list_domains").
		WithDescription("List all domains in your Porkbun account").
		WithInputSchema(tool.EmptySchema()).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, _ json.RawMessage) (tool.Result, error) {
			logging.Info().Add(logging.ToolName("list_domains")).Msg("Listing domains")

			domains, err := api.ListDomains(ctx)
			if err != nil {
				logging.Error().
					Add(logging.ToolName("list_domains")).
					Add(logging.ErrorField(err)).
					Msg("Failed to list domains")
				return fail("Failed to list domains", err,
					"Verify your API credentials are valid",
					"Check network connectivity",
				)
			}

			return succeed(
				fmt.Sprintf("Found %d domains in your account", len(domains)),
				map[string]any{
					"domains": domains,
					"count":   len(domains),
				},
				"Use get_domain_info for details on a specific domain",
				"Use get_pricing to check renewal costs",
				"Use renew_domain to extend registration",
			)
		}).
		MustBuild()
}

type domainInput struct {
	Domain string `json:"domain"`
}

func getDomainInfoTool(api API) tool.Tool {
	return tool.NewBuilder("get_domain_info").
		WithDescription("Get detailed information for a specific domain").
		WithInputSchema(domainSchema()).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in domainInput
			if err := json.Unmarshal(input, &in); err != nil {
				return fail("Invalid input for get_domain_info", err,
					"Provide a 'domain' string argument",
				)
			}

			logging.Info().
				Add(logging.ToolName("get_domain_info")).
				Add(logging.DomainName(in.Domain)).
				Msg("Getting domain info")

			d, err := api.GetDomainInfo(ctx, in.Domain)
			if err != nil {
				logging.Error().
					Add(logging.ToolName("get_domain_info")).
					Add(logging.DomainName(in.Domain)).
					Add(logging.ErrorField(err)).
					Msg("Failed to get domain info")
				return fail("Failed to get info for "+in.Domain, err,
					"Verify the domain name is correct",
					"Ensure the domain is in your account",
					"Use list_domains to see all your domains",
				)
			}

			return succeed(
				"Retrieved information for "+in.Domain,
				map[string]any{"domain": d},
				"Use get_auth_code to get transfer authorization",
				"Use renew_domain to extend registration",
			)
		}).
		MustBuild()
}

func getAuthCodeTool(api API) tool.Tool {
	return tool.NewBuilder("get_auth_code").
		WithDescription("Get transfer authorization code (EPP code) for a domain").
		WithInputSchema(domainSchema()).
		ReadOnly().
		WithRiskLevel(tool.RiskMedium).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in domainInput
			if err := json.Unmarshal(input, &in); err != nil {
				return fail("Invalid input for get_auth_code", err,
					"Provide a 'domain' string argument",
				)
			}

			logging.Info().
				Add(logging.ToolName("get_auth_code")).
				Add(logging.DomainName(in.Domain)).
				Msg("Getting auth code")

			code, err := api.GetAuthCode(ctx, in.Domain)
			if err != nil {
				logging.Error().
					Add(logging.ToolName("get_auth_code")).
					Add(logging.DomainName(in.Domain)).
					Add(logging.ErrorField(err)).
					Msg("Failed to get auth code")
				return fail("Failed to get auth code for "+in.Domain, err,
					"Verify the domain is in your account",
					"Check if the domain is eligible for transfer",
				)
			}

			return succeed(
				"Retrieved auth code for "+in.Domain,
				map[string]any{
					"domain":    in.Domain,
					"auth_code": code,
				},
				"Provide this code to the gaining registrar",
				"Unlock the domain at Porkbun before transfer",
				"Verify the admin email is correct for transfer approval",
			)
		}).
		MustBuild()
}

type renewInput struct {
	Domain string `json:"domain"`
	Years  int    `json:"years"`
}

func renewDomainTool(api API) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"domain": json.RawMessage(`{"type":"string","description":"Domain name (e.g., 'example.com')"}`),
		"years":  json.RawMessage(`{"type":"integer","description":"Number of years to renew (default: 1)","minimum":1,"maximum":10,"default":1}`),
	}, []string{"domain"})

	return tool.NewBuilder("renew_domain").
		WithDescription("Renew a domain registration").
		WithInputSchema(schema).
		WithRiskLevel(tool.RiskHigh).
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in renewInput
			if err := json.Unmarshal(input, &in); err != nil {
				return fail("Invalid input for renew_domain", err,
					"Provide a 'domain' string and optional 'years' integer",
				)
			}
			if in.Years == 0 {
				in.Years = 1
			}

			logging.Info().
				Add(logging.ToolName("renew_domain")).
				Add(logging.DomainName(in.Domain)).
				Add(logging.Years(in.Years)).
				Msg("Renewing domain")

			result, err := api.RenewDomain(ctx, in.Domain, in.Years)
			if err != nil {
				logging.Error().
					Add(logging.ToolName("renew_domain")).
					Add(logging.DomainName(in.Domain)).
					Add(logging.ErrorField(err)).
					Msg("Failed to renew domain")
				return fail("Failed to renew "+in.Domain, err,
					"Verify the domain is in your account",
					"Check if the domain is eligible for renewal",
					"Ensure you have sufficient account balance",
				)
			}

			return succeed(
				fmt.Sprintf("Renewed %s for %d year(s)", in.Domain, in.Years),
				result,
				"Check the new expiration date",
				"Verify auto-renew is configured if desired",
			)
		}).
		MustBuild()
}

type pricingInput struct {
	TLD string `json:"tld"`
}

func getPricingTool(api API) tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"tld": json.RawMessage(`{"type":"string","description":"Optional TLD to filter by (e.g., 'com', 'net')"}`),
	}, nil)

	return tool.NewBuilder("get_pricing").
		WithDescription("Get domain pricing information").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
			var in pricingInput
			if len(input) > 0 {
				if err := json.Unmarshal(input, &in); err != nil {
					return fail("Invalid input for get_pricing", err,
						"Provide an optional 'tld' string argument",
					)
				}
			}

			logging.Info().
				Add(logging.ToolName("get_pricing")).
				Add(logging.TLD(in.TLD)).
				Msg("Getting pricing")

			pricing, err := api.GetPricing(ctx, in.TLD)
			if err != nil {
				logging.Error().
					Add(logging.ToolName("get_pricing")).
					Add(logging.ErrorField(err)).
					Msg("Failed to get pricing")
				return fail("Failed to get pricing information", err,
					"Try again later",
					"Check network connectivity",
				)
			}

			list := make([]registrar.PricingInfo, 0, len(pricing))
			for _, info := range pricing {
				list = append(list, info)
			}
			sort.Slice(list, func(i, j int) bool { return list[i].TLD < list[j].TLD })

			return succeed(
				fmt.Sprintf("Retrieved pricing for %d TLD(s)", len(list)),
				map[string]any{
					"pricing": list,
					"count":   len(list),
				},
				"Compare prices across TLDs",
				"Use this info to plan domain registrations",
			)
		}).
		MustBuild()
}
