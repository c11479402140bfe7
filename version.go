// Package porkbunmcp provides the version information for porkbun-domain-mcp.
package porkbunmcp

// Version is the current version of porkbun-domain-mcp.
const Version = "0.1.1"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
