package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for registrar API logging.

// DomainName adds a domain field.
func DomainName(domain string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("domain", domain)
	}
}

// Endpoint adds an API endpoint field.
func Endpoint(endpoint string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("endpoint", endpoint)
	}
}

// Attempt adds a 1-based attempt counter field.
func Attempt(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("attempt", n)
	}
}

// StatusCode adds an HTTP status code field.
func StatusCode(code int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("status_code", code)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// TLD adds a top-level-domain field.
func TLD(tld string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tld", tld)
	}
}

// Years adds a renewal years field.
func Years(years int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("years", years)
	}
}

// Count adds a result count field.
func Count(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("count", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
