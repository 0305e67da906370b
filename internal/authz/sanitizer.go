// internal/authz/sanitizer.go
// Request-body sanitization. Client-supplied JSON for protected resources
// passes through Sanitize before it reaches any write path, stripping fields
// that could impersonate another identity or escalate privilege.

package authz

// ForbiddenProfileFields is the fixed deny-list applied to client-supplied
// bodies on protected write paths. Version 1. Additions require a review of
// every mutating handler; removals are not expected.
var ForbiddenProfileFields = []string{
	"force_user_id", // identity override
	"force_email",   // identity override via email
	"account_status",
	"role",
	"password_hash",
	"is_verified",
}

// Sanitize returns a copy of body with every forbidden key removed.
// The input map is never mutated, all other keys pass through verbatim,
// and applying Sanitize twice yields the same result as applying it once.
func Sanitize(body map[string]interface{}, forbiddenFields []string) map[string]interface{} {
	forbidden := make(map[string]struct{}, len(forbiddenFields))
	for _, field := range forbiddenFields {
		forbidden[field] = struct{}{}
	}

	out := make(map[string]interface{}, len(body))
	for key, value := range body {
		if _, drop := forbidden[key]; drop {
			continue
		}
		out[key] = value
	}
	return out
}
