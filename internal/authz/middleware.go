// internal/authz/middleware.go
// HTTP middleware applying the request-body sanitizer to mutating requests.

package authz

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/heartlinkapp/heartlink-backend/internal/common/utils"
)

// SanitizeBody strips forbidden fields from JSON request bodies before the
// handler sees them. Non-JSON and empty bodies pass through untouched; a
// body that claims to be JSON but does not parse is rejected here rather
// than deeper in the stack.
func SanitizeBody(forbiddenFields []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(r.Body)
			r.Body.Close()
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "unable to read request body")
				return
			}

			var body map[string]interface{}
			if err := json.Unmarshal(raw, &body); err != nil {
				// Not a JSON object (could be an array or multipart slipped
				// through); restore and let the handler decide.
				r.Body = io.NopCloser(bytes.NewReader(raw))
				next.ServeHTTP(w, r)
				return
			}

			cleaned := Sanitize(body, forbiddenFields)
			if len(cleaned) != len(body) {
				sanitizedFieldsTotal.Add(float64(len(body) - len(cleaned)))
			}

			rewritten, err := json.Marshal(cleaned)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(rewritten))
			r.ContentLength = int64(len(rewritten))
			next.ServeHTTP(w, r)
		})
	}
}
