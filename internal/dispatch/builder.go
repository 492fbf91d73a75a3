package dispatch

import (
	"fmt"
	"net/http"

	"github.com/raysh454/reqs/internal/model"
	"github.com/raysh454/reqs/internal/webclient"
)

// Build materializes spec for one url. It does no I/O and keeps no state, so
// two calls with the same arguments return structurally identical requests.
// Headers come from the entries parsed by model.NewRequestSpec. An unknown
// method is returned as an error wrapping model.ErrUnsupportedMethod.
func Build(url string, spec *model.RequestSpec) (*webclient.Request, error) {
	if spec == nil {
		return nil, fmt.Errorf("build %s: nil request spec", url)
	}

	var method string
	switch spec.Method() {
	case model.MethodGet:
		method = http.MethodGet
	case model.MethodPost:
		method = http.MethodPost
	case model.MethodPatch:
		method = http.MethodPatch
	case model.MethodPut:
		method = http.MethodPut
	case model.MethodDelete:
		method = http.MethodDelete
	default:
		return nil, fmt.Errorf("build %s: %w: %q", url, model.ErrUnsupportedMethod, spec.Method())
	}

	entries := spec.HeaderEntries()
	headers := make(http.Header, len(entries))
	for _, e := range entries {
		headers.Add(e.Name, e.Value)
	}

	req := &webclient.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
	}
	if body, ok := spec.Body(); ok {
		req.Body = []byte(body)
		req.HasBody = true
	}
	return req, nil
}
