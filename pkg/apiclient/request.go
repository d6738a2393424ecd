package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Header names set by the pipeline.
const (
	HeaderAuthorization  = "Authorization"
	HeaderOrganizationID = "X-Organization-Id"
)

// reservedHeaders are derived from the session and cannot be set per request.
var reservedHeaders = []string{HeaderAuthorization, HeaderOrganizationID}

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Request describes one API call.
type Request struct {
	Method string
	// Path is relative to the base URL and must start with "/".
	Path  string
	Query url.Values
	// Body is sent as JSON when non-nil.
	Body   any
	Header http.Header
	// Credential, when set, is sent instead of the session credential. The
	// login flow uses it to fetch the identity before the session exists.
	// It is rejected with ErrMalformedRequest while the store is Anonymous.
	Credential string
}

func (r Request) validate() error {
	if !allowedMethods[r.Method] {
		return fmt.Errorf("%w: method %q", ErrMalformedRequest, r.Method)
	}
	if r.Path == "" || r.Path[0] != '/' || strings.HasPrefix(r.Path, "//") {
		return fmt.Errorf("%w: path %q must be absolute", ErrMalformedRequest, r.Path)
	}
	if strings.ContainsAny(r.Path, "?#") {
		return fmt.Errorf("%w: path %q must not carry a query or fragment, use Query", ErrMalformedRequest, r.Path)
	}
	for _, h := range reservedHeaders {
		if r.Header.Get(h) != "" {
			return fmt.Errorf("%w: header %s is set from the session", ErrMalformedRequest, h)
		}
	}
	return nil
}

func (r Request) encodeBody() (io.Reader, bool, error) {
	if r.Body == nil {
		return nil, false, nil
	}
	b, err := json.Marshal(r.Body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: body: %w", ErrMalformedRequest, err)
	}
	return bytes.NewReader(b), true, nil
}

func (c *Client) resolve(r Request) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + r.Path
	u.RawPath = ""
	u.RawQuery = r.Query.Encode()
	return u.String()
}
