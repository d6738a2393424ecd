package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Get issues a GET request.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (Outcome[T], error) {
	return Execute[T](ctx, c, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (Outcome[T], error) {
	return Execute[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any) (Outcome[T], error) {
	return Execute[T](ctx, c, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE request and discards any response body.
func Delete(ctx context.Context, c *Client, path string) (Outcome[NoContent], error) {
	return Execute[NoContent](ctx, c, Request{Method: http.MethodDelete, Path: path})
}
