package pacs

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/wizardpacs/adminkit/pkg/apiclient"
)

// Resource paths, relative to the API base URL.
const (
	pathUsers         = "/users"
	pathOrganizations = "/organizations"
	pathStudies       = "/pacs/studies"
	pathNodes         = "/pacs/dicom-nodes"
	pathEngineStatus  = "/pacs/engine/status"
)

// Client is a typed view of the backend API. Every call goes through the
// pipeline, so failures carry an *apierror.Failure and their side effects
// (notices, session invalidation) have already run when a method returns.
type Client struct {
	api *apiclient.Client
}

// NewClient panics if api is nil.
func NewClient(api *apiclient.Client) *Client {
	if api == nil {
		panic("pacs: api client is required")
	}
	return &Client{api: api}
}

func call[T any](ctx context.Context, api *apiclient.Client, req apiclient.Request) (T, error) {
	out, err := apiclient.Execute[T](ctx, api, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return out.Get()
}

func get[T any](ctx context.Context, api *apiclient.Client, path string, query url.Values) (T, error) {
	return call[T](ctx, api, apiclient.Request{Method: http.MethodGet, Path: path, Query: query})
}

func post[T any](ctx context.Context, api *apiclient.Client, path string, body any) (T, error) {
	return call[T](ctx, api, apiclient.Request{Method: http.MethodPost, Path: path, Body: body})
}

func item(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// ListUsers returns the users of the current tenant.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return get[[]User](ctx, c.api, pathUsers, nil)
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	return get[*User](ctx, c.api, item(pathUsers, id), nil)
}

// CreateUser returns the created record. Validation problems come back as
// an Invalid failure whose Body holds the field errors.
func (c *Client) CreateUser(ctx context.Context, u NewUser) (*User, error) {
	return post[*User](ctx, c.api, pathUsers, u)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := call[apiclient.NoContent](ctx, c.api, apiclient.Request{Method: http.MethodDelete, Path: item(pathUsers, id)})
	return err
}

func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	return get[[]Organization](ctx, c.api, pathOrganizations, nil)
}

func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	return get[*Organization](ctx, c.api, item(pathOrganizations, id), nil)
}

// UpdateOrganization replaces the organization's editable fields.
func (c *Client) UpdateOrganization(ctx context.Context, org Organization) (*Organization, error) {
	out, err := apiclient.Put[*Organization](ctx, c.api, item(pathOrganizations, org.ID), org)
	if err != nil {
		return nil, err
	}
	return out.Get()
}

func (c *Client) ListStudies(ctx context.Context) ([]Study, error) {
	return get[[]Study](ctx, c.api, pathStudies, nil)
}

// SearchStudies sends only the non-zero filters.
func (c *Client) SearchStudies(ctx context.Context, s StudySearch) ([]Study, error) {
	return get[[]Study](ctx, c.api, pathStudies+"/search", s.query())
}

func (c *Client) StudyStats(ctx context.Context) (*StudyStats, error) {
	return get[*StudyStats](ctx, c.api, pathStudies+"/stats", nil)
}

// ListNodes returns all DICOM nodes, or only active ones.
func (c *Client) ListNodes(ctx context.Context, activeOnly bool) ([]DicomNode, error) {
	path := pathNodes
	if activeOnly {
		path += "/active"
	}
	return get[[]DicomNode](ctx, c.api, path, nil)
}

// EchoNode runs a C-ECHO against one node. A reachable backend reporting a
// failed echo is not an error; check EchoResult.Success.
func (c *Client) EchoNode(ctx context.Context, id string) (*EchoResult, error) {
	return post[*EchoResult](ctx, c.api, item(pathNodes, id)+"/echo", nil)
}

// ToggleNode flips the node's active flag and returns the updated node.
func (c *Client) ToggleNode(ctx context.Context, id string) (*DicomNode, error) {
	return post[*DicomNode](ctx, c.api, item(pathNodes, id)+"/toggle", nil)
}

func (c *Client) BatchEcho(ctx context.Context) (*BatchEchoResult, error) {
	return post[*BatchEchoResult](ctx, c.api, pathNodes+"/batch-echo", nil)
}

func (c *Client) NodeStats(ctx context.Context) (*NodeStats, error) {
	return get[*NodeStats](ctx, c.api, pathNodes+"/stats", nil)
}

func (c *Client) EngineStatus(ctx context.Context) (EngineStatus, error) {
	return get[EngineStatus](ctx, c.api, pathEngineStatus, nil)
}

func (s StudySearch) query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("patientId", s.PatientID)
	set("patientName", s.PatientName)
	set("modality", s.Modality)
	set("accessionNumber", s.AccessionNumber)
	if !s.StudyDate.IsZero() {
		q.Set("studyDate", s.StudyDate.Format(time.DateOnly))
	}
	return q
}
