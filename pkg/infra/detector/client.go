package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herbal/pkg/domain/interfaces"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

const (
	detectPath = "/detect"
	plantsPath = "/plants"

	// fileField is the multipart field the backend reads the image from
	fileField = "file"

	// responses embed the image as a data URL, so they can be large
	maxResponseSize = 64 << 20
)

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
	contract   *contract
}

// Option is a functional option for the detector client
type Option func(*client)

// WithHTTPClient replaces the HTTP client. No timeout is set by default.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = c
	}
}

// NewClient creates a client for the detection backend rooted at baseURL
func NewClient(baseURL string, opts ...Option) (interfaces.DetectorClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse backend URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend URL must be http or https", goerr.V("url", baseURL))
	}

	c, err := loadContract()
	if err != nil {
		return nil, err
	}

	cl := &client{
		baseURL:    u,
		httpClient: &http.Client{},
		contract:   c,
	}
	for _, opt := range opts {
		opt(cl)
	}

	return cl, nil
}

func (c *client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

// Detect uploads the file as multipart form data and decodes the detection
func (c *client) Detect(ctx context.Context, file *model.SelectedFile) (*model.Detection, error) {
	body, contentType, err := encodeFile(file)
	if err != nil {
		return nil, err
	}

	endpoint := c.endpoint(detectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create detect request", goerr.V("url", endpoint))
	}
	req.Header.Set("Content-Type", contentType)

	ctxlog.From(ctx).Debug("Sending detect request",
		"url", endpoint,
		"file_name", file.Name,
		"media_type", file.MediaType,
		"size_bytes", len(file.Data),
	)

	var detection model.Detection
	if err := c.do(req, c.contract.detection, &detection); err != nil {
		return nil, err
	}

	return &detection, nil
}

// ListPlants fetches the catalog of plants identified by the backend
func (c *client) ListPlants(ctx context.Context) (*model.PlantCatalog, error) {
	endpoint := c.endpoint(plantsPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create plants request", goerr.V("url", endpoint))
	}

	var catalog model.PlantCatalog
	if err := c.do(req, c.contract.catalog, &catalog); err != nil {
		return nil, err
	}

	return &catalog, nil
}

// do sends req, turns non-2xx answers into *model.BackendError and
// validates 2xx bodies against schema before decoding them into out.
func (c *client) do(req *http.Request, schema *openapi3.Schema, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request", goerr.V("url", req.URL.String()))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.V("url", req.URL.String()))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return goerr.Wrap(&model.BackendError{
			StatusCode: resp.StatusCode,
			Message:    failureMessage(data),
		}, "backend rejected request", goerr.V("url", req.URL.String()))
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return goerr.Wrap(err, "malformed response body", goerr.V("url", req.URL.String()))
	}
	if err := schema.VisitJSON(raw); err != nil {
		return goerr.Wrap(err, "response violates detection contract", goerr.V("url", req.URL.String()))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "failed to decode response body", goerr.V("url", req.URL.String()))
	}

	return nil
}

// failureMessage picks the first human readable message of an error body.
// FastAPI puts it in "detail", other backends in "message" or "error".
func failureMessage(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	var detail string
	if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
		return detail
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func encodeFile(file *model.SelectedFile) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", multipart.FileContentDisposition(fileField, file.Name))
	h.Set("Content-Type", file.MediaType)

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to create form file", goerr.V("name", file.Name))
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", goerr.Wrap(err, "failed to write image data", goerr.V("name", file.Name))
	}
	if err := writer.Close(); err != nil {
		return nil, "", goerr.Wrap(err, "failed to close multipart writer")
	}

	return body, writer.FormDataContentType(), nil
}
