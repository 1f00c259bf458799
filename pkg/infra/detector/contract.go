package detector

import (
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed openapi.yaml
var openapiSpec []byte

// contract holds the response schemas the client accepts
type contract struct {
	detection *openapi3.Schema
	catalog   *openapi3.Schema
}

func loadContract() (*contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load detection API contract")
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, goerr.Wrap(err, "invalid detection API contract")
	}

	detection, err := responseSchema(doc, "/detect", http.MethodPost)
	if err != nil {
		return nil, err
	}
	catalog, err := responseSchema(doc, "/plants", http.MethodGet)
	if err != nil {
		return nil, err
	}

	return &contract{
		detection: detection,
		catalog:   catalog,
	}, nil
}

func responseSchema(doc *openapi3.T, path, method string) (*openapi3.Schema, error) {
	item := doc.Paths.Value(path)
	if item == nil {
		return nil, goerr.New("path not found in contract", goerr.V("path", path))
	}
	op := item.GetOperation(method)
	if op == nil {
		return nil, goerr.New("operation not found in contract", goerr.V("path", path), goerr.V("method", method))
	}

	resp := op.Responses.Status(http.StatusOK)
	if resp == nil || resp.Value == nil {
		return nil, goerr.New("no 200 response in contract", goerr.V("path", path))
	}
	media := resp.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, goerr.New("no JSON schema in contract", goerr.V("path", path))
	}

	return media.Schema.Value, nil
}
