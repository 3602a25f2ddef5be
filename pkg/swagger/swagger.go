// Package swagger generates an OpenAPI document describing the routes of the
// registered admin controllers.
package swagger

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-adminview/pkg/controller"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "swagger.json"

// SecurityScheme names the bearer token scheme on authenticated operations.
const SecurityScheme = "bearerAuth"

// Info describes the generated document.
type Info struct {
	Title    string
	Version  string
	BasePath string
}

// Generate builds an OpenAPI 3 document for every controller route.
// Authenticated controllers require the bearer scheme; the controller feature
// becomes the operation tag.
func Generate(info Info, controllers []controller.Controller) (*openapi3.T, error) {
	if info.Title == "" {
		info.Title = "Admin API"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				SecurityScheme: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}

	ids := make(map[string]struct{})
	for _, c := range controllers {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("swagger: %w", err)
		}
		for _, route := range c.Routes {
			path, params := openAPIPath(controller.MountPath(info.BasePath, route.Path))
			item := doc.Paths.Value(path)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(path, item)
			}
			if item.GetOperation(route.Method) != nil {
				return nil, fmt.Errorf("swagger: duplicate operation %s %s", route.Method, path)
			}

			op := openapi3.NewOperation()
			op.OperationID = operationID(c.Name, route, ids)
			op.Summary = route.Summary
			if c.Feature != "" {
				op.Tags = []string{c.Feature}
			}
			for _, name := range params {
				op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
			}
			op.Responses = responses(c.Authenticated)
			if c.Authenticated {
				op.Security = openapi3.NewSecurityRequirements().
					With(openapi3.NewSecurityRequirement().Authenticate(SecurityScheme))
			}
			item.SetOperation(route.Method, op)
		}
	}
	return doc, nil
}

// Marshal renders doc as indented JSON.
func Marshal(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("swagger: nil document")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("swagger: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes doc to path, or DefaultOutput when path is empty.
func WriteFile(doc *openapi3.T, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultOutput
	}
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("swagger: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("swagger: write %s: %w", path, err)
	}
	return path, nil
}

// Paths returns the sorted document paths.
func Paths(doc *openapi3.T) []string {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	out := make([]string, 0, doc.Paths.Len())
	for path := range doc.Paths.Map() {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func responses(authenticated bool) *openapi3.Responses {
	opts := []openapi3.NewResponsesOption{
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Rendered HTML view"),
		}),
		openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Not found"),
		}),
	}
	if authenticated {
		opts = append(opts, openapi3.WithStatus(http.StatusUnauthorized, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Missing or invalid token"),
		}))
	}
	return openapi3.NewResponses(opts...)
}

// openAPIPath converts httprouter parameters (":id", "*rest") to templated
// segments and returns their names.
func openAPIPath(routerPath string) (string, []string) {
	segments := strings.Split(routerPath, "/")
	var params []string
	for i, seg := range segments {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			name := seg[1:]
			params = append(params, name)
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/"), params
}

func operationID(controllerName string, route controller.Route, seen map[string]struct{}) string {
	base := strings.ToLower(route.Method) + "_" + strings.NewReplacer(".", "_", "-", "_").Replace(controllerName)
	id := base
	for n := 2; ; n++ {
		if _, taken := seen[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
	seen[id] = struct{}{}
	return id
}
