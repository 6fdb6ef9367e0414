package httpapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// OpenAPISpec returns the YAML document served at /spec.
func OpenAPISpec() []byte { return append([]byte(nil), openAPISpec...) }

// specDoc serves the embedded document to swagger UI as JSON.
type specDoc struct{ json string }

func (d specDoc) ReadDoc() string { return d.json }

func init() {
	doc, err := specJSON(openAPISpec)
	if err != nil {
		panic(fmt.Sprintf("httpapi: embedded openapi.yaml: %v", err))
	}
	swag.Register(swag.Name, specDoc{json: doc})
}

func specJSON(y []byte) (string, error) {
	var v map[string]any
	if err := yaml.Unmarshal(y, &v); err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MountSwagger serves swagger UI under /docs/ of r.
func MountSwagger(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, req.URL.Path+"/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("doc.json")))
}
