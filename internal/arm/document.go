package arm

import (
	"fmt"

	"github.com/go-openapi/spec"
	"github.com/go-openapi/swag"

	"github.com/conduit-lang/armgen/internal/apiversion"
)

const (
	armHost          = "management.azure.com"
	authScheme       = "azure_auth"
	authScope        = "user_impersonation"
	authorizationURL = "https://login.microsoftonline.com/common/oauth2/authorize"
)

// SerializeModule compiles m into the Swagger document for target.
func SerializeModule(m Module, target apiversion.Target) (*spec.Swagger, error) {
	fragments, err := CompileFragments(m, target)
	if err != nil {
		return nil, err
	}
	return newDocument(m, target, fragments)
}

// newDocument wraps compiled fragments in the fixed ARM envelope.
func newDocument(m Module, target apiversion.Target, f *Fragments) (*spec.Swagger, error) {
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       m.Name,
					Description: m.Description,
					Version:     target.String(),
				},
			},
			Host:     armHost,
			Schemes:  []string{"https"},
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			Security: []map[string][]string{
				{authScheme: {authScope}},
			},
			SecurityDefinitions: spec.SecurityDefinitions{
				authScheme: azureAuth(),
			},
			Paths: &spec.Paths{Paths: map[string]spec.PathItem{}},
		},
	}

	if err := swag.DynamicJSONToStruct(f.Paths, doc.Paths); err != nil {
		return nil, fmt.Errorf("converting paths: %w", err)
	}
	if err := swag.DynamicJSONToStruct(f.Definitions, &doc.Definitions); err != nil {
		return nil, fmt.Errorf("converting definitions: %w", err)
	}
	if err := swag.DynamicJSONToStruct(f.Parameters, &doc.Parameters); err != nil {
		return nil, fmt.Errorf("converting parameters: %w", err)
	}
	return doc, nil
}

func azureAuth() *spec.SecurityScheme {
	scheme := spec.OAuth2Implicit(authorizationURL)
	scheme.Description = "Azure Active Directory OAuth2 Flow."
	scheme.AddScope(authScope, "impersonate your user account")
	return scheme
}
