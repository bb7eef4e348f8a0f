package arm

import (
	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/schema"
)

var (
	jan2021 = apiversion.Ptr(apiversion.NewDate(2021, 1, 1))
	jun2021 = apiversion.Ptr(apiversion.NewDate(2021, 6, 1))

	previewTarget = apiversion.NewTarget(apiversion.NewDate(2021, 3, 1), apiversion.Preview)
	gaTarget      = apiversion.NewTarget(apiversion.NewDate(2021, 7, 1), apiversion.GA)
)

func intPtr(n int) *int { return &n }

func widgetResource() Resource {
	dimensions := &schema.Object{
		Name:        "Dimensions",
		Description: "Physical size",
		Properties: map[string]schema.Property{
			"height": {Lifetime: apiversion.Lifetime{GA: jan2021}, Description: "Height", Type: schema.Float{}},
		},
	}

	return Resource{
		Lifetime: apiversion.Lifetime{Preview: jan2021, GA: jun2021},
		Path: []PathSegment{{
			Name: "widgets",
			Parameter: Parameter{
				Name:      "widgetName",
				MinLength: intPtr(3),
				MaxLength: intPtr(63),
				Pattern:   "^[a-z0-9-]+$",
			},
		}},
		Category: Tracked,
		Singular: "Widget",
		Plural:   "Widgets",
		Properties: map[string]schema.Property{
			"size": {
				Lifetime:    apiversion.Lifetime{GA: jan2021},
				Description: "Widget size",
				Type:        schema.Int32{},
				Required:    true,
			},
			"color": {
				Lifetime:    apiversion.Lifetime{Preview: jan2021},
				Description: "Widget color",
				Type:        schema.Enum{Name: "Color", Values: []string{"Red", "Blue"}},
			},
			"dimensions": {
				Lifetime:    apiversion.Lifetime{GA: jan2021},
				Description: "Widget dimensions",
				Type:        dimensions,
			},
			"adminKey": {
				Lifetime:    apiversion.Lifetime{GA: jan2021},
				Description: "Admin key",
				Type:        schema.String{},
				Mutability:  schema.SecretReadWrite,
			},
		},
	}
}

func partResource() Resource {
	return Resource{
		Lifetime: apiversion.Lifetime{GA: jun2021},
		Path: []PathSegment{
			{
				Name: "widgets",
				Parameter: Parameter{
					Name:      "widgetName",
					MinLength: intPtr(3),
					MaxLength: intPtr(63),
					Pattern:   "^[a-z0-9-]+$",
				},
			},
			{Name: "parts", Parameter: Parameter{Name: "partName"}},
		},
		Category: Proxy,
		Singular: "Part",
		Plural:   "Parts",
		Properties: map[string]schema.Property{
			"serial": {Lifetime: apiversion.Lifetime{GA: jun2021}, Description: "Serial number", Type: schema.String{}, Mutability: schema.ReadOnly},
		},
	}
}

func widgetModule() Module {
	return Module{
		Name:        "Contoso Widgets",
		Description: "Widget management",
		Namespace:   "Contoso.Widgets",
		Resources:   []Resource{widgetResource(), partResource()},
	}
}
