package arm

import (
	"fmt"

	"github.com/conduit-lang/armgen/internal/schema"
)

// Method is one of the four operations every resource path carries.
type Method int

const (
	Get Method = iota
	Put
	Patch
	Delete
)

// Methods lists the operations in document order.
var Methods = []Method{Get, Put, Patch, Delete}

const commonTypes = "../../../../../common-types/resource-management/v3/types.json"

// String returns the lowercase HTTP verb used as the path item key.
func (m Method) String() string {
	switch m {
	case Get:
		return "get"
	case Put:
		return "put"
	case Patch:
		return "patch"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// operationName is the operationId suffix.
func (m Method) operationName() string {
	switch m {
	case Get:
		return "Get"
	case Put:
		return "CreateUpdate"
	case Patch:
		return "Update"
	default:
		return "Delete"
	}
}

// OperationID returns the operationId of m on r, e.g. "Widgets_CreateUpdate".
func OperationID(r Resource, m Method) string {
	return r.Plural + "_" + m.operationName()
}

// SerializeHandler returns the operation object for m on r.
func SerializeHandler(r Resource, m Method) map[string]interface{} {
	operation := map[string]interface{}{
		"operationId": OperationID(r, m),
		"tags":        []string{r.Plural},
		"description": handlerDescription(r, m),
		"parameters":  handlerParameters(r, m),
		"responses":   handlerResponses(r, m),
	}
	if m != Get {
		operation["x-ms-long-running-operation"] = true
	}
	return operation
}

func handlerDescription(r Resource, m Method) string {
	switch m {
	case Get:
		return fmt.Sprintf("Get a %s.", r.Singular)
	case Put:
		return fmt.Sprintf("Create or update a %s.", r.Singular)
	case Patch:
		return fmt.Sprintf("Update a %s.", r.Singular)
	default:
		return fmt.Sprintf("Delete a %s.", r.Singular)
	}
}

// handlerParameters lists subscription, resource group, path segment and
// api-version parameters, followed by the request body for Put and Patch.
func handlerParameters(r Resource, m Method) []interface{} {
	params := []interface{}{
		commonParameter("SubscriptionIdParameter"),
		commonParameter("ResourceGroupNameParameter"),
	}
	for _, seg := range r.Path {
		params = append(params, parameterRef(seg.Parameter.Name))
	}
	params = append(params, commonParameter("ApiVersionParameter"))

	switch m {
	case Put:
		params = append(params, bodyParameter("resource",
			fmt.Sprintf("The %s to create or update.", r.Singular), r))
	case Patch:
		params = append(params, bodyParameter("properties",
			fmt.Sprintf("The %s properties to update.", r.Singular), r))
	}
	return params
}

func handlerResponses(r Resource, m Method) map[string]interface{} {
	switch m {
	case Get:
		return map[string]interface{}{
			"200": schemaResponse(r, "%s retrieved successfully."),
		}
	case Put:
		return map[string]interface{}{
			"200": schemaResponse(r, "%s updated successfully."),
			"201": schemaResponse(r, "%s created; provisioning continues asynchronously."),
		}
	case Patch:
		return map[string]interface{}{
			"200": schemaResponse(r, "%s already matches the requested values."),
			"202": schemaResponse(r, "%s update accepted; it completes asynchronously."),
		}
	default:
		return map[string]interface{}{
			"202": response(fmt.Sprintf("%s deletion accepted; it completes asynchronously.", r.Singular)),
			"204": response(fmt.Sprintf("%s does not exist.", r.Singular)),
		}
	}
}

func response(description string) map[string]interface{} {
	return map[string]interface{}{"description": description}
}

func schemaResponse(r Resource, format string) map[string]interface{} {
	resp := response(fmt.Sprintf(format, r.Singular))
	resp["schema"] = schema.RefSchema(r.ResourceDefinitionName())
	return resp
}

func bodyParameter(name, description string, r Resource) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "body",
		"required":    true,
		"description": description,
		"schema":      schema.RefSchema(r.ResourceDefinitionName()),
	}
}

// commonParameter references a parameter shared by every ARM operation.
func commonParameter(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": commonTypes + "#/parameters/" + name}
}

func parameterRef(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": "#/parameters/" + name}
}
