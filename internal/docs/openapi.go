// Package docs describes the product API as an OpenAPI 3 document and serves
// it together with a Swagger UI page.
package docs

import (
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

const schemaPrefix = "#/components/schemas/"

// NewSpec builds the OpenAPI document for the product API.
func NewSpec(title, version string) *openapi3.T {
	product := productSchema()
	productRef := &openapi3.SchemaRef{Ref: schemaPrefix + "Product", Value: product}
	productInput := productInputSchema()
	productInputRef := &openapi3.SchemaRef{Ref: schemaPrefix + "ProductInput", Value: productInput}
	validationErrors := validationErrorsSchema()
	validationErrorsRef := &openapi3.SchemaRef{Ref: schemaPrefix + "ValidationErrors", Value: validationErrors}
	errorBody := errorSchema()
	errorRef := &openapi3.SchemaRef{Ref: schemaPrefix + "Error", Value: errorBody}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: "API Docs for Products",
		},
		Paths: &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Product":          &openapi3.SchemaRef{Value: product},
				"ProductInput":     &openapi3.SchemaRef{Value: productInput},
				"ValidationErrors": &openapi3.SchemaRef{Value: validationErrors},
				"Error":            &openapi3.SchemaRef{Value: errorBody},
			},
		},
		Tags: openapi3.Tags{
			&openapi3.Tag{Name: "Products", Description: "API operations related to products"},
		},
	}

	one := dataOf(productRef)
	many := dataOf(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{"array"},
		Items: productRef,
	}})
	deleted := dataOf(&openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:    &openapi3.Types{"string"},
		Example: "Prducto eliminado",
	}})
	badRequest := response("Bad Request - Invalid input data", validationErrorsRef)
	notFound := response("Not found - Product not found", errorRef)
	internal := response("Internal server error", errorRef)

	spec.Paths.Set("/api/products", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listProducts",
			Summary:     "Get a list of products",
			Description: "Return a list of products, newest first",
			Tags:        []string{"Products"},
			Responses: responses(map[int]*openapi3.Response{
				http.StatusOK:                  response("Successful response", many),
				http.StatusInternalServerError: internal,
			}),
		},
		Post: &openapi3.Operation{
			OperationID: "createProduct",
			Summary:     "Creates a new product",
			Description: "Returns a new record in the database",
			Tags:        []string{"Products"},
			RequestBody: jsonBody(productInputRef),
			Responses: responses(map[int]*openapi3.Response{
				http.StatusCreated:             response("Product created successfully", one),
				http.StatusBadRequest:          badRequest,
				http.StatusInternalServerError: internal,
			}),
		},
	})

	spec.Paths.Set("/api/products/{id}", &openapi3.PathItem{
		Parameters: openapi3.Parameters{
			&openapi3.ParameterRef{
				Value: &openapi3.Parameter{
					Name:        "id",
					In:          openapi3.ParameterInPath,
					Description: "The ID of the product",
					Required:    true,
					Schema: &openapi3.SchemaRef{
						Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}},
					},
				},
			},
		},
		Get: &openapi3.Operation{
			OperationID: "getProduct",
			Summary:     "Get a product by ID",
			Description: "Return a product based on its unique ID",
			Tags:        []string{"Products"},
			Responses: responses(map[int]*openapi3.Response{
				http.StatusOK:                  response("Successful response", one),
				http.StatusBadRequest:          badRequest,
				http.StatusNotFound:            notFound,
				http.StatusInternalServerError: internal,
			}),
		},
		Put: &openapi3.Operation{
			OperationID: "updateProduct",
			Summary:     "Updates a product with user input",
			Description: "Returns the updated product",
			Tags:        []string{"Products"},
			RequestBody: jsonBody(&openapi3.SchemaRef{Value: productUpdateSchema()}),
			Responses: responses(map[int]*openapi3.Response{
				http.StatusOK:                  response("Successful response", one),
				http.StatusBadRequest:          badRequest,
				http.StatusNotFound:            notFound,
				http.StatusInternalServerError: internal,
			}),
		},
		Patch: &openapi3.Operation{
			OperationID: "toggleProductAvailability",
			Summary:     "Update product availability",
			Description: "Flips the availability of a product",
			Tags:        []string{"Products"},
			Responses: responses(map[int]*openapi3.Response{
				http.StatusOK:                  response("Successful response", one),
				http.StatusBadRequest:          badRequest,
				http.StatusNotFound:            notFound,
				http.StatusInternalServerError: internal,
			}),
		},
		Delete: &openapi3.Operation{
			OperationID: "deleteProduct",
			Summary:     "Deletes a product by a given ID",
			Description: "Returns a confirmation message",
			Tags:        []string{"Products"},
			Responses: responses(map[int]*openapi3.Response{
				http.StatusOK:                  response("Successful response", deleted),
				http.StatusBadRequest:          badRequest,
				http.StatusNotFound:            notFound,
				http.StatusInternalServerError: internal,
			}),
		},
	})

	return spec
}

func productSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"id": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:        &openapi3.Types{"integer"},
				Format:      "int64",
				Description: "The Product ID",
				Example:     float64(1),
			}},
			"name": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:        &openapi3.Types{"string"},
				Description: "The Product name",
				Example:     "Monitor Curvo de 49 Pulgadas",
			}},
			"price": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:        &openapi3.Types{"number"},
				Description: "The Product price, greater than zero",
				Example:     float64(300),
			}},
			"availability": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:        &openapi3.Types{"boolean"},
				Description: "The Product availability",
				Example:     true,
			}},
		},
		Required: []string{"id", "name", "price", "availability"},
	}
}

func productInputSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"name": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:    &openapi3.Types{"string"},
				Example: "Monitor Curvo de 49 Pulgadas",
			}},
			"price": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:    &openapi3.Types{"number"},
				Example: float64(399),
			}},
		},
		Required: []string{"name", "price"},
	}
}

func productUpdateSchema() *openapi3.Schema {
	schema := productInputSchema()
	schema.Properties["availability"] = &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:    &openapi3.Types{"boolean"},
		Example: true,
	}}
	schema.Required = append(schema.Required, "availability")
	return schema
}

func validationErrorsSchema() *openapi3.Schema {
	violation := &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"type":     &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Example: "field"}},
			"value":    &openapi3.SchemaRef{Value: &openapi3.Schema{Description: "The rejected value, when one was sent"}},
			"msg":      &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Example: "Id no valido"}},
			"path":     &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Example: "id"}},
			"location": &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Example: "params"}},
		},
		Required: []string{"msg"},
	}
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"errors": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: &openapi3.SchemaRef{Value: violation},
			}},
		},
	}
}

func errorSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Properties: openapi3.Schemas{
			"error": &openapi3.SchemaRef{Value: &openapi3.Schema{
				Type:    &openapi3.Types{"string"},
				Example: "Product not found",
			}},
		},
	}
}

func dataOf(ref *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: openapi3.Schemas{"data": ref},
	}}
}

func jsonBody(ref *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref),
	}
}

func response(description string, ref *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(ref)
}

func responses(byStatus map[int]*openapi3.Response) *openapi3.Responses {
	out := &openapi3.Responses{}
	for status, resp := range byStatus {
		out.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: resp})
	}
	return out
}
