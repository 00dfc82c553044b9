// Package servers holds the HTTP contract of the service: the OpenAPI
// document and the echo server interface generated from it.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -generate types,server -package servers -o server.gen.go openapi.yaml
