// Package docs carries the OpenAPI description of the admin API.
package docs

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
