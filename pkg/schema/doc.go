// Package schema produces metadata form definitions from YAML definition files
// and from OpenAPI component schemas.
package schema
