// Package rojifidocs provides embedded resources for the Rojifi documentation server.
package rojifidocs

import (
	_ "embed"
)

// ContentYAML contains the documentation content tree served by default.
//
//go:embed content/docs.yaml
var ContentYAML []byte
