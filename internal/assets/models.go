// Package assets embeds static data shipped with the binary.
package assets

import _ "embed"

// ModelsData is the raw JSON catalog of supported providers and models.
//
//go:embed models.json
var ModelsData []byte
