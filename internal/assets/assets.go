// Package assets embeds the sample question bank and book catalogue served
// by the companion server when no files are configured.
package assets

import (
	_ "embed"
)

//go:embed questions.json
var Questions []byte

//go:embed books.csv
var Books []byte
