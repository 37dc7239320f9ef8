// Package schemas embeds the JSON Schema documents that describe the files and
// request bodies the tool accepts.
package schemas

import "embed"

// Schema file names.
const (
	ReportInput   = "report_input.schema.json"
	ContractCache = "contract_cache.schema.json"
	History       = "history.schema.json"
)

// FS holds every *.schema.json file of this directory.
//
//go:embed *.schema.json
var FS embed.FS
