// Package mdvalidate validates markdown documents against markdown schemas.
//
// A schema is itself a markdown document. Wherever the input may vary, the
// schema holds a matcher: a regular expression written in an inline code
// span, optionally named so that the text it matches is captured.
//
//	# `title:/.+/`
//
//	Author: `author:/\w+/`
//
//	- `tag:/[a-z]+/`{1,}
//
// validates
//
//	# Release notes
//
//	Author: Ada
//
//	- fixes
//	- docs
//
// and captures {"title": "Release notes", "author": "Ada", "tag": ["fixes", "docs"]}.
//
// # Overview
//
// The module consists of these packages:
//
//   - validator: compares an input document against a schema, one-shot or
//     incrementally as the input streams in
//   - matcher: parses matcher code spans and the quantifiers that follow them
//   - mdtree: the parse tree both documents are compared on
//   - mderrors: the error types validation reports
//
// The mdvalidate command wraps the validator for the shell and serves it to
// MCP clients.
//
// # Quick Start
//
// Validate a file against a schema file:
//
//	import "github.com/404Wolf/mdvalidate-sub001/validator"
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithSchemaFilePath("schema.md"),
//		validator.WithInputFilePath("README.md"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues() {
//		fmt.Println(issue.String())
//	}
//	fmt.Println(result.Value)
//
// Validate input as it arrives:
//
//	state, err := validator.New(schema)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for chunk := range chunks {
//		text += chunk
//		if err := state.ReadInput(text, false); err != nil {
//			log.Fatal(err)
//		}
//		state.Validate()
//	}
//	_ = state.ReadInput(text, true)
//	result := state.Validate()
//
// # Command Line
//
//	mdvalidate validate --schema schema.md README.md
//	cat README.md | mdvalidate validate --schema schema.md --stream -
//	mdvalidate validate --schema schema.md --format json README.md | jq '.captures'
//	mdvalidate mcp
package mdvalidate
