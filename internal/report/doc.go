// Package report renders analysis results for human consumption: a plain
// text writer for terminal display and a Markdown writer for documentation
// and sharing. JSON output is handled at the CLI with encoding/json since
// the report model already carries JSON tags.
package report
