// Package report provides record and summary output functionality.
//
// This package contains writers for different output formats:
//   - CSVWriter: Spreadsheet-friendly output, the default
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-destination output.
package report
