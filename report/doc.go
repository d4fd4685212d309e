// Package report summarizes a title mapping and link graph and renders
// the summary as Markdown.
package report
