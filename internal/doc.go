// Package internal runs compiled grammars over files and sources, and
// formats and watches the results for the command line tool.
package internal
