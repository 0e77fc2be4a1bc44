// Package scaffold generates Python file skeletons from embedded templates.
// It powers the "sampy gen" command, producing class and function files with
// the house docstring and section-divider style pre-filled.
package scaffold
