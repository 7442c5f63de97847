// Package domain holds the error values shared by the public packages.
// It has no dependencies beyond the standard library.
package domain
