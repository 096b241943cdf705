// Package types defines the recipe model shared by the parser, the installer
// and the diff reporter, along with the small interfaces drip uses to reach
// the filesystem.
//
// A Recipe is built once by pkg/recipe and consumed read-only afterwards.
// Postinstall is a closed set of four step kinds; consumers dispatch on it
// with a single type switch.
package types
