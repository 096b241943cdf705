// Package bundle installs a recipe.
//
// Installation is a flat list of steps executed in order:
//
//  1. every tap, as declared
//  2. every formula, each followed by its postinstall steps
//  3. every cask, as declared
//
// The first failing step stops the run. Nothing is rolled back and nothing
// is checked beforehand; brew decides what an already installed formula
// means.
package bundle
