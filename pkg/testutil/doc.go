// Package testutil provides test doubles shared by drip's package tests.
package testutil
