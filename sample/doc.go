// Package sample produces the inputs an engine consumes: datasets and
// per-cluster colors.
package sample
