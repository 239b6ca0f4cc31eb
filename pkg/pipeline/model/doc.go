// Package model provides the data structures shared by the pipeline package and its options.
// It describes the steps of a pipeline and the hooks an option can register on them.
package model
