// Package pipeline provides a pipeline for chaining commands.
//
// A pipeline is an ordered list of commands. Each command receives the value produced by the previous one and
// returns a new value for the next. Commands either run an external program (ProcessCommand) or persist the
// current value to a file (FileWriteCommand), and any type implementing Command can join a chain.
//
// The value flowing between commands is a small tagged union: nothing (Unit), decoded text (Text) or raw bytes
// (Bytes). Commands that declare which kinds they accept and produce are checked before the pipeline starts, so a
// badly composed chain fails without running a single step.
//
// The pipeline runs steps one after the other and stops on the first error. A program exiting with a non-zero
// status is an error unless the command was built to ignore it. Side effects of the steps that already ran are
// left in place.
package pipeline
