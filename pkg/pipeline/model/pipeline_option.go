package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error
	// PrepareStep runs when a step is added to the pipeline. parentStep is StartStep for the first step.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepOutput runs every time a step returns successfully.
	OnStepOutput(step *StepInfo, computationDuration time.Duration) error
	// Finish runs after every successful run of the pipeline.
	Finish(totalDuration time.Duration) error
}
