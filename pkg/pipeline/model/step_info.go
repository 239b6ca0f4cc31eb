package model

// StepType tells what kind of command a step runs.
type StepType string

const (
	BoundaryStepType StepType = "boundary"
	ProcessStepType  StepType = "process"
	WriteStepType    StepType = "write"
	CommandStepType  StepType = "command"
)

// StepInfo describes a step of a pipeline.
type StepInfo struct {
	Type StepType
	Name string
	// Index is the 1-based position of the step in the pipeline. Boundary steps have index 0.
	Index int
}

// StartStep and EndStep are the boundaries every pipeline graph is attached to.
var (
	StartStep = &StepInfo{Type: BoundaryStepType, Name: "start"}
	EndStep   = &StepInfo{Type: BoundaryStepType, Name: "end"}
)
