package drawer

import (
	"io"

	"github.com/askiada/go-varcall/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and child steps.
	AddLink(parentStepName, childStepName string) error
	// AddMeasure labels and colours the steps with the durations recorded in measure.
	AddMeasure(measure measure.Measure) error
	// Draw writes the pipeline graph.
	Draw() error
	// DrawTo writes the pipeline graph to wrt.
	DrawTo(wrt io.Writer) error
}
