package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/pkg/pipeline/measure"
	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m        measure.Measure
	lastStep string
	closed   bool
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}
	err = pd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}
	pd.lastStep = model.StartStep.Name

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	if pd.closed {
		return errors.Errorf("unable to add step %s after the pipeline was drawn", step.Name)
	}
	err := pd.AddStep(step.Name)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}
	pd.lastStep = step.Name

	return nil
}

func (pd *pipelineDrawer) OnStepOutput(*model.StepInfo, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish(time.Duration) error {
	if !pd.closed {
		err := pd.AddLink(pd.lastStep, model.EndStep.Name)
		if err != nil {
			return errors.Wrap(err, "unable to link end step")
		}
		pd.closed = true
	}

	if pd.m != nil {
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the pipeline with drawer after every successful run.
// The graph is labelled with the durations found in measure when it is not nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
