package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name)
	pm.AddMetric(model.EndStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepOutput(step *model.StepInfo, computationDuration time.Duration) error {
	mt := pm.GetMetric(step.Name)
	if mt == nil {
		return errors.Errorf("no metric for step %s", step.Name)
	}
	mt.AddDuration(computationDuration)

	return nil
}

func (pm *pipelineMeasure) Finish(totalDuration time.Duration) error {
	mt := pm.GetMetric(model.EndStep.Name)
	if mt == nil {
		return errors.Errorf("no metric for step %s", model.EndStep.Name)
	}
	mt.SetTotalDuration(totalDuration)

	return nil
}

// PipelineMeasure records the duration of every step of a pipeline into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
