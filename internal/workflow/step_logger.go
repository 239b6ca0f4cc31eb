package workflow

import (
	"log/slog"
	"time"

	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

// stepLogger logs every completed step at debug level.
type stepLogger struct {
	log *slog.Logger
}

func (l *stepLogger) New() error {
	return nil
}

func (l *stepLogger) PrepareStep(*model.StepInfo, *model.StepInfo) error {
	return nil
}

func (l *stepLogger) OnStepOutput(step *model.StepInfo, computationDuration time.Duration) error {
	l.log.Debug("pipeline.step", "step", step.Name, "type", string(step.Type), "duration", computationDuration)

	return nil
}

func (l *stepLogger) Finish(totalDuration time.Duration) error {
	l.log.Debug("pipeline.done", "duration", totalDuration)

	return nil
}
