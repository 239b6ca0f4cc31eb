package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

// Pipeline is an ordered chain of commands.
type Pipeline struct {
	opts     []model.PipelineOption
	commands []Command
	steps    []*model.StepInfo
	err      error
}

// New creates an empty pipeline.
func New(opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		opts: opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Add appends cmd to the pipeline and returns the pipeline.
// Adding a nil command, or an option refusing the step, makes every later call to Pipe fail.
func (p *Pipeline) Add(cmd Command) *Pipeline {
	if p.err != nil {
		return p
	}
	if cmd == nil {
		p.err = ErrCommandMustBeSet

		return p
	}

	step := &model.StepInfo{
		Type:  stepTypeOf(cmd),
		Name:  fmt.Sprintf("%d. %s", len(p.steps)+1, describe(cmd)),
		Index: len(p.steps) + 1,
	}

	parent := model.StartStep
	if len(p.steps) > 0 {
		parent = p.steps[len(p.steps)-1]
	}

	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step)
		if err != nil {
			p.err = errors.Wrapf(err, "unable to prepare step %s", step.Name)

			return p
		}
	}

	p.commands = append(p.commands, cmd)
	p.steps = append(p.steps, step)

	return p
}

// Len returns the number of commands in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.commands)
}

// Commands returns the commands in execution order.
func (p *Pipeline) Commands() []Command {
	commands := make([]Command, len(p.commands))
	copy(commands, p.commands)

	return commands
}

// Pipe runs every command in order, feeding start to the first one and the output of each command to the next.
// It stops on the first error and returns the output of the last command.
func (p *Pipeline) Pipe(ctx context.Context, start Value) (Value, error) {
	if p.err != nil {
		return Unit(), p.err
	}

	err := p.checkKinds(start.Kind())
	if err != nil {
		return Unit(), err
	}

	startTime := time.Now()
	current := start

	for i, cmd := range p.commands {
		step := p.steps[i]

		if ctxErr := ctx.Err(); ctxErr != nil {
			return Unit(), errors.Wrapf(ctxErr, "step %s", step.Name)
		}

		startFn := time.Now()

		out, err := cmd.Invoke(ctx, current)
		if err != nil {
			return Unit(), errors.Wrapf(err, "step %s", step.Name)
		}

		endFn := time.Since(startFn)

		for _, opt := range p.opts {
			err := opt.OnStepOutput(step, endFn)
			if err != nil {
				return Unit(), errors.Wrap(err, "unable to run step output function")
			}
		}

		current = out
	}

	return current, p.finishRun(time.Since(startTime))
}

func (p *Pipeline) finishRun(totalDuration time.Duration) error {
	for _, opt := range p.opts {
		err := opt.Finish(totalDuration)
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

// checkKinds walks the chain and fails when a typed step would receive a kind it does not accept.
// An untyped step hides the kind of its output, so the step after it is not checked.
func (p *Pipeline) checkKinds(start Kind) error {
	current, known := start, true

	for i, cmd := range p.commands {
		typed, ok := cmd.(Typed)
		if !ok {
			known = false

			continue
		}

		if known && !typed.Accepts(current) {
			return errors.Wrapf(ErrKindMismatch, "step %s receives %s", p.steps[i].Name, current)
		}

		current, known = typed.Produces(), true
	}

	return nil
}

func stepTypeOf(cmd Command) model.StepType {
	switch cmd.(type) {
	case *ProcessCommand:
		return model.ProcessStepType
	case *FileWriteCommand:
		return model.WriteStepType
	default:
		return model.CommandStepType
	}
}
