package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-varcall/pkg/pipeline"
	"github.com/askiada/go-varcall/pkg/pipeline/measure"
	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

func TestPipeEmpty(t *testing.T) {
	t.Parallel()

	tcs := map[string]pipeline.Value{
		"unit":  pipeline.Unit(),
		"text":  pipeline.Text("ACGT"),
		"bytes": pipeline.Bytes([]byte{1, 2, 3}),
	}

	for name, start := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pipe, err := pipeline.New()
			require.NoError(t, err)
			assert.Equal(t, 0, pipe.Len())

			got, err := pipe.Pipe(context.Background(), start)
			require.NoError(t, err)
			assert.Equal(t, start, got)
		})
	}
}

func TestPipeThreadsValuesInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}

	pipe, err := pipeline.New()
	require.NoError(t, err)

	got, err := pipe.
		Add(rec.command("first", pipeline.Text("one"))).
		Add(rec.command("second", pipeline.Bytes([]byte("two")))).
		Add(rec.command("third", pipeline.Unit())).
		Add(rec.command("fourth", pipeline.Text("four"))).
		Pipe(context.Background(), pipeline.Text("zero"))
	require.NoError(t, err)

	want := []string{
		"first<-text:zero",
		"second<-text:one",
		"third<-bytes:two",
		"fourth<-unit:",
	}
	if diff := cmp.Diff(want, rec.got()); diff != "" {
		t.Errorf("unexpected inputs (-want +got):\n%s", diff)
	}

	text, ok := got.Text()
	require.True(t, ok)
	assert.Equal(t, "four", text)
}

func TestPipeAddReturnsSamePipeline(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)

	same := pipe.Add(&counter{})
	assert.Same(t, pipe, same)
	assert.Equal(t, 1, pipe.Len())
	assert.Len(t, pipe.Commands(), 1)
}

func TestPipeRerunsSideEffects(t *testing.T) {
	t.Parallel()

	first, second := &counter{}, &counter{}

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.Add(first).Add(second)

	for i := 1; i <= 3; i++ {
		_, err := pipe.Pipe(context.Background(), pipeline.Unit())
		require.NoError(t, err)
		assert.Equal(t, i, first.calls)
		assert.Equal(t, i, second.calls)
	}
}

func TestPipeStopsOnFirstError(t *testing.T) {
	t.Parallel()

	after := &counter{}

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.
		Add(&counter{}).
		Add(pipeline.CommandFunc(func(context.Context, pipeline.Value) (pipeline.Value, error) {
			return pipeline.Unit(), assert.AnError
		})).
		Add(after)

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "step 2.")
	assert.Zero(t, after.calls)
}

func TestPipeStopsOnFailingProcess(t *testing.T) {
	t.Parallel()
	requireProgram(t, "sh")

	path := filepath.Join(t.TempDir(), "out.sam")

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.
		Add(quietProcess(`sh -c "echo garbage; exit 1"`)).
		Add(pipeline.NewFileWriteCommand(path))

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())

	var procErr *pipeline.ProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, 1, procErr.ExitCode)
	assert.NoFileExists(t, path)
}

func TestPipeProcessThenWrite(t *testing.T) {
	t.Parallel()
	requireProgram(t, "echo", "cat")

	dir := t.TempDir()
	sam := filepath.Join(dir, "alpha.sam")
	vcf := filepath.Join(dir, "alpha.vcf")

	pipe, err := pipeline.New()
	require.NoError(t, err)
	_, err = pipe.
		Add(quietProcess(`echo "read 1"`)).
		Add(pipeline.NewFileWriteCommand(sam)).
		Add(quietProcess("cat "+pipeline.Quote(sam), pipeline.ProcessOutputBytes())).
		Add(quietProcess("cat", pipeline.ProcessPipeStdin())).
		Add(pipeline.NewFileWriteCommand(vcf)).
		Pipe(context.Background(), pipeline.Unit())
	require.NoError(t, err)

	got, err := os.ReadFile(vcf)
	require.NoError(t, err)
	assert.Equal(t, "read 1\n", string(got))
}

func TestPipeKindMismatchRunsNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "first.txt")
	before := &counter{}

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.
		Add(before).
		Add(pipeline.CommandFunc(func(context.Context, pipeline.Value) (pipeline.Value, error) {
			return pipeline.Text("x"), nil
		})).
		Add(pipeline.NewFileWriteCommand(path)).
		Add(pipeline.NewFileWriteCommand(path + ".copy"))

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())
	require.ErrorIs(t, err, pipeline.ErrKindMismatch)
	assert.Contains(t, err.Error(), "step 4. write first.txt.copy receives unit")
	assert.Zero(t, before.calls)
	assert.NoFileExists(t, path)
}

func TestPipeKindMismatchOnStart(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.Add(pipeline.NewFileWriteCommand(filepath.Join(t.TempDir(), "out")))

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())
	require.ErrorIs(t, err, pipeline.ErrKindMismatch)
}

func TestPipeNilCommand(t *testing.T) {
	t.Parallel()

	after := &counter{}

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.Add(nil).Add(after)

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())
	require.ErrorIs(t, err, pipeline.ErrCommandMustBeSet)
	assert.Zero(t, after.calls)
	assert.Equal(t, 0, pipe.Len())
}

func TestPipeCancelledContext(t *testing.T) {
	t.Parallel()

	first := &counter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipe, err := pipeline.New()
	require.NoError(t, err)
	pipe.Add(first)

	_, err = pipe.Pipe(ctx, pipeline.Unit())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, first.calls)
}

type hookRecorder struct {
	prepared []string
	outputs  []string
	finished int
	failNew  bool
}

func (h *hookRecorder) New() error {
	if h.failNew {
		return assert.AnError
	}

	return nil
}

func (h *hookRecorder) PrepareStep(parentStep, step *model.StepInfo) error {
	h.prepared = append(h.prepared, parentStep.Name+"->"+step.Name+":"+string(step.Type))

	return nil
}

func (h *hookRecorder) OnStepOutput(step *model.StepInfo, _ time.Duration) error {
	h.outputs = append(h.outputs, step.Name)

	return nil
}

func (h *hookRecorder) Finish(time.Duration) error {
	h.finished++

	return nil
}

func TestPipeOptionHooks(t *testing.T) {
	t.Parallel()

	hooks := &hookRecorder{}

	pipe, err := pipeline.New(hooks)
	require.NoError(t, err)
	pipe.
		Add(&counter{}).
		Add(pipeline.NewProcessCommand("bwa index ref.fasta")).
		Add(pipeline.NewFileWriteCommand("/tmp/ref.sam"))

	assert.Equal(t, []string{
		"start->1. *pipeline_test.counter:command",
		"1. *pipeline_test.counter->2. bwa:process",
		"2. bwa->3. write ref.sam:write",
	}, hooks.prepared)
	assert.Empty(t, hooks.outputs)
	assert.Zero(t, hooks.finished)
}

func TestPipeOptionHooksOnRun(t *testing.T) {
	t.Parallel()

	hooks := &hookRecorder{}

	pipe, err := pipeline.New(hooks)
	require.NoError(t, err)
	pipe.Add(&counter{}).Add(&counter{})

	for i := 0; i < 2; i++ {
		_, err = pipe.Pipe(context.Background(), pipeline.Unit())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"1. *pipeline_test.counter",
		"2. *pipeline_test.counter",
		"1. *pipeline_test.counter",
		"2. *pipeline_test.counter",
	}, hooks.outputs)
	assert.Equal(t, 2, hooks.finished)
}

func TestNewOptionError(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(&hookRecorder{failNew: true})
	require.ErrorIs(t, err, assert.AnError)
}

func TestPipeMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()

	pipe, err := pipeline.New(measure.PipelineMeasure(msr))
	require.NoError(t, err)
	pipe.Add(pipeline.CommandFunc(func(context.Context, pipeline.Value) (pipeline.Value, error) {
		time.Sleep(2 * time.Millisecond)

		return pipeline.Unit(), nil
	}))

	_, err = pipe.Pipe(context.Background(), pipeline.Unit())
	require.NoError(t, err)

	step := msr.GetMetric("1. pipeline.CommandFunc")
	require.NotNil(t, step)
	assert.Equal(t, int64(1), step.Calls())
	assert.GreaterOrEqual(t, step.AVGDuration(), 2*time.Millisecond)
	assert.GreaterOrEqual(t, msr.GetMetric(model.EndStep.Name).GetTotalDuration(), 2*time.Millisecond)
}
