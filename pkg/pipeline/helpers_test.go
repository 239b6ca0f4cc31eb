package pipeline_test

import (
	"context"
	"os/exec"
	"sync"
	"testing"

	"github.com/askiada/go-varcall/pkg/pipeline"
)

// recorder collects, in order, the inputs received by the commands it creates.
type recorder struct {
	mu     sync.Mutex
	inputs []string
}

func (r *recorder) command(name string, out pipeline.Value) pipeline.Command {
	return pipeline.CommandFunc(func(_ context.Context, in pipeline.Value) (pipeline.Value, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.inputs = append(r.inputs, name+"<-"+in.Kind().String()+":"+in.String())

		return out, nil
	})
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.inputs...)
}

type counter struct {
	calls int
}

func (c *counter) Invoke(_ context.Context, in pipeline.Value) (pipeline.Value, error) {
	c.calls++

	return in, nil
}

func requireProgram(t *testing.T, names ...string) {
	t.Helper()

	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available: %v", name, err)
		}
	}
}

func quietProcess(commandLine string, opts ...pipeline.ProcessOption) *pipeline.ProcessCommand {
	return pipeline.NewProcessCommand(commandLine, append([]pipeline.ProcessOption{pipeline.ProcessTracer(pipeline.DiscardTracer)}, opts...)...)
}
