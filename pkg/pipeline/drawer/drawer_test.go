package drawer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-varcall/pkg/pipeline"
	"github.com/askiada/go-varcall/pkg/pipeline/drawer"
	"github.com/askiada/go-varcall/pkg/pipeline/measure"
)

func TestDOTDrawerChain(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "unused.dot"))
	require.NoError(t, d.AddStep("start"))
	require.NoError(t, d.AddStep("1. bwa"))
	require.NoError(t, d.AddStep("end"))
	require.NoError(t, d.AddLink("start", "1. bwa"))
	require.NoError(t, d.AddLink("1. bwa", "end"))

	var buf bytes.Buffer
	require.NoError(t, d.DrawTo(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "strict digraph {"), out)
	assert.Contains(t, out, `"start" -> "1. bwa"`)
	assert.Contains(t, out, `"1. bwa" -> "end"`)
	assert.Less(t, strings.Index(out, `"start" [`), strings.Index(out, `"end" [`))
}

func TestDOTDrawerErrors(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "unused.dot"))
	require.NoError(t, d.AddStep("start"))
	require.Error(t, d.AddStep("start"))
	require.Error(t, d.AddLink("start", "missing"))
}

func TestDOTDrawerMeasure(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "unused.dot"))
	for _, name := range []string{"start", "1. fast", "2. slow", "end"} {
		require.NoError(t, d.AddStep(name))
	}

	msr := measure.NewDefaultMeasure()
	msr.AddMetric("1. fast").AddDuration(time.Millisecond)
	msr.AddMetric("2. slow").AddDuration(time.Second)
	msr.AddMetric("end").SetTotalDuration(2 * time.Second)
	msr.AddMetric("not drawn").AddDuration(time.Second)

	require.NoError(t, d.AddMeasure(msr))

	var buf bytes.Buffer
	require.NoError(t, d.DrawTo(&buf))

	out := buf.String()
	assert.Contains(t, out, `color="#0000f0"`)
	assert.Contains(t, out, `color="#f00000"`)
	assert.Contains(t, out, `<FONT POINT-SIZE="12">1s</FONT>`)
	assert.Contains(t, out, `<FONT POINT-SIZE="12">total: 2s</FONT>`)
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "alignment.dot")
	msr := measure.NewDefaultMeasure()

	pipe, err := pipeline.New(
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(fileName), msr),
	)
	require.NoError(t, err)

	noop := pipeline.CommandFunc(func(_ context.Context, in pipeline.Value) (pipeline.Value, error) {
		return in, nil
	})
	pipe.Add(noop).Add(pipeline.NewFileWriteCommand(filepath.Join(t.TempDir(), "sample.sam")))

	for i := 0; i < 2; i++ {
		_, err = pipe.Pipe(context.Background(), pipeline.Text("@HD"))
		require.NoError(t, err)
	}

	raw, err := os.ReadFile(fileName)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, `"start" -> "1. pipeline.CommandFunc"`)
	assert.Contains(t, out, `"1. pipeline.CommandFunc" -> "2. write sample.sam"`)
	assert.Contains(t, out, `"2. write sample.sam" -> "end"`)
	assert.Contains(t, out, "total: ")

	pipe.Add(noop)
	_, err = pipe.Pipe(context.Background(), pipeline.Text("@HD"))
	require.Error(t, err)
}
