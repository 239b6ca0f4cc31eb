package workflow

import (
	"strings"

	"github.com/askiada/go-varcall/pkg/pipeline"
)

func commandLine(program string, args ...string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, program)

	for _, arg := range args {
		quoted = append(quoted, pipeline.Quote(arg))
	}

	return strings.Join(quoted, " ")
}

func (r *Runner) picard(tool string, args ...string) string {
	return commandLine("java", append([]string{"-Xmx" + r.cfg.JavaMaxHeap, "-jar", r.cfg.PicardJar(), tool}, args...)...)
}

func (r *Runner) process(line string, opts ...pipeline.ProcessOption) *pipeline.ProcessCommand {
	return pipeline.NewProcessCommand(line, append([]pipeline.ProcessOption{pipeline.ProcessTracer(r.tracer)}, opts...)...)
}

// AlignmentPipeline indexes the reference, aligns the sample, then sorts, marks duplicates and indexes the result.
func (r *Runner) AlignmentPipeline(s Sample) (*pipeline.Pipeline, error) {
	pipe, err := pipeline.New(r.pipelineOptions(s, "alignment")...)
	if err != nil {
		return nil, err
	}

	idx := s.IndexPrefix
	ref := r.cfg.ReferencePath()

	return pipe.
		Add(r.process(commandLine("bwa", "index", "-a", "is", "-p", idx, ref))).
		Add(r.process(commandLine("bwa", "mem", "-A2", "-E1", "-B1", idx, s.Path))).
		Add(pipeline.NewFileWriteCommand(idx + ".sam")).
		Add(r.process(r.picard("SortSam",
			"INPUT="+idx+".sam",
			"OUTPUT="+idx+"_sorted.sam",
			"SORT_ORDER=coordinate",
		))).
		Add(r.process(r.picard("MarkDuplicates",
			"INPUT="+idx+"_sorted.sam",
			"OUTPUT="+idx+"_sorted_marked.bam",
			"METRICS_FILE="+idx+"_metrics.txt",
			"ASSUME_SORTED=true",
		))).
		Add(r.process(commandLine("samtools", "index", idx+"_sorted_marked.bam"))), nil
}

// VariantCallingPipeline calls variants on the aligned sample with freebayes then bcftools.
func (r *Runner) VariantCallingPipeline(s Sample) (*pipeline.Pipeline, error) {
	pipe, err := pipeline.New(r.pipelineOptions(s, "variant-calling")...)
	if err != nil {
		return nil, err
	}

	bam := s.IndexPrefix + "_sorted_marked.bam"
	ref := r.cfg.ReferencePath()

	return pipe.
		Add(r.process(commandLine("freebayes", "-f", ref, "--use-duplicate-reads", "-C", "1", bam))).
		Add(pipeline.NewFileWriteCommand(s.OutPrefix + "-freebayes.vcf")).
		Add(r.process(commandLine("bcftools", "mpileup", "-f", ref, bam), pipeline.ProcessOutputBytes())).
		Add(r.process(commandLine("bcftools", "call", "-mv", "-Ov", "-o", s.OutPrefix+"-bcftools.vcf"), pipeline.ProcessPipeStdin())), nil
}
