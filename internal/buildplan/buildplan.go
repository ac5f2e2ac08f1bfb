// Package buildplan stages a `cratepack pack` invocation as a sequence of
// named, independently testable steps: load -> validate -> run -> evaluate
// -> summarize -> write.
package buildplan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/cratepack/internal/config"
	"github.com/philipparndt/cratepack/internal/packing"
	"github.com/philipparndt/cratepack/internal/preconditions"
	"github.com/philipparndt/cratepack/internal/ui"
)

// BuildStep is a single step in a packing plan.
type BuildStep interface {
	Name() string
	Execute() error
}

// BuildPlan is the ordered list of steps a `pack` invocation runs.
type BuildPlan struct {
	Steps      []BuildStep
	OutputFile string
}

// Execute runs every step in order, stopping and returning the first error.
func (p *BuildPlan) Execute() error {
	for _, step := range p.Steps {
		ui.PrintStep(step.Name())
		if err := step.Execute(); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return nil
}

// Context is the mutable state threaded through a plan's steps, populated
// as each step runs.
type Context struct {
	ConfigPath string
	RunConfig  *config.RunConfig
	Variants   []*packing.PackingVariant
	Evaluated  []packing.EvaluatedVariant
	Output     packing.PackedOrder
}

// Planner builds a BuildPlan for a `pack` invocation.
type Planner struct{}

// NewPlanner creates a new planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// CreatePlan builds the standard load -> validate -> run -> evaluate ->
// write pipeline for a single configuration file. report prints each bin's
// center-of-gravity/utilization diagnostics; datasetDir, if non-empty,
// additionally writes the info.json/order{N}.json dataset layout there.
func (p *Planner) CreatePlan(configPath, outputFile string, report bool, datasetDir string) *BuildPlan {
	ctx := &Context{ConfigPath: configPath}
	steps := []BuildStep{
		&ValidateConfigFileStep{ctx: ctx},
		&LoadConfigStep{ctx: ctx},
		&RunVariantsStep{ctx: ctx},
		&EvaluateStep{ctx: ctx},
		&SummaryStep{ctx: ctx},
	}
	if report {
		steps = append(steps, &ReportStep{ctx: ctx})
	}
	if datasetDir != "" {
		steps = append(steps, &WriteDatasetStep{ctx: ctx, dir: datasetDir})
	}
	steps = append(steps, &WriteOutputStep{ctx: ctx, outputFile: outputFile})
	return &BuildPlan{OutputFile: outputFile, Steps: steps}
}

// ValidateConfigFileStep checks the config file exists and is readable.
type ValidateConfigFileStep struct{ ctx *Context }

func (s *ValidateConfigFileStep) Name() string { return "Validate config file" }

func (s *ValidateConfigFileStep) Execute() error {
	return preconditions.ValidateConfigFiles([]string{s.ctx.ConfigPath})
}

// LoadConfigStep loads and validates the run configuration.
type LoadConfigStep struct{ ctx *Context }

func (s *LoadConfigStep) Name() string { return "Load configuration" }

func (s *LoadConfigStep) Execute() error {
	loaded, err := config.NewLoader().Load(s.ctx.ConfigPath)
	if err != nil {
		return err
	}
	s.ctx.RunConfig = loaded
	return nil
}

// RunVariantsStep runs the packer once per requested variant.
type RunVariantsStep struct{ ctx *Context }

func (s *RunVariantsStep) Name() string { return "Pack variants" }

func (s *RunVariantsStep) Execute() error {
	cfg := s.ctx.RunConfig
	bins := cfg.ReferenceBins()
	baseConfig := cfg.EffectiveConfiguration()

	variants := make([]*packing.PackingVariant, 0, cfg.NumVariants)
	for i := 0; i < cfg.NumVariants; i++ {
		variants = append(variants, packing.PackVariant(cfg.Order, bins, baseConfig))
	}
	s.ctx.Variants = variants
	return nil
}

// EvaluateStep de-duplicates and scores the produced variants.
type EvaluateStep struct{ ctx *Context }

func (s *EvaluateStep) Name() string { return "Evaluate variants" }

func (s *EvaluateStep) Execute() error {
	s.ctx.Evaluated = packing.Evaluate(s.ctx.Variants)
	s.ctx.Output = packing.BuildPackedOrder(s.ctx.RunConfig.Order.OrderID, s.ctx.RunConfig.Order.Articles, s.ctx.Evaluated)
	return nil
}

// SummaryStep prints a table of the scored variants before the result is
// written out, so a terminal run shows what was produced at a glance.
type SummaryStep struct{ ctx *Context }

func (s *SummaryStep) Name() string { return "Summarize variants" }

func (s *SummaryStep) Execute() error {
	ui.PrintTableHeader("Variant", "Score", "Bins", "Unpacked")
	for i, ev := range s.ctx.Evaluated {
		ui.PrintTableRow(
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.4f", ev.Score),
			fmt.Sprintf("%d", len(ev.Variant.Bins)),
			fmt.Sprintf("%d", len(ev.Variant.UnpackedItems)),
		)
	}
	return nil
}

// ReportStep prints each scored variant's center-of-gravity and
// utilization diagnostics, the `pack --report` flag's output.
type ReportStep struct{ ctx *Context }

func (s *ReportStep) Name() string { return "Report diagnostics" }

func (s *ReportStep) Execute() error {
	for i, ev := range s.ctx.Evaluated {
		ui.PrintVariantScore(i+1, ev.Score, len(ev.Variant.Bins), len(ev.Variant.UnpackedItems))
		for j, bin := range ev.Variant.Bins {
			cog := bin.GetCenterOfGravity(true)
			ui.PrintBinSummary(j+1, bin.GetUsedVolume(true), cog.X, cog.Y, cog.Z)
		}
	}
	return nil
}

// datasetInfo is the info.json summary written alongside per-variant
// order{N}.json files by WriteDatasetStep.
type datasetInfo struct {
	OrderID     string    `json:"order_id"`
	NumVariants int       `json:"num_variants"`
	Scores      []float64 `json:"scores"`
}

// WriteDatasetStep writes the `pack --dataset-dir` dataset layout: one
// PackedOrder per scored variant plus an info.json summary.
type WriteDatasetStep struct {
	ctx *Context
	dir string
}

func (s *WriteDatasetStep) Name() string { return "Write dataset" }

func (s *WriteDatasetStep) Execute() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	scores := make([]float64, len(s.ctx.Evaluated))
	for i, ev := range s.ctx.Evaluated {
		scores[i] = ev.Score
		order := packing.BuildPackedOrder(s.ctx.RunConfig.Order.OrderID, s.ctx.RunConfig.Order.Articles, []packing.EvaluatedVariant{ev})
		data, err := json.MarshalIndent(order, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal order %d: %w", i+1, err)
		}
		path := filepath.Join(s.dir, fmt.Sprintf("order%d.json", i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	info := datasetInfo{
		OrderID:     s.ctx.RunConfig.Order.OrderID,
		NumVariants: len(s.ctx.Evaluated),
		Scores:      scores,
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, "info.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write info.json: %w", err)
	}
	ui.PrintSuccess(fmt.Sprintf("wrote dataset to %s", s.dir))
	return nil
}

// WriteOutputStep serializes the PackedOrder to disk, or to stdout if no
// output file was configured.
type WriteOutputStep struct {
	ctx        *Context
	outputFile string
}

func (s *WriteOutputStep) Name() string { return "Write output" }

func (s *WriteOutputStep) Execute() error {
	data, err := json.MarshalIndent(s.ctx.Output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal packed order: %w", err)
	}

	out := s.outputFile
	if out == "" {
		out = s.ctx.RunConfig.OutputFile
	}
	if out == "" {
		ui.PrintJSON(data)
		return nil
	}

	if err := preconditions.ValidateOutputPath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	ui.PrintSuccess(fmt.Sprintf("wrote %s", out))
	return nil
}

