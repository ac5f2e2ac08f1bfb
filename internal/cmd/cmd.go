package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/philipparndt/cratepack/internal/buildplan"
	"github.com/philipparndt/cratepack/internal/models"
	"github.com/philipparndt/cratepack/internal/ui"
	"github.com/philipparndt/cratepack/version"
	"gopkg.in/yaml.v3"
)

// CLI is the top-level command tree for the cratepack binary.
type CLI struct {
	Pack       *PackCmd       `cmd:"" help:"Pack an order's articles into reference bins and write a packed order"`
	Init       *InitCmd       `cmd:"" help:"Generate a default run configuration YAML file"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`
}

// PackCmd runs the full validate -> load -> pack -> evaluate -> write plan
// against a single run-configuration file.
type PackCmd struct {
	Config     string `arg:"" help:"Run configuration file (YAML or JSON)"`
	Output     string `help:"Output file path (overrides the config's output_file, prints to stdout if neither is set)" short:"o"`
	Report     bool   `help:"Print each variant's center-of-gravity and utilization diagnostics"`
	DatasetDir string `help:"Write the info.json/order{N}.json dataset layout to this directory"`
}

func (c *PackCmd) Help() string { return renderPackHelp() }

func (c *PackCmd) Run() error {
	planner := buildplan.NewPlanner()
	plan := planner.CreatePlan(c.Config, c.Output, c.Report, c.DatasetDir)

	if err := plan.Execute(); err != nil {
		return err
	}

	return nil
}

// InitCmd interactively builds a starter run-configuration YAML file: the
// reference bin's dimensions, how many bins are available, and which
// select strategy to try.
type InitCmd struct {
	Output string `help:"Output YAML file path" short:"o" default:"run.yaml"`
}

func (c *InitCmd) Run() error {
	if _, err := os.Stat(c.Output); err == nil {
		ui.PrintError(fmt.Sprintf("File %s already exists. Please remove it or specify a different output file with -o", c.Output))
		os.Exit(1)
	}

	ui.PrintTitle("cratepack init")
	ui.PrintHeader("Run Configuration Setup")

	var width, length, height string
	var numBins string
	var strategyName string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Reference bin width").Value(&width).Placeholder("800"),
			huh.NewInput().Title("Reference bin length").Value(&length).Placeholder("1200"),
			huh.NewInput().Title("Reference bin height").Value(&height).Placeholder("1000"),
			huh.NewInput().Title("Number of bins available").Value(&numBins).Placeholder("1"),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default item select strategy").
				Options(
					huh.NewOption("Largest volume first", "LARGEST_VOLUME"),
					huh.NewOption("Largest height, then width, then length", "LARGEST_H_W_L"),
					huh.NewOption("Largest width, then height, then length", "LARGEST_W_H_L"),
				).
				Value(&strategyName),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	strategy, err := models.ParseItemSelectStrategy(strategyName)
	if err != nil {
		return err
	}

	cfg := buildInitConfig(width, length, height, numBins, strategy)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println()
	ui.PrintSuccess(fmt.Sprintf("Configuration file created: %s", c.Output))
	fmt.Println()

	ui.PrintHeader("Next Steps")
	ui.PrintStep("Fill in the order's articles and amounts")
	ui.PrintItem("order.articles[].width / length / height / weight / amount")
	ui.PrintItem("order.colli_details for the reference bin's safety distances")
	fmt.Println()
	ui.PrintBox(fmt.Sprintf("cratepack pack %s", c.Output))

	return nil
}

type initRunConfig struct {
	Order   initOrder                  `yaml:"order"`
	NumBins int                        `yaml:"num_bins"`
	Config  models.PackerConfiguration `yaml:"config"`
}

type initOrder struct {
	OrderID      string              `yaml:"order_id"`
	Articles     []models.Article    `yaml:"articles"`
	ColliDetails models.ColliDetails `yaml:"colli_details"`
}

func buildInitConfig(width, length, height, numBins string, strategy models.ItemSelectStrategy) initRunConfig {
	cfg := models.DefaultPackerConfiguration()
	cfg.DefaultSelectStrategy = strategy
	cfg.NewLayerSelectStrategy = strategy

	return initRunConfig{
		Order: initOrder{
			OrderID: uuid.NewString(),
			Articles: []models.Article{
				{ID: "article-1", Width: 100, Length: 100, Height: 100, Weight: 1.0, Amount: 1},
			},
			ColliDetails: models.ColliDetails{
				Width:     parseIntOrDefault(width, 800),
				Length:    parseIntOrDefault(length, 1200),
				Height:    parseIntOrDefault(height, 1000),
				MaxCollis: parseIntOrDefault(numBins, 1),
			},
		},
		NumBins: parseIntOrDefault(numBins, 1),
		Config:  cfg,
	}
}

func parseIntOrDefault(s string, fallback int) int {
	var v int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &v); err != nil || v <= 0 {
		return fallback
	}
	return v
}

// VersionCmd prints build version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// Parse parses command line arguments and executes the appropriate command.
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("cratepack"),
		kong.Description("3D bin-packing engine for order colli planning"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
