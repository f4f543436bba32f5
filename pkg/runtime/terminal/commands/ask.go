package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/de-tools/data-brief/pkg/export"
	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/session"

	"github.com/spf13/cobra"
)

type AskCmd struct {
	needsChart bool
	filePath   string
	simFactor  int
	speak      bool
	saveChart  bool
	exportDir  string
	controller *session.Controller
	renderer   *render.Renderer
}

func NewAskCmd(controller *session.Controller, renderer *render.Renderer, exportDir string) *cobra.Command {
	ac := &AskCmd{controller: controller, renderer: renderer, exportDir: exportDir}
	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Ask a question about your data",
		RunE:  ac.run,
	}

	cmd.Flags().BoolVar(&ac.needsChart, "chart", false, "Request a chart with the answer")
	cmd.Flags().StringVar(&ac.filePath, "file", "", "Path to a data file to attach")
	cmd.Flags().IntVar(&ac.simFactor, "sim", 0, "Simulated impact factor in percent (-50 to 50)")
	cmd.Flags().BoolVar(&ac.speak, "speak", false, "Read the answer aloud")
	cmd.Flags().BoolVar(&ac.saveChart, "save-chart", false, "Save the rendered chart as a PNG")

	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if ac.filePath != "" {
		ac.controller.Attach(ac.filePath)
	}

	query := strings.Join(args, " ")
	if err := ac.controller.SubmitQuery(ctx, query, ac.needsChart); err != nil {
		return err
	}

	if ac.simFactor != 0 {
		ac.controller.Chart().SetFactor(ac.simFactor)
	}

	if err := ac.renderer.Result(ac.controller.Chart()); err != nil {
		return err
	}

	if ac.speak {
		if err := ac.controller.Speak(); err != nil {
			ac.renderer.Notice(err.Error())
		}
	}

	if ac.saveChart {
		return saveChart(ac.controller, ac.renderer, ac.exportDir)
	}
	return nil
}

func saveChart(controller *session.Controller, renderer *render.Renderer, exportDir string) error {
	png, err := export.ChartPNG(controller.Chart())
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	path := filepath.Join(exportDir, export.ChartFileName)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write chart to %s: %w", path, err)
	}

	renderer.Notice(fmt.Sprintf("Chart saved to %s", path))
	return nil
}
