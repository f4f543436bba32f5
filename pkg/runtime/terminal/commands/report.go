package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/data-brief/pkg/export"
	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/effects"
	"github.com/de-tools/data-brief/pkg/services/report"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	pdf       bool
	exportDir string
	compiler  *report.Compiler
	renderer  *render.Renderer
}

func NewReportCmd(compiler *report.Compiler, renderer *render.Renderer, exportDir string) *cobra.Command {
	rc := &ReportCmd{compiler: compiler, renderer: renderer, exportDir: exportDir}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compile an executive briefing from the session",
		RunE:  rc.run,
	}

	cmd.Flags().BoolVar(&rc.pdf, "pdf", false, "Also save the briefing as a PDF")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rep, err := rc.compiler.Compile(ctx)
	if err != nil {
		if errors.Is(err, report.ErrEmptyHistory) {
			rc.renderer.Notice("Analyze some data first, then come back for the briefing.")
			return nil
		}
		return err
	}

	if err := rc.renderer.Report(*rep); err != nil {
		return err
	}

	burst := effects.NewBurst(effects.SinkFunc(rc.renderer.Confetti))
	burst.Run(ctx)

	if rc.pdf {
		return saveDocument(*rep, rc.renderer, rc.exportDir)
	}
	return nil
}

func saveDocument(rep domain.SessionReport, renderer *render.Renderer, exportDir string) error {
	pdf, err := export.Document(rep, time.Now())
	if err != nil {
		return fmt.Errorf("failed to render briefing: %w", err)
	}

	path := filepath.Join(exportDir, export.DocumentFileName)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write briefing to %s: %w", path, err)
	}

	renderer.Notice(fmt.Sprintf("Briefing saved to %s", path))
	return nil
}
