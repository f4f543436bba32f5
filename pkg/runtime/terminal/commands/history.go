package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/session"

	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	controller *session.Controller
	renderer   *render.Renderer
}

func NewHistoryCmd(controller *session.Controller, renderer *render.Renderer) *cobra.Command {
	hc := &HistoryCmd{controller: controller, renderer: renderer}
	return &cobra.Command{
		Use:   "history",
		Short: "Show the conversation log",
		RunE:  hc.run,
	}
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := hc.controller.History().Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return hc.renderer.History(hc.controller.History().Entries())
}
