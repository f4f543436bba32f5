package commands

import (
	"context"
	"time"

	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/session"

	"github.com/spf13/cobra"
)

type ResetCmd struct {
	controller *session.Controller
	renderer   *render.Renderer
}

func NewResetCmd(controller *session.Controller, renderer *render.Renderer) *cobra.Command {
	rc := &ResetCmd{controller: controller, renderer: renderer}
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the session and the service memory",
		RunE:  rc.run,
	}
}

func (rc *ResetCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := rc.controller.Reset(ctx); err != nil {
		return err
	}
	rc.renderer.Notice("Session cleared.")
	return nil
}
