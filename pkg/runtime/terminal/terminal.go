package terminal

import (
	"io"
	"os"

	"github.com/de-tools/data-brief/pkg/runtime/terminal/commands"
	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/history"
	"github.com/de-tools/data-brief/pkg/services/report"
	"github.com/de-tools/data-brief/pkg/services/session"
	"github.com/de-tools/data-brief/pkg/services/speech"
	"github.com/de-tools/data-brief/pkg/store/client"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	controller *session.Controller
	compiler   *report.Compiler
	capture    *speech.Capture
	renderer   *render.Renderer
	exportDir  string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Client      *client.Client
	Synthesizer speech.Synthesizer
	Recognizer  speech.Recognizer
	ExportDir   string
	Output      io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = speech.DefaultSynthesizer()
	}
	if opts.Recognizer == nil {
		opts.Recognizer = speech.NewCommandRecognizer("")
	}

	renderer := render.NewRenderer(opts.Output)
	controller := session.NewController(session.Options{
		Service:  opts.Client,
		History:  history.NewStore(opts.Client),
		Narrator: speech.NewNarrator(opts.Synthesizer),
		Notifier: session.NotifierFunc(renderer.Notice),
	})

	cli := &CLI{
		controller: controller,
		compiler:   report.NewCompiler(opts.Client, controller.History()),
		capture:    speech.NewCapture(opts.Recognizer, controller.Query, controller.SetQuery),
		renderer:   renderer,
		exportDir:  opts.ExportDir,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "databrief",
		Short: "Conversational data analysis client",
	}

	cmd.AddCommand(commands.NewAskCmd(cli.controller, cli.renderer, cli.exportDir))
	cmd.AddCommand(commands.NewHistoryCmd(cli.controller, cli.renderer))
	cmd.AddCommand(commands.NewReportCmd(cli.compiler, cli.renderer, cli.exportDir))
	cmd.AddCommand(commands.NewResetCmd(cli.controller, cli.renderer))
	cmd.AddCommand(commands.NewShellCmd(cli.controller, cli.compiler, cli.capture, cli.renderer, cli.exportDir))

	return cmd
}
