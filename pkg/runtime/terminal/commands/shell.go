package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/data-brief/pkg/runtime/terminal/render"
	"github.com/de-tools/data-brief/pkg/services/effects"
	"github.com/de-tools/data-brief/pkg/services/report"
	"github.com/de-tools/data-brief/pkg/services/session"
	"github.com/de-tools/data-brief/pkg/services/speech"

	"github.com/spf13/cobra"
)

const shellTimeout = 60 * time.Second

type ShellCmd struct {
	needsChart bool
	exportDir  string
	controller *session.Controller
	compiler   *report.Compiler
	capture    *speech.Capture
	renderer   *render.Renderer
	input      io.Reader
	output     io.Writer
}

func NewShellCmd(
	controller *session.Controller,
	compiler *report.Compiler,
	capture *speech.Capture,
	renderer *render.Renderer,
	exportDir string,
) *cobra.Command {
	sc := &ShellCmd{
		controller: controller,
		compiler:   compiler,
		capture:    capture,
		renderer:   renderer,
		exportDir:  exportDir,
		input:      os.Stdin,
		output:     os.Stdout,
	}
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive analysis session",
		RunE:  sc.run,
	}
}

func (sc *ShellCmd) run(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(sc.output, "DataBrief AI. Type a question, or /help for commands.")

	scanner := bufio.NewScanner(sc.input)
	for {
		fmt.Fprint(sc.output, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "/") {
			quit, err := sc.dispatch(line)
			if err != nil {
				sc.renderer.Notice(err.Error())
			}
			if quit {
				return nil
			}
			continue
		}

		sc.submit(line)
	}
}

func (sc *ShellCmd) submit(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	var err error
	if query == "" {
		err = sc.controller.Submit(ctx, sc.needsChart)
	} else {
		err = sc.controller.SubmitQuery(ctx, query, sc.needsChart)
	}
	if err != nil {
		return // submit failures already reach the notifier
	}
	if sc.controller.State() != session.StateReady {
		return
	}
	if err := sc.renderer.Result(sc.controller.Chart()); err != nil {
		sc.renderer.Notice(err.Error())
	}
}

func (sc *ShellCmd) dispatch(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		sc.printHelp()
	case "/chart":
		return false, sc.toggleChart(args)
	case "/attach":
		if len(args) != 1 {
			return false, errors.New("usage: /attach <path>")
		}
		if _, statErr := os.Stat(args[0]); statErr != nil {
			return false, fmt.Errorf("cannot attach %s: %w", args[0], statErr)
		}
		sc.controller.Attach(args[0])
		sc.renderer.Notice(fmt.Sprintf("Attached %s", args[0]))
	case "/detach":
		sc.controller.Detach()
		sc.renderer.Notice("Attachment removed.")
	case "/sim":
		return false, sc.simulate(args)
	case "/speak":
		return false, sc.controller.Speak()
	case "/stop":
		sc.controller.Narrator().Stop()
	case "/listen":
		return false, sc.listen()
	case "/suggest":
		return false, sc.suggest(args)
	case "/export":
		return false, sc.export(args)
	case "/report":
		return false, sc.report()
	case "/history":
		return false, sc.history()
	case "/reset":
		return false, sc.reset()
	default:
		return false, fmt.Errorf("unknown command %s, try /help", name)
	}
	return false, nil
}

func (sc *ShellCmd) toggleChart(args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return errors.New("usage: /chart on|off")
	}
	sc.needsChart = args[0] == "on"
	sc.renderer.Notice(fmt.Sprintf("Chart mode %s.", args[0]))
	return nil
}

func (sc *ShellCmd) simulate(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: /sim <percent>")
	}
	factor, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid factor %q", args[0])
	}
	sc.controller.Chart().SetFactor(factor)
	return sc.renderer.Result(sc.controller.Chart())
}

func (sc *ShellCmd) listen() error {
	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	transcript, err := sc.capture.Listen(ctx)
	if err != nil {
		return err
	}
	sc.renderer.Notice(fmt.Sprintf("Heard: %q. Press enter to submit.", transcript))
	return nil
}

func (sc *ShellCmd) suggest(args []string) error {
	result := sc.controller.Chart().Result()
	if result == nil || len(result.Suggestions) == 0 {
		return errors.New("no follow-up suggestions available")
	}
	if len(args) != 1 {
		return errors.New("usage: /suggest <index>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= len(result.Suggestions) {
		return fmt.Errorf("pick an index between 0 and %d", len(result.Suggestions)-1)
	}
	sc.submit(result.Suggestions[idx])
	return nil
}

func (sc *ShellCmd) export(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: /export chart|pdf")
	}
	switch args[0] {
	case "chart":
		return saveChart(sc.controller, sc.renderer, sc.exportDir)
	case "pdf":
		ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
		defer cancel()

		rep, err := sc.compiler.Compile(ctx)
		if err != nil {
			return err
		}
		return saveDocument(*rep, sc.renderer, sc.exportDir)
	default:
		return errors.New("usage: /export chart|pdf")
	}
}

func (sc *ShellCmd) report() error {
	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	rep, err := sc.compiler.Compile(ctx)
	if err != nil {
		if errors.Is(err, report.ErrEmptyHistory) {
			sc.renderer.Notice("Analyze some data first, then come back for the briefing.")
			return nil
		}
		return err
	}
	if err := sc.renderer.Report(*rep); err != nil {
		return err
	}

	burst := effects.NewBurst(effects.SinkFunc(sc.renderer.Confetti))
	burst.Run(ctx)
	return nil
}

func (sc *ShellCmd) history() error {
	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	if err := sc.controller.History().Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return sc.renderer.History(sc.controller.History().Entries())
}

func (sc *ShellCmd) reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
	defer cancel()

	if err := sc.controller.Reset(ctx); err != nil {
		return err
	}
	sc.renderer.Notice("Session cleared.")
	return nil
}

func (sc *ShellCmd) printHelp() {
	fmt.Fprint(sc.output, `Commands:
  /chart on|off      request charts with answers
  /attach <path>     attach a data file (persists across questions)
  /detach            remove the attachment
  /sim <percent>     simulate an impact factor (-50 to 50, 0 resets)
  /speak             read the current summary aloud
  /stop              stop narration
  /listen            capture a spoken question
  /suggest <i>       submit the i-th follow-up suggestion
  /export chart|pdf  save the chart PNG or briefing PDF
  /report            compile the executive briefing
  /history           show the conversation log
  /reset             clear the session and service memory
  /quit              leave the shell
`)
}
