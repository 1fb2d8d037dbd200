package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/smoke-cloud/fds-inspect-go/internal/reporter"
	"github.com/smoke-cloud/fds-inspect-go/pkg/fds"
	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
	"github.com/smoke-cloud/fds-inspect-go/pkg/sweep"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Shell is an interactive session over one loaded model.
type Shell struct {
	model     *fds.Model
	out       verify.OutputSource
	registry  *verify.RuleRegistry
	formatter *reporter.Formatter
	logger    *slog.Logger
}

// NewShell creates a shell over m. out may be nil when no realised output
// was loaded.
func NewShell(m *fds.Model, out verify.OutputSource, registry *verify.RuleRegistry, logger *slog.Logger) *Shell {
	return &Shell{
		model:     m,
		out:       out,
		registry:  registry,
		formatter: reporter.NewFormatter(),
		logger:    logger,
	}
}

// Run starts the interactive command loop on the terminal.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.model.Chid + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.printHelp(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			// EOF
			return nil
		}
		if s.Execute(ctx, line, rl.Stdout()) {
			return nil
		}
	}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	ids := make([]readline.PrefixCompleterInterface, 0, s.registry.Count())
	for _, r := range s.registry.AllRules() {
		ids = append(ids, readline.PcItem(r.ID()))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("summary"),
		readline.PcItem("check", ids...),
		readline.PcItem("rules"),
		readline.PcItem("burners"),
		readline.PcItem("meshes"),
		readline.PcItem("devices"),
		readline.PcItem("heights"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Execute runs one command line and reports whether the session should end.
func (s *Shell) Execute(ctx context.Context, line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "summary", "s":
		sum := summary.Summarise(s.model)
		reporter.NewTextReporter(w, false).ReportSummary(&sum)

	case "check", "c":
		s.cmdCheck(ctx, args, w)

	case "rules":
		RunRules(s.registry, w)

	case "burners", "b":
		s.cmdBurners(w)

	case "meshes", "m":
		s.cmdMeshes(w)

	case "devices", "d":
		s.cmdDevices(w)

	case "heights", "h":
		s.cmdHeights(w)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Commands:
  summary                 - Show the model summary
  check [-v] [rule-id...] - Run enabled rules, or only the named ones
  rules                   - List rules
  burners                 - List burners with their peak HRR and ramp
  meshes                  - List meshes
  devices                 - List devices and their placement
  heights                 - Show the clear height histogram
  help                    - Show this help
  quit                    - Exit`)
}

func (s *Shell) cmdCheck(ctx context.Context, args []string, w io.Writer) {
	verbose := false
	var selected []verify.Rule
	for _, a := range args {
		if a == "-v" {
			verbose = true
			continue
		}
		r := s.registry.GetRule(a)
		if r == nil {
			fmt.Fprintf(w, "Unknown rule: %s\n", a)
			return
		}
		selected = append(selected, r)
	}
	if len(selected) == 0 {
		selected = s.registry.EnabledRules()
	}

	engine := verify.NewEngine(verify.Config{Rules: selected, Logger: s.logger})
	report, err := engine.Run(ctx, s.model, s.out)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	reporter.NewTextReporter(w, verbose).ReportVerification(report)
}

func (s *Shell) cmdBurners(w io.Writer) {
	burners := s.model.Burners()
	if len(burners) == 0 {
		fmt.Fprintln(w, "No burners")
		return
	}
	for _, b := range burners {
		tau := "-"
		if t := b.TauQ(s.model); t != nil {
			tau = s.formatter.FormatValue(*t, "s")
		}
		fmt.Fprintf(w, "%-20s %-5s surface=%-12s area=%s peak=%s tau_q=%s\n",
			b.ID(), b.Kind(), b.SurfaceID(),
			s.formatter.FormatValue(b.FuelArea(), "m²"),
			reporter.FormatPowerHumanReadable(b.MaxHRR(s.model)),
			tau)
	}
	fmt.Fprintf(w, "Total: %s\n", reporter.FormatPowerHumanReadable(s.model.TotalMaxHRR()))
}

func (s *Shell) cmdMeshes(w io.Writer) {
	for i := range s.model.Meshes {
		mesh := &s.model.Meshes[i]
		fmt.Fprintf(w, "%-12s %dx%dx%d (%d cells) cell %s  %s\n",
			mesh.ID, mesh.IJK.I, mesh.IJK.J, mesh.IJK.K, mesh.IJK.Cells(),
			reporter.FormatResolution(mesh.CellSizes), mesh.Dimensions)
	}
	fmt.Fprintf(w, "Total: %d meshes, %d cells\n", len(s.model.Meshes), summary.CountCells(s.model.Meshes))
}

func (s *Shell) cmdDevices(w io.Writer) {
	if len(s.model.Devices) == 0 {
		fmt.Fprintln(w, "No devices")
		return
	}
	for i := range s.model.Devices {
		d := &s.model.Devices[i]
		var notes []string
		if d.StuckInSolid() {
			notes = append(notes, "in solid")
		}
		if d.PropID != "" && !d.BeneathCeiling() {
			notes = append(notes, "no ceiling above")
		}
		quantity := strings.Join(d.Quantities, ",")
		fmt.Fprintf(w, "%-20s %-26s prop=%-10s (%g, %g, %g)",
			d.ID, quantity, d.PropID, d.Location.X, d.Location.Y, d.Location.Z)
		if len(notes) > 0 {
			fmt.Fprintf(w, "  [%s]", strings.Join(notes, "; "))
		}
		fmt.Fprintln(w)
	}
}

func (s *Shell) cmdHeights(w io.Writer) {
	heights := sweep.CeilingHeights(s.model.Meshes)
	if len(heights) == 0 {
		fmt.Fprintln(w, "No ceiling heights")
		return
	}
	for _, h := range heights {
		fmt.Fprintln(w, s.formatter.Indent(1, reporter.FormatHeightArea(h)))
	}
}
