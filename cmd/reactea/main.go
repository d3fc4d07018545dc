package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shhac/reactea/internal/chip"
	"github.com/shhac/reactea/internal/config"
	"github.com/shhac/reactea/internal/demo"
	"github.com/shhac/reactea/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	premiumFlag     bool
	reactionsFlag   string
	chipModeFlag    string
	simulateFlag    bool
	noAltScreenFlag bool
	debugFlag       bool
)

var rootCmd = &cobra.Command{
	Use:   "reactea",
	Short: "Hover-to-react message reactions in the terminal",
	Long: `Browse a conversation and react to messages.

Hover a message's [+] anchor to reveal the reaction popover, keep hovering to
expand it, and click a reaction to toggle it. Reactions listed in a YAML file
(--reactions) are reloaded whenever the file changes.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("reactea %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&premiumFlag, "premium", false, "Start with premium reactions unlocked")
	rootCmd.Flags().StringVar(&reactionsFlag, "reactions", "", "YAML reactions file to load and watch")
	rootCmd.Flags().StringVar(&chipModeFlag, "chip-mode", "", "Reaction chip style: full or short")
	rootCmd.Flags().BoolVar(&simulateFlag, "simulate", false, "Start with live reactions from other people")
	rootCmd.Flags().BoolVar(&noAltScreenFlag, "no-alt-screen", false, "Render inline instead of in the alternate screen")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Write debug logs to the config directory")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if debugFlag {
		f, err := tea.LogToFile(config.DebugLogPath(), "reactea")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
		cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("premium") {
		cfg.Premium = premiumFlag
	}
	if flags.Changed("reactions") {
		cfg.ReactionsFile = reactionsFlag
	}
	if flags.Changed("chip-mode") {
		if chipModeFlag != chip.ModeFull.String() && chipModeFlag != chip.ModeShort.String() {
			return fmt.Errorf("invalid --chip-mode %q (want full or short)", chipModeFlag)
		}
		cfg.ChipMode = chipModeFlag
	}
	if flags.Changed("simulate") {
		cfg.Simulate = simulateFlag
	}

	svc := demo.NewService(cfg.Premium)
	app := ui.NewApp(svc, cfg).WithConfigSaver(config.Save)
	defer app.Close()

	opts := []tea.ProgramOption{tea.WithMouseAllMotion(), tea.WithReportFocus()}
	if !noAltScreenFlag {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return err
	}
	return nil
}
