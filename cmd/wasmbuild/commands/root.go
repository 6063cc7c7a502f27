// Package commands implements the CLI commands for wasmbuild.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/wasmbuild/internal/app"
	"go.trai.ch/wasmbuild/internal/build"
	"go.trai.ch/wasmbuild/internal/core/domain"
)

// CLI represents the command line interface for wasmbuild.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:   "wasmbuild [flags]",
		Short: "Build WebAssembly artifacts from a cargo project",
		Long: `wasmbuild compiles a cargo project for a WebAssembly target, shrinks the
resulting module with wasm-gc and optionally disassembles it with wasm2wat.

Artifacts are only tracked when --example is given; a whole-project build
runs the compiler and stops.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.String(),
	}
	rootCmd.SetVersionTemplate("wasmbuild version {{.Version}}\n")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.String("example", "", "Build only this example and track its artifact")
	flags.String("target", domain.DefaultTarget, "Target triple passed to the compiler")
	flags.Bool("no-release", false, "Build without optimizations")
	flags.Bool("no-gc", false, "Skip the wasm-gc size reduction pass")
	flags.Bool("wat", false, "Also write a .wat disassembly next to the artifact")
	flags.Bool("check", false, "Load and validate the final artifact")
	flags.BoolP("verbose", "V", false, "Print each command before running it")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.RunE = c.runBuild
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	cfg := domain.DefaultBuildConfig()
	cfg.Example, _ = flags.GetString("example")
	cfg.Target, _ = flags.GetString("target")

	noRelease, _ := flags.GetBool("no-release")
	cfg.Release = !noRelease

	noGC, _ := flags.GetBool("no-gc")
	cfg.GC = !noGC

	cfg.WAT, _ = flags.GetBool("wat")
	cfg.Check, _ = flags.GetBool("check")
	cfg.Verbose, _ = flags.GetBool("verbose")

	return c.app.Run(cmd.Context(), app.RunOptions{
		Build:          cfg,
		TargetFromFlag: flags.Changed("target"),
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects help and version output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
