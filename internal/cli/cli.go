package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"dom-compiler/internal/assets"
	"dom-compiler/internal/config"
	"dom-compiler/internal/entry"
	"dom-compiler/internal/filewalker"
	"dom-compiler/internal/modset"
	"dom-compiler/internal/report"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "domcompiler",
		Short: "Compile a tree of .dme mod sources into one Dominions mod file",
		Long: `Parses every .dme file under a working directory, expands shorthand directives,
turns relative ids ($n) into absolute ids, and writes a single .dm file next to
copies of every referenced art asset.`,
		SilenceUsage: true,
	}
	rootCmd.SetGlobalNormalizationFunc(config.NormalizeFlag)

	rootCmd.AddCommand(compileCmd())
	rootCmd.AddCommand(checkCmd())
	return rootCmd
}

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <output> [workdir]",
		Short: "Compile sources into a mod file and copy its assets",
		Long: `Compiles every source file under workdir (default: the current directory) into
output. A relative output path is taken relative to workdir.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			workDir := ""
			if len(args) > 1 {
				workDir = args[1]
			}
			return runCompile(cfg, args[0], workDir)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [workdir]",
		Short: "Parse and resolve sources without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			workDir := ""
			if len(args) > 0 {
				workDir = args[0]
			}
			return runCheck(cfg, workDir)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return cfg, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// resolveWorkDir returns the absolute working directory, defaulting to the
// current directory.
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid working directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid working directory: %s is not a directory", abs)
	}
	return abs, nil
}

// build parses every source under workDir and resolves the result.
func build(cfg *config.Config, workDir, output string) (*modset.ModSet, error) {
	walker := filewalker.NewWalker(cfg.Extension)
	if output != "" {
		walker.Skip(output)
	}
	files, err := walker.Walk(workDir)
	if err != nil {
		return nil, fmt.Errorf("walk working directory: %w", err)
	}

	set := modset.New(cfg.Offsets, assets.FileExists(workDir))
	for _, file := range files {
		rel, _ := filepath.Rel(workDir, file)
		log.Info().Str("file", rel).Msg("Parsing")
		if err := set.Parse(file); err != nil {
			return nil, err
		}
	}

	if err := set.ResolveAndSort(); err != nil {
		return nil, fmt.Errorf("resolve ids: %w", err)
	}
	return set, nil
}

// runCompile handles the `compile` command.
func runCompile(cfg *config.Config, output, workDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	workDir, err := resolveWorkDir(workDir)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(workDir, output)
	}
	outputDir := filepath.Dir(output)

	log.Info().Str("workdir", workDir).Str("output", output).Msg("Starting compilation")

	set, err := build(cfg, workDir, output)
	if err != nil {
		return err
	}

	// Nothing touches the output directory until the whole set compiled.
	var buf bytes.Buffer
	if err := set.Write(&buf); err != nil {
		return err
	}

	if cfg.Clean {
		if err := cleanDir(outputDir, workDir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	copyErr := assets.NewCopier(cfg.Workers).CopyAll(ctx, workDir, outputDir, set.Assets())

	if cfg.Report != "" {
		if err := report.New(set, cfg.Offsets, output, buf.Bytes()).WriteFile(cfg.Report); err != nil {
			return err
		}
	}

	if copyErr != nil {
		log.Error().Err(copyErr).Msg("Some assets could not be copied")
		return fmt.Errorf("copy assets: %w", copyErr)
	}

	log.Info().
		Int("files", set.Files()).
		Int("entries", set.Entries().Len()).
		Int("assets", len(set.Assets())).
		Str("output", output).
		Msg("Exported")
	return nil
}

// runCheck handles the `check` command.
func runCheck(cfg *config.Config, workDir string) error {
	workDir, err := resolveWorkDir(workDir)
	if err != nil {
		return err
	}

	set, err := build(cfg, workDir, "")
	if err != nil {
		return err
	}

	for _, cat := range entry.Categories() {
		if n := len(set.Entries().Get(cat)); n > 0 {
			log.Info().Str("category", cat.String()).Int("entries", n).Msg("Category")
		}
	}
	if missing := set.MissingAssets(); len(missing) > 0 {
		log.Warn().Strs("assets", missing).Msg("Missing assets")
	}

	if cfg.Report != "" {
		if err := report.New(set, cfg.Offsets, "", nil).WriteFile(cfg.Report); err != nil {
			return err
		}
	}

	log.Info().Int("files", set.Files()).Int("entries", set.Entries().Len()).Msg("Check complete")
	return nil
}

// cleanDir empties dir. It refuses to touch a directory that holds the
// sources.
func cleanDir(dir, workDir string) error {
	rel, err := filepath.Rel(dir, workDir)
	if err != nil {
		return fmt.Errorf("compare output and working directory: %w", err)
	}
	if rel == "." || !strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to clean %s: it contains the working directory", dir)
	}

	items, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	for _, item := range items {
		if err := os.RemoveAll(filepath.Join(dir, item.Name())); err != nil {
			return fmt.Errorf("clean output directory: %w", err)
		}
	}
	log.Info().Str("dir", dir).Int("removed", len(items)).Msg("Cleaned output directory")
	return nil
}
