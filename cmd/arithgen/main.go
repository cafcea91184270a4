// cmd/arithgen — generate arithmetic exercises or grade submitted answers.
//
// Usage:
//
//	arithgen -n 10 -r 10
//	arithgen -e Exercises.txt -a Answers.txt
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/arithgen"
	"github.com/njchilds90/arithgen/internal/config"
	"github.com/njchilds90/arithgen/internal/logging"
	"github.com/njchilds90/arithgen/internal/worksheet"
)

type options struct {
	configPath   string
	count        int
	rangeN       int
	exerciseFile string
	answerFile   string
	seed         uint64
	maxOperators int
	ascii        bool
	outDir       string
	verbose      bool
}

// errUsage marks invalid flag combinations.
var errUsage = errors.New("usage")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var (
		cfg    *config.Config
		logger *zap.Logger
	)

	cmd := &cobra.Command{
		Use:   "arithgen",
		Short: "Generate and grade elementary arithmetic exercises",
		Long: `arithgen writes unique arithmetic exercises over natural numbers, proper
fractions and mixed numbers to Exercises.txt with their answers in Answers.txt.

Given an exercise file and an answer file it re-evaluates every exercise and
writes the grade summary to Grade.txt.`,
		Example: `  arithgen -n 10 -r 10
  arithgen -e Exercises.txt -a Answers.txt`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Logging, opts.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, opts, cfg)
			if err := checkUsage(opts, cfg); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			if opts.exerciseFile != "" {
				return runGrade(cmd, opts, cfg, logger)
			}
			return runGenerate(cmd, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "count", "n", 10, "number of problems to generate")
	flags.IntVarP(&opts.rangeN, "range", "r", 0, "natural numbers below r, denominators up to r (required to generate)")
	flags.StringVarP(&opts.exerciseFile, "exercises", "e", "", "exercise file to grade")
	flags.StringVarP(&opts.answerFile, "answers", "a", "", "answer file to grade")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	flags.IntVar(&opts.maxOperators, "max-ops", 0, "operators per problem (default 3)")
	flags.BoolVar(&opts.ascii, "ascii", false, "render * and / instead of × and ÷")
	flags.StringVar(&opts.outDir, "out-dir", "", "directory for Exercises.txt, Answers.txt and Grade.txt")

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&opts.configPath, "config", config.DefaultPath, "config file")
	pflags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Generation.Count = opts.count
	}
	if flags.Changed("range") {
		cfg.Generation.Range = opts.rangeN
	}
	if flags.Changed("seed") {
		cfg.Generation.Seed = opts.seed
	}
	if flags.Changed("max-ops") {
		cfg.Generation.MaxOperators = opts.maxOperators
	}
	if flags.Changed("ascii") && opts.ascii {
		cfg.Generation.Notation = "ascii"
	}
	if flags.Changed("out-dir") {
		cfg.Files.Dir = opts.outDir
	}
}

func checkUsage(opts *options, cfg *config.Config) error {
	switch {
	case opts.exerciseFile != "" && opts.answerFile != "":
		return nil
	case opts.exerciseFile != "" || opts.answerFile != "":
		return fmt.Errorf("%w: -e and -a must be given together", errUsage)
	case cfg.Generation.Range == 0:
		return fmt.Errorf("%w: -r parameter is required for generation mode", errUsage)
	case cfg.Generation.Range < 0 || cfg.Generation.Count <= 0:
		return fmt.Errorf("%w: -n and -r must be positive integers", errUsage)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	gc := cfg.Generation
	opts := []arithgen.Option{arithgen.WithLogger(logger)}
	if gc.Seed != 0 {
		opts = append(opts, arithgen.WithSeed(gc.Seed))
	}
	g, err := arithgen.NewGenerator(arithgen.GeneratorConfig{
		Range:           gc.Range,
		MaxOperators:    gc.MaxOperators,
		LeafProbability: gc.LeafProbability,
		MaxAttempts:     gc.MaxAttempts,
	}, opts...)
	if err != nil {
		return err
	}

	exprs, err := g.Generate(gc.Count)
	if err != nil {
		if !arithgen.IsExhausted(err) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Generated only %d unique problems (target: %d).\n", len(exprs), gc.Count)
	}

	notation := arithgen.Unicode
	if gc.Notation == "ascii" {
		notation = arithgen.ASCII
	}
	exPath := cfg.Files.Path(cfg.Files.Exercises)
	ansPath := cfg.Files.Path(cfg.Files.Answers)
	if err := worksheet.WriteProblems(exPath, ansPath, exprs, notation); err != nil {
		return err
	}

	logger.Info("Problems written",
		zap.Int("count", len(exprs)),
		zap.String("exercises", exPath),
		zap.String("answers", ansPath))
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d problems to %s and %s\n", len(exprs), exPath, ansPath)
	return nil
}

func runGrade(cmd *cobra.Command, opts *options, cfg *config.Config, logger *zap.Logger) error {
	report, err := worksheet.GradeFiles(opts.exerciseFile, opts.answerFile)
	if err != nil {
		return err
	}
	for _, it := range report.Items {
		if it.ExpectedErr != nil || it.SubmittedErr != nil {
			logger.Debug("Item unparseable",
				zap.Int("index", it.Index),
				zap.NamedError("exercise_error", it.ExpectedErr),
				zap.NamedError("answer_error", it.SubmittedErr))
		}
	}

	gradePath := cfg.Files.Path(cfg.Files.Grade)
	if err := worksheet.WriteGrade(gradePath, report); err != nil {
		return err
	}
	logger.Info("Grade written",
		zap.Int("correct", len(report.Correct)),
		zap.Int("wrong", len(report.Wrong)),
		zap.String("grade", gradePath))
	fmt.Fprintln(cmd.OutOrStdout(), report.String())
	return nil
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the arithgen config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil {
				return fmt.Errorf("%s already exists", opts.configPath)
			}
			if err := config.DefaultConfig().Save(opts.configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	})
	return cmd
}
