// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"

	"github.com/SkylerLipthay/duktape-go/config"
	"github.com/SkylerLipthay/duktape-go/internal/logutil"
	"github.com/SkylerLipthay/duktape-go/internal/module"
	"github.com/SkylerLipthay/duktape-go/macros"
	"github.com/SkylerLipthay/duktape-go/pipeline"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	verbose    int
}

// NewCLI returns the root command of dukgen.
func NewCLI() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "dukgen",
		Short: "Generate callable wrappers and Go bindings for the Duktape macros",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default: "+config.FileName+" at the module root)")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase logging verbosity")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newTableCmd(),
		newFeaturesCmd(),
	)
	return rootCmd
}

// load returns the resolved configuration, the module and the logger of a run.
func (opts *options) load(cmd *cobra.Command) (config.Config, *module.Module, *slog.Logger, error) {
	mod, err := module.Current()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	cfg, err := config.Load(mod, opts.configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	cfg.Verbose = max(cfg.Verbose, opts.verbose)
	logger := logutil.NewLogger(cmd.ErrOrStderr(), logutil.Level(cfg.Verbose))
	logger.Debug("module found", "module", mod.Name(), "root", mod.Root())
	return cfg.Resolve(mod), mod, logger, nil
}

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		skipExtract bool
		extractor   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the wrapper header and source, then extract the Go bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mod, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("skip-extract") {
				cfg.SkipExtract = skipExtract
			}
			if extractor != "" {
				cfg.Extractor = extractor
			}
			res, err := pipeline.New(cfg, macros.Duktape, logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range append([]string{res.Header, res.Source, res.Config}, res.Features...) {
				fmt.Fprintf(out, "Generated: %s\n", path)
			}
			if res.Bindings == "" {
				return nil
			}
			fmt.Fprintf(out, "Generated: %s\n", res.Bindings)
			pkg, err := mod.ImportPath(res.Bindings)
			if err != nil {
				logger.Debug("bindings generated outside of the module", "error", err)
				return nil
			}
			fmt.Fprintf(out, "Bindings: import %q\n", pkg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipExtract, "skip-extract", false, "do not run the binding extractor")
	cmd.Flags().StringVar(&extractor, "extractor", "", "path of the c-for-go executable (overrides $"+config.EnvExtractor+")")
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the macro table and the binding filter without writing any file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := pipeline.New(cfg, macros.Duktape, logger).Check(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d macros OK\n", len(macros.Duktape))
			return nil
		},
	}
}
