package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calumari/javagen/internal/config"
	"github.com/calumari/javagen/internal/generator"
	"github.com/calumari/javagen/internal/logging"
)

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"output":         "output",
	"indent":         "indent",
	"column-limit":   "column_limit",
	"skip-java-lang": "skip_java_lang_imports",
	"always-qualify": "always_qualify",
	"package":        "java_package",
	"json":           "log.json",
	"verbose":        "log.verbose",
}

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "javagen",
		Short: "Generate Java source files",
		Long: `javagen renders Java compilation units from YAML or TOML declaration
documents, or from the struct types of a Go package.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml, toml or json)")
	pf.StringP("output", "o", "-", "output directory, or - for stdout")
	pf.String("indent", "  ", "indentation unit")
	pf.Int("column-limit", 100, "wrap lines longer than this (0 disables wrapping)")
	pf.Bool("skip-java-lang", false, "never import java.lang classes")
	pf.StringSlice("always-qualify", nil, "simple names that are never imported")
	pf.StringP("package", "p", "", "java package for generated classes")
	pf.Bool("json", false, "log as JSON")
	pf.BoolP("verbose", "v", false, "log debug messages")

	root.AddCommand(newRenderCmd(), newStructsCmd(), newVersionCmd())
	return root
}

// settings resolves defaults, the config file, JAVAGEN_* variables and flags,
// in increasing precedence, and builds the logger they describe.
func settings(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	v, err := config.NewViper(path)
	if err != nil {
		return nil, nil, err
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, nil, errors.Wrapf(err, "bind --%s", name)
		}
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log.JSON, cfg.Log.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// generate fills gc from the resolved settings and runs the generator.
func generate(cmd *cobra.Command, args []string, gc generator.Config) error {
	cfg, log, err := settings(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gc.JavaPackage = cfg.JavaPackage
	gc.Output = cfg.Output
	gc.Indent = cfg.Indent
	gc.ColumnLimit = cfg.ColumnLimit
	gc.SkipJavaLangImports = cfg.SkipJavaLangImports
	gc.AlwaysQualify = cfg.AlwaysQualify
	gc.Command = commandLine(cmd, args)
	gc.Version = cmd.Root().Version
	gc.Logger = log
	gc.Stdout = cmd.OutOrStdout()
	return generator.Run(gc)
}

// commandLine builds a canonical form of the invocation for file headers
// instead of raw argv. Flags that only affect logging, the config source or
// the output location are left out so headers stay stable across machines.
func commandLine(cmd *cobra.Command, args []string) string {
	parts := []string{cmd.CommandPath()}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "output", "json", "verbose":
			return
		}
		value := f.Value.String()
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			value = strings.Join(sv.GetSlice(), ",")
		}
		parts = append(parts, "--"+f.Name+"="+value)
	})
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}
