package main

import (
	"os"

	"github.com/arthur-debert/assetwatch/internal/version"
	"github.com/arthur-debert/assetwatch/pkg/config"
	"github.com/arthur-debert/assetwatch/pkg/errors"
	"github.com/arthur-debert/assetwatch/pkg/logging"
	"github.com/arthur-debert/assetwatch/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errBuildFailed is returned when a build completed with failed dispatches;
// the summary already reported them
var errBuildFailed = errors.New(errors.ErrTransformFailure, "build finished with failures")

// rootOptions holds the global flags
type rootOptions struct {
	verbosity  int
	projectDir string
	configFile string

	sources      []string
	destinations []string
	header       string
	headerFile   string
	includePaths []string

	minifyScript         bool
	minifyStylesheet     bool
	minifyStructuredData bool
	minifyMarkup         bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "assetwatch",
		Short: "Build and watch web assets",
		Long: `assetwatch mirrors one or more source trees into destination trees,
minifying scripts and markup, compiling stylesheets and re-serializing
JSON on the way. It can build once or keep watching for changes.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			style.Configure(os.Stdout)
			log.Debug().Str("command", cmd.Name()).Str("version", version.String()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVarP(&opts.projectDir, "project", "C", ".", "Project directory holding assetwatch.toml and .env")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (default: assetwatch.toml or assetwatch.yaml in the project)")
	flags.StringSliceVar(&opts.sources, "src", nil, "Source root (repeatable)")
	flags.StringSliceVar(&opts.destinations, "dest", nil, "Destination root: one, or one per source (repeatable)")
	flags.StringVar(&opts.header, "header", "", "Header prepended to scripts and stylesheets")
	flags.StringVar(&opts.headerFile, "header-file", "", "File whose content is used as header")
	flags.StringSliceVar(&opts.includePaths, "include-path", nil, "Extra stylesheet import path (repeatable)")
	flags.BoolVar(&opts.minifyScript, "minify-script", true, "Minify scripts")
	flags.BoolVar(&opts.minifyStylesheet, "minify-stylesheet", true, "Compile stylesheets compressed")
	flags.BoolVar(&opts.minifyStructuredData, "minify-json", true, "Write JSON compact")
	flags.BoolVar(&opts.minifyMarkup, "minify-markup", true, "Minify markup")

	initTemplateFormatting()

	rootCmd.AddCommand(
		newBuildCmd(opts),
		newWatchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
		newCompletionCmd(),
		newManCmd(),
	)
	installHelpTopics(rootCmd)
	return rootCmd
}

// overrides returns config overrides for the flags set on the command line
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	flags := cmd.Flags()
	set := func(flag, key string, value interface{}) {
		if flags.Changed(flag) {
			out[key] = value
		}
	}

	set("src", "sources", o.sources)
	set("dest", "destinations", o.destinations)
	set("header", "header", o.header)
	set("header-file", "header_file", o.headerFile)
	set("include-path", "stylesheet.include_paths", o.includePaths)
	set("minify-script", "minify.script", o.minifyScript)
	set("minify-stylesheet", "minify.stylesheet", o.minifyStylesheet)
	set("minify-json", "minify.structured_data", o.minifyStructuredData)
	set("minify-markup", "minify.markup", o.minifyMarkup)
	return out
}

// loadConfig loads the effective configuration and raises log verbosity
// if the configuration asks for more than the flags
func (o *rootOptions) loadConfig(cmd *cobra.Command, extra map[string]interface{}) (*config.Config, error) {
	overrides := o.overrides(cmd)
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{
		ProjectDir: o.projectDir,
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Log.Verbosity > o.verbosity {
		logging.SetupLogger(cfg.Log.Verbosity)
	}
	return cfg, nil
}
