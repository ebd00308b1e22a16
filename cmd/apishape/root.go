package apishape

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/apishape/internal/version"
	"github.com/arthur-debert/apishape/pkg/cobrax/topics"
	"github.com/arthur-debert/apishape/pkg/config"
	"github.com/arthur-debert/apishape/pkg/diagnostics"
	"github.com/arthur-debert/apishape/pkg/host"
	"github.com/arthur-debert/apishape/pkg/logging"
	"github.com/arthur-debert/apishape/pkg/orchestration"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//go:embed topics
var topicFiles embed.FS

// flags that never reach the configuration layers
var cliOnly = map[string]bool{
	"config":  true,
	"verbose": true,
	"help":    true,
	"version": true,
}

// NewRootCmd creates the root command on the OS file system.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     version.ToolName + " [flags] <manifest-or-dir>...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerTo(verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fsys, args, configFile, verbosity)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVar(&configFile, "config", "", MsgFlagConfig)
	addOptionFlags(rootCmd.Flags())

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.AddCommand(newVersionCmd())

	help, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		opts := topics.Options{Renderer: topics.NewGlamourRenderer()}
		if err := topics.InitializeWithOptions(rootCmd, help, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// addOptionFlags declares one flag per configuration key. Defaults here
// are only shown in help; values come from the configuration layers and
// a flag overrides them only when set.
func addOptionFlags(f *pflag.FlagSet) {
	f.StringSlice("lib-path", nil, MsgFlagLibPath)
	f.String("api-list", "", MsgFlagAPIList)
	f.String("exclude-api-list", "", MsgFlagExclude)
	f.Bool("exclude-members", false, MsgFlagExcludeMem)
	f.String("exclude-attributes-list", "", MsgFlagExcludeAtt)
	f.StringP("out", "o", "", MsgFlagOut)
	f.String("header-file", "", MsgFlagHeader)
	f.StringP("writer", "w", "declarations", MsgFlagWriter)
	f.StringP("syntax", "s", "text", MsgFlagSyntax)
	f.String("docid-kinds", "all", MsgFlagDocIDKinds)
	f.String("exception-message", "", MsgFlagException)
	f.Bool("global", false, MsgFlagGlobal)
	f.Bool("follow-type-forwards", false, MsgFlagFollow)
	f.Bool("api-only", false, MsgFlagAPIOnly)
	f.Bool("all", false, MsgFlagAll)
	f.Bool("respect-internals", false, MsgFlagInternals)
	f.Bool("exclude-compiler-generated", false, MsgFlagCompGen)
	f.Bool("member-headings", false, MsgFlagHeadings)
	f.Bool("highlight-base-members", false, MsgFlagHLBase)
	f.Bool("highlight-interface-members", false, MsgFlagHLIface)
	f.Bool("always-include-base", false, MsgFlagAlwaysBase)
	f.Bool("exclude-members-on-filtered-types", false, MsgFlagExclFilt)
	f.String("lang-version", "default", MsgFlagLang)
}

// changedFlags collects the flags set on the command line, keyed by
// their configuration key.
func changedFlags(f *pflag.FlagSet, args []string) map[string]interface{} {
	values := map[string]interface{}{}
	f.Visit(func(fl *pflag.Flag) {
		if cliOnly[fl.Name] {
			return
		}
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			values[fl.Name] = sv.GetSlice()
			return
		}
		values[fl.Name] = fl.Value.String()
	})
	if len(args) > 0 {
		values["inputs"] = args
	}
	return values
}

func run(cmd *cobra.Command, fsys afero.Fs, args []string, configFile string, verbosity int) error {
	logger := logging.GetLogger("cmd")

	cfg, err := config.Load(config.Sources{
		ConfigFile: configFile,
		Flags:      changedFlags(cmd.Flags(), args),
	})
	if err != nil {
		return err
	}
	opts, err := cfg.Validate()
	if err != nil {
		return err
	}

	var sink diagnostics.Sink = diagnostics.NewConsole(cmd.ErrOrStderr())
	if verbosity > 0 {
		sink = diagnostics.Tee(sink, diagnostics.NewLogger(logging.GetLogger("host")))
	}

	logger.Debug().
		Strs("inputs", opts.Inputs).
		Strs("libPath", cfg.LibPath).
		Str("out", opts.Output).
		Msg("Starting run")

	runner := orchestration.NewRunner(fsys, host.New(fsys, sink, cfg.LibPath...), cmd.OutOrStdout())
	return runner.Run(opts)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat,
				version.ToolName, version.Version, version.Commit, version.Date)
		},
	}
}
