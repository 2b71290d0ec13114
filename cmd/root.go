package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/csscolor/config"
	"github.com/chrisuehlinger/csscolor/css"
	"github.com/chrisuehlinger/csscolor/locate"
	"github.com/chrisuehlinger/csscolor/logging"
	"github.com/chrisuehlinger/csscolor/provider"
)

var version = "dev"

// SetVersion sets the version reported by the commands.
func SetVersion(v string) {
	version = v
}

// app carries the state shared by every subcommand.
type app struct {
	fs afero.Fs

	configFile string
	envFile    string
	logLevel   string
	keywords   bool

	cfg    *config.Config
	logger *log.Logger
}

// providerFor returns the color provider for a file path.
func (a *app) providerFor(path string) *provider.Provider {
	return provider.New(
		provider.WithLocator(locate.ForPath(path, a.callFilter())),
		provider.WithDetector(a.detector()),
		provider.WithLogger(a.logger),
	)
}

func (a *app) detector() css.Detector {
	return css.NewDetector(css.WithKeywords(a.cfg.Detector.Keywords))
}

func (a *app) callFilter() locate.CallFilter {
	return locate.CallFilter{
		Function: a.cfg.Locator.CallFilter.Function,
		Argument: a.cfg.Locator.CallFilter.Argument,
	}
}

// newRootCmd builds the command tree on the given filesystem.
func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:   "csscolor",
		Short: "Find, convert and rewrite CSS color literals",
		Long: `csscolor finds CSS color literals (hex, rgb(), hsl() and optionally
named colors) in stylesheets, HTML and JavaScript, and rewrites them in
the notation they were written in.`,
		Version: version,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unparsable colors, missing files)
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "csscolor version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is "+config.DefaultFile+" if present)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with CSSCOLOR_* settings")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error or off")
	flags.BoolVar(&a.keywords, "keywords", false, "also detect named colors such as rebeccapurple")

	rootCmd.AddCommand(newFindCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newSetCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newPickCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(a.fs).Load(a.configFile, a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("keywords") {
		cfg.Detector.Keywords = a.keywords
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// Execute runs the csscolor command line. This is called by main.main().
func Execute() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}
