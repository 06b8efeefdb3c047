package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/givikap120/flowpp/app/config"
	"github.com/givikap120/flowpp/app/database"
	"github.com/givikap120/flowpp/app/rulesets/osu/performance/flow"
)

const envPrefix = "FLOWPP"

const cacheFile = "flowpp/attributes.db"

var cfgFile string

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowpp",
		Short: "Flow aware osu! difficulty and performance calculator",
		Long: heredoc.Doc(`flowpp rates osu!standard beatmaps with a difficulty model
			that tells snap aim from flow aim, and turns scores into pp.

			Flags can also be set in $HOME/.flowpp.yml or through
			FLOWPP_* environment variables, e.g. FLOWPP_NO_CACHE=true.`),
		Args:    cobra.NoArgs,
		Version: flow.NewDifficultyCalculatorWithSkills(flow.DefaultSkills).GetVersionMessage(),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flag("trace").Changed {
				log.SetLevel(log.TraceLevel)
			}

			return initConfig(cmd.Root())
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.flowpp.yml)")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	root.PersistentFlags().StringVar(&config.DatabasePath, "database", "",
		"attribute cache location (default is $XDG_DATA_HOME/"+cacheFile+")")
	root.PersistentFlags().Bool("no-cache", false, "don't read or write the attribute cache")
	root.PersistentFlags().StringVarP(&config.Mods, "mods", "m", "", "mods to apply, e.g. HDDT")
	root.PersistentFlags().Float64VarP(&config.Rate, "rate", "r", 0, "custom playback rate, overrides DT/HT")

	root.AddCommand(Difficulty())
	root.AddCommand(Performance())
	root.AddCommand(Batch())

	return root
}

// initConfig reads in config file and ENV variables if set.
func initConfig(root *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flowpp")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}

	bindFlags(root, viper.GetViper())
	for _, cmd := range root.Commands() {
		bindFlags(cmd, viper.GetViper())
	}

	return nil
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// --no-cache is bound to FLOWPP_NO_CACHE
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				log.WithError(err).Warnf("Could not bind env var %s", f.Name)
			}
		}

		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				log.WithError(err).Warnf("Could not set flag value for %s", f.Name)
			}
		}
	})
}

// openCache returns nil when caching is disabled
func openCache(cmd *cobra.Command) (*database.Cache, error) {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return nil, nil
	}

	path := config.DatabasePath

	if path == "" {
		var err error
		if path, err = xdg.DataFile(cacheFile); err != nil {
			return nil, fmt.Errorf("failed to resolve cache location: %w", err)
		}
	}

	log.WithField("path", path).Trace("Opening attribute cache")

	return database.Open(path)
}
