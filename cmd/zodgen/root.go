package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "zodgen",
	Short: "Generate Zod validation schemas from a data model",
	Long: `zodgen - Zod schema generation

zodgen translates a declarative data-model document (entities, typed
fields, relations, enums, unique constraints) into a TypeScript document
of composable Zod validation schemas and CRUD argument schemas.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		if err := initLogger(); err != nil {
			return err
		}
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: zodgen.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	switch {
	case quiet:
		logger = zap.NewNop()
	case verbose:
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zodgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("ZODGEN")
	viper.AutomaticEnv()

	viper.SetDefault("out", ".")
	viper.SetDefault("import", "zod")
	viper.SetDefault("namespace", "z")
	viper.SetDefault("suffix", "Schema")

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return err
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
