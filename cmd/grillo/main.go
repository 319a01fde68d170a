package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "grillo",
	Short: "grillo ingests LLM narrator responses into persistent game-state documents",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// reinitialize the logger because we can now parse --log-level and co
		// from the command line flag
		initLogger()
	},
}

func initLogger() {
	logLevel := viper.GetString("log-level")
	if viper.GetBool("verbose") && logLevel != "trace" {
		logLevel = "debug"
	}

	var logWriter io.Writer = os.Stderr
	logFormat := viper.GetString("log-format")
	if logFormat == "text" || (logFormat == "" && isatty.IsTerminal(os.Stderr.Fd())) {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = log.Output(logWriter)

	switch logLevel {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

func initConfig() error {
	viper.SetEnvPrefix("grillo")

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.grillo")
		if xdgConfigPath, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(xdgConfigPath + "/grillo")
		}
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; ignore error
	} else if err != nil {
		return err
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return viper.BindPFlags(rootCmd.PersistentFlags())
}

func main() {
	_ = rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json, text; default: text on a tty)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.grillo/config.yml)")
	rootCmd.PersistentFlags().String("store", "", "SQLite DSN for the session store (default: in-memory)")

	cobra.CheckErr(initConfig())
	initLogger()

	rootCmd.AddCommand(newReplayCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newBudgetCommand())
}
