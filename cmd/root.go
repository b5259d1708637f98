package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ias-lab/pasiphae/internal/logging"
)

var (
	cfgFile      string
	debugLogging bool
)

// rootCmd is the bare entrypoint; all analytical work happens under its
// subcommands (spec §2's "Ambient CLI & reporting" component owns no
// analytical logic).
var rootCmd = &cobra.Command{
	Use:   "pasiphae",
	Short: "Browser-driven SPA detection and DOM-XSS taint analysis",
	Long: `pasiphae drives an instrumented headless browser against a target
URL, classifying it as a single-page application and reporting any
DOM-based cross-site-scripting taint flows it observes along the way.`,
}

// Execute adds all child commands to rootCmd and runs it. Called once from main.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pasiphae.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "use debug level logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Setup(debugLogging)
		return nil
	}
}

// initConfig reads a config file and PASIPHAE_-prefixed env vars, mirroring
// the teacher's rootCmd.initConfig (cmd/root.go).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("pasiphae")
	}
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("PASIPHAE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}
