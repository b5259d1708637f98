package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ias-lab/pasiphae/internal/config"
	"github.com/ias-lab/pasiphae/internal/model"
	"github.com/ias-lab/pasiphae/internal/report"
	"github.com/ias-lab/pasiphae/internal/runner"
)

// exit codes per spec §6.
const (
	exitClean     = 0
	exitDetected  = 1
	exitError     = 2
	exitInterrupt = 130
)

var (
	flagStrategy     string
	flagCompareAll   bool
	flagMaxActions   int
	flagPassive      bool
	flagHeadless     bool
	flagTimeout      time.Duration
	flagBaseline     time.Duration
	flagWModel       float64
	flagFoxhoundPath string
	flagChromePath   string
	flagProxy        string
)

var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Analyze one URL for SPA behavior and DOM-XSS taint flows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		opts := optionsFromFlags()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		if flagCompareAll {
			done := make(chan map[config.Strategy]runner.Result, 1)
			go func() {
				results := make(map[config.Strategy]runner.Result, 3)
				for _, s := range []config.Strategy{config.StrategyRandomWalk, config.StrategyModelGuided, config.StrategyDOMMaximizer} {
					o := opts
					o.Strategy = s
					log.Info().Str("url", url).Str("strategy", string(s)).Msg("running strategy")
					results[s] = runner.AnalyzeURL(url, o)
				}
				done <- results
			}()

			select {
			case sig := <-sigChan:
				log.Warn().Str("signal", sig.String()).Msg("received signal, aborting scan")
				os.Exit(exitInterrupt)
			case results := <-done:
				report.PrintComparison(url, results)
				code := exitClean
				for _, r := range results {
					if c := exitCodeFor(r.Run); c > code {
						code = c
					}
				}
				os.Exit(code)
			}
			return nil
		}

		done := make(chan model.RunResult, 1)
		go func() { done <- runner.AnalyzeURL(url, opts).Run }()

		select {
		case sig := <-sigChan:
			log.Warn().Str("signal", sig.String()).Msg("received signal, aborting scan")
			os.Exit(exitInterrupt)
		case res := <-done:
			report.Print(res)
			os.Exit(exitCodeFor(res))
		}
		return nil
	},
}

// exitCodeFor maps a single RunResult to spec §6's exit code: an analysis
// error always wins (2), then SPA detection or any confirmed finding (1),
// else clean (0).
func exitCodeFor(res model.RunResult) int {
	if len(res.Errors) > 0 {
		return exitError
	}
	if res.Verdict.IsSPA() || len(res.Findings) > 0 {
		return exitDetected
	}
	return exitClean
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&flagStrategy, "strategy", "random_walk", "interaction strategy: random_walk|model_guided|dom_maximizer")
	runCmd.Flags().BoolVar(&flagCompareAll, "compare-all", false, "run every strategy against the URL and report all three")
	runCmd.Flags().IntVar(&flagMaxActions, "max-actions", 50, "maximum interactions per run")
	runCmd.Flags().BoolVar(&flagPassive, "passive", false, "observe only; never fill payloads into inputs")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", true, "run the browser headless")
	runCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "per-navigation timeout")
	runCmd.Flags().DurationVar(&flagBaseline, "baseline", 3*time.Second, "baseline observation window before interacting")
	runCmd.Flags().Float64Var(&flagWModel, "w-model", 25, "model-guided strategy's model-weight coefficient")
	runCmd.Flags().StringVar(&flagFoxhoundPath, "foxhound-path", "", "path to a taint-tracking Foxhound build")
	runCmd.Flags().StringVar(&flagChromePath, "chrome-path", "", "path to a Chrome/Chromium binary")
	runCmd.Flags().StringVar(&flagProxy, "proxy", "", "upstream HTTP proxy for the browser")

	viper.BindPFlag("strategy", runCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("max_actions", runCmd.Flags().Lookup("max-actions"))
	viper.BindPFlag("passive", runCmd.Flags().Lookup("passive"))
	viper.BindPFlag("headless", runCmd.Flags().Lookup("headless"))
}

// optionsFromFlags builds config.Options. The viper-bound keys (strategy,
// max_actions, passive, headless) are read through viper, which merges
// flags, env vars, and config file per cobra.OnInitialize(initConfig); the
// remaining fields come straight from their flags.
func optionsFromFlags() config.Options {
	strategy := flagStrategy
	if v := viper.GetString("strategy"); v != "" {
		strategy = v
	}
	return config.Options{
		Strategy:         config.Strategy(strategy),
		CompareAll:       flagCompareAll,
		MaxActions:       viper.GetInt("max_actions"),
		Passive:          viper.GetBool("passive"),
		Headless:         viper.GetBool("headless"),
		Timeout:          flagTimeout,
		BaselineDuration: flagBaseline,
		WModel:           flagWModel,
		FoxhoundPath:     flagFoxhoundPath,
		ChromePath:       flagChromePath,
		Proxy:            flagProxy,
	}.WithDefaults()
}
