package main

import (
	"fmt"
	"os"

	schedulerconfig "golang-stock-sentiment/internal/scheduler/config"
	sentimentconfig "golang-stock-sentiment/internal/sentiment/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-sentiment",
	Short: "A CLI for the Golang Stock Sentiment services",
	Long: `Golang Stock Sentiment scores financial news headlines per ticker.
The services run from their own binaries: api-service, scheduling-service and migrate.`,
}

var (
	apiConfigPath       string
	schedulerConfigPath string
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Load both service configurations and print the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiCfg, err := sentimentconfig.Load(apiConfigPath)
		if err != nil {
			return fmt.Errorf("api config: %w", err)
		}
		schedCfg, err := schedulerconfig.Load(schedulerConfigPath)
		if err != nil {
			return fmt.Errorf("scheduler config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api-service:        port=%d classifier=%s async_load=%t stream=%t\n",
			apiCfg.API.Port, apiCfg.Classifier.Backend, apiCfg.Classifier.AsyncLoad, apiCfg.Stream.Enabled)
		fmt.Fprintf(out, "news:               fmp=%t (api key set: %t) rss=%t limit=%d\n",
			apiCfg.News.FMP.Enabled, apiCfg.News.FMP.APIKey != "", apiCfg.News.RSS.Enabled, apiCfg.News.Limit)
		fmt.Fprintf(out, "database:           url set=%t host=%s name=%s\n",
			apiCfg.Database.URL != "", apiCfg.Database.Host, apiCfg.Database.DBName)
		fmt.Fprintf(out, "scheduling-service: port=%d cron=%q tickers=%v cooldown=%s\n",
			schedCfg.API.Port, schedCfg.Scheduler.Cron, schedCfg.Scheduler.Tickers, schedCfg.Scheduler.Cooldown)
		return nil
	},
}

func main() {
	checkConfigCmd.Flags().StringVar(&apiConfigPath, "api-config", "configs/config-api.yaml", "Path to the api service configuration")
	checkConfigCmd.Flags().StringVar(&schedulerConfigPath, "scheduler-config", "configs/config-scheduler.yaml", "Path to the scheduler configuration")
	rootCmd.AddCommand(checkConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
