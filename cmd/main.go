package main

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/pablor21/godecor/inspect"
	"github.com/pablor21/godecor/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	root := &cobra.Command{
		Use:           "godecor",
		Short:         "Signature inspection tooling for godecor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(describeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func describeCmd() *cobra.Command {
	var (
		configFile string
		modeStr    string
		output     string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "describe [patterns...]",
		Short: "Print the function signatures found in the given packages as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := inspect.NewDefaultConfig()
			if configFile != "" {
				loaded, err := inspect.LoadConfig(configFile)
				if err != nil {
					return err
				}
				config = loaded
			}
			if len(args) > 0 {
				config.Packages = args
			}
			if modeStr != "" {
				mode, err := inspect.ParseMode(modeStr)
				if err != nil {
					return err
				}
				config.Mode = mode
			}
			if logLevel != "" {
				config.LogLevel = logger.LogLevel(logLevel)
			}

			result, err := inspect.NewInspector(config).Inspect()
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(result.Serialize(), "", "  ")
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Println(string(b))
				return nil
			}
			return os.WriteFile(output, b, 0644)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (yaml)")
	cmd.Flags().StringVarP(&modeStr, "mode", "m", "", "inspection mode (signatures,docs,annotations,methods|full)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug|info|warn|error|none)")
	return cmd
}
