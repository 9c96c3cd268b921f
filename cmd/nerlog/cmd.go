package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/getzep/nerlog/config"
	"github.com/getzep/nerlog/internal"
)

var (
	log = internal.GetLogger()

	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool

	annotateOpts annotateOptions
)

var cmd = &cobra.Command{
	Use:   "nerlog",
	Short: "nerlog extracts named entities from text, PDF, Word and image uploads and keeps a log of every result",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for nerlog's configuration file",
	Example: "nerlog json-schema > nerlog_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Extracts entities from a single file or text without starting the server",
	Example: `nerlog annotate --text "I visited Paris in 2024."
nerlog annotate --file contract.pdf --out contract_log.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error configuring nerlog: %w", err)
		}
		config.SetLogLevel(cfg)
		return runAnnotate(cmd.Context(), cfg, &annotateOpts, cmd.OutOrStdout())
	},
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(annotateCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")

	annotateCmd.Flags().StringVar(&annotateOpts.file, "file", "", "PDF, Word document or image to annotate")
	annotateCmd.Flags().StringVar(&annotateOpts.text, "text", "", "text to annotate")
	annotateCmd.Flags().StringVar(&annotateOpts.out, "out", "", "write a PDF log of the result to this path")
	annotateCmd.MarkFlagsMutuallyExclusive("file", "text")
}

// Execute executes the root cobra command.
func Execute() {
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
