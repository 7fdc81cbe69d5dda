package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/glyph-ocr/internal/config"
	"github.com/ironsheep/glyph-ocr/internal/logging"
	"github.com/ironsheep/glyph-ocr/internal/ocr"
	"github.com/ironsheep/glyph-ocr/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	v       *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "glyph-ocr",
	Short: "Template-matching OCR for single lines of printed text",
	Long: `glyph-ocr binarizes an image, splits it into glyphs and matches each
glyph against a folder of labeled reference bitmaps (LC_a.png, UC_A.png,
D_7.png, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
		logging.Init(v.GetString("log_level"))
		logging.Debug("Logging initialized", "level", v.GetString("log_level"))
		return nil
	},
}

var recognizeJSON bool

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Recognize the text in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		result, err := engine.RecognizeFile(args[0])
		if err != nil {
			return err
		}
		if recognizeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		summary := engine.Library().Summarize()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d templates (%dx%d canvas, %d skipped)\n",
			summary.Count, summary.CanvasSize, summary.CanvasSize, summary.Skipped)
		for _, t := range summary.Templates {
			fmt.Fprintf(out, "  %-4s %-9s %s\n", t.Label, t.Class, t.Source)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline as MCP tools over stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		logging.Info("Starting MCP server", "version", Version, "templates", engine.Library().Len())
		server.Version = Version
		return server.New(engine).Run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "glyph-ocr %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	},
}

func loadEngine() (*ocr.Engine, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	return ocr.LoadEngine(cfg)
}

func init() {
	var err error
	v, err = config.NewViper("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("templates", "", "template corpus folder")
	flags.Float64("accept", 0, "minimum similarity for a glyph to be accepted")
	flags.String("spacing", "", "word gap policy (relative, fixed)")

	v.BindPFlag("log_level", flags.Lookup("log-level"))
	v.BindPFlag("templates.dir", flags.Lookup("templates"))
	v.BindPFlag("classify.accept_threshold", flags.Lookup("accept"))
	v.BindPFlag("classify.spacing", flags.Lookup("spacing"))

	recognizeCmd.Flags().BoolVar(&recognizeJSON, "json", false, "print the full result as JSON")

	rootCmd.AddCommand(recognizeCmd, templatesCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
