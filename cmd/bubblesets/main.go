// Command bubblesets renders and previews bubble set outlines of
// node-link diagrams.
package main

import (
	"log/slog"
	"os"

	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/cmd/bubblesets/render"
	"github.com/paulhankin/bubblesets/cmd/bubblesets/version"
	"github.com/paulhankin/bubblesets/cmd/bubblesets/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "bubblesets",
		Short: "Draw bubble set outlines around groups of diagram nodes",
		Long: `bubblesets computes smooth outlines enclosing groups of nodes and
edges of a diagram while avoiding other nodes. Scenes are read from YAML
or annotated SVG files.

Outline options can be set in the outline section of a YAML config file:

  outline:
    virtual_edges: true
    node_r1: 40
    throttle: 50ms`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(l)
			bubbleset.SetLogger(l)
			if cfgFile == "" {
				return nil
			}
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read config"), "file", cfgFile)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log cache decisions and timings")

	rootCmd.AddCommand(render.Cmd)
	rootCmd.AddCommand(view.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
