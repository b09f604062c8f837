package render

import (
	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

// Cmd is the render command.
var Cmd = &cobra.Command{
	Use:   "render [scene files or globs...]",
	Short: "Render the outlines of scene files",
	Long: `Render loads YAML or SVG scenes, outlines every group and writes
one SVG or PNG file per scene.`,
	Example: `  bubblesets render 'scenes/**/*.yaml' --out build
  bubblesets render diagram.svg --format png --scale 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("out", "o", ".", "Output directory")
	Cmd.Flags().StringP("format", "f", "svg", "Output format (svg, png)")
	Cmd.Flags().Bool("force", false, "Recompute every outline from scratch")
	Cmd.Flags().Bool("check", false, "Re-read written SVG files")
	Cmd.Flags().Bool("backdrop", true, "Draw nodes and edges under the outlines")
	Cmd.Flags().Float64("scale", 1, "Pixels per unit for PNG output")
	Cmd.Flags().IntP("jobs", "j", 0, "Number of scenes rendered at once (default: unlimited)")

	for _, name := range []string{"out", "format", "force", "check", "backdrop", "scale", "jobs"} {
		_ = viper.BindPFlag("render."+name, Cmd.Flags().Lookup(name))
	}
}

func run(cmd *cobra.Command, args []string) error {
	var opts bubbleset.Options
	if err := viper.UnmarshalKey("outline", &opts); err != nil {
		return zerr.Wrap(err, "invalid outline options")
	}
	cfg := &Config{
		Inputs:   args,
		Out:      viper.GetString("render.out"),
		Format:   viper.GetString("render.format"),
		Force:    viper.GetBool("render.force"),
		Check:    viper.GetBool("render.check"),
		Backdrop: viper.GetBool("render.backdrop"),
		Scale:    viper.GetFloat64("render.scale"),
		Jobs:     viper.GetInt("render.jobs"),
		Options:  opts,
	}
	return Render(cmd.Context(), cfg)
}
