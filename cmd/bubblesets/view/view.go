// Package view is an interactive terminal preview of a scene. Nodes
// can be dragged with the arrow keys and the outlines follow through
// the usual throttled updates.
package view

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/paulhankin/bubblesets/bubbleset"
	"github.com/paulhankin/bubblesets/cmd/bubblesets/internal/load"
	"github.com/paulhankin/bubblesets/scene"
	"github.com/paulhankin/bubblesets/surface"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/zerr"
)

// Cmd is the view command.
var Cmd = &cobra.Command{
	Use:   "view <scene>",
	Short: "Preview a scene in the terminal",
	Long: `View draws a scene and its outlines in the terminal. Arrow keys move
the selected node, Tab selects the next node, f recomputes every outline
from scratch and q or Esc quits.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().Float64("step", 10, "Distance a node moves per key press")
	_ = viper.BindPFlag("view.step", Cmd.Flags().Lookup("step"))
}

// Viewer ties a scene, its outlines and a terminal together.
type Viewer struct {
	g    *scene.Graph
	c    *bubbleset.Collection
	term *surface.Terminal
	step float64
	sel  int
}

// New creates the outlines of g, drawn on screen.
func New(g *scene.Graph, screen tcell.Screen, step float64, opts bubbleset.Options, copts ...bubbleset.CollectionOption) (*Viewer, error) {
	v := &Viewer{g: g, term: surface.NewTerminal(screen, g.Backdrop), step: step}
	v.term.View = g.Bounds().Pad(60)
	copts = append([]bubbleset.CollectionOption{bubbleset.WithDefaults(opts)}, copts...)
	v.c = bubbleset.NewCollection(g, v.term, copts...)
	if err := load.Outlines(g, v.c); err != nil {
		v.c.Destroy()
		return nil, err
	}
	v.status()
	return v, v.c.Draw()
}

// Selected returns the node the arrow keys move.
func (v *Viewer) Selected() bubbleset.ElementID {
	ids := v.g.NodeIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[v.sel%len(ids)]
}

func (v *Viewer) status() {
	v.term.SetStatus(fmt.Sprintf("[%s] arrows: move  tab: next  f: force  q: quit", v.Selected()))
}

// HandleKey applies a key press, reporting whether the viewer should
// quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	var dx, dy float64
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		v.sel++
		v.status()
		v.term.Repaint()
		return false
	case tcell.KeyUp:
		dy = -v.step
	case tcell.KeyDown:
		dy = v.step
	case tcell.KeyLeft:
		dx = -v.step
	case tcell.KeyRight:
		dx = v.step
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'f':
			if err := v.c.UpdateAll(true); err != nil {
				slog.Warn("forced update failed", "error", err)
			}
		}
		return false
	default:
		return false
	}
	if id := v.Selected(); id != "" {
		if err := v.g.MoveNode(id, dx, dy); err != nil {
			slog.Warn("move failed", "node", id, "error", err)
		}
	}
	return false
}

// Close removes the outlines.
func (v *Viewer) Close() {
	v.c.Destroy()
}

// Loop handles screen events until the user quits.
func (v *Viewer) Loop(screen tcell.Screen) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			v.term.Repaint()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return
			}
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	g, err := load.Scene(args[0])
	if err != nil {
		return err
	}
	var opts bubbleset.Options
	if err := viper.UnmarshalKey("outline", &opts); err != nil {
		return zerr.Wrap(err, "invalid outline options")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return zerr.Wrap(err, "failed to open terminal")
	}
	if err := screen.Init(); err != nil {
		return zerr.Wrap(err, "failed to open terminal")
	}
	defer screen.Fini()
	v, err := New(g, screen, viper.GetFloat64("view.step"), opts)
	if err != nil {
		return err
	}
	defer v.Close()
	v.Loop(screen)
	return nil
}
