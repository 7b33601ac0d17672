package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/pigface"
	"github.com/phanxgames/pigface/ecs"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8CA5"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Width(10)
)

type nopRenderer struct{}

func (nopRenderer) SetEyeOffset(pigface.EyeID, float64, float64) {}

// traceLine is one frame of --trace output.
type traceLine struct {
	TimeMS float64    `json:"t"`
	Driver string     `json:"driver"`
	Left   [2]float64 `json:"left"`
	Right  [2]float64 `json:"right"`
}

func newReplayCmd(a *app) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Replay an input script headlessly and summarize the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			script, err := pigface.LoadScript(data)
			if err != nil {
				return err
			}
			cfg, err := a.settings.Gaze.EngineConfig()
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), a, cfg, script, trace)
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print every frame as a JSON line")
	return cmd
}

func replay(w io.Writer, a *app, cfg pigface.Config, script *pigface.Script, trace bool) error {
	p, err := pigface.NewPlayer(cfg, nopRenderer{}, pigface.WithLogger(a.log))
	if err != nil {
		return err
	}
	world := donburi.NewWorld()
	tally := ecs.NewTracker(world)
	p.Engine().SetEffectStore(ecs.NewDonburiStore(world))

	frames := p.Run(script)
	tally.Process()

	if trace {
		enc := json.NewEncoder(w)
		for _, f := range frames {
			l, r := f.Offsets[pigface.EyeLeft], f.Offsets[pigface.EyeRight]
			if err := enc.Encode(traceLine{
				TimeMS: float64(f.Time.Microseconds()) / 1000,
				Driver: f.Driver.String(),
				Left:   [2]float64{l.X, l.Y},
				Right:  [2]float64{r.X, r.Y},
			}); err != nil {
				return err
			}
		}
	}

	var peak float64
	for _, f := range frames {
		for _, o := range f.Offsets {
			peak = math.Max(peak, o.Len())
		}
	}
	t := tally.Totals()
	e := p.Engine()
	off := e.Offsets()
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("replay"),
		row("frames", fmt.Sprint(len(frames))),
		row("elapsed", p.Clock().Now().String()),
		row("driver", e.Driver().String()),
		row("left", fmt.Sprintf("%+.2f, %+.2f", off[pigface.EyeLeft].X, off[pigface.EyeLeft].Y)),
		row("right", fmt.Sprintf("%+.2f, %+.2f", off[pigface.EyeRight].X, off[pigface.EyeRight].Y)),
		row("peak", fmt.Sprintf("%.2f", peak)),
		row("oinks", fmt.Sprint(t.Oinks)),
		row("blinks", fmt.Sprint(t.Blinks)),
	))
	return nil
}
