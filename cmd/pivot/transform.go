package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/akmonengine/pivot"
	"github.com/akmonengine/pivot/constraint"
	"github.com/akmonengine/pivot/cursor"
	"github.com/akmonengine/pivot/depsgraph"
	"github.com/akmonengine/pivot/logger"
	"github.com/akmonengine/pivot/report"
	"github.com/akmonengine/pivot/space"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type transformOptions struct {
	context    string
	translate  []float64
	rotate     float64
	axis       []float64
	resize     []float64
	constraint string
	cancel     bool
}

func newTransformCmd(cfg *pivot.Config) *cobra.Command {
	opts := &transformOptions{}

	cmd := &cobra.Command{
		Use:   "transform <workspace.yaml>",
		Short: "Run one transform operation on a cursor",
		Long: `Load a workspace, move the cursor of one of its editors and print the result.

At most one of --translate, --rotate and --resize may be given. Without any,
the operation is confirmed unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], opts, *cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.context, "context", space.KIND_VIEW3D.String(), "editor whose cursor moves: image, sequencer, view3d")
	flags.Float64SliceVar(&opts.translate, "translate", nil, "translation x,y[,z]")
	flags.Float64Var(&opts.rotate, "rotate", 0, "rotation angle in degrees")
	flags.Float64SliceVar(&opts.axis, "axis", nil, "rotation axis x,y,z (default z)")
	flags.Float64SliceVar(&opts.resize, "resize", nil, "scale factors x,y[,z]")
	flags.StringVar(&opts.constraint, "constraint", "none", "constraint: none, x, y, z, -x, -y, -z, optionally prefixed with local:")
	flags.BoolVar(&opts.cancel, "cancel", false, "cancel the operation instead of confirming it")

	return cmd
}

type cursorOutput struct {
	Location           []float64 `yaml:"location,flow"`
	RotationMode       string    `yaml:"rotation_mode,omitempty"`
	RotationEuler      []float64 `yaml:"rotation_euler,omitempty,flow"`
	RotationAxis       []float64 `yaml:"rotation_axis,omitempty,flow"`
	RotationAngle      *float64  `yaml:"rotation_angle,omitempty"`
	RotationQuaternion []float64 `yaml:"rotation_quaternion,omitempty,flow"`
}

type transformOutput struct {
	Operation string          `yaml:"operation"`
	Context   string          `yaml:"context"`
	Records   int             `yaml:"records"`
	Canceled  bool            `yaml:"canceled"`
	Changed   bool            `yaml:"changed"`
	Cursor    cursorOutput    `yaml:"cursor"`
	Refreshed []string        `yaml:"refreshed,omitempty"`
	Reports   []report.Report `yaml:"reports,omitempty"`
}

func runTransform(cmd *cobra.Command, path string, opts *transformOptions, cfg pivot.Config) error {
	delta, err := opts.delta()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening workspace: %w", err)
	}
	defer f.Close()

	ws, err := space.LoadWorkspace(f)
	if err != nil {
		return err
	}
	ctx, err := ws.Context(opts.context)
	if err != nil {
		return err
	}

	cfg.Log.Writer = cmd.ErrOrStderr()
	log := logger.New(cfg.Log)
	reports := report.NewList(log)
	graph := depsgraph.NewGraph()

	var refreshed []string
	graph.Subscribe(func(update depsgraph.Update) {
		refreshed = append(refreshed, update.Scene.String())
	})

	engine := pivot.NewEngine(cfg, graph, reports, log)
	op, err := engine.Begin(ctx)
	if err != nil {
		return err
	}

	if delta != nil {
		if err := op.Apply(*delta); err != nil {
			return err
		}
	}

	var result pivot.Result
	if opts.cancel {
		result, err = op.Cancel()
	} else {
		result, err = op.Confirm()
	}
	if err != nil {
		return err
	}

	out := transformOutput{
		Operation: result.ID.String(),
		Context:   ctx.Kind().String(),
		Records:   result.Records,
		Canceled:  result.Canceled,
		Changed:   result.Changed,
		Cursor:    describeCursor(ctx),
		Refreshed: refreshed,
		Reports:   reports.Reports,
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return enc.Close()
}

func (o *transformOptions) delta() (*pivot.Delta, error) {
	c, err := constraint.Parse(o.constraint)
	if err != nil {
		return nil, err
	}

	var deltas []pivot.Delta
	if len(o.translate) > 0 {
		vec, err := vec3(o.translate, 0)
		if err != nil {
			return nil, fmt.Errorf("--translate: %w", err)
		}
		deltas = append(deltas, pivot.Delta{Mode: pivot.TRANSLATION, Vector: vec})
	}
	if o.rotate != 0 {
		axis := mgl64.Vec3{0, 0, 1}
		if len(o.axis) > 0 {
			if axis, err = vec3(o.axis, 0); err != nil {
				return nil, fmt.Errorf("--axis: %w", err)
			}
		}
		deltas = append(deltas, pivot.Delta{Mode: pivot.ROTATION, Angle: mgl64.DegToRad(o.rotate), Axis: axis})
	}
	if len(o.resize) > 0 {
		scale, err := vec3(o.resize, 1)
		if err != nil {
			return nil, fmt.Errorf("--resize: %w", err)
		}
		deltas = append(deltas, pivot.Delta{Mode: pivot.RESIZE, Scale: scale})
	}

	switch len(deltas) {
	case 0:
		return nil, nil
	case 1:
		deltas[0].Constraint = c
		return &deltas[0], nil
	}
	return nil, errors.New("only one of --translate, --rotate and --resize may be given")
}

// vec3 accepts two or three components, filling a missing Z with z.
func vec3(values []float64, z float64) (mgl64.Vec3, error) {
	switch len(values) {
	case 2:
		return mgl64.Vec3{values[0], values[1], z}, nil
	case 3:
		return mgl64.Vec3{values[0], values[1], values[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("want 2 or 3 components, got %d", len(values))
}

func describeCursor(ctx space.Context) cursorOutput {
	switch v := ctx.(type) {
	case *space.ImageView:
		return cursorOutput{Location: v.Cursor.Location[:]}
	case *space.SequencerView:
		return cursorOutput{Location: v.Cursor.Location[:]}
	case *space.View3D:
		c := v.Cursor()
		out := cursorOutput{
			Location:     c.Location[:],
			RotationMode: c.RotationMode.String(),
		}
		switch {
		case c.RotationMode.IsEuler():
			out.RotationEuler = c.RotationEuler[:]
		case c.RotationMode == cursor.ROT_MODE_AXISANGLE:
			angle := c.RotationAngle
			out.RotationAxis = c.RotationAxis[:]
			out.RotationAngle = &angle
		default:
			q := c.RotationQuaternion
			out.RotationQuaternion = []float64{q.W, q.V[0], q.V[1], q.V[2]}
		}
		return out
	}
	return cursorOutput{}
}
