package space

import (
	"errors"
	"fmt"
	"io"

	"github.com/akmonengine/pivot/cursor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownContext = errors.New("unknown context")
	ErrUnknownScene   = errors.New("unknown scene")
	// ErrNoScene is returned for an editor that is not attached to a scene.
	ErrNoScene = errors.New("editor has no scene")
)

// Workspace is a set of scenes and the editors opened on them.
type Workspace struct {
	Scenes    []*Scene
	Image     *ImageView
	Sequencer *SequencerView
	View3D    *View3D
}

type sceneFile struct {
	Name    string     `yaml:"name"`
	ID      string     `yaml:"id,omitempty"`
	Library string     `yaml:"library,omitempty"`
	Cursor  cursorFile `yaml:"cursor"`
}

type cursorFile struct {
	Location           mgl64.Vec3  `yaml:"location"`
	RotationMode       string      `yaml:"rotation_mode,omitempty"`
	RotationEuler      mgl64.Vec3  `yaml:"rotation_euler,omitempty,flow"`
	RotationAxis       *mgl64.Vec3 `yaml:"rotation_axis,omitempty,flow"`
	RotationAngle      float64     `yaml:"rotation_angle,omitempty"`
	RotationQuaternion *[4]float64 `yaml:"rotation_quaternion,omitempty,flow"`
}

type view2DFile struct {
	Scene       string     `yaml:"scene"`
	Aspect      mgl64.Vec2 `yaml:"aspect,flow"`
	Cursor      mgl64.Vec2 `yaml:"cursor,flow"`
	DisplayMode string     `yaml:"display_mode,omitempty"`
}

type view3DFile struct {
	Scene string `yaml:"scene"`
}

type workspaceFile struct {
	Scenes    []sceneFile `yaml:"scenes"`
	Image     *view2DFile `yaml:"image,omitempty"`
	Sequencer *view2DFile `yaml:"sequencer,omitempty"`
	View3D    *view3DFile `yaml:"view3d,omitempty"`
}

// LoadWorkspace decodes a YAML workspace description.
func LoadWorkspace(r io.Reader) (*Workspace, error) {
	var file workspaceFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding workspace: %w", err)
	}

	w := &Workspace{}
	for _, sf := range file.Scenes {
		scene, err := sf.scene()
		if err != nil {
			return nil, err
		}
		w.Scenes = append(w.Scenes, scene)
	}

	if file.Image != nil {
		scene, err := w.lookup(file.Image.Scene)
		if err != nil {
			return nil, fmt.Errorf("image view: %w", err)
		}
		w.Image = NewImageView(scene)
		w.Image.Cursor.Location = file.Image.Cursor
		w.Image.AspectRatio = file.Image.Aspect
	}

	if file.Sequencer != nil {
		scene, err := w.lookup(file.Sequencer.Scene)
		if err != nil {
			return nil, fmt.Errorf("sequencer view: %w", err)
		}
		w.Sequencer = NewSequencerView(scene)
		w.Sequencer.Cursor.Location = file.Sequencer.Cursor
		w.Sequencer.AspectRatio = file.Sequencer.Aspect
		if file.Sequencer.DisplayMode != "" {
			mode, ok := ParseSeqDisplayMode(file.Sequencer.DisplayMode)
			if !ok {
				return nil, fmt.Errorf("sequencer view: invalid display mode %q", file.Sequencer.DisplayMode)
			}
			w.Sequencer.DisplayMode = mode
		}
	}

	if file.View3D != nil {
		scene, err := w.lookup(file.View3D.Scene)
		if err != nil {
			return nil, fmt.Errorf("3d view: %w", err)
		}
		w.View3D = NewView3D(scene)
	}

	return w, nil
}

func (sf sceneFile) scene() (*Scene, error) {
	scene := NewScene(sf.Name)
	scene.Library = sf.Library

	if sf.ID != "" {
		id, err := uuid.Parse(sf.ID)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", sf.Name, err)
		}
		scene.ID = id
	}

	c := &scene.Cursor
	c.Location = sf.Cursor.Location
	if sf.Cursor.RotationMode != "" {
		mode, ok := cursor.ParseRotationMode(sf.Cursor.RotationMode)
		if !ok {
			return nil, fmt.Errorf("scene %q: invalid rotation mode %q", sf.Name, sf.Cursor.RotationMode)
		}
		c.RotationMode = mode
	}
	c.RotationEuler = sf.Cursor.RotationEuler
	if sf.Cursor.RotationAxis != nil {
		c.RotationAxis = *sf.Cursor.RotationAxis
	}
	c.RotationAngle = sf.Cursor.RotationAngle
	if q := sf.Cursor.RotationQuaternion; q != nil {
		c.RotationQuaternion = mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}
	}

	return scene, nil
}

// Scene returns the scene with the given name.
func (w *Workspace) Scene(name string) (*Scene, bool) {
	for _, s := range w.Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func (w *Workspace) lookup(name string) (*Scene, error) {
	if s, ok := w.Scene(name); ok {
		return s, nil
	}
	if name == "" && len(w.Scenes) == 1 {
		return w.Scenes[0], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Context returns the editor of the given kind name ("image", "sequencer", "view3d").
func (w *Workspace) Context(kind string) (Context, error) {
	switch kind {
	case KIND_IMAGE.String():
		if w.Image != nil {
			return w.Image, nil
		}
	case KIND_SEQUENCER.String():
		if w.Sequencer != nil {
			return w.Sequencer, nil
		}
	case KIND_VIEW3D.String():
		if w.View3D != nil {
			return w.View3D, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContext, kind)
}
