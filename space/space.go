package space

import (
	"github.com/akmonengine/pivot/cursor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Kind identifies the editor a cursor-owning context belongs to.
type Kind uint8

const (
	KIND_IMAGE Kind = iota
	KIND_SEQUENCER
	KIND_VIEW3D
)

func (k Kind) String() string {
	switch k {
	case KIND_IMAGE:
		return "image"
	case KIND_SEQUENCER:
		return "sequencer"
	case KIND_VIEW3D:
		return "view3d"
	}
	return "unknown"
}

// Context is an editor that owns a cursor the transform engine can target.
type Context interface {
	Kind() Kind
	Scene() *Scene
}

// Scene owns the 3D cursor. A scene with a Library comes from another file
// and is read-only.
type Scene struct {
	ID      uuid.UUID
	Name    string
	Library string
	Cursor  cursor.Cursor3D
}

func NewScene(name string) *Scene {
	return &Scene{
		ID:     uuid.NewSHA1(sceneNamespace, []byte(name)),
		Name:   name,
		Cursor: cursor.NewCursor3D(),
	}
}

// IsLinked reports whether the scene is linked from a library.
func (s *Scene) IsLinked() bool {
	return s.Library != ""
}

var sceneNamespace = uuid.MustParse("6f1d3c9e-2b4a-4f5e-9a7c-0d8e1b2c3a4f")

// ImageView is the image/UV editor. Its cursor is kept in normalized units;
// the transform engine works in units scaled by the displayed image aspect.
type ImageView struct {
	Cursor      cursor.Cursor2D
	AspectRatio mgl64.Vec2

	scene *Scene
}

func NewImageView(scene *Scene) *ImageView {
	return &ImageView{AspectRatio: mgl64.Vec2{1, 1}, scene: scene}
}

func (v *ImageView) Kind() Kind    { return KIND_IMAGE }
func (v *ImageView) Scene() *Scene { return v.scene }

// Aspect returns the per-axis display aspect, defaulting unset axes to 1.
func (v *ImageView) Aspect() mgl64.Vec2 {
	return sanitizeAspect(v.AspectRatio)
}

// SeqDisplayMode is what the sequencer's main region shows.
type SeqDisplayMode uint8

const (
	SEQ_DRAW_SEQUENCE SeqDisplayMode = iota
	SEQ_DRAW_IMG_IMBUF
	SEQ_DRAW_IMG_WAVEFORM
	SEQ_DRAW_IMG_VECTORSCOPE
	SEQ_DRAW_IMG_HISTOGRAM
	SEQ_DRAW_PREVIEW
)

var seqDisplayModeNames = map[SeqDisplayMode]string{
	SEQ_DRAW_SEQUENCE:        "SEQUENCE",
	SEQ_DRAW_IMG_IMBUF:       "IMAGE_BUFFER",
	SEQ_DRAW_IMG_WAVEFORM:    "WAVEFORM",
	SEQ_DRAW_IMG_VECTORSCOPE: "VECTORSCOPE",
	SEQ_DRAW_IMG_HISTOGRAM:   "HISTOGRAM",
	SEQ_DRAW_PREVIEW:         "PREVIEW",
}

func (m SeqDisplayMode) String() string {
	if name, ok := seqDisplayModeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSeqDisplayMode maps a display mode name to its value.
func ParseSeqDisplayMode(name string) (SeqDisplayMode, bool) {
	for mode, n := range seqDisplayModeNames {
		if n == name {
			return mode, true
		}
	}
	return SEQ_DRAW_SEQUENCE, false
}

// SequencerView is the video sequencer preview. Its cursor only exists while
// the view displays the image buffer.
type SequencerView struct {
	Cursor      cursor.Cursor2D
	AspectRatio mgl64.Vec2
	DisplayMode SeqDisplayMode

	scene *Scene
}

func NewSequencerView(scene *Scene) *SequencerView {
	return &SequencerView{
		AspectRatio: mgl64.Vec2{1, 1},
		DisplayMode: SEQ_DRAW_IMG_IMBUF,
		scene:       scene,
	}
}

func (v *SequencerView) Kind() Kind    { return KIND_SEQUENCER }
func (v *SequencerView) Scene() *Scene { return v.scene }

func (v *SequencerView) Aspect() mgl64.Vec2 {
	return sanitizeAspect(v.AspectRatio)
}

// View3D is a 3D viewport. It has no cursor of its own: it edits the scene cursor.
type View3D struct {
	scene *Scene
}

func NewView3D(scene *Scene) *View3D {
	return &View3D{scene: scene}
}

func (v *View3D) Kind() Kind    { return KIND_VIEW3D }
func (v *View3D) Scene() *Scene { return v.scene }

func (v *View3D) Cursor() *cursor.Cursor3D {
	return &v.scene.Cursor
}

func sanitizeAspect(aspect mgl64.Vec2) mgl64.Vec2 {
	for i := range aspect {
		if aspect[i] == 0 {
			aspect[i] = 1
		}
	}
	return aspect
}
