package graphics

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"township/internal/profiling"
)

// quadVertices is a full-screen triangle strip: x, y, u, v.
// Image rows run top-down, so v=0 sits at the top edge.
var quadVertices = []float32{
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

// Presenter shows a CPU-rendered frame in the window by uploading it into
// a texture and drawing one textured quad.
type Presenter struct {
	shader  *Shader
	vao     uint32
	vbo     uint32
	texture uint32

	frameW, frameH int
	viewW, viewH   int
}

// NewPresenter allocates GL resources for frames of w x h pixels.
// A GL context must be current.
func NewPresenter(w, h int) (*Presenter, error) {
	shader, err := NewShader(quadVertexSource, quadFragmentSource)
	if err != nil {
		return nil, err
	}

	p := &Presenter{shader: shader, frameW: w, frameH: h, viewW: w, viewH: h}

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	p.texture = newTexture(w, h)
	return p, nil
}

// SetViewport records the framebuffer size used to letterbox the frame.
func (p *Presenter) SetViewport(w, h int) {
	p.viewW, p.viewH = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// transform scales the quad so the frame keeps its aspect ratio.
func (p *Presenter) transform() mgl32.Mat4 {
	if p.viewW == 0 || p.viewH == 0 {
		return mgl32.Ident4()
	}
	frame := float32(p.frameW) / float32(p.frameH)
	view := float32(p.viewW) / float32(p.viewH)
	if view > frame {
		return mgl32.Scale3D(frame/view, 1, 1)
	}
	return mgl32.Scale3D(1, view/frame, 1)
}

// Present uploads frame and draws it. frame must be the size given to
// NewPresenter.
func (p *Presenter) Present(frame *image.RGBA) {
	defer profiling.Track("graphics.Present")()

	uploadTexture(p.texture, frame)

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.shader.Use()
	p.shader.SetMatrix4("transform", p.transform())
	p.shader.SetInt("frame", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Dispose releases GL resources.
func (p *Presenter) Dispose() {
	gl.DeleteTextures(1, &p.texture)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	p.shader.Delete()
}
