// Package scene renders the phone mockup: gradient backdrop, phone body
// and the screen with its material.
package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/engine/lighting"
	"github.com/Faultbox/mgen/internal/engine/material"
	"github.com/Faultbox/mgen/internal/engine/scene/shaders"
	"github.com/Faultbox/mgen/internal/engine/shader"
	"github.com/Faultbox/mgen/internal/engine/texture"
	"github.com/Faultbox/mgen/internal/mesh"
	"github.com/Faultbox/mgen/pkg/math"
)

// Surface colours in linear RGB.
var (
	bodyColor   = [3]float32{0.05, 0.05, 0.06}
	screenColor = [3]float32{1, 1, 1}
	glassColor  = [3]float32{0.01, 0.01, 0.012}
)

// Config contains scene configuration options.
type Config struct {
	Region mesh.UVRegion
	Screen mesh.Screen
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Scene owns the GL resources of the mockup.
type Scene struct {
	config Config
	log    *zap.Logger

	background *shader.Program
	phone      *shader.Program

	bgVAO, bgVBO uint32
	body         gpuMesh
	screen       gpuMesh

	uploader    texture.Uploader
	gradientTex texture.Handle

	// Lights is the rig used for the phone body and screen.
	Lights lighting.Rig
	// ShowBackground draws the gradient; when false the clear colour is
	// transparent so exports keep alpha.
	ShowBackground bool
}

// New creates the scene. uploader is used for the background texture.
func New(cfg Config, uploader texture.Uploader, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		config:         cfg,
		log:            log,
		uploader:       uploader,
		Lights:         lighting.DefaultRig(),
		ShowBackground: true,
	}

	var err error
	s.background, err = shader.New(shaders.BackgroundVertexShader, shaders.BackgroundFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("background shader: %w", err)
	}
	s.phone, err = shader.New(shaders.PhoneVertexShader, shaders.PhoneFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("phone shader: %w", err)
	}

	s.createBackgroundQuad()
	s.body = uploadMesh(BodyBox(cfg.Screen))
	s.screen = uploadMesh(ScreenQuad(cfg.Screen, cfg.Region))

	log.Info("scene created",
		zap.Float64("screen_w", cfg.Screen.Width),
		zap.Float64("screen_h", cfg.Screen.Height),
	)
	return s, nil
}

func (s *Scene) createBackgroundQuad() {
	gl.GenVertexArrays(1, &s.bgVAO)
	gl.BindVertexArray(s.bgVAO)

	gl.GenBuffers(1, &s.bgVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.bgVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(backgroundQuad)*4, gl.Ptr(backgroundQuad), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func uploadMesh(m Mesh) gpuMesh {
	var g gpuMesh
	vertices := m.Flatten()

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, VertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, VertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	g.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		*g = gpuMesh{}
	}
}

// SetGradient uploads a new background gradient, releasing the old one.
func (s *Scene) SetGradient(img *image.RGBA) error {
	tex, err := s.uploader.Upload(img, texture.BackgroundSampling())
	if err != nil {
		return fmt.Errorf("uploading gradient: %w", err)
	}
	if s.gradientTex != nil {
		s.gradientTex.Release()
	}
	s.gradientTex = tex
	return nil
}

// Render draws one frame into the bound framebuffer. The caller sets the
// viewport.
func (s *Scene) Render(viewProj math.Mat4, scr material.Screen) {
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if s.ShowBackground && s.gradientTex != nil {
		gl.Disable(gl.DEPTH_TEST)
		s.background.Use()
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, s.gradientTex.ID())
		gl.Uniform1i(s.background.Uniform("uGradient"), 0)
		gl.BindVertexArray(s.bgVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(backgroundQuad)/4))
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	s.phone.Use()
	model := math.Identity()
	gl.UniformMatrix4fv(s.phone.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(s.phone.Uniform("uModel"), 1, false, model.Ptr())
	s.setLights()

	// Body: plain dark finish, no maps.
	s.setSurface(bodyColor, nil, material.Black, 0, nil)
	s.body.draw()

	// Screen: glass when dark, the atlas when lit.
	if scr.Lit() {
		s.setSurface(screenColor, scr.Map, scr.Emissive, scr.EmissiveIntensity, scr.EmissiveMap)
	} else {
		s.setSurface(glassColor, nil, scr.Emissive, scr.EmissiveIntensity, nil)
	}
	s.screen.draw()

	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
}

func (s *Scene) setLights() {
	r := s.Lights
	gl.Uniform3f(s.phone.Uniform("uAmbient"),
		r.AmbientColor[0]*r.AmbientIntensity,
		r.AmbientColor[1]*r.AmbientIntensity,
		r.AmbientColor[2]*r.AmbientIntensity)
	dirs, colors, n := r.Uniforms()
	gl.Uniform1i(s.phone.Uniform("uLightCount"), n)
	gl.Uniform3fv(s.phone.Uniform("uLightDir"), lighting.MaxDirectional, &dirs[0])
	gl.Uniform3fv(s.phone.Uniform("uLightColor"), lighting.MaxDirectional, &colors[0])
}

func (s *Scene) setSurface(base [3]float32, albedo texture.Handle, emissive material.Color, intensity float32, emissiveMap texture.Handle) {
	p := s.phone
	gl.Uniform3f(p.Uniform("uBaseColor"), base[0], base[1], base[2])
	gl.Uniform3f(p.Uniform("uEmissive"), emissive.R, emissive.G, emissive.B)
	gl.Uniform1f(p.Uniform("uEmissiveIntensity"), intensity)

	bindOptional(p, "uMap", "uUseMap", 0, albedo)
	bindOptional(p, "uEmissiveMap", "uUseEmissiveMap", 1, emissiveMap)
}

func bindOptional(p *shader.Program, sampler, flag string, unit uint32, tex texture.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.Uniform1i(p.Uniform(flag), 0)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, tex.ID())
		gl.Uniform1i(p.Uniform(flag), 1)
	}
	gl.Uniform1i(p.Uniform(sampler), int32(unit))
}

// Destroy releases all GL resources.
func (s *Scene) Destroy() {
	if s.background != nil {
		s.background.Delete()
	}
	if s.phone != nil {
		s.phone.Delete()
	}
	if s.bgVAO != 0 {
		gl.DeleteVertexArrays(1, &s.bgVAO)
		gl.DeleteBuffers(1, &s.bgVBO)
		s.bgVAO, s.bgVBO = 0, 0
	}
	s.body.destroy()
	s.screen.destroy()
	if s.gradientTex != nil {
		s.gradientTex.Release()
		s.gradientTex = nil
	}
}
