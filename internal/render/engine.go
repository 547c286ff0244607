// Package render drives a small OpenGL viewer for brushkit's triangulated
// meshes — window/context setup, a free-fly camera, and a flat-shaded
// brush shader. None of internal/core imports this package, go-gl/gl or
// go-gl/glfw (spec.md §1); it exists purely to exercise the domain-stack
// wiring described in SPEC_FULL.md §11.
package render

import (
	"fmt"

	"brushkit/assets"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Engine is the demo's window/camera/shader/input state.
type Engine struct {
	window *glfw.Window
	width  int
	height int

	camera      *Camera
	brushShader *Shader
	input       *Input

	lastFrame float64
	deltaTime float32

	onUpdate func(dt float32)
	onRender func()
	onResize func(width, height int)
}

// Config contains engine configuration.
type Config struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
	VSync      bool
}

// DefaultConfig returns default engine configuration.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     720,
		Title:      "brushkit map viewer",
		Fullscreen: false,
		VSync:      true,
	}
}

// NewEngine creates a new rendering engine.
func NewEngine(config Config) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	var monitor *glfw.Monitor
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	window.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.6, 0.8, 1.0, 1.0)

	engine := &Engine{
		window: window,
		width:  config.Width,
		height: config.Height,
		camera: NewCamera(mgl32.Vec3{0, 0, 256}),
		input:  NewInput(),
	}

	window.SetFramebufferSizeCallback(engine.framebufferSizeCallback)
	window.SetKeyCallback(engine.keyCallback)
	window.SetCursorPosCallback(engine.cursorPosCallback)
	window.SetScrollCallback(engine.scrollCallback)

	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return engine, nil
}

// LoadShaders compiles the embedded brush shader.
func (e *Engine) LoadShaders() error {
	vSource, err := assets.ReadShader("brush.vert")
	if err != nil {
		return fmt.Errorf("failed to read vertex shader: %w", err)
	}
	fSource, err := assets.ReadShader("brush.frag")
	if err != nil {
		return fmt.Errorf("failed to read fragment shader: %w", err)
	}

	shader, err := NewShader(string(vSource), string(fSource))
	if err != nil {
		return fmt.Errorf("failed to create brush shader: %w", err)
	}
	e.brushShader = shader
	return nil
}

// Run starts the main render loop, calling onUpdate then onRender every
// frame until the window is closed.
func (e *Engine) Run(onUpdate func(dt float32), onRender func()) {
	e.onUpdate = onUpdate
	e.onRender = onRender
	e.lastFrame = glfw.GetTime()

	for !e.window.ShouldClose() {
		currentFrame := glfw.GetTime()
		e.deltaTime = float32(currentFrame - e.lastFrame)
		e.lastFrame = currentFrame
		if e.deltaTime > 0.1 {
			e.deltaTime = 0.1
		}

		glfw.PollEvents()
		e.ProcessInput()

		if e.onUpdate != nil {
			e.onUpdate(e.deltaTime)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		if e.onRender != nil {
			e.onRender()
		}

		e.window.SwapBuffers()
	}
}

// Cleanup releases resources.
func (e *Engine) Cleanup() {
	if e.brushShader != nil {
		e.brushShader.Delete()
	}
	glfw.Terminate()
}

// GetCamera returns the camera.
func (e *Engine) GetCamera() *Camera {
	return e.camera
}

// GetInput returns the input state.
func (e *Engine) GetInput() *Input {
	return e.input
}

// GetDeltaTime returns the current frame delta time.
func (e *Engine) GetDeltaTime() float32 {
	return e.deltaTime
}

// GetViewProjection returns the combined view-projection matrix.
func (e *Engine) GetViewProjection() mgl32.Mat4 {
	view := e.camera.GetViewMatrix()
	projection := mgl32.Perspective(
		mgl32.DegToRad(e.camera.FOV),
		float32(e.width)/float32(e.height),
		0.1, 10000.0,
	)
	return projection.Mul4(view)
}

// UseBrushShader activates the brush shader with the view/projection/sun
// uniforms, leaving uTextureColor for the caller to set per mesh (render's
// MeshSet draws one texture group at a time).
func (e *Engine) UseBrushShader() {
	if e.brushShader == nil {
		return
	}

	e.brushShader.Use()

	view := e.camera.GetViewMatrix()
	projection := mgl32.Perspective(
		mgl32.DegToRad(e.camera.FOV),
		float32(e.width)/float32(e.height),
		0.1, 10000.0,
	)

	e.brushShader.SetMat4("uView", view)
	e.brushShader.SetMat4("uProjection", projection)
	e.brushShader.SetVec3("uSunDirection", mgl32.Vec3{0.5, 0.8, 0.3}.Normalize())
}

// Shader returns the active brush shader, for setting per-mesh uniforms
// such as uTextureColor.
func (e *Engine) Shader() *Shader {
	return e.brushShader
}

// Callbacks

func (e *Engine) framebufferSizeCallback(w *glfw.Window, width, height int) {
	e.width = width
	e.height = height
	gl.Viewport(0, 0, int32(width), int32(height))

	if e.onResize != nil {
		e.onResize(width, height)
	}
}

func (e *Engine) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		e.window.SetShouldClose(true)
	}
	e.input.HandleKey(key, action)
}

func (e *Engine) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	e.input.HandleMouseMove(xpos, ypos)
}

func (e *Engine) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	e.input.HandleScroll(xoff, yoff)
}

// SetCursorMode sets the cursor mode (normal for menus, disabled for a
// captured free-fly look).
func (e *Engine) SetCursorMode(disabled bool) {
	if disabled {
		e.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		e.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

// CloseWindow closes the viewer window.
func (e *Engine) CloseWindow() {
	e.window.SetShouldClose(true)
}

// ProcessInput applies WASD free-fly movement and mouse-look to the camera.
func (e *Engine) ProcessInput() {
	moveDir := mgl32.Vec3{0, 0, 0}

	if e.input.IsKeyPressed(glfw.KeyW) {
		moveDir = moveDir.Add(e.camera.Front)
	}
	if e.input.IsKeyPressed(glfw.KeyS) {
		moveDir = moveDir.Sub(e.camera.Front)
	}
	if e.input.IsKeyPressed(glfw.KeyA) {
		moveDir = moveDir.Sub(e.camera.Right)
	}
	if e.input.IsKeyPressed(glfw.KeyD) {
		moveDir = moveDir.Add(e.camera.Right)
	}

	if moveDir.Len() > 0 {
		moveDir = moveDir.Normalize()
	}

	speed := float32(50.0)
	if e.input.IsKeyPressed(glfw.KeyLeftShift) {
		speed *= 3
	}

	e.camera.Position = e.camera.Position.Add(moveDir.Mul(speed * e.deltaTime))

	dx, dy := e.input.GetMouseDelta()
	if dx != 0 || dy != 0 {
		e.camera.ProcessMouseMovement(float32(dx), float32(-dy))
	}

	if _, scrollY := e.input.GetScroll(); scrollY != 0 {
		e.camera.ProcessScroll(float32(scrollY))
	}
}
