package main

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// PreviewWindow displays the progressively accumulating frame in an OpenGL
// window while the render runs on worker goroutines. GLFW requires the main
// OS thread, so Run must be called from the main goroutine; Update may be
// called from any goroutine.
type PreviewWindow struct {
	width  int
	height int

	mu       sync.Mutex
	pixels   []uint8
	dirty    bool
	done     int
	total    int
	finished bool
}

// NewPreviewWindow creates a preview surface for a width x height render
func NewPreviewWindow(width, height int) *PreviewWindow {
	return &PreviewWindow{
		width:  width,
		height: height,
		pixels: make([]uint8, width*height*4),
	}
}

// Update quantizes the running sample sum into the upload buffer. It has
// the Camera.Progress signature and is safe to install directly.
func (pw *PreviewWindow) Update(done, total int, frame []Color) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	for p, c := range frame {
		r, g, b := c.ToRGB8(done)
		pw.pixels[p*4+0] = r
		pw.pixels[p*4+1] = g
		pw.pixels[p*4+2] = b
		pw.pixels[p*4+3] = 255
	}
	pw.dirty = true
	pw.done = done
	pw.total = total
	pw.finished = done == total
}

const previewVertexShader = `#version 410 core
in vec2 position;
in vec2 texCoord;
out vec2 fragTexCoord;
void main() {
    fragTexCoord = texCoord;
    gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

const previewFragmentShader = `#version 410 core
in vec2 fragTexCoord;
out vec4 outColor;
uniform sampler2D frame;
void main() {
    outColor = texture(frame, fragTexCoord);
}
` + "\x00"

// Run opens the window and blits the latest frame until the user closes it.
// Closing the window before the render has finished invokes onClose so the
// caller can cancel outstanding work.
func (pw *PreviewWindow) Run(onClose func()) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(pw.width, pw.height, "Path Tracer Preview", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press && (key == glfw.KeyEscape || key == glfw.KeyQ) {
			w.SetShouldClose(true)
		}
	})

	program, err := pw.buildProgram()
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)
	gl.UseProgram(program)

	vao, vbo := pw.buildQuad(program)
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)

	var texture uint32
	gl.GenTextures(1, &texture)
	defer gl.DeleteTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(pw.width), int32(pw.height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.ClearColor(0, 0, 0, 1)

	for !window.ShouldClose() {
		glfw.PollEvents()

		pw.mu.Lock()
		if pw.dirty {
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(pw.width), int32(pw.height),
				gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pw.pixels))
			window.SetTitle(fmt.Sprintf("Path Tracer Preview (%d/%d samples)", pw.done, pw.total))
			pw.dirty = false
		}
		finished := pw.finished
		pw.mu.Unlock()

		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		window.SwapBuffers()

		if !finished {
			time.Sleep(16 * time.Millisecond)
		}
	}

	pw.mu.Lock()
	finished := pw.finished
	pw.mu.Unlock()
	if !finished && onClose != nil {
		onClose()
	}

	return nil
}

func (pw *PreviewWindow) buildProgram() (uint32, error) {
	vertexShader, err := compileShader(previewVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(previewFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

// buildQuad uploads a fullscreen triangle strip with flipped V so texture
// row 0 lands at the top of the window
func (pw *PreviewWindow) buildQuad(program uint32) (vao, vbo uint32) {
	quad := []float32{
		// position   texcoord
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	posAttrib := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointerWithOffset(posAttrib, 2, gl.FLOAT, false, 4*4, 0)

	texAttrib := uint32(gl.GetAttribLocation(program, gl.Str("texCoord\x00")))
	gl.EnableVertexAttribArray(texAttrib)
	gl.VertexAttribPointerWithOffset(texAttrib, 2, gl.FLOAT, false, 4*4, 2*4)

	return vao, vbo
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}
