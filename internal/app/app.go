package app

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/acqua/internal/config"
	"github.com/Faultbox/acqua/internal/engine/camera"
	"github.com/Faultbox/acqua/internal/engine/component"
	"github.com/Faultbox/acqua/internal/engine/debug"
	"github.com/Faultbox/acqua/internal/engine/input"
	"github.com/Faultbox/acqua/internal/engine/ocean"
	"github.com/Faultbox/acqua/internal/engine/renderer"
	"github.com/Faultbox/acqua/internal/engine/scene"
	"github.com/Faultbox/acqua/internal/engine/window"
	"github.com/Faultbox/acqua/internal/logger"
)

const title = "Acqua"

// maxFrameDelta caps dt after stalls such as window drags.
const maxFrameDelta = 0.1

// App is the interactive ocean demo.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	surface  *scene.OceanRenderer
	shots    *debug.ScreenshotCapture

	sim      *ocean.Simulator
	settings ocean.Settings // local copy edited by keys, pushed with ocean.Apply

	running  bool
	paused   bool
	speed    float32
	dragging bool
}

// New opens the window and builds the simulator through the component
// registry. cfgPath is the file reloaded by F5 and may be empty.
func New(cfg *config.Config, cfgPath string) (*App, error) {
	a := &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		log:     logger.Named("app"),
		speed:   1,
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetWireframe(cfg.Window.Wireframe)

	reg := component.NewRegistry()
	if err := RegisterComponents(reg); err != nil {
		a.Close()
		return nil, err
	}

	relay := &sinkRelay{}
	comp, err := reg.Create(OceanComponent, component.Env{
		Log:  a.log,
		Args: map[string]any{ArgConfig: cfg, ArgSink: relay},
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.sim = comp.(*ocean.Simulator)
	a.settings = a.sim.Settings()

	a.surface, err = scene.NewOceanRenderer(a.sim.Mesh())
	if err != nil {
		a.Close()
		return nil, err
	}
	relay.target = a.surface

	a.camera = camera.NewOrbitCamera()
	a.camera.SetViewport(width, height)
	minX, minZ, maxX, maxZ := a.sim.Mesh().Bounds()
	a.camera.FitToBounds(mgl32.Vec3{minX, 0, minZ}, mgl32.Vec3{maxX, 0, maxZ})

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture("screenshots", "acqua")

	a.log.Info("demo initialized", zap.Strings("components", reg.Names()))
	return a, nil
}

// Run starts the main loop and blocks until the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(min(now.Sub(lastTime).Seconds(), maxFrameDelta))
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleEvents()
		a.handleHeldKeys()

		if a.paused {
			a.sim.Tick(0)
		} else {
			a.sim.Tick(dt * a.speed)
		}

		a.renderer.Begin()
		a.surface.Render(a.camera.ViewProjection(), a.camera.Position())
		a.renderer.End()

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Window.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d fps, tick %s", title, frameCount, a.sim.LastTickDuration().Round(10*time.Microsecond)))
			}
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("tick", a.sim.LastTickDuration()),
				zap.Float64("t", a.sim.Time()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.camera.SetViewport(w, h)
		case input.EventMouseDown:
			if ev.Button == sdl.BUTTON_LEFT {
				a.dragging = true
			}
		case input.EventMouseUp:
			if ev.Button == sdl.BUTTON_LEFT {
				a.dragging = false
			}
		case input.EventMouseMove:
			if a.dragging {
				a.camera.HandleDrag(float32(ev.DX), float32(ev.DY))
			}
		case input.EventMouseWheel:
			a.camera.HandleZoom(ev.Wheel)
		case input.EventKeyDown:
			// Only settings edits auto-repeat
			if _, edit := settingEdits[ev.Key]; ev.Repeat && !edit {
				continue
			}
			a.handleKey(ev.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	if edit, ok := settingEdits[key]; ok {
		a.applySettings(edit(a.settings))
		return
	}

	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_SPACE:
		a.paused = !a.paused
		a.log.Info("pause toggled", zap.Bool("paused", a.paused))
	case sdl.SCANCODE_R:
		seed := uint64(time.Now().UnixNano())
		if err := a.sim.Reseed(seed, a.settings); err != nil {
			a.log.Warn("reseed failed", zap.Error(err))
		}
	case sdl.SCANCODE_F:
		a.renderer.SetWireframe(!a.renderer.Wireframe())
	case sdl.SCANCODE_EQUALS:
		a.speed = stepTimeScale(a.speed, 1)
		a.log.Info("time scale", zap.Float32("speed", a.speed))
	case sdl.SCANCODE_MINUS:
		a.speed = stepTimeScale(a.speed, -1)
		a.log.Info("time scale", zap.Float32("speed", a.speed))
	case sdl.SCANCODE_F5:
		a.reloadConfig()
	case sdl.SCANCODE_F6:
		a.saveConfig()
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
}

func (a *App) handleHeldKeys() {
	var forward, right, up float32
	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		a.camera.HandleMovement(forward, right, up)
	}
}

// applySettings pushes s into the simulator; invalid edits are dropped.
func (a *App) applySettings(s ocean.Settings) {
	if err := ocean.Apply(a.sim, s); err != nil {
		a.log.Warn("settings rejected", zap.Error(err))
		return
	}
	a.settings = s
}

func (a *App) reloadConfig() {
	if a.cfgPath == "" {
		a.log.Warn("no config file to reload")
		return
	}
	cfg, err := config.LoadFile(a.cfgPath)
	if err != nil {
		a.log.Warn("config reload failed", zap.Error(err))
		return
	}
	a.applySettings(cfg.Ocean.Settings())
	a.log.Info("ocean settings reloaded", zap.String("path", a.cfgPath))
}

func (a *App) saveConfig() {
	a.cfg.Ocean = config.OceanFromSettings(a.settings)
	a.cfg.Simulation.Seed = a.sim.Seed()
	a.cfg.Window.Wireframe = a.renderer.Wireframe()

	path := a.cfgPath
	var err error
	if path != "" {
		err = a.cfg.SaveTo(path)
	} else {
		path, err = a.cfg.Save()
	}
	if err != nil {
		a.log.Warn("config save failed", zap.Error(err))
		return
	}
	a.log.Info("config saved", zap.String("path", path))
}

// screenshot reads back the current color buffer.
func (a *App) screenshot() {
	w, h := a.window.DrawableSize()
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (a *App) Close() {
	a.log.Info("closing demo")

	if a.surface != nil {
		a.surface.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
