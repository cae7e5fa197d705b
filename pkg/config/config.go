// Package config resolves the renderer's command-line flags into a
// RenderConfig (spec §6 CLI). Grounded in the retrieved teacher's
// main.go flag.StringVar/flag.IntVar idiom, widened with custom
// flag.Value implementations for the multi-token flags (-CameraPosition
// x y z, -Resolution W H) this spec's flag grammar calls for.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/anvilrender/tracer/pkg/core"
)

// RenderConfig holds the resolved command-line configuration for one
// render invocation.
type RenderConfig struct {
	Skybox          string
	CameraPosition  core.Vec3
	CameraDirection core.Vec3
	// CameraPositionSet/CameraDirectionSet report whether the
	// corresponding flag was actually passed, so a caller can tell an
	// explicit override from the zero-value default (spec §6 CLI
	// flags layer over a scene file's own CAMERA.<name> pose).
	CameraPositionSet  bool
	CameraDirectionSet bool
	Scene              string
	OutputFile         string
	Width, Height      int
}

// vec3Flag collects "x y z" (space-separated, passed as the flag's
// single value) into a core.Vec3.
type vec3Flag struct {
	value *core.Vec3
	set   bool
}

func (f *vec3Flag) String() string {
	if f.value == nil {
		return ""
	}
	return fmt.Sprintf("%g %g %g", f.value.X, f.value.Y, f.value.Z)
}

func (f *vec3Flag) Set(s string) error {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return fmt.Errorf("expected 3 numbers \"x y z\", got %q", s)
	}
	var xyz [3]float64
	for i, tok := range fields {
		if _, err := fmt.Sscanf(tok, "%g", &xyz[i]); err != nil {
			return fmt.Errorf("invalid number %q: %w", tok, err)
		}
	}
	*f.value = core.NewVec3(xyz[0], xyz[1], xyz[2])
	f.set = true
	return nil
}

// resolutionFlag collects "W H" into a width/height pair.
type resolutionFlag struct {
	width, height *int
}

func (f *resolutionFlag) String() string {
	if f.width == nil {
		return ""
	}
	return fmt.Sprintf("%d %d", *f.width, *f.height)
}

func (f *resolutionFlag) Set(s string) error {
	var w, h int
	if _, err := fmt.Sscanf(s, "%d %d", &w, &h); err != nil {
		return fmt.Errorf("expected \"W H\", got %q: %w", s, err)
	}
	*f.width, *f.height = w, h
	return nil
}

// Parse parses args (normally os.Args[1:]) into a RenderConfig. Each
// multi-token flag's value must be passed as one shell argument, e.g.
// `-CameraPosition "0 1 -5"`. Unknown flags are reported and ignored
// (spec §6) rather than treated as fatal.
func Parse(args []string) (RenderConfig, error) {
	fs := flag.NewFlagSet("tracer", flag.ContinueOnError)

	cfg := RenderConfig{
		CameraDirection: core.NewVec3(0, 0, 1),
		OutputFile:      "render.jpg",
		Width:           800,
		Height:          600,
	}

	posFlag := &vec3Flag{value: &cfg.CameraPosition}
	dirFlag := &vec3Flag{value: &cfg.CameraDirection}
	fs.StringVar(&cfg.Skybox, "Skybox", "", "directory holding the 6 skybox face images (px/nx/py/ny/pz/nz)")
	fs.Var(posFlag, "CameraPosition", `camera position "x y z"`)
	fs.Var(dirFlag, "CameraDirection", `camera direction "x y z"`)
	fs.StringVar(&cfg.Scene, "Scene", "", "path to the scene file")
	fs.StringVar(&cfg.OutputFile, "OutputFile", cfg.OutputFile, "output JPEG path")
	fs.Var(&resolutionFlag{width: &cfg.Width, height: &cfg.Height}, "Resolution", `output resolution "W H"`)

	remaining, unknown := splitUnknownFlags(args, fs)
	for _, u := range unknown {
		fmt.Fprintf(fs.Output(), "config: ignoring unrecognised flag %q\n", u)
	}

	if err := fs.Parse(remaining); err != nil {
		return RenderConfig{}, fmt.Errorf("config: %w", err)
	}
	cfg.CameraPositionSet = posFlag.set
	cfg.CameraDirectionSet = dirFlag.set
	return cfg, nil
}

// splitUnknownFlags separates tokens naming flags not registered on fs
// from the rest, so flag.Parse doesn't abort on them. Every flag this
// package registers takes exactly one value, so a registered flag's
// following token is always consumed as its value (even if it looks
// like another flag, e.g. a negative vector component such as "-1 0 0"),
// and likewise for an unknown flag's value, keeping a later registered
// flag from being stranded behind an unconsumed positional token.
func splitUnknownFlags(args []string, fs *flag.FlagSet) (known []string, unknown []string) {
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			known = append(known, args[i])
			continue
		}
		name := strings.TrimLeft(args[i], "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
		isKnown := fs.Lookup(name) != nil
		dest := &unknown
		if isKnown {
			dest = &known
		}
		*dest = append(*dest, args[i])
		if i+1 < len(args) {
			i++
			*dest = append(*dest, args[i])
		}
	}
	return known, unknown
}
