package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pulsegridgo/internal/config"
	"github.com/vk/pulsegridgo/internal/ctxlog"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL pulse-program loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of one program file. A program may
// be split across files; device and cycle must each appear exactly once
// across the whole set.
type fileRoot struct {
	Device   *deviceBlock    `hcl:"device,block"`
	Cycle    *cycleBlock     `hcl:"cycle,block"`
	Channels []*channelBlock `hcl:"channel,block"`
}

type deviceBlock struct {
	Resolution   int64 `hcl:"resolution"`
	MinimumPulse int64 `hcl:"minimum_pulse"`
}

type cycleBlock struct {
	Length    int64          `hcl:"length"`
	Loops     hcl.Expression `hcl:"loops"`
	StopAfter bool           `hcl:"stop_after,optional"`
}

type channelBlock struct {
	Name   string   `hcl:"name,label"`
	Pin    int      `hcl:"pin"`
	Offset int64    `hcl:"offset,optional"`
	Body   hcl.Body `hcl:",remain"`
}

// Load reads a program from a single .hcl file or a directory of them.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findProgramFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered program files.", "count", len(files))

	evalCtx := evalContext()
	parser := hclparse.NewParser()
	model := &config.Model{}
	seen := make(map[string]string) // channel name -> file

	var haveDevice, haveCycle bool
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse program file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode program file %s: %w", file, diags)
		}

		if root.Device != nil {
			if haveDevice {
				return nil, fmt.Errorf("%s: duplicate device block", file)
			}
			haveDevice = true
			model.Device = config.Device{
				ResolutionNs:   root.Device.Resolution,
				MinimumPulseNs: root.Device.MinimumPulse,
			}
		}
		if root.Cycle != nil {
			if haveCycle {
				return nil, fmt.Errorf("%s: duplicate cycle block", file)
			}
			haveCycle = true
			loops, err := evalLoops(root.Cycle.Loops, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Cycle = config.Cycle{
				LengthNs:  root.Cycle.Length,
				Loops:     loops,
				StopAfter: root.Cycle.StopAfter,
			}
		}
		for _, chb := range root.Channels {
			if prev, dup := seen[chb.Name]; dup {
				return nil, fmt.Errorf("%s: channel %q already declared in %s", file, chb.Name, prev)
			}
			seen[chb.Name] = file
			ch, err := l.translateChannel(chb, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%s: channel %q: %w", file, chb.Name, err)
			}
			model.Channels = append(model.Channels, ch)
		}
	}

	if !haveDevice {
		return nil, fmt.Errorf("program has no device block")
	}
	if !haveCycle {
		return nil, fmt.Errorf("program has no cycle block")
	}
	logger.Debug("Program loaded.", "channels", len(model.Channels), "loops", model.Cycle.Loops)
	return model, nil
}

// findProgramFiles resolves a path to the sorted list of .hcl files it names.
func findProgramFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("program path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("program path %s: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".hcl" {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found under %s", path)
	}
	sort.Strings(files)
	return files, nil
}
