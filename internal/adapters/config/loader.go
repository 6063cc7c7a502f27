// Package config provides the project configuration loader for wasmbuild.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader by walking up to the nearest cargo
// manifest and reading the optional wasmbuild.yaml next to it.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a new Loader backed by the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader backed by the given filesystem.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Load resolves the project root from cwd and applies the config file, if any.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	root, found := l.findRoot(cwd)
	if !found {
		l.Logger.Warn(fmt.Sprintf("no %s found above %s, building in the current directory", domain.ManifestFileName, cwd))
	}

	project := &domain.Project{
		Root:      root,
		Toolchain: domain.DefaultToolchain(),
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, err := l.fs.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return project, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var cfg Configfile
	if err := l.readAndUnmarshalYAML(configPath, &cfg); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if cfg.Version != "" && cfg.Version != domain.ConfigVersion {
		return nil, zerr.With(domain.ErrUnsupportedConfigVersion, "version", cfg.Version)
	}

	project.ConfigPath = configPath
	project.Target = cfg.Target
	project.Toolchain = applyTools(project.Toolchain, cfg.Tools)

	return project, nil
}

// findRoot walks up from cwd to the first directory holding a cargo manifest.
func (l *Loader) findRoot(cwd string) (string, bool) {
	currentDir := cwd

	for {
		if _, err := l.fs.Stat(filepath.Join(currentDir, domain.ManifestFileName)); err == nil {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return cwd, false
		}
		currentDir = parentDir
	}
}

// readAndUnmarshalYAML reads a YAML file and strictly unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Configfile) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func applyTools(tc domain.Toolchain, tools ToolsDTO) domain.Toolchain {
	if tools.Compiler != "" {
		tc.Compiler = tools.Compiler
	}
	if tools.GC != "" {
		tc.GC = tools.GC
	}
	if tools.Disassembler != "" {
		tc.Disassembler = tools.Disassembler
	}
	return tc
}
