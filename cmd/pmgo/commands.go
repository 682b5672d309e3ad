//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/obinnaokechukwu/pmgo"
	"github.com/obinnaokechukwu/pmgo/internal/bindings"
	"github.com/obinnaokechukwu/pmgo/internal/config"
	"github.com/obinnaokechukwu/pmgo/internal/egl"
)

// loadConfig reads the config file named by -config and points the library
// loader at libdir.
func loadConfig(v *viper.Viper, path string) (*config.Config, error) {
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if cfg.LibDir != "" {
		os.Setenv(bindings.LibDirEnv, cfg.LibDir)
	}
	return cfg, nil
}

func versionCmd(args []string) error {
	fs := flag.NewFlagSet("version", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	fs.Parse(args)

	if _, err := loadConfig(config.New(), *configPath); err != nil {
		return err
	}
	if err := pmgo.Init(); err != nil {
		return err
	}

	v, err := pmgo.VersionString()
	if err != nil {
		return err
	}
	vcs, err := pmgo.VCSVersionString()
	if err != nil {
		return err
	}
	fmt.Printf("libprojectM %s (%s)\n", v, vcs)
	fmt.Printf("core library: %s\n", libraryPath(bindings.CoreLibrary))
	if pmgo.HasPlaylist() {
		fmt.Printf("playlist library: %s\n", libraryPath(bindings.PlaylistLibrary))
	} else {
		fmt.Println("playlist library: not found")
	}
	return nil
}

// libraryPath reports where a loaded library was found; libraries resolved
// through the system loader have no path of their own.
func libraryPath(name string) string {
	path, err := bindings.FindLibrary(name, bindings.ABIVersions)
	if err != nil {
		return "(system loader)"
	}
	return path
}

func presetsCmd(args []string) error {
	fs := flag.NewFlagSet("presets", flag.ExitOnError)
	configPath := fs.String("config", "", "config file")
	byName := fs.Bool("name", false, "sort by file name instead of full path")
	fs.Parse(args)

	v := config.New()
	cfg, err := loadConfig(v, *configPath)
	if err != nil {
		return err
	}
	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = cfg.PresetDirs
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no preset directories given")
	}

	if err := pmgo.Init(); err != nil {
		return err
	}
	if !pmgo.HasPlaylist() {
		return pmgo.ErrPlaylistNotLoaded
	}

	glctx, err := egl.NewContext(64, 64)
	if err != nil {
		return fmt.Errorf("opengl context: %w", err)
	}
	defer glctx.Close()

	engine, err := pmgo.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	pl, err := pmgo.NewPlaylist(engine)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if _, err := pl.AddPath(dir, true); err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
	}

	n, err := pl.Len()
	if err != nil {
		return err
	}
	predicate := pmgo.SortFullPath
	if *byName {
		predicate = pmgo.SortFilenameOnly
	}
	if err := pl.Sort(0, n, predicate, pmgo.SortAscending); err != nil {
		return err
	}
	items, err := pl.Items(0, n)
	if err != nil {
		return err
	}
	for i, item := range items {
		fmt.Printf("%4d  %s\n", i, item)
	}
	return nil
}
