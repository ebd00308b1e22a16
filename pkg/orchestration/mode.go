package orchestration

import (
	"github.com/spf13/afero"
)

// Mode is how output is split across streams.
type Mode string

const (
	// SingleStream renders every module into one stream: stdout or a file.
	SingleStream Mode = "single-stream"
	// PerModuleFile renders each module into <dir>/<module>.<ext>.
	PerModuleFile Mode = "per-module-file"
)

// DetectMode picks PerModuleFile when output names an existing directory.
func DetectMode(fs afero.Fs, output string) Mode {
	if output == "" {
		return SingleStream
	}
	if ok, _ := afero.IsDir(fs, output); ok {
		return PerModuleFile
	}
	return SingleStream
}
