package hooks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/logging"
)

// Installer writes generated hook scripts to the spry data directory
// as one batched filesystem pipeline.
type Installer struct {
	logger     zerolog.Logger
	filesystem synthfs.FileSystem
}

// NewInstaller returns an Installer against the real filesystem.
func NewInstaller() *Installer {
	return &Installer{
		logger:     logging.GetLogger("hooks.install"),
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// Install writes each script (name -> content) into hooksDir. The
// directory is created first; all writes run in a single pipeline so a
// validation failure leaves nothing half-written.
func (i *Installer) Install(hooksDir string, scripts map[string]string) error {
	if len(scripts) == 0 {
		return nil
	}
	defer logging.LogDuration(time.Now(), "install hook scripts")

	dirRel, err := filepath.Rel("/", hooksDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", hooksDir)
	}

	var synthOps []synthfs.Operation

	dirOp := operations.NewCreateDirectoryOperation(
		core.OperationID(fmt.Sprintf("create-dir-%s", hooksDir)), dirRel)
	dirOp.SetItem(&directoryItem{path: dirRel, mode: 0755})
	synthOps = append(synthOps, synthfs.NewOperationsPackageAdapter(dirOp))

	for name, content := range scripts {
		target := filepath.Join(hooksDir, name)
		relPath, err := filepath.Rel("/", target)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
		}

		fileOp := operations.NewCreateFileOperation(
			core.OperationID(fmt.Sprintf("write-file-%s", target)), relPath)
		fileOp.SetItem(&fileItem{path: relPath, content: []byte(content), mode: 0644})
		synthOps = append(synthOps, synthfs.NewOperationsPackageAdapter(fileOp))

		i.logger.Debug().Str("target", target).Int("bytes", len(content)).Msg("Queued hook script")
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range synthOps {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to build install pipeline")
		}
	}

	executor := synthfs.NewExecutor()
	result := executor.Run(context.Background(), pipeline, i.filesystem)
	if result.GetError() != nil {
		return errors.Wrap(result.GetError(), errors.ErrFileWrite, "failed to install hook scripts")
	}

	i.logger.Info().Int("scripts", len(scripts)).Str("dir", hooksDir).Msg("Installed hook scripts")
	return nil
}

// fileItem implements the item interface for file operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem implements the item interface for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
