package generator

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/calumari/javagen/javapoet"
)

// renderedFile is a fully rendered compilation unit waiting to be written.
type renderedFile struct {
	path string // slash-separated, relative to the output directory
	data []byte
}

func render(f javapoet.JavaFile) (renderedFile, error) {
	data, err := f.Bytes()
	if err != nil {
		return renderedFile{}, err
	}
	return renderedFile{path: f.Path(), data: data}, nil
}

func (g *generator) write(files []renderedFile) error {
	if toStdout(g.cfg.Output) {
		for i, f := range files {
			if i > 0 {
				if _, err := g.stdout.Write([]byte("\n")); err != nil {
					return errors.Wrap(err, "write stdout")
				}
			}
			if _, err := g.stdout.Write(f.data); err != nil {
				return errors.Wrap(err, "write stdout")
			}
			g.log.Debug("wrote file", zap.String("path", f.path), zap.String("output", "stdout"))
		}
		return nil
	}

	for _, f := range files {
		outPath := filepath.Join(g.cfg.Output, filepath.FromSlash(f.path))
		if existing, err := os.ReadFile(outPath); err == nil && bytes.Equal(existing, f.data) {
			g.log.Debug("file unchanged", zap.String("path", outPath))
			continue
		}
		if err := writeFileAtomic(outPath, f.data); err != nil {
			return err
		}
		g.log.Info("wrote file", zap.String("path", outPath), zap.Int("bytes", len(f.data)))
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".javagen-*")
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
