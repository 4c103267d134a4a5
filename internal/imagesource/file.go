package imagesource

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

func loadFile(ctx context.Context, baseDir, ref string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return nil, err
	}
	defer root.Close()
	name := strings.TrimPrefix(ref, "file://")
	return root.ReadFile(strings.TrimPrefix(filepath.Clean("/"+name), "/"))
}

func loadFromFS(ctx context.Context, files fs.FS, ref string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	name := strings.TrimPrefix(ref, "file://")
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	return fs.ReadFile(files, name)
}
