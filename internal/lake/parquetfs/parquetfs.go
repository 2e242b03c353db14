// Package parquetfs persists tables as snappy-compressed parquet files with
// an optional hive-style partition layout (col=value directories). Writes
// stage into a sibling directory and swap, so a destination is always either
// the previous table or the complete new one.
package parquetfs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"

	"github.com/soundlake/lakehouse/internal/lake"
)

const partFileName = "part-00000.parquet"

// Partition is one col=value component of a row's partition path.
type Partition struct {
	Column string
	Value  string
}

// PartitionFunc assigns a row to its partition directory. A nil PartitionFunc
// writes the whole table into a single file at the destination root.
type PartitionFunc[T any] func(row T) []Partition

// Write replaces the table at dir with rows. Partition directories are
// written in sorted order and each holds a single part file, so identical
// input always serializes to identical bytes.
func Write[T any](ctx context.Context, fsys afero.Fs, dir string, rows []T, partitionBy PartitionFunc[T]) error {
	staging := dir + ".tmp"
	if err := fsys.RemoveAll(staging); err != nil {
		return fmt.Errorf("%w: clear staging for %s: %v", lake.ErrStorage, dir, err)
	}

	groups := make(map[string][]T)
	for _, row := range rows {
		var key string
		if partitionBy != nil {
			key = partitionPath(partitionBy(row))
		}
		groups[key] = append(groups[key], row)
	}
	if len(groups) == 0 {
		// An empty table still writes a schema-carrying part file.
		groups[""] = nil
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := staging
		if key != "" {
			target = path.Join(staging, key)
		}
		if err := fsys.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", lake.ErrStorage, target, err)
		}
		if err := writePart(fsys, path.Join(target, partFileName), groups[key]); err != nil {
			return err
		}
	}

	if err := fsys.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", lake.ErrStorage, dir, err)
	}
	if err := fsys.Rename(staging, dir); err != nil {
		return fmt.Errorf("%w: commit %s: %v", lake.ErrStorage, dir, err)
	}
	return nil
}

// Read loads every part file under dir, in lexical order. The table must
// have been written first; a missing or empty directory is a storage error.
func Read[T any](ctx context.Context, fsys afero.Fs, dir string) ([]T, error) {
	var files []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(p, ".parquet") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan table %s: %v", lake.ErrStorage, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: table %s has no part files", lake.ErrStorage, dir)
	}
	sort.Strings(files)

	var rows []T
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := afero.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", lake.ErrStorage, name, err)
		}
		part, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", lake.ErrStorage, name, err)
		}
		rows = append(rows, part...)
	}
	return rows, nil
}

func writePart[T any](fsys afero.Fs, name string, rows []T) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", lake.ErrStorage, name, err)
	}
	if err := parquet.Write(f, rows, parquet.Compression(&parquet.Snappy)); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", lake.ErrStorage, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", lake.ErrStorage, name, err)
	}
	return nil
}

func partitionPath(parts []Partition) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		segs = append(segs, p.Column+"="+p.Value)
	}
	return path.Join(segs...)
}
