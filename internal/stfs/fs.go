package stfs

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// FS exposes the package's parsed file table as an io/fs.FS, so callers can
// use fs.WalkDir, fs.ReadFile and friends against package contents. File data
// is extracted lazily on first read.
func (c *Container) FS() (fs.FS, error) {
	table, err := c.FileTable()
	if err != nil {
		return nil, err
	}

	pfs := &packageFS{c: c, nodes: make([]packageNode, 0, len(table))}
	for i := range table {
		p, err := c.Path(i)
		if err != nil {
			return nil, err
		}
		pfs.nodes = append(pfs.nodes, packageNode{path: p, index: i, entry: table[i]})
	}
	sort.Slice(pfs.nodes, func(i, j int) bool {
		return pfs.nodes[i].path < pfs.nodes[j].path
	})
	return pfs, nil
}

type packageFS struct {
	c     *Container
	nodes []packageNode
}

type packageNode struct {
	path  string
	index int
	entry Entry
}

func (p *packageFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." {
		return &packageDir{fs: p, prefix: ""}, nil
	}

	idx := sort.Search(len(p.nodes), func(i int) bool {
		return p.nodes[i].path >= name
	})
	if idx < len(p.nodes) && p.nodes[idx].path == name {
		node := &p.nodes[idx]
		if node.entry.IsDirectory {
			return &packageDir{fs: p, prefix: name + "/", node: node}, nil
		}
		return &packageFile{fs: p, node: node}, nil
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// packageFile implements fs.File for file entries.
type packageFile struct {
	fs     *packageFS
	node   *packageNode
	reader *bytes.Reader
}

func (f *packageFile) initReader() error {
	if f.reader != nil {
		return nil
	}
	data, err := f.fs.c.Extract(f.node.entry)
	if err != nil {
		return &fs.PathError{Op: "read", Path: f.node.path, Err: err}
	}
	f.reader = bytes.NewReader(data)
	return nil
}

func (f *packageFile) Read(p []byte) (int, error) {
	if err := f.initReader(); err != nil {
		return 0, err
	}
	return f.reader.Read(p)
}

func (f *packageFile) Close() error {
	return nil
}

func (f *packageFile) Stat() (fs.FileInfo, error) {
	return packageFileInfo{f.node}, nil
}

// packageDir implements fs.ReadDirFile for directory entries. The root
// directory has an empty prefix and no backing file table entry.
type packageDir struct {
	fs     *packageFS
	prefix string
	node   *packageNode
	offset int
}

func (d *packageDir) Read(p []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name(), Err: fs.ErrInvalid}
}

func (d *packageDir) Close() error {
	return nil
}

func (d *packageDir) Stat() (fs.FileInfo, error) {
	return packageDirInfo{d}, nil
}

func (d *packageDir) name() string {
	if d.node == nil {
		return "."
	}
	return d.node.path
}

func (d *packageDir) ReadDir(n int) ([]fs.DirEntry, error) {
	var dirents []fs.DirEntry

	for d.offset < len(d.fs.nodes) {
		node := &d.fs.nodes[d.offset]
		if node.path < d.prefix {
			d.offset++
			continue
		}
		if len(d.prefix) > 0 && !strings.HasPrefix(node.path, d.prefix) {
			break
		}
		d.offset++

		// Only direct children; deeper paths are reached through their own
		// directory entries.
		rest := node.path[len(d.prefix):]
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}

		dirents = append(dirents, &packageDirEnt{fs: d.fs, node: node})
		if n > 0 && len(dirents) >= n {
			return dirents, nil
		}
	}

	if n > 0 {
		return dirents, io.EOF
	}
	return dirents, nil
}

// packageFileInfo implements fs.FileInfo for files.
type packageFileInfo struct {
	node *packageNode
}

func (fi packageFileInfo) Name() string       { return path.Base(fi.node.path) }
func (fi packageFileInfo) Size() int64        { return int64(fi.node.entry.Size) }
func (fi packageFileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi packageFileInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (fi packageFileInfo) IsDir() bool        { return false }
func (fi packageFileInfo) Sys() any           { return nil }

// packageDirInfo implements fs.FileInfo for directories.
type packageDirInfo struct {
	dir *packageDir
}

func (di packageDirInfo) Name() string       { return path.Base(di.dir.name()) }
func (di packageDirInfo) Size() int64        { return 0 }
func (di packageDirInfo) Mode() fs.FileMode  { return 0o444 | fs.ModeDir }
func (di packageDirInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (di packageDirInfo) IsDir() bool        { return true }
func (di packageDirInfo) Sys() any           { return nil }

// packageDirEnt implements fs.DirEntry.
type packageDirEnt struct {
	fs   *packageFS
	node *packageNode
}

func (de *packageDirEnt) Name() string {
	return path.Base(de.node.path)
}

func (de *packageDirEnt) IsDir() bool {
	return de.node.entry.IsDirectory
}

func (de *packageDirEnt) Type() fs.FileMode {
	if de.IsDir() {
		return fs.ModeDir
	}
	return 0
}

func (de *packageDirEnt) Info() (fs.FileInfo, error) {
	if de.IsDir() {
		return packageDirInfo{&packageDir{fs: de.fs, prefix: de.node.path + "/", node: de.node}}, nil
	}
	return packageFileInfo{de.node}, nil
}
