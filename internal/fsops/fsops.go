// Package fsops implements the filesystem operations behind the terminal
// commands. Every operation resolves its argument against the current
// directory of an Environment and reports its outcome as a Result; nothing
// here writes to the terminal.
package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"syscall"

	"github.com/bkmeneguello/tedit/internal/env"
	"github.com/edsrzf/mmap-go"
)

// Op identifies the operation that produced a Result.
type Op int

const (
	OpChangeDirectory Op = iota
	OpOpenFile
	OpSaveFile
	OpRemoveFile
	OpMakeDirectory
	OpRemoveDirectory
	OpScanDirectory
)

// Kind classifies the outcome of an operation.
type Kind int

const (
	OK Kind = iota
	NotFound
	NotDirectory
	IsDirectory
	NotEmpty
	Exists
	Permission
	Failed
	Invalid
)

var successText = map[Op]string{
	OpChangeDirectory: "Directory changed",
	OpOpenFile:        "File opened",
	OpSaveFile:        "File saved",
	OpRemoveFile:      "File removed",
	OpMakeDirectory:   "Directory created",
	OpRemoveDirectory: "Directory removed",
	OpScanDirectory:   "Directory listed",
}

var failureText = map[Op]string{
	OpChangeDirectory: "Could not change directory",
	OpOpenFile:        "Could not open file",
	OpSaveFile:        "Could not save file",
	OpRemoveFile:      "Could not remove file",
	OpMakeDirectory:   "Could not create directory",
	OpRemoveDirectory: "Could not remove directory",
	OpScanDirectory:   "Could not read directory",
}

// Result is the outcome of a filesystem operation.
type Result struct {
	Op   Op
	Kind Kind
	Path string // Full normalized path the operation was attempted on
	Err  error  // Underlying error, nil on success
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Kind == OK
}

// Line renders the result as a single terminal line.
func (r Result) Line() string {
	switch r.Kind {
	case OK:
		return fmt.Sprintf("%s: %s", successText[r.Op], r.Path)
	case NotFound:
		switch r.Op {
		case OpOpenFile, OpRemoveFile:
			return "File not found: " + r.Path
		case OpSaveFile, OpMakeDirectory:
			return fmt.Sprintf("%s: %s", failureText[r.Op], r.Path)
		}
		return "Directory not found: " + r.Path
	case NotDirectory:
		return "Not a directory: " + r.Path
	case IsDirectory:
		return "Is a directory: " + r.Path
	case NotEmpty:
		return "Directory not empty: " + r.Path
	case Exists:
		return "Already exists: " + r.Path
	case Permission:
		return "Permission denied: " + r.Path
	case Invalid:
		if r.Op == OpSaveFile {
			return "No file is open"
		}
		return fmt.Sprintf("%s: %s", failureText[r.Op], r.Path)
	default:
		return fmt.Sprintf("%s: %s", failureText[r.Op], r.Path)
	}
}

// Entry is a single directory entry returned by ScanDirectory.
type Entry struct {
	Name  string
	IsDir bool
}

func ok(op Op, path string) Result {
	return Result{Op: op, Kind: OK, Path: path}
}

func fail(op Op, path string, err error) Result {
	return Result{Op: op, Kind: classify(err), Path: path, Err: err}
}

// classify maps an error from the os package to a Kind.
func classify(err error) Kind {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return Permission
	case errors.Is(err, fs.ErrExist):
		return Exists
	case errors.Is(err, syscall.ENOTDIR):
		return NotDirectory
	case errors.Is(err, syscall.EISDIR):
		return IsDirectory
	case errors.Is(err, syscall.ENOTEMPTY):
		return NotEmpty
	default:
		return Failed
	}
}

// ChangeDirectory moves the current directory to fragment.
func ChangeDirectory(e *env.Environment, fragment string) Result {
	path := e.Resolve(fragment)
	info, err := os.Stat(path)
	if err != nil {
		return fail(OpChangeDirectory, path, err)
	}
	if !info.IsDir() {
		return Result{Op: OpChangeDirectory, Kind: NotDirectory, Path: path}
	}
	e.Cwd = path
	return ok(OpChangeDirectory, path)
}

// OpenFile reads fragment and makes it the current file.
func OpenFile(e *env.Environment, fragment string) (string, Result) {
	path := e.Resolve(fragment)
	text, err := readFile(path)
	if err != nil {
		return "", fail(OpOpenFile, path, err)
	}
	e.Cwf = path
	return text, ok(OpOpenFile, path)
}

// readFile reads a regular file through a read-only memory mapping.
func readFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}
	if info.Size() == 0 {
		return "", nil // mmap rejects empty files
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return "", fmt.Errorf("error mapping file '%s': %w", path, err)
	}
	text := string(m)
	if err := m.Unmap(); err != nil {
		return "", fmt.Errorf("error unmapping file '%s': %w", path, err)
	}
	return text, nil
}

// SaveFile writes text to fragment and makes it the current file.
func SaveFile(e *env.Environment, fragment, text string) Result {
	path := e.Resolve(fragment)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fail(OpSaveFile, path, err)
	}
	e.Cwf = path
	return ok(OpSaveFile, path)
}

// SaveCurrent writes text to the current file.
func SaveCurrent(e *env.Environment, text string) Result {
	if !e.HasFile() {
		return Result{Op: OpSaveFile, Kind: Invalid}
	}
	if err := os.WriteFile(e.Cwf, []byte(text), 0644); err != nil {
		return fail(OpSaveFile, e.Cwf, err)
	}
	return ok(OpSaveFile, e.Cwf)
}

// RemoveFile deletes the regular file at fragment and clears the current file.
func RemoveFile(e *env.Environment, fragment string) Result {
	path := e.Resolve(fragment)
	info, err := os.Lstat(path)
	if err != nil {
		return fail(OpRemoveFile, path, err)
	}
	if info.IsDir() {
		return Result{Op: OpRemoveFile, Kind: IsDirectory, Path: path}
	}
	if err := os.Remove(path); err != nil {
		return fail(OpRemoveFile, path, err)
	}
	e.Cwf = ""
	return ok(OpRemoveFile, path)
}

// MakeDirectory creates the directory fragment. Parents must exist.
func MakeDirectory(e *env.Environment, fragment string) Result {
	path := e.Resolve(fragment)
	if err := os.Mkdir(path, 0755); err != nil {
		return fail(OpMakeDirectory, path, err)
	}
	return ok(OpMakeDirectory, path)
}

// RemoveDirectory removes the empty directory fragment.
func RemoveDirectory(e *env.Environment, fragment string) Result {
	path := e.Resolve(fragment)
	info, err := os.Lstat(path)
	if err != nil {
		return fail(OpRemoveDirectory, path, err)
	}
	if !info.IsDir() {
		return Result{Op: OpRemoveDirectory, Kind: NotDirectory, Path: path}
	}
	if err := os.Remove(path); err != nil {
		return fail(OpRemoveDirectory, path, err)
	}
	return ok(OpRemoveDirectory, path)
}

// ScanDirectory lists the current directory sorted by name. Each entry is
// classified with a stat so symlinks to directories list as directories.
func ScanDirectory(e *env.Environment) ([]Entry, Result) {
	dirEntries, err := os.ReadDir(e.Cwd)
	if err != nil {
		return nil, fail(OpScanDirectory, e.Cwd, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		isDir := de.IsDir()
		if info, err := os.Stat(e.Cwd + "/" + de.Name()); err == nil {
			isDir = info.IsDir()
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, ok(OpScanDirectory, e.Cwd)
}
