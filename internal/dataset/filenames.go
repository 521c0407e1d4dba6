package dataset

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const filenameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// FilenameGenerator hands out names of the form <root>.<index>.<ext> or
// <root>.<random>.<ext> inside a directory.
type FilenameGenerator struct {
	Directory    string
	Root         string
	Ext          string
	RandomLength int

	index   int
	current string
}

// NewFilenameGenerator creates a generator for dir with the default
// "data" root, "csv" extension and 12 random characters.
func NewFilenameGenerator(dir string) *FilenameGenerator {
	if dir == "" {
		dir = "."
	}
	g := &FilenameGenerator{
		Directory:    dir,
		Root:         "data",
		Ext:          "csv",
		RandomLength: 12,
	}
	g.index = g.findMaxIndex()
	return g
}

func (g *FilenameGenerator) pattern() string {
	return filepath.Join(g.Directory, g.Root+".*."+g.Ext)
}

// findMaxIndex returns the highest numeric index already present, or -1.
func (g *FilenameGenerator) findMaxIndex() int {
	matches, _ := filepath.Glob(g.pattern())
	maxIndex := -1
	for _, m := range matches {
		parts := strings.Split(filepath.Base(m), ".")
		if len(parts) < 3 {
			continue
		}
		idx, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil {
			continue
		}
		if idx > maxIndex {
			maxIndex = idx
		}
	}
	return maxIndex
}

// Next returns the next sequential filename
func (g *FilenameGenerator) Next() string {
	g.index++
	g.current = filepath.Join(g.Directory, fmt.Sprintf("%s.%d.%s", g.Root, g.index, g.Ext))
	return g.current
}

// Random returns a filename with a cryptographically random suffix
func (g *FilenameGenerator) Random() (string, error) {
	suffix, err := randomString(g.RandomLength)
	if err != nil {
		return "", err
	}
	g.current = filepath.Join(g.Directory, fmt.Sprintf("%s.%s.%s", g.Root, suffix, g.Ext))
	return g.current, nil
}

// Current returns the last generated filename
func (g *FilenameGenerator) Current() string {
	return g.current
}

// CurrentIndex returns the last sequential index handed out
func (g *FilenameGenerator) CurrentIndex() int {
	return g.index
}

// DeleteFiles removes every file matching the generator pattern and resets the index.
func (g *FilenameGenerator) DeleteFiles() error {
	matches, err := filepath.Glob(g.pattern())
	if err != nil {
		return err
	}
	var errs []error
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			errs = append(errs, err)
		}
	}
	g.index = -1
	return errors.Join(errs...)
}

// CopyLast copies the last generated file to dest.
func (g *FilenameGenerator) CopyLast(dest string) error {
	if g.current == "" {
		return errors.New("dataset: no files have been generated yet")
	}
	src, err := os.Open(g.current)
	if err != nil {
		return errors.Join(ErrMissingFile, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return errors.Join(ErrMissingFile, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func randomString(n int) (string, error) {
	limit := big.NewInt(int64(len(filenameAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		k, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(filenameAlphabet[k.Int64()])
	}
	return b.String(), nil
}
