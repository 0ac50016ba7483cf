// Package ops backs up and restores the flat JSON state files the
// server keeps in its data dir.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StateFiles are the documents a data dir may contain. Backup and
// restore touch nothing else.
var StateFiles = []string{
	"habits.json",
	"user.json",
	"categories.json",
	"view.json",
}

func isStateFile(name string) bool {
	for _, f := range StateFiles {
		if name == f {
			return true
		}
	}
	return false
}

// BackupDataDir archives the state files present in srcDir into a
// tar.gz at archivePath. Missing files are skipped; a data dir with no
// state files at all is an error.
func BackupDataDir(srcDir, archivePath string) error {
	srcDir = filepath.Clean(strings.TrimSpace(srcDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if srcDir == "" || archivePath == "" {
		return fmt.Errorf("srcDir and archivePath are required")
	}
	info, err := os.Stat(srcDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", srcDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	tw := tar.NewWriter(gz)
	defer tw.Close()

	archived := 0
	for _, name := range StateFiles {
		path := filepath.Join(srcDir, name)
		fi, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		hdr := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(tw, src); err != nil {
			_ = src.Close()
			return err
		}
		if err := src.Close(); err != nil {
			return err
		}
		archived++
	}
	if archived == 0 {
		return fmt.Errorf("no state files found in %s", srcDir)
	}
	return nil
}

// RestoreDataDir unpacks an archive produced by BackupDataDir into
// targetDir, refusing any entry that is not a known state file.
func RestoreDataDir(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg {
			return fmt.Errorf("unexpected archive entry type for %s", hdr.Name)
		}
		if !isStateFile(hdr.Name) {
			return fmt.Errorf("unexpected archive entry: %s", hdr.Name)
		}

		outPath := filepath.Join(targetDir, hdr.Name)
		dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return err
		}
	}
	return nil
}
