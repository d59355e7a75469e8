package render

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// WriteLessonFile renders m and writes it to path, replacing any existing
// file.
func WriteLessonFile(path string, m types.LessonMaterial) error {
	var buf bytes.Buffer
	if err := Lesson(&buf, m); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// WriteFeedbackFile renders the feedback document and writes it to path.
func WriteFeedbackFile(path string, answers types.AnswerSet, feedback string) error {
	var buf bytes.Buffer
	if err := Feedback(&buf, answers, feedback); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes())
}

// WriteSourceFile writes the raw lesson text to path so it can be reviewed
// in a later run.
func WriteSourceFile(path, source string) error {
	return writeFileAtomic(path, []byte(source))
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it, and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
