package phh

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/fileutil"
	"github.com/lox/holdem-engine/internal/game"
)

// Encode writes the hand to w as a PHH TOML document.
func Encode(w io.Writer, hand *Hand) error {
	if hand == nil {
		return fmt.Errorf("phh: hand is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes the hand and returns the document as bytes.
func EncodeToBytes(hand *Hand) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileWriter exports each hand to its own .phh file under a directory,
// creating the directory on first use.
type FileWriter struct {
	directory string
}

// NewFileWriter creates a file-based PHH exporter.
func NewFileWriter(directory string) *FileWriter {
	return &FileWriter{directory: directory}
}

// WriteHand converts a finished hand and writes it to hand_<id>.phh.
// The write goes through a temp file and rename, matching the text
// hand history writer.
func (w *FileWriter) WriteHand(hh *game.HandHistory) error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return fmt.Errorf("failed to create phh directory: %w", err)
	}
	data, err := EncodeToBytes(FromHandHistory(hh))
	if err != nil {
		return err
	}
	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%s.phh", hh.HandID))
	return fileutil.WriteFileAtomic(filename, data, 0o644)
}
