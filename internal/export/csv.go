package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/asnowfix/ha-shelly-export/pkg/shellydev"
	"github.com/go-logr/logr"
)

// ErrNothingToExport is returned when the filtered device list is empty:
// no file is created in that case.
var ErrNothingToExport = errors.New("no Shelly device entities to export")

// DefaultPath synthesizes the timestamped filename used when the caller did
// not pick one, relative to the current working directory.
func DefaultPath(now time.Time) string {
	return fmt.Sprintf("shelly_devices_%s.csv", now.Format("20060102_150405"))
}

// ToCSV writes the device entries to a two-column CSV file (header "id,name",
// one row per device, input order) and returns the resolved path. The file
// appears atomically: on any failure the target path is left untouched.
func ToCSV(log logr.Logger, devices []shellydev.DeviceEntry, path string) (string, error) {
	if len(devices) == 0 {
		return "", ErrNothingToExport
	}

	if path == "" {
		path = DefaultPath(time.Now())
	}
	log.Info("Exporting devices", "count", len(devices), "path", path)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "name"})
	for _, device := range devices {
		_ = w.Write([]string{device.Id, device.Name})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to encode CSV: %w", err)
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if abs, err := verify(path); err != nil {
		log.Error(err, "File was written but cannot be found", "path", path)
	} else {
		log.Info("Exported devices", "count", len(devices), "path", abs)
	}
	return path, nil
}

func verify(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

// Write to a temp file in the target directory, then rename over the final
// path, so a failed write never leaves a partial file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Chmod(perm); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
