// Package export packages a run's bound assets into one downloadable zip.
package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

// ErrExportFailed aborts the whole export: no partial archive is ever
// offered for download.
var ErrExportFailed = errors.New("export failed")

// AudioEntryName is the fixed archive name for the voice-over track.
const AudioEntryName = "voice-over.wav"

// Bundle zips the timeline's assets under fixed, order-derived names:
// voice-over.wav, then image_001.png, image_002.png, … in timeline order.
// Any asset with missing content fails the export entirely.
func Bundle(timeline *models.TimelineState) ([]byte, error) {
	if timeline == nil || timeline.Audio == nil {
		return nil, fmt.Errorf("%w: no bound run to export", ErrExportFailed)
	}
	if len(timeline.Audio.WAV) == 0 {
		return nil, fmt.Errorf("%w: audio track has no content", ErrExportFailed)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeEntry(zw, AudioEntryName, timeline.Audio.WAV); err != nil {
		return nil, err
	}

	for i, v := range timeline.Visuals {
		if len(v.Image) == 0 {
			return nil, fmt.Errorf("%w: visual %s has no content", ErrExportFailed, v.ID)
		}
		name := fmt.Sprintf("image_%03d.png", i+1)
		if err := writeEntry(zw, name, v.Image); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrExportFailed, name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrExportFailed, name, err)
	}
	return nil
}
