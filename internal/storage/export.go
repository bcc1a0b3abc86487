package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Steps  int         `json:"steps"`
	Frames []Record    `json:"frames"`
}

// ExportJSON writes a run and its frames as one indented document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Steps: len(frames), Frames: frames})
}

// ExportCSV writes the frames of a run with a header row.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	return writeCSV(w, frames)
}

func writeCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(framesHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.Position, 'f', 6, 64),
			strconv.FormatFloat(r.Energy, 'f', 6, 64),
			strconv.FormatBool(r.Accepted),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
