package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sortviz/internal/sorting"
)

type ExportData struct {
	Run    RunRecord       `json:"run"`
	Steps  int             `json:"steps"`
	Frames []sorting.Frame `json:"frames"`
}

func ExportJSON(w io.Writer, rec RunRecord, frames []sorting.Frame) error {
	data := ExportData{
		Run:    rec,
		Steps:  len(frames),
		Frames: frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, rec RunRecord, frames []sorting.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, rec, frames)
}
