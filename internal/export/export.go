// Package export renders stored runs into interchange formats: an SVG
// of a single snapshot and CSV/JSON dumps of a sampled state series.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/storage"
)

// SnapshotSVG draws every body of a snapshot as a circle, scaled by
// the given factor.
func SnapshotSVG(snap gas.Snapshot, w gas.World, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := w.Width * scale
	height := w.Height * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#323232"/>
<g fill="#c8c8c8">
`, width, height, width, height))

	for _, p := range snap.Pos {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n",
			p.X*scale, p.Y*scale, w.Radius*scale))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WriteCSV streams a state series as one row per sample.
func WriteCSV(out io.Writer, times []float64, snaps []gas.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	n := len(snaps[0].Pos)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("px%d", i), fmt.Sprintf("py%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, snap := range snaps {
		row := make([]string, 0, 1+4*n)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for b := 0; b < n; b++ {
			row = append(row,
				strconv.FormatFloat(snap.Pos[b].X, 'f', 6, 64),
				strconv.FormatFloat(snap.Pos[b].Y, 'f', 6, 64),
				strconv.FormatFloat(snap.Vel[b].X, 'f', 6, 64),
				strconv.FormatFloat(snap.Vel[b].Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type jsonBody struct {
	PX float64 `json:"px"`
	PY float64 `json:"py"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type jsonSample struct {
	Time   float64    `json:"time"`
	Bodies []jsonBody `json:"bodies"`
}

type jsonRun struct {
	Meta    storage.RunMetadata `json:"meta"`
	Samples []jsonSample        `json:"samples"`
}

// WriteJSON dumps run metadata plus the full state series.
func WriteJSON(out io.Writer, meta storage.RunMetadata, times []float64, snaps []gas.Snapshot) error {
	run := jsonRun{Meta: meta, Samples: make([]jsonSample, 0, len(snaps))}
	for i, snap := range snaps {
		sample := jsonSample{Time: times[i], Bodies: make([]jsonBody, len(snap.Pos))}
		for b := range snap.Pos {
			sample.Bodies[b] = jsonBody{
				PX: snap.Pos[b].X, PY: snap.Pos[b].Y,
				VX: snap.Vel[b].X, VY: snap.Vel[b].Y,
			}
		}
		run.Samples = append(run.Samples, sample)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
