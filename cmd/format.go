package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jfmyers9/spotctl/internal/config"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// trackView is the data available to the output_format template.
type trackView struct {
	ID       string
	Name     string
	Artist   string
	Album    string
	URI      string
	Duration string
	AddedAt  string
}

func newTrackView(t spotify.Track, addedAt string) trackView {
	v := trackView{
		ID:       t.ID,
		Name:     t.Name,
		Artist:   joinArtists(t.Artists),
		URI:      t.URI,
		Duration: formatDuration(t.DurationMS),
		AddedAt:  addedAt,
	}
	if t.Album != nil {
		v.Album = t.Album.Name
	}
	return v
}

// trackPrinter renders tracks one per line with a template and an optional
// fixed width.
type trackPrinter struct {
	out   io.Writer
	tmpl  *template.Template
	width int
}

func newTrackPrinter(out io.Writer, format string, width int) (*trackPrinter, error) {
	tmpl, err := template.New("output").Parse(format)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &trackPrinter{out: out, tmpl: tmpl, width: width}, nil
}

// printerFor builds the track printer of a command from the config and the
// --format flag.
func printerFor(cmd *cobra.Command, cfg *config.Config) (*trackPrinter, error) {
	format := cfg.OutputFormat
	if formatFlag != "" {
		format = formatFlag
	}
	return newTrackPrinter(cmd.OutOrStdout(), format, cfg.OutputWidth)
}

func (p *trackPrinter) print(v trackView) error {
	line, err := formatTrack(p.tmpl, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, fitWidth(line, p.width))
	return err
}

func (p *trackPrinter) printTracks(tracks []spotify.Track) error {
	for _, t := range tracks {
		if err := p.print(newTrackView(t, "")); err != nil {
			return err
		}
	}
	return nil
}

// formatTrack applies the template to the track data
func formatTrack(tmpl *template.Template, v trackView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// fitWidth truncates text with an ellipsis and right-pads it so it fills
// exactly width display columns. A width <= 0 leaves text unchanged.
func fitWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	const ellipsis = "..."
	if width <= len(ellipsis) && runewidth.StringWidth(text) > width {
		return ellipsis[:width]
	}
	// Truncate may stop a column short before a wide rune; FillRight evens it out
	return runewidth.FillRight(runewidth.Truncate(text, width, ellipsis), width)
}

func joinArtists(artists []spotify.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int) string {
	if ms <= 0 {
		return ""
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
