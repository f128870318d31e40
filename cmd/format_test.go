package cmd

import (
	"bytes"
	"testing"

	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/mattn/go-runewidth"
)

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle wide characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate wide characters",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 6 columns of text, 3 of ellipsis, 1 space
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "width below ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fitWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("fitWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			if tt.width > 0 {
				if resultWidth := runewidth.StringWidth(result); resultWidth != tt.width {
					t.Errorf("fitWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func TestTrackPrinter(t *testing.T) {
	track := spotify.Track{
		ID:         "t1",
		Name:       "Harder, Better, Faster, Stronger",
		Artists:    []spotify.Artist{{Name: "Daft Punk"}},
		Album:      &spotify.Album{Name: "Discovery"},
		DurationMS: 224000,
	}

	tests := []struct {
		name     string
		format   string
		width    int
		expected string
	}{
		{
			name:     "default format",
			format:   "{{.Artist}} - {{.Name}}",
			expected: "Daft Punk - Harder, Better, Faster, Stronger\n",
		},
		{
			name:     "album and duration",
			format:   "{{.Album}} [{{.Duration}}]",
			expected: "Discovery [3:44]\n",
		},
		{
			name:     "fixed width",
			format:   "{{.Name}}",
			width:    10,
			expected: "Harder,...\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer, err := newTrackPrinter(&buf, tt.format, tt.width)
			if err != nil {
				t.Fatalf("newTrackPrinter() error = %v", err)
			}
			if err := printer.printTracks([]spotify.Track{track}); err != nil {
				t.Fatalf("printTracks() error = %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestNewTrackPrinter_InvalidTemplate(t *testing.T) {
	if _, err := newTrackPrinter(&bytes.Buffer{}, "{{.Name", 0); err == nil {
		t.Error("expected an error for an unterminated template")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, ""},
		{59000, "0:59"},
		{61000, "1:01"},
		{3600000, "60:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.ms); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestTrackURIs(t *testing.T) {
	got := trackURIs([]string{"abc", "spotify:track:def", "spotify:episode:xyz"})
	want := []string{"spotify:track:abc", "spotify:track:def", "spotify:episode:xyz"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("trackURIs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
