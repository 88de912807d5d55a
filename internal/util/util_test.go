package util

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes under kilobyte", bytes: 512, expected: "512 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5 KB"},
		{name: "megabyte", bytes: 1024 * 1024, expected: "1.0 MB"},
		{name: "gigabyte", bytes: 5 * 1024 * 1024 * 1024, expected: "5.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatBytes(tt.bytes); got != tt.expected {
				t.Fatalf("FormatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "plain name", filename: "kota.jpg", expected: "kota.jpg"},
		{name: "spaces and symbols", filename: "my photo (1).png", expected: "my_photo__1_.png"},
		{name: "unix path", filename: "../../etc/passwd", expected: "passwd"},
		{name: "windows path", filename: `C:\Users\me\menu.webp`, expected: "menu.webp"},
		{name: "empty", filename: "", expected: "file"},
		{name: "parent only", filename: "..", expected: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeFilename(tt.filename); got != tt.expected {
				t.Fatalf("SanitizeFilename(%q) = %s, want %s", tt.filename, got, tt.expected)
			}
		})
	}
}
