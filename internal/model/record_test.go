package model

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatWinnerLine(t *testing.T) {
	t.Parallel()

	t.Run("with god", func(t *testing.T) {
		t.Parallel()

		rec := &BuildRecord{Species: "Mi", Background: "Be", God: "okawaru", Runes: 3, Version: "0.23"}
		got := FormatWinnerLine("http://crawl.example/morgue-abc.txt", rec)
		want := "http://crawl.example/morgue-abc.txt  MiBe^okawaru,3,0.23\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("godless run omits caret segment", func(t *testing.T) {
		t.Parallel()

		rec := &BuildRecord{Species: "Dg", Background: "Fi", Runes: 15, Version: "0.24"}
		got := FormatWinnerLine("http://crawl.example/morgue-dg.txt", rec)
		want := "http://crawl.example/morgue-dg.txt  DgFi,15,0.24\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("trims url whitespace", func(t *testing.T) {
		t.Parallel()

		rec := &BuildRecord{Species: "Op", Background: "EE", God: "vehumet", Runes: 4, Version: "0.22"}
		got := FormatWinnerLine(" http://crawl.example/morgue-op.txt\n", rec)
		if strings.Contains(strings.TrimSuffix(got, "\n"), "\n") {
			t.Errorf("embedded newline survived formatting: %q", got)
		}
	})
}

func TestParseWinnerLine(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		rec := &BuildRecord{Species: "Mi", Background: "Be", God: "okawaru", Runes: 3, Version: "0.23"}
		line := FormatWinnerLine("http://crawl.example/morgue-abc.txt", rec)

		entry, err := ParseWinnerLine(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.URL != "http://crawl.example/morgue-abc.txt" {
			t.Errorf("url = %q", entry.URL)
		}
		if entry.Record != *rec {
			t.Errorf("record = %+v, want %+v", entry.Record, *rec)
		}
	})

	t.Run("multi word god round trip", func(t *testing.T) {
		t.Parallel()

		rec := &BuildRecord{Species: "Fe", Background: "Su", God: "nemelex xobeh", Runes: 15, Version: "0.24"}
		line := FormatWinnerLine("http://crawl.example/morgue-cat.txt", rec)
		if line != "http://crawl.example/morgue-cat.txt  FeSu^nemelex xobeh,15,0.24\n" {
			t.Fatalf("line = %q", line)
		}

		entry, err := ParseWinnerLine(line)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Record != *rec {
			t.Errorf("record = %+v, want %+v", entry.Record, *rec)
		}
	})

	t.Run("godless line", func(t *testing.T) {
		t.Parallel()

		entry, err := ParseWinnerLine("http://crawl.example/m.txt  TrBe,5,0.25\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Record.God != "" {
			t.Errorf("god = %q, want empty", entry.Record.God)
		}
		if entry.Record.Species != "Tr" || entry.Record.Background != "Be" {
			t.Errorf("build = %s%s", entry.Record.Species, entry.Record.Background)
		}
	})

	t.Run("malformed lines", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"",
			"just-a-url",
			"url  too,few",
			"url  MiBeX,3,0.23",  // 5-char build code
			"url  MiBe,three,0.23", // non-numeric runes
			"url  MiBe,3,0.23 trailing junk",
		}
		for _, line := range lines {
			if _, err := ParseWinnerLine(line); !errors.Is(err, ErrMalformedLine) {
				t.Errorf("ParseWinnerLine(%q) = %v, want ErrMalformedLine", line, err)
			}
		}
	})
}

func TestBuildRecordVersionValue(t *testing.T) {
	t.Parallel()

	rec := BuildRecord{Version: "0.23"}
	v, err := rec.VersionValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0.23 {
		t.Errorf("got %v, want 0.23", v)
	}
}
