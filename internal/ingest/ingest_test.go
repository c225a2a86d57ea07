package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFileCSV(t *testing.T) {
	t.Run("parses guests with categories", func(t *testing.T) {
		csv := "Proper Names,Category\nAmy,Family\nBo,Friends\nCy,Family\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if len(guests) != 3 {
			t.Fatalf("expected 3 guests, got %d", len(guests))
		}
		if guests[0].ID != "guest-1-amy" || guests[1].ID != "guest-2-bo" || guests[2].ID != "guest-3-cy" {
			t.Errorf("unexpected ids: %s, %s, %s", guests[0].ID, guests[1].ID, guests[2].ID)
		}
		if guests[0].Group() != "Family" || guests[1].Group() != "Friends" {
			t.Errorf("unexpected categories: %q, %q", guests[0].Group(), guests[1].Group())
		}
	})

	t.Run("accepts Name as fallback header", func(t *testing.T) {
		csv := "Name,Category\nAmy Smith,Family\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if guests[0].Name != "Amy Smith" {
			t.Errorf("expected name Amy Smith, got %q", guests[0].Name)
		}
		if guests[0].ID != "guest-1-amy-smith" {
			t.Errorf("expected slugged id, got %q", guests[0].ID)
		}
	})

	t.Run("Proper Names wins over Name", func(t *testing.T) {
		csv := "Name,Proper Names,Category\nnickname,Amy,Family\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if guests[0].Name != "Amy" {
			t.Errorf("expected Proper Names column to win, got %q", guests[0].Name)
		}
	})

	t.Run("headers match case-insensitively", func(t *testing.T) {
		csv := "PROPER NAMES,category\nAmy,Family\n"
		if _, err := ParseFile("guests.csv", strings.NewReader(csv)); err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
	})

	t.Run("tolerates a UTF-8 BOM on the header row", func(t *testing.T) {
		csv := "\uFEFFProper Names,Category\nAmy,Family\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if len(guests) != 1 || guests[0].Name != "Amy" {
			t.Errorf("unexpected guests: %v", guests)
		}
	})

	t.Run("drops rows with blank names but keeps numbering dense", func(t *testing.T) {
		csv := "Proper Names,Category\nAmy,Family\n,Friends\n   ,Work\nBo,Friends\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if len(guests) != 2 {
			t.Fatalf("expected 2 guests, got %d", len(guests))
		}
		// Bo is the second retained row, so his index is 2, not 4.
		if guests[1].ID != "guest-2-bo" {
			t.Errorf("expected guest-2-bo, got %q", guests[1].ID)
		}
	})

	t.Run("blank category becomes nil group", func(t *testing.T) {
		csv := "Proper Names,Category\nAmy,\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if guests[0].GroupID != nil {
			t.Errorf("expected nil GroupID, got %q", *guests[0].GroupID)
		}
	})

	t.Run("short rows read missing cells as empty", func(t *testing.T) {
		csv := "Proper Names,Category\nAmy\n"
		guests, err := ParseFile("guests.csv", strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseFile failed: %v", err)
		}
		if guests[0].GroupID != nil {
			t.Errorf("expected nil GroupID for missing cell, got %q", *guests[0].GroupID)
		}
	})
}

func TestParseFileErrors(t *testing.T) {
	t.Run("rejects unknown extensions before reading", func(t *testing.T) {
		_, err := ParseFile("guests.pdf", strings.NewReader("anything"))
		var typeErr *InvalidFileTypeError
		if !errors.As(err, &typeErr) {
			t.Fatalf("expected InvalidFileTypeError, got %v", err)
		}
		if typeErr.Filename != "guests.pdf" {
			t.Errorf("expected filename in error, got %q", typeErr.Filename)
		}
	})

	t.Run("missing category column", func(t *testing.T) {
		csv := "Proper Names\nAmy\n"
		_, err := ParseFile("guests.csv", strings.NewReader(csv))
		var colErr *MissingColumnError
		if !errors.As(err, &colErr) {
			t.Fatalf("expected MissingColumnError, got %v", err)
		}
		if !strings.Contains(colErr.Error(), "Category") {
			t.Errorf("error should name the Category column: %q", colErr.Error())
		}
	})

	t.Run("missing both columns names both", func(t *testing.T) {
		csv := "Something Else\nAmy\n"
		_, err := ParseFile("guests.csv", strings.NewReader(csv))
		var colErr *MissingColumnError
		if !errors.As(err, &colErr) {
			t.Fatalf("expected MissingColumnError, got %v", err)
		}
		msg := colErr.Error()
		if !strings.Contains(msg, "Proper Names") || !strings.Contains(msg, "Category") {
			t.Errorf("error should name both columns: %q", msg)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseFile("guests.csv", strings.NewReader(""))
		var emptyErr *EmptyDatasetError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("expected EmptyDatasetError, got %v", err)
		}
	})

	t.Run("header only", func(t *testing.T) {
		_, err := ParseFile("guests.csv", strings.NewReader("Proper Names,Category\n"))
		var emptyErr *EmptyDatasetError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("expected EmptyDatasetError, got %v", err)
		}
	})

	t.Run("all names blank", func(t *testing.T) {
		csv := "Proper Names,Category\n,Family\n,Friends\n"
		_, err := ParseFile("guests.csv", strings.NewReader(csv))
		var emptyErr *EmptyDatasetError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("expected EmptyDatasetError, got %v", err)
		}
	})

	t.Run("xlsx extension with unreadable content", func(t *testing.T) {
		_, err := ParseFile("guests.xlsx", strings.NewReader("not a workbook"))
		var readErr *FileReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("expected FileReadError, got %v", err)
		}
	})
}

func TestSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Amy", "amy"},
		{"Amy Smith", "amy-smith"},
		{"  Amy   Smith  ", "amy-smith"},
		{"JOSÉ GARCÍA", "josé-garcía"},
	}
	for _, tc := range cases {
		if got := slug(tc.name); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
