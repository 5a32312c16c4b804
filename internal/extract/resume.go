package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"learnpath/internal/taxonomy"
)

var ErrUnsupportedFormat = errors.New("unsupported resume format")

// ResumeSkills pulls the skill list out of an uploaded resume. Text is
// recovered per format, then matched against the skill taxonomy.
func ResumeSkills(mimeType string, content []byte) ([]string, error) {
	text, err := resumeText(mimeType, content)
	if err != nil {
		return nil, err
	}
	return taxonomy.ExtractSkills(text), nil
}

func resumeText(mimeType string, content []byte) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "application/pdf":
		return textRuns(content), nil
	case "application/msword":
		return textRuns(content), nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return docxText(content)
	}
	return "", ErrUnsupportedFormat
}

// textRuns recovers printable text from binary formats by collecting runs
// of printable bytes. Good enough for skill matching: skill names survive
// as contiguous runs in both PDF text operators and legacy Word streams.
func textRuns(content []byte) string {
	var b strings.Builder
	b.Grow(len(content) / 4)
	run := 0
	for _, c := range content {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
			run++
			continue
		}
		if run > 0 {
			b.WriteByte(' ')
			run = 0
		}
	}
	return b.String()
}

// docxText unzips the Word XML payload and strips markup from the main
// document part.
func docxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		raw, err := io.ReadAll(io.LimitReader(rc, 16<<20))
		rc.Close()
		if err != nil {
			return "", err
		}
		return stripTags(string(raw)), nil
	}
	return "", fmt.Errorf("docx missing document part")
}

func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
