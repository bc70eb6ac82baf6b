package storage

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.docx", SanitizeFilename("report.docx"))
	assert.Equal(t, "отчёт ПР2.pdf", SanitizeFilename("отчёт ПР2.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "evil.sh", SanitizeFilename("..\\..\\evil.sh"))
	assert.Equal(t, "", SanitizeFilename(".."))
	assert.Equal(t, "", SanitizeFilename("   "))
}

func TestFileStorage_SaveAndOpen(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	name, err := fs.Save("abc", "report.docx", strings.NewReader("содержимое отчёта"))
	require.NoError(t, err)
	assert.Equal(t, "report.docx", name)

	f, err := fs.Open("abc", "report.docx")
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(f)
	require.NoError(t, err)
	assert.Equal(t, "содержимое отчёта", buf.String())
}

func TestFileStorage_Save_RejectsExtension(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	_, err = fs.Save("abc", "malware.sh", strings.NewReader("#!/bin/sh"))
	assert.True(t, apperror.IsValidation(err))
}

func TestFileStorage_Save_RejectsExecutableContent(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	// ELF-заголовок под видом документа.
	elf := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 60)...)
	_, err = fs.Save("abc", "report.docx", bytes.NewReader(elf))
	assert.True(t, apperror.IsValidation(err))
}

func TestFileStorage_Save_ExactLimitAccepted(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	content := strings.Repeat("a", int(fs.MaxSizeBytes()))
	name, err := fs.Save("abc", "notes.txt", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", name)
}

func TestFileStorage_Save_OverLimitRejected(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	content := strings.Repeat("a", int(fs.MaxSizeBytes())+1)
	_, err = fs.Save("abc", "notes.txt", strings.NewReader(content))
	assert.True(t, apperror.IsValidation(err))

	// Отклонённый файл не должен оставаться на диске.
	_, err = fs.Open("abc", "notes.txt")
	assert.True(t, apperror.IsNotFound(err))
}

func TestFileStorage_Open_NotFound(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	_, err = fs.Open("abc", "missing.pdf")
	assert.True(t, apperror.IsNotFound(err))
}

func TestFileStorage_ContentType(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 100)...)
	_, err = fs.Save("abc", "chart.png", bytes.NewReader(png))
	require.NoError(t, err)

	assert.Equal(t, "image/png", fs.ContentType("abc", "chart.png"))

	_, err = fs.Save("abc", "notes.txt", strings.NewReader("текст"))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", fs.ContentType("abc", "notes.txt"))
	assert.Equal(t, "application/octet-stream", fs.ContentType("abc", "missing.pdf"))
}

func TestFileStorage_Archive(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	_, err = fs.Save("abc", "report.docx", strings.NewReader("отчёт"))
	require.NoError(t, err)
	_, err = fs.Save("abc", "data.xlsx", strings.NewReader("данные"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fs.Archive("abc", []string{"report.docx", "data.xlsx", "missing.pdf"}, &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestFileStorage_Archive_NoFiles(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = fs.Archive("abc", []string{"missing.pdf"}, &buf)
	assert.True(t, apperror.IsNotFound(err))
}
