package storage

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
)

// Расширения, которые принимаются как результат работы исполнителя.
var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {}, ".txt": {}, ".csv": {},
	".zip": {}, ".rar": {}, ".7z": {},
	".png": {}, ".jpg": {}, ".jpeg": {},
	".py": {}, ".ipynb": {}, ".r": {}, ".sav": {},
}

// FileStorage хранит файлы заказов в локальной файловой системе:
// по каталогу на заказ под общим корнем.
type FileStorage struct {
	root      string
	maxSizeMB int64
}

func NewFileStorage(root string, maxSizeMB int64) (*FileStorage, error) {
	if root == "" {
		root = "./uploads"
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("file storage: %w", err)
	}
	return &FileStorage{root: root, maxSizeMB: maxSizeMB}, nil
}

// MaxSizeBytes возвращает предельный размер одного файла.
func (s *FileStorage) MaxSizeBytes() int64 {
	return s.maxSizeMB << 20
}

// Save сохраняет файл заказа и возвращает имя, под которым он лежит
// в хранилище. Имя приводится к безопасному виду, содержимое
// проверяется на соответствие заявленному типу.
func (s *FileStorage) Save(orderID, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", apperror.New(apperror.ErrCodeValidation, "недопустимое имя файла")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("файлы с расширением %s не принимаются", ext))
	}

	dir := filepath.Join(s.root, orderDir(orderID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("file storage: %w", err)
	}

	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("file storage: %w", err)
	}
	head = head[:n]

	// Исполняемые файлы отклоняются по содержимому, а не по расширению.
	if kind, _ := filetype.Match(head); kind.Extension == "exe" || kind.Extension == "elf" {
		return "", apperror.New(apperror.ErrCodeValidation, "исполняемые файлы не принимаются")
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("file storage: %w", err)
	}
	defer dst.Close()

	limited := io.LimitReader(r, s.MaxSizeBytes())
	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), limited))
	if err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", fmt.Errorf("file storage: %w", err)
	}
	if written > s.MaxSizeBytes() {
		os.Remove(filepath.Join(dir, name))
		return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("файл больше %d МБ", s.maxSizeMB))
	}
	return name, nil
}

// Open открывает сохранённый файл заказа.
func (s *FileStorage) Open(orderID, filename string) (*os.File, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return nil, apperror.ErrFileNotFound
	}
	f, err := os.Open(filepath.Join(s.root, orderDir(orderID), name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.ErrFileNotFound
		}
		return nil, fmt.Errorf("file storage: %w", err)
	}
	return f, nil
}

// ContentType определяет MIME-тип сохранённого файла по содержимому.
// Для неопознанных форматов возвращается generic octet-stream.
func (s *FileStorage) ContentType(orderID, filename string) string {
	const fallback = "application/octet-stream"

	name := SanitizeFilename(filename)
	if name == "" {
		return fallback
	}
	f, err := os.Open(filepath.Join(s.root, orderDir(orderID), name))
	if err != nil {
		return fallback
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fallback
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return fallback
	}
	return kind.MIME.Value
}

// Archive пишет zip-архив из перечисленных файлов заказа. Отсутствующие
// файлы пропускаются: архив собирается из того, что реально лежит на
// диске.
func (s *FileStorage) Archive(orderID string, filenames []string, w io.Writer) error {
	zw := zip.NewWriter(w)
	added := 0
	for _, filename := range filenames {
		name := SanitizeFilename(filename)
		if name == "" {
			continue
		}
		src, err := os.Open(filepath.Join(s.root, orderDir(orderID), name))
		if err != nil {
			continue
		}
		entry, err := zw.Create(name)
		if err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("file storage: %w", err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("file storage: %w", err)
		}
		src.Close()
		added++
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("file storage: %w", err)
	}
	if added == 0 {
		return apperror.ErrFileNotFound
	}
	return nil
}

// SanitizeFilename оставляет от пути только базовое имя и вычищает
// символы, опасные для файловой системы.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), ". ")
	if cleaned == "" || strings.TrimLeft(cleaned, "._ ") == "" {
		return ""
	}
	return cleaned
}

func orderDir(orderID string) string {
	return "order_" + orderID
}
