package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bbifather/student-orders-backend/internal/http/handlers/common"
	"github.com/bbifather/student-orders-backend/internal/http/middleware"
	"github.com/bbifather/student-orders-backend/internal/service"
	"github.com/bbifather/student-orders-backend/internal/storage"
)

type FileHandler struct {
	orders  *service.OrderService
	storage *storage.FileStorage
}

// NewFileHandler создаёт новый хэндлер файлов заказа.
func NewFileHandler(orders *service.OrderService, storage *storage.FileStorage) *FileHandler {
	return &FileHandler{orders: orders, storage: storage}
}

// UploadFiles обрабатывает POST /api/orders/:id/files: исполнитель или
// администратор загружает готовые работы, заказ завершается.
func (h *FileHandler) UploadFiles(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файлы из запроса")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		common.RespondBadRequest(c, "не передано ни одного файла")
		return
	}

	saved := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.storage.MaxSizeBytes() {
			common.RespondBadRequest(c, fmt.Sprintf("файл %s слишком большой", fh.Filename))
			return
		}
		src, err := fh.Open()
		if err != nil {
			common.RespondBadRequest(c, fmt.Sprintf("не удалось открыть файл %s", fh.Filename))
			return
		}
		name, err := h.storage.Save(id.String(), fh.Filename, src)
		src.Close()
		if err != nil {
			c.Error(err)
			return
		}
		saved = append(saved, name)
	}

	order, err := h.orders.CompleteWithFiles(c.Request.Context(), middleware.ActorFromContext(c), id, saved)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DownloadFile обрабатывает GET /api/orders/:id/download/:filename.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	filename := storage.SanitizeFilename(c.Param("filename"))
	attached := false
	for _, f := range order.Files {
		if f == filename {
			attached = true
			break
		}
	}
	if !attached {
		common.RespondNotFound(c, "файл не прикреплён к заказу")
		return
	}

	file, err := h.storage.Open(id.String(), filename)
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", h.storage.ContentType(id.String(), filename))
	c.File(file.Name())
}

// DownloadAll обрабатывает GET /api/orders/:id/download-all: все файлы
// заказа одним zip-архивом.
func (h *FileHandler) DownloadAll(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if len(order.Files) == 0 {
		common.RespondNotFound(c, "у заказа нет файлов")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "order_"+id.String()+".zip"))
	c.Header("Content-Type", "application/zip")
	if err := h.storage.Archive(id.String(), order.Files, c.Writer); err != nil {
		c.Error(err)
		return
	}
}
