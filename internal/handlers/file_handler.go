package handlers

import (
	"log"

	"filedrop/internal/apperrors"
	"filedrop/internal/models"
	"filedrop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FileHandler handles HTTP requests for uploads and file listings.
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// RegisterRoutes registers the file routes behind the authentication guard.
func (h *FileHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	router.Post("/upload", authGuard, h.HandleUpload)
	router.Get("/files", authGuard, h.HandleListFiles)
}

// currentUserID returns the identity attached by the auth middleware, or ""
// when none is present.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// HandleUpload accepts a multipart payload under the "file" field and stores
// it for the authenticated caller.
func (h *FileHandler) HandleUpload(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		// The guard should have rejected already; defense in depth.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
	defer src.Close()

	file, err := h.fileService.Upload(
		c.UserContext(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src,
		fileHeader.Size,
	)
	if err != nil {
		log.Printf("Error uploading file for user %s: %v", userID, err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.Status(httpErr.StatusCode).JSON(fiber.Map{
			"error": httpErr.Message,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"file":    file,
	})
}

// HandleListFiles returns the caller's files. The listing is scoped to the
// authenticated identity and never includes other owners' metadata.
func (h *FileHandler) HandleListFiles(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	files, err := h.fileService.ListFiles(userID)
	if err != nil {
		log.Printf("Error listing files for user %s: %v", userID, err)
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.Status(httpErr.StatusCode).JSON(fiber.Map{
			"error": httpErr.Message,
		})
	}
	if files == nil {
		files = []models.File{}
	}

	return c.JSON(fiber.Map{
		"files": files,
	})
}
