package handler

import (
	"fmt"
	"strings"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// pdfFormField is the multipart form field carrying the uploaded file.
const pdfFormField = "pdf"

// instructionalTextFormat is returned instead of real extraction output.
// Real PDF parsing is out of scope; the response walks the user through
// pasting their content manually and seeds the text area with sample
// material so generation can be tried immediately.
const instructionalTextFormat = `PDF Upload Successful: %s

For the most accurate quiz generation, please copy and paste the text content from your PDF into the text area below.

This ensures you get quiz questions that are perfectly matched to your specific content.

Here's a sample educational text to demonstrate the quiz generation capabilities:

Introduction to Data Structures

Data structures are specialized formats for organizing, processing, retrieving and storing data. They are fundamental concepts in computer science and are essential for efficient algorithm design.

Basic Data Structures:

1. Arrays
Arrays store elements in contiguous memory locations. They provide constant-time access to elements using indices but have fixed size in most implementations.

2. Linked Lists
Linked lists consist of nodes where each node contains data and a reference to the next node. They allow dynamic size but require sequential access.

3. Stacks
Stacks follow the Last-In-First-Out (LIFO) principle. They are used in function calls, expression evaluation, and backtracking algorithms.

4. Queues
Queues follow the First-In-First-Out (FIFO) principle. They are essential for breadth-first search, scheduling, and buffering.

5. Trees
Trees are hierarchical data structures with a root node and child nodes. Binary trees, AVL trees, and B-trees are common variants.

6. Graphs
Graphs consist of vertices connected by edges. They can be directed or undirected and are used to model relationships and networks.

Applications:
- Database indexing
- Memory management
- Network routing
- Compiler design
- Game development

Time Complexity:
Understanding Big O notation is crucial for evaluating the efficiency of operations on different data structures.

Please replace this sample text with your actual PDF content for personalized quiz questions.`

const pdfResponseNote = "PDF received successfully. For best results, please paste your actual content in the text area."

// PDFHandler handles PDF upload HTTP requests.
type PDFHandler struct {
	adminService service.AdminService
	maxFileSize  int64
}

func NewPDFHandler(adminService service.AdminService, cfg config.PDFConfig) *PDFHandler {
	return &PDFHandler{
		adminService: adminService,
		maxFileSize:  cfg.MaxFileSize,
	}
}

// ExtractText godoc
// @Summary Upload a PDF
// @Description Accepts a PDF upload and returns instructional placeholder text
// @Tags pdf
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF file (max 10MB)"
// @Success 200 {object} dto.PDFExtractResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /extract-pdf-text [post]
func (h *PDFHandler) ExtractText(c *fiber.Ctx) error {
	if !h.adminService.PDFUploadEnabled() {
		return domain.NewForbiddenError("PDF upload is currently disabled")
	}

	file, err := c.FormFile(pdfFormField)
	if err != nil {
		return domain.NewValidationError("No PDF file uploaded")
	}

	if file.Size > h.maxFileSize {
		return domain.NewValidationError(fmt.Sprintf("File exceeds the %d byte limit", h.maxFileSize))
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if contentType != "application/pdf" {
		return domain.NewValidationError("Only PDF files are allowed")
	}

	logger.Get().Info("Processing PDF upload",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
	)

	text := fmt.Sprintf(instructionalTextFormat, file.Filename)
	return c.JSON(dto.PDFExtractResponse{
		Success:         true,
		Text:            text,
		Filename:        file.Filename,
		FileSize:        file.Size,
		Pages:           1,
		ExtractedLength: len(text),
		Metadata: dto.PDFMetadata{
			Title:  strings.TrimSuffix(file.Filename, ".pdf"),
			Author: nil,
			Pages:  1,
		},
		Note: pdfResponseNote,
	})
}
