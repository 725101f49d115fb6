package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"docu360/internal/doctree"
	"docu360/internal/middleware"
	"docu360/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxImportSize bounds uploaded import documents.
const maxImportSize = 10 << 20 // 10 MiB

// EditorHandler holds the dependencies for the document-tree editing
// handlers.
type EditorHandler struct {
	editor *service.EditorService
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(editor *service.EditorService) *EditorHandler {
	return &EditorHandler{editor: editor}
}

func (h *EditorHandler) treeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	tree, err := h.editor.GetTree(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, tree)
}

func (h *EditorHandler) createFolderHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		ParentID *string `json:"parentId"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
		}
	}
	folder, err := h.editor.CreateFolder(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.ParentID)
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusCreated, folder)
}

func (h *EditorHandler) renameFolderHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	folder, err := h.editor.RenameFolder(r.Context(), actorFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "folderID"), req.Name)
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, folder)
}

func (h *EditorHandler) deleteFolderHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.editor.DeleteFolder(r.Context(), actorFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "folderID")); err != nil {
		return appError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *EditorHandler) createPageHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		FolderID *string `json:"folderId"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
		}
	}
	page, err := h.editor.CreatePage(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.FolderID)
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusCreated, page)
}

func (h *EditorHandler) updatePageHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req struct {
		Title       *string  `json:"title"`
		Slug        *string  `json:"slug"`
		ContentHTML *string  `json:"contentHtml"`
		Description *string  `json:"description"`
		Tags        []string `json:"tags"`
		Published   *bool    `json:"published"`
		FolderID    *string  `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	page, err := h.editor.UpdatePage(r.Context(), actorFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "pageID"), doctree.PageUpdate{
		Title:       req.Title,
		Slug:        req.Slug,
		ContentHTML: req.ContentHTML,
		Description: req.Description,
		Tags:        req.Tags,
		Published:   req.Published,
		FolderID:    req.FolderID,
	})
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, page)
}

func (h *EditorHandler) deletePageHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.editor.DeletePage(r.Context(), actorFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "pageID")); err != nil {
		return appError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// importHandler accepts a multipart upload with a "file" part and optional
// "folderId"/"pageId" fields and runs the document import against the tree.
func (h *EditorHandler) importHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid multipart upload", Code: http.StatusBadRequest}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "A file to import is required", Code: http.StatusBadRequest}
	}
	defer file.Close()
	document, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read uploaded file", Code: http.StatusBadRequest}
	}

	var folderID, pageID *string
	if v := r.FormValue("folderId"); v != "" {
		folderID = &v
	}
	if v := r.FormValue("pageId"); v != "" {
		pageID = &v
	}

	tree, err := h.editor.Import(r.Context(), actorFrom(r), chi.URLParam(r, "id"), header.Filename, document, folderID, pageID)
	if err != nil {
		return appError(err)
	}
	return respondJSON(w, http.StatusOK, tree)
}
