package book

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/httpx"
	"bookcatalog/internal/media"
)

const coverFormField = "cover_image_path"

const maxMultipartMemory = 4 << 20

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// ListResponse is the paginated envelope for GET /books.
type ListResponse struct {
	Data []Book   `json:"data"`
	Meta PageMeta `json:"meta"`
}

type createBookReq struct {
	Title           string `json:"title" validate:"required,max=255"`
	Author          string `json:"author" validate:"required,max=255"`
	PublicationYear *int   `json:"publication_year" validate:"required,publication_year"`
}

type updateBookReq struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=255"`
	PublicationYear *int    `json:"publication_year" validate:"omitempty,publication_year"`
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := ListQuery{
		SortField:     query.Get("sort_field"),
		SortDirection: query.Get("sort_direction"),
	}
	q.Page, _ = strconv.Atoi(query.Get("page"))
	q.PerPage, _ = strconv.Atoi(query.Get("per_page"))
	q = q.Normalized()

	books, total, err := h.service.List(r.Context(), q)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}

	httpx.JSON(w, http.StatusOK, ListResponse{
		Data: books,
		Meta: PageMeta{
			Page:       q.Page,
			PerPage:    q.PerPage,
			Total:      total,
			TotalPages: (total + q.PerPage - 1) / q.PerPage,
		},
	})
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	var cover *multipart.FileHeader

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		req.Title = r.FormValue("title")
		req.Author = r.FormValue("author")
		req.PublicationYear = formYear(r)
		cover = formFile(r, coverFormField)
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	details := httpx.ValidateStruct(req)
	if cover != nil {
		if err := media.ValidateImage(cover); err != nil {
			details = append(details, coverFieldError(err))
		}
	}
	if len(details) > 0 {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "Validation failed", details)
		return
	}

	in := CreateInput{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: *req.PublicationYear,
	}
	b, err := h.service.Create(r.Context(), in, cover)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, b)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Resolve the id before looking at the payload, so a missing book is a
	// 404 even when the body would not validate.
	if _, err := h.service.Get(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	var req updateBookReq
	var cover *multipart.FileHeader

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		if v, present := formValue(r, "title"); present {
			v = strings.TrimSpace(v)
			req.Title = &v
		}
		if v, present := formValue(r, "author"); present {
			v = strings.TrimSpace(v)
			req.Author = &v
		}
		if _, present := formValue(r, "publication_year"); present {
			req.PublicationYear = formYear(r)
		}
		cover = formFile(r, coverFormField)
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		if req.Title != nil {
			v := strings.TrimSpace(*req.Title)
			req.Title = &v
		}
		if req.Author != nil {
			v := strings.TrimSpace(*req.Author)
			req.Author = &v
		}
	}

	details := httpx.ValidateStruct(req)
	if cover != nil {
		if err := media.ValidateImage(cover); err != nil {
			details = append(details, coverFieldError(err))
		}
	}
	if len(details) > 0 {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "Validation failed", details)
		return
	}

	ch := Changes{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
	}
	b, err := h.service.Update(r.Context(), id, ch, cover)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, b)
}

// Destroy handles DELETE /books/{id}
func (h *HTTPHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	httpx.JSONNoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
		return 0, false
	}
	return id, true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formValue(r *http.Request, field string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	if vs := r.MultipartForm.Value[field]; len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}

// formYear parses the publication_year form field. A non-numeric value
// maps to a zero year, which the range rule then reports.
func formYear(r *http.Request) *int {
	v, present := formValue(r, "publication_year")
	if !present {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		year = 0
	}
	return &year
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if fhs := r.MultipartForm.File[field]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

func coverFieldError(err error) httpx.FieldError {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return httpx.FieldError{Field: coverFormField, Message: "cover_image_path must be at most 2048 KB"}
	case errors.Is(err, media.ErrUnsupportedFormat):
		return httpx.FieldError{Field: coverFormField, Message: "cover_image_path must be a jpeg, png or gif image"}
	default:
		return httpx.FieldError{Field: coverFormField, Message: "cover_image_path is not a valid image"}
	}
}
