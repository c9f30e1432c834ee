package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
)

// NewFileHandler serves stored uploads by filename from dir on fs.
// @Summary Download an uploaded file
// @Tags uploads
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Success 200 {file} file
// @Failure 404 {string} string "Not found"
// @Router /uploads/{filename} [get]
func NewFileHandler(fs afero.Fs, dir string) http.HandlerFunc {
	httpFs := afero.NewHttpFs(afero.NewBasePathFs(fs, dir))

	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
			http.NotFound(w, r)
			return
		}

		f, err := httpFs.Open("/" + name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}
