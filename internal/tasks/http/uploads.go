package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/assets"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

// UploadsHandler godoc
//
//	@Summary		Uploaded file
//	@Description	Serves profile pictures stored on local disk. Not routed when uploads go to S3.
//	@Tags			Assets
//	@Produce		image/jpeg,image/png,image/gif
//	@Param			name	path	string	true	"Stored file name"
//	@Success		200
//	@Failure		404	{object}	tasksdk.ErrorResponse
//	@Router			/uploads/{name} [get].
func UploadsHandler(local *assets.LocalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := local.Path(r.PathValue("name"))
		if err != nil {
			httpx.WriteError(w, http.StatusNotFound, tasksdk.ErrorCodeNotFound, "not found")
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Type", assets.ContentType(path))
		http.ServeFile(w, r, path)
	}
}
