package sharedsrv

import (
	"net/http"

	"github.com/shelfsync/shelfsync/internal/utils"
	"github.com/shelfsync/shelfsync/models"
)

// changes is the long-poll change hint: the request blocks until a write
// commits or the poll timeout elapses. A timeout answers 204 so callers can
// re-arm immediately; a committed write answers {"changed": true} with no
// payload, and callers re-derive actual changes via query.
func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.repo.WaitForChange(ctx, h.pollTimeout) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteJSON(w, models.ChangeNotification{Changed: true}, http.StatusOK)
}
