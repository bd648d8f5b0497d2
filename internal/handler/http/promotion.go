package http

import (
	"net/http"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/snapshot"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
)

type PromotionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type promotionHandlerImpl struct {
	snapshotService snapshot.SnapshotService
}

func NewPromotionHandler(snapshotService snapshot.SnapshotService) PromotionHandler {
	return &promotionHandlerImpl{snapshotService: snapshotService}
}

// List handles GET /api/v1/promotions
func (h *promotionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.snapshotService.Promotions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, promotions)
}
