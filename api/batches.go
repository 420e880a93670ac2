package api

import (
	"github.com/gin-gonic/gin"

	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/decode"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/server"
	"github.com/kbukum/validator-gateway/validation"
)

// readBody reads the request body within the configured limit.
func (h *Handler) readBody(c *gin.Context) ([]byte, error) {
	return decode.ReadBody(c.Request.Body, c.Request.ContentLength, h.cfg.MaxBodySize)
}

// SubmitBatches serves POST /batches. Accepted batches are answered with 202
// and a link to their status.
func (h *Handler) SubmitBatches(c *gin.Context) {
	respond(c, h.submitBatches(c))
}

func (h *Handler) submitBatches(c *gin.Context) error {
	body, err := h.readBody(c)
	if err != nil {
		return err
	}
	list, err := decode.Decode(c.GetHeader("Content-Type"), body, h.cfg.MaxBodySize, decode.BatchListShape)
	if err != nil {
		return err
	}

	ids := protocol.BatchIDs(list.Batches)
	h.log.WithContext(c.Request.Context()).Debug("submitting batches", logger.Fields("batches", len(ids)))

	var resp protocol.StatusOnlyResponse
	if err := h.send(c, protocol.ClientBatchSubmitRequest, &protocol.BatchSubmitRequest{Batches: list.Batches}, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, gwerrors.UnknownValidator, ""); err != nil {
		return err
	}
	server.RespondAccepted(c, idsLink(c, "/batch_statuses", ids))
	return nil
}

// GetBatchStatuses serves GET /batch_statuses?id=a,b[&wait=N].
func (h *Handler) GetBatchStatuses(c *gin.Context) {
	respond(c, h.getBatchStatuses(c))
}

func (h *Handler) getBatchStatuses(c *gin.Context) error {
	ids := splitIDs(c.Query("id"))
	if len(ids) == 0 {
		return gwerrors.New(gwerrors.StatusIdQueryInvalid)
	}
	if err := validation.New().ResourceIDs("id", ids).Err(); err != nil {
		return err
	}
	return h.batchStatuses(c, ids)
}

// PostBatchStatuses serves POST /batch_statuses with a {"batch_ids": [...]}
// body, for id lists too long for a query string.
func (h *Handler) PostBatchStatuses(c *gin.Context) {
	respond(c, h.postBatchStatuses(c))
}

func (h *Handler) postBatchStatuses(c *gin.Context) error {
	body, err := h.readBody(c)
	if err != nil {
		return err
	}
	req, err := decode.Decode(c.GetHeader("Content-Type"), body, h.cfg.MaxBodySize, decode.StatusRequestShape)
	if err != nil {
		return err
	}
	return h.batchStatuses(c, req.BatchIDs)
}

func (h *Handler) batchStatuses(c *gin.Context, ids []string) error {
	wait, timeout := waitSeconds(c, h.cfg.Timeout)
	req := &protocol.BatchStatusRequest{BatchIDs: ids, Wait: wait, Timeout: timeout}

	var resp protocol.BatchStatusResponse
	if err := h.send(c, protocol.ClientBatchStatusRequest, req, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, gwerrors.BatchNotFound, ""); err != nil {
		return err
	}
	if len(resp.BatchStatuses) == 0 {
		return gwerrors.New(gwerrors.StatusResponseMissing)
	}
	for _, s := range resp.BatchStatuses {
		if s.InvalidTransactions == nil {
			s.InvalidTransactions = []*protocol.InvalidTransaction{}
		}
	}
	server.RespondOK(c, server.DataResponse{
		Data: resp.BatchStatuses,
		Link: idsLink(c, "/batch_statuses", ids),
	})
	return nil
}
