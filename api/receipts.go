package api

import (
	"github.com/gin-gonic/gin"

	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/decode"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/server"
	"github.com/kbukum/validator-gateway/validation"
)

// GetReceipts serves GET /receipts?id=a,b.
func (h *Handler) GetReceipts(c *gin.Context) {
	respond(c, h.getReceipts(c))
}

func (h *Handler) getReceipts(c *gin.Context) error {
	ids := splitIDs(c.Query("id"))
	if len(ids) == 0 {
		return gwerrors.New(gwerrors.ReceiptIdQueryInvalid)
	}
	if err := validation.New().ResourceIDs("id", ids).Err(); err != nil {
		return err
	}
	return h.receipts(c, ids)
}

// PostReceipts serves POST /receipts with a {"transaction_ids": [...]} body.
func (h *Handler) PostReceipts(c *gin.Context) {
	respond(c, h.postReceipts(c))
}

func (h *Handler) postReceipts(c *gin.Context) error {
	body, err := h.readBody(c)
	if err != nil {
		return err
	}
	req, err := decode.Decode(c.GetHeader("Content-Type"), body, h.cfg.MaxBodySize, decode.ReceiptRequestShape)
	if err != nil {
		return err
	}
	return h.receipts(c, req.TransactionIDs)
}

func (h *Handler) receipts(c *gin.Context, ids []string) error {
	var resp protocol.ReceiptGetResponse
	if err := h.send(c, protocol.ClientReceiptGetRequest, &protocol.ReceiptGetRequest{TransactionIDs: ids}, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, gwerrors.ReceiptNotFound, ""); err != nil {
		return err
	}
	server.RespondOK(c, server.DataResponse{
		Data: resp.Receipts,
		Link: idsLink(c, "/receipts", ids),
	})
	return nil
}
