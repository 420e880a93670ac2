package api

import (
	"github.com/gin-gonic/gin"

	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/server"
	"github.com/kbukum/validator-gateway/validation"
)

// resource describes one kind of signed ledger object.
type resource[T any] struct {
	get       protocol.MessageType
	list      protocol.MessageType
	notFound  gwerrors.Kind
	signature func(*T) string
}

var (
	blocks = resource[protocol.Block]{
		get:       protocol.ClientBlockGetRequest,
		list:      protocol.ClientBlockListRequest,
		notFound:  gwerrors.BlockNotFound,
		signature: func(b *protocol.Block) string { return b.HeaderSignature },
	}
	batches = resource[protocol.Batch]{
		get:       protocol.ClientBatchGetRequest,
		list:      protocol.ClientBatchListRequest,
		notFound:  gwerrors.BatchNotFound,
		signature: func(b *protocol.Batch) string { return b.HeaderSignature },
	}
	transactions = resource[protocol.Transaction]{
		get:       protocol.ClientTransactionGetRequest,
		list:      protocol.ClientTransactionListRequest,
		notFound:  gwerrors.TransactionNotFound,
		signature: func(t *protocol.Transaction) string { return t.HeaderSignature },
	}
)

// GetBlock serves GET /blocks/:id.
func (h *Handler) GetBlock(c *gin.Context) { respond(c, getResource(h, c, blocks)) }

// ListBlocks serves GET /blocks.
func (h *Handler) ListBlocks(c *gin.Context) { respond(c, listResources(h, c, blocks)) }

// GetBatch serves GET /batches/:id.
func (h *Handler) GetBatch(c *gin.Context) { respond(c, getResource(h, c, batches)) }

// ListBatches serves GET /batches.
func (h *Handler) ListBatches(c *gin.Context) { respond(c, listResources(h, c, batches)) }

// GetTransaction serves GET /transactions/:id.
func (h *Handler) GetTransaction(c *gin.Context) { respond(c, getResource(h, c, transactions)) }

// ListTransactions serves GET /transactions.
func (h *Handler) ListTransactions(c *gin.Context) { respond(c, listResources(h, c, transactions)) }

func getResource[T any, PT interface {
	*T
	protocol.Unmarshaler
}](h *Handler, c *gin.Context, res resource[T]) error {
	id := c.Param("id")
	if !validation.IsResourceID(id) {
		return gwerrors.New(gwerrors.InvalidResourceId).WithDetail(id)
	}

	var resp protocol.GetResponse
	if err := h.send(c, res.get, &protocol.GetByIDRequest{ID: id}, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, res.notFound, id); err != nil {
		return err
	}

	item, err := protocol.DecodeOne[T, PT](resp.Item)
	if err != nil {
		return invalidResponse(err)
	}
	if res.signature(item) == "" {
		return gwerrors.New(gwerrors.ResourceHeaderInvalid)
	}
	server.RespondOK(c, server.DataResponse{Data: item, Link: selfLink(c)})
	return nil
}

func listResources[T any, PT interface {
	*T
	protocol.Unmarshaler
}](h *Handler, c *gin.Context, res resource[T]) error {
	req, err := listQuery(c, false)
	if err != nil {
		return err
	}

	var resp protocol.ListResponse
	if err := h.send(c, res.list, req, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, res.notFound, ""); err != nil {
		return err
	}

	items, err := protocol.DecodeAll[T, PT](resp.Items)
	if err != nil {
		return invalidResponse(err)
	}
	for _, item := range items {
		if res.signature(item) == "" {
			return gwerrors.New(gwerrors.ResourceHeaderInvalid)
		}
	}
	server.RespondOK(c, server.DataResponse{
		Data:   items,
		Head:   resp.HeadID,
		Link:   headLink(c, resp.HeadID),
		Paging: paging(c, req.Paging, resp.Paging, resp.HeadID),
	})
	return nil
}

// GetState serves GET /state/:address. The value is rendered base64.
func (h *Handler) GetState(c *gin.Context) {
	respond(c, h.getState(c))
}

func (h *Handler) getState(c *gin.Context) error {
	address, head := c.Param("address"), c.Query("head")
	if err := validation.New().StateAddress("address", address).ResourceID("head", head).Err(); err != nil {
		return err
	}

	var resp protocol.GetResponse
	if err := h.send(c, protocol.ClientStateGetRequest, &protocol.StateGetRequest{HeadID: head, Address: address}, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, gwerrors.StateNotFound, head); err != nil {
		return err
	}
	server.RespondOK(c, server.DataResponse{
		Data: resp.Item,
		Head: resp.HeadID,
		Link: headLink(c, resp.HeadID),
	})
	return nil
}

// ListState serves GET /state.
func (h *Handler) ListState(c *gin.Context) {
	respond(c, h.listState(c))
}

func (h *Handler) listState(c *gin.Context) error {
	req, err := listQuery(c, true)
	if err != nil {
		return err
	}

	var resp protocol.ListResponse
	if err := h.send(c, protocol.ClientStateListRequest, req, &resp); err != nil {
		return err
	}
	if err := statusError(resp.Status, gwerrors.StateNotFound, req.HeadID); err != nil {
		return err
	}

	entries, err := protocol.DecodeAll[protocol.StateEntry](resp.Items)
	if err != nil {
		return invalidResponse(err)
	}
	server.RespondOK(c, server.DataResponse{
		Data:   entries,
		Head:   resp.HeadID,
		Link:   headLink(c, resp.HeadID),
		Paging: paging(c, req.Paging, resp.Paging, resp.HeadID),
	})
	return nil
}
