package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/logger"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/server"
)

// Sender delivers one protocol request and returns its correlated response.
// *dispatcher.Dispatcher implements it.
type Sender interface {
	Send(ctx context.Context, msgType protocol.MessageType, content []byte) (*protocol.Response, error)
}

// Config holds handler limits.
type Config struct {
	// MaxBodySize bounds request bodies in bytes.
	MaxBodySize int64
	// Timeout is the upper bound of a batch status wait.
	Timeout time.Duration
}

// Handler serves the REST endpoints.
type Handler struct {
	sender Sender
	cfg    Config
	log    *logger.Logger
}

// NewHandler creates a Handler that sends requests through sender.
func NewHandler(sender Sender, cfg Config, log *logger.Logger) *Handler {
	return &Handler{sender: sender, cfg: cfg, log: log.WithComponent("api")}
}

// Register mounts every endpoint on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/batches", h.SubmitBatches)
	r.GET("/batches", h.ListBatches)
	r.GET("/batches/:id", h.GetBatch)
	r.GET("/batch_statuses", h.GetBatchStatuses)
	r.POST("/batch_statuses", h.PostBatchStatuses)
	r.GET("/state", h.ListState)
	r.GET("/state/:address", h.GetState)
	r.GET("/blocks", h.ListBlocks)
	r.GET("/blocks/:id", h.GetBlock)
	r.GET("/transactions", h.ListTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
	r.GET("/receipts", h.GetReceipts)
	r.POST("/receipts", h.PostReceipts)
}

// request is any protocol request body.
type request interface {
	Marshal() []byte
}

// send dispatches req and decodes the response content into resp.
func (h *Handler) send(c *gin.Context, msgType protocol.MessageType, req request, resp protocol.Unmarshaler) error {
	out, err := h.sender.Send(c.Request.Context(), msgType, req.Marshal())
	if err != nil {
		return err
	}
	if err := resp.Unmarshal(out.Content); err != nil {
		return invalidResponse(err)
	}
	return nil
}

func invalidResponse(err error) error {
	return gwerrors.New(gwerrors.ValidatorResponseInvalid).WithCause(err)
}

// statusError maps a response status onto the error taxonomy. notFound is
// the kind of a missing resource on this endpoint; id, when known, is the
// detail of an invalid-id status.
func statusError(status protocol.ResponseStatus, notFound gwerrors.Kind, id string) error {
	switch status {
	case protocol.StatusOK:
		return nil
	case protocol.StatusInternalError:
		return gwerrors.New(gwerrors.UnknownValidator)
	case protocol.StatusNotReady:
		return gwerrors.New(gwerrors.ValidatorNotReady)
	case protocol.StatusNoRoot:
		return gwerrors.New(gwerrors.HeadNotFound)
	case protocol.StatusNoResource:
		return gwerrors.New(notFound)
	case protocol.StatusInvalidPaging:
		return gwerrors.New(gwerrors.PagingInvalid)
	case protocol.StatusInvalidSort:
		return gwerrors.New(gwerrors.SortInvalid)
	case protocol.StatusInvalidID:
		return gwerrors.New(gwerrors.InvalidResourceId).WithDetail(id)
	case protocol.StatusInvalidAddress:
		return gwerrors.New(gwerrors.InvalidStateAddress)
	case protocol.StatusInvalidBatch:
		return gwerrors.New(gwerrors.SubmittedBatchesInvalid)
	case protocol.StatusQueueFull:
		return gwerrors.New(gwerrors.BatchQueueFull)
	default:
		return gwerrors.New(gwerrors.UnknownValidator).
			WithCause(fmt.Errorf("unexpected response status %s", status))
	}
}

// respond writes err, if any, as the response.
func respond(c *gin.Context, err error) {
	if err != nil {
		server.RespondWithError(c, err)
	}
}
