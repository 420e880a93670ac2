package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	gwerrors "github.com/kbukum/validator-gateway/errors"
)

// DataResponse is the success envelope of the read endpoints.
type DataResponse struct {
	Data   any     `json:"data"`
	Head   string  `json:"head,omitempty"`
	Link   string  `json:"link,omitempty"`
	Paging *Paging `json:"paging,omitempty"`
}

// Paging describes the page returned by a listing and how to fetch the next.
type Paging struct {
	Start        string `json:"start,omitempty"`
	Limit        int32  `json:"limit,omitempty"`
	NextPosition string `json:"next_position,omitempty"`
	Next         string `json:"next,omitempty"`
}

// LinkResponse is the body of an accepted submission.
type LinkResponse struct {
	Link string `json:"link"`
}

// RespondWithError renders err as a gateway error body. Errors that are not
// a *errors.GatewayError are reported as UnknownValidator. Retryable kinds
// carry a Retry-After header. The original error is attached to the gin
// context for request logging.
func RespondWithError(c *gin.Context, err error) {
	gwErr := gwerrors.Wrap(err)
	_ = c.Error(err)
	if gwErr.Retryable() {
		c.Header("Retry-After", "1")
	}
	c.AbortWithStatusJSON(gwErr.HTTPStatus(), gwErr.Render())
}

// RespondOK sends a 200 response with the given envelope.
func RespondOK(c *gin.Context, resp DataResponse) {
	c.JSON(http.StatusOK, resp)
}

// RespondAccepted sends a 202 response pointing at link.
func RespondAccepted(c *gin.Context, link string) {
	c.JSON(http.StatusAccepted, LinkResponse{Link: link})
}
