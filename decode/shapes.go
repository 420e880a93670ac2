package decode

import (
	"encoding/json"

	gwerrors "github.com/kbukum/validator-gateway/errors"
	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/validation"
)

const (
	// ContentTypeProtobuf is the media type of binary batch lists.
	ContentTypeProtobuf = "application/octet-stream"
	// ContentTypeJSON is the media type of id list bodies.
	ContentTypeJSON = "application/json"
)

// StatusRequest is the body of POST /batch_statuses.
type StatusRequest struct {
	BatchIDs []string `json:"batch_ids" validate:"required,min=1,dive,resource_id"`
}

// ReceiptRequest is the body of POST /receipts.
type ReceiptRequest struct {
	TransactionIDs []string `json:"transaction_ids" validate:"required,min=1,dive,resource_id"`
}

// BatchListShape accepts a non-empty binary BatchList whose batches all carry
// a well-formed header signature.
var BatchListShape = Shape[*protocol.BatchList]{
	ContentType:      ContentTypeProtobuf,
	WrongContentType: gwerrors.SubmissionWrongContentType,
	Invalid:          gwerrors.BadProtobufSubmitted,
	Unmarshal: func(body []byte) (*protocol.BatchList, error) {
		var list protocol.BatchList
		if err := list.Unmarshal(body); err != nil {
			return nil, err
		}
		return &list, nil
	},
	Validate: func(list *protocol.BatchList) *gwerrors.GatewayError {
		if len(list.Batches) == 0 {
			return gwerrors.New(gwerrors.NoBatchesSubmitted)
		}
		for _, b := range list.Batches {
			if !validation.IsResourceID(b.HeaderSignature) {
				return gwerrors.New(gwerrors.InvalidResourceId).WithDetail(b.HeaderSignature)
			}
		}
		return nil
	},
}

// StatusRequestShape accepts a JSON StatusRequest.
var StatusRequestShape = Shape[*StatusRequest]{
	ContentType:      ContentTypeJSON,
	WrongContentType: gwerrors.StatusWrongContentType,
	Invalid:          gwerrors.StatusBodyInvalid,
	Unmarshal:        unmarshalJSON[StatusRequest],
	Validate: func(r *StatusRequest) *gwerrors.GatewayError {
		return structErr(r, gwerrors.StatusBodyInvalid)
	},
}

// ReceiptRequestShape accepts a JSON ReceiptRequest.
var ReceiptRequestShape = Shape[*ReceiptRequest]{
	ContentType:      ContentTypeJSON,
	WrongContentType: gwerrors.ReceiptWrongContentType,
	Invalid:          gwerrors.ReceiptBodyInvalid,
	Unmarshal:        unmarshalJSON[ReceiptRequest],
	Validate: func(r *ReceiptRequest) *gwerrors.GatewayError {
		return structErr(r, gwerrors.ReceiptBodyInvalid)
	},
}

func unmarshalJSON[T any](body []byte) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(body, v); err != nil {
		return nil, err
	}
	return v, nil
}

// structErr maps a failed id check to InvalidResourceId and any other failure
// (missing or empty list) to invalid.
func structErr(v any, invalid gwerrors.Kind) *gwerrors.GatewayError {
	fe := validation.Struct(v)
	if fe == nil {
		return nil
	}
	if fe.Tag == "resource_id" {
		return gwerrors.New(gwerrors.InvalidResourceId).WithDetail(fe.Value).WithCause(fe)
	}
	return gwerrors.New(invalid).WithCause(fe)
}
