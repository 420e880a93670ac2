package errors

import (
	"fmt"
	"net/http"
	"sort"
)

// Kind identifies one failure in the closed gateway taxonomy.
type Kind int

// Backend and transport failures.
const (
	UnknownValidator Kind = iota
	ValidatorNotReady
	ValidatorTimedOut
	ValidatorDisconnected
	SendBackoffTimeout
	ValidatorResponseInvalid
	ResourceHeaderInvalid
	StatusResponseMissing
)

// Submission failures.
const (
	SubmittedBatchesInvalid Kind = iota + 100
	BatchQueueFull
	NoBatchesSubmitted
	BadProtobufSubmitted
	RequestBodyTooLarge
	SubmissionWrongContentType
)

// Query and body validation failures.
const (
	StatusWrongContentType Kind = iota + 200
	StatusBodyInvalid
	HeadNotFound
	CountInvalid
	PagingInvalid
	SortInvalid
	InvalidResourceId
	InvalidStateAddress
	StatusIdQueryInvalid
)

// Resource lookups.
const (
	BlockNotFound Kind = iota + 300
	BatchNotFound
	TransactionNotFound
	StateNotFound
	ReceiptNotFound
	ReceiptWrongContentType
	ReceiptBodyInvalid
	ReceiptIdQueryInvalid
)

// Descriptor is the fixed rendering of a Kind.
type Descriptor struct {
	HTTPStatus int
	Code       uint8
	Title      string
	Message    string
}

var descriptors = map[Kind]Descriptor{
	UnknownValidator: {http.StatusInternalServerError, 10, "Unknown Validator Error",
		"An unknown error occurred with the validator while processing your request."},
	ValidatorNotReady: {http.StatusServiceUnavailable, 15, "Validator Not Ready",
		"The validator has no genesis block, and is not yet ready to be queried. Try your request again later."},
	ValidatorTimedOut: {http.StatusServiceUnavailable, 17, "Validator Timed Out",
		"The request timed out while waiting for a response from the validator. Your request may or may not have been processed."},
	ValidatorDisconnected: {http.StatusServiceUnavailable, 18, "Validator Disconnected",
		"The validator disconnected before sending a response. Try your request again later."},
	SendBackoffTimeout: {http.StatusRequestTimeout, 19, "Send timed out",
		"Sending message to validator timed out. Retry limit reached. Try your request again later."},
	ValidatorResponseInvalid: {http.StatusInternalServerError, 20, "Invalid Validator Response",
		"The response from the validator could not be decoded. It may have been corrupted or compromised."},
	ResourceHeaderInvalid: {http.StatusInternalServerError, 21, "Invalid Resource Header",
		"The resource fetched from the validator had an invalid header, and may be corrupted."},
	StatusResponseMissing: {http.StatusInternalServerError, 27, "Unable to Fetch Statuses",
		"An unknown error occurred while attempting to fetch batch statuses, and nothing was returned."},

	SubmittedBatchesInvalid: {http.StatusBadRequest, 30, "Submitted Batches Invalid",
		"The submitted BatchList was rejected by the validator. It was poorly formed, or has an invalid signature."},
	BatchQueueFull: {http.StatusTooManyRequests, 31, "Unable to Accept Batches",
		"The validator cannot currently accept more batches, due to a full queue.  Please submit your request again."},
	NoBatchesSubmitted: {http.StatusBadRequest, 34, "No Batches Submitted",
		"The protobuf BatchList you submitted was empty and contained no Batches. You must submit at least one Batch."},
	BadProtobufSubmitted: {http.StatusBadRequest, 35, "Protobuf Not Decodable",
		"The protobuf BatchList you submitted was malformed and could not be read."},
	RequestBodyTooLarge: {http.StatusRequestEntityTooLarge, 36, "Request Body Too Large",
		"The request body exceeds the maximum size accepted by this API. Maximum size in bytes: "},
	SubmissionWrongContentType: {http.StatusBadRequest, 42, "Wrong Content Type",
		"Batches must be submitted in a BatchList protobuf binary, with a 'Content-Type' header of 'application/octet-stream'."},

	StatusWrongContentType: {http.StatusBadRequest, 43, "Wrong Content Type",
		"Requests for batch statuses sent as a POST must have a 'Content-Type' header of 'application/json'."},
	StatusBodyInvalid: {http.StatusBadRequest, 46, "Bad Status Request",
		"Requests for batch statuses sent as a POST must have a JSON formatted body with an array of at least one id string."},
	HeadNotFound: {http.StatusNotFound, 50, "Head Not Found",
		"There is no block with the id specified in the 'head' query parameter."},
	CountInvalid: {http.StatusBadRequest, 53, "Invalid Count Query",
		"The 'count' query parameter must be a positive, non-zero integer."},
	PagingInvalid: {http.StatusBadRequest, 54, "Invalid Paging Query",
		"Paging request failed as written. One or more of the 'min', 'max', or 'count' query parameters were invalid or out of range."},
	SortInvalid: {http.StatusBadRequest, 57, "Invalid Sort Query",
		"The sort request failed as written. Some of the keys specified were not valid."},
	InvalidResourceId: {http.StatusBadRequest, 60, "Invalid Resource Id",
		"Blockchain items are identified by 128 character hex-strings. A submitted block, batch, or transaction id was invalid: "},
	InvalidStateAddress: {http.StatusBadRequest, 62, "Invalid State Address",
		"The state address submitted was invalid. To fetch specific state data, you must submit the full 70-character address."},
	StatusIdQueryInvalid: {http.StatusBadRequest, 66, "Id Query Invalid or Missing",
		"Requests for batch statuses sent as a GET request must have an 'id' query parameter with a comma-separated list of at least one batch id."},

	BlockNotFound: {http.StatusNotFound, 70, "Block Not Found",
		"There is no block with the id specified in the blockchain."},
	BatchNotFound: {http.StatusNotFound, 71, "Batch Not Found",
		"There is no batch with the id specified in the blockchain."},
	TransactionNotFound: {http.StatusNotFound, 72, "Transaction Not Found",
		"There is no transaction with the id specified in the blockchain."},
	StateNotFound: {http.StatusNotFound, 75, "State Not Found",
		"There is no state data at the address specified."},
	ReceiptNotFound: {http.StatusNotFound, 80, "Transaction Receipt Not Found",
		"There is no transaction receipt for the transaction id specified in the receipt store."},
	ReceiptWrongContentType: {http.StatusBadRequest, 81, "Wrong Content Type",
		"Requests for transaction receipts sent as a POST must have a 'Content-Type' header of 'application/json'."},
	ReceiptBodyInvalid: {http.StatusBadRequest, 82, "Bad Receipts Request",
		"Requests for transaction receipts sent as a POST must have a JSON formatted body with an array of at least one id string."},
	ReceiptIdQueryInvalid: {http.StatusBadRequest, 83, "Id Query Invalid or Missing",
		"Requests for transaction receipts sent as a GET request must have an 'id' query parameter with a comma-separated list of at least one transaction id."},
}

var names = map[Kind]string{
	UnknownValidator:           "UnknownValidator",
	ValidatorNotReady:          "ValidatorNotReady",
	ValidatorTimedOut:          "ValidatorTimedOut",
	ValidatorDisconnected:      "ValidatorDisconnected",
	SendBackoffTimeout:         "SendBackoffTimeout",
	ValidatorResponseInvalid:   "ValidatorResponseInvalid",
	ResourceHeaderInvalid:      "ResourceHeaderInvalid",
	StatusResponseMissing:      "StatusResponseMissing",
	SubmittedBatchesInvalid:    "SubmittedBatchesInvalid",
	BatchQueueFull:             "BatchQueueFull",
	NoBatchesSubmitted:         "NoBatchesSubmitted",
	BadProtobufSubmitted:       "BadProtobufSubmitted",
	RequestBodyTooLarge:        "RequestBodyTooLarge",
	SubmissionWrongContentType: "SubmissionWrongContentType",
	StatusWrongContentType:     "StatusWrongContentType",
	StatusBodyInvalid:          "StatusBodyInvalid",
	HeadNotFound:               "HeadNotFound",
	CountInvalid:               "CountInvalid",
	PagingInvalid:              "PagingInvalid",
	SortInvalid:                "SortInvalid",
	InvalidResourceId:          "InvalidResourceId",
	InvalidStateAddress:        "InvalidStateAddress",
	StatusIdQueryInvalid:       "StatusIdQueryInvalid",
	BlockNotFound:              "BlockNotFound",
	BatchNotFound:              "BatchNotFound",
	TransactionNotFound:        "TransactionNotFound",
	StateNotFound:              "StateNotFound",
	ReceiptNotFound:            "ReceiptNotFound",
	ReceiptWrongContentType:    "ReceiptWrongContentType",
	ReceiptBodyInvalid:         "ReceiptBodyInvalid",
	ReceiptIdQueryInvalid:      "ReceiptIdQueryInvalid",
}

// retryable kinds are transient from the caller's point of view: submitting the
// same request again later may succeed.
var retryable = map[Kind]bool{
	ValidatorNotReady:     true,
	ValidatorTimedOut:     true,
	ValidatorDisconnected: true,
	SendBackoffTimeout:    true,
	BatchQueueFull:        true,
}

// Lookup returns the descriptor registered for k. The taxonomy is closed, so a
// miss is a programming error and panics.
func (k Kind) Lookup() Descriptor {
	d, ok := descriptors[k]
	if !ok {
		panic(fmt.Sprintf("errors: kind %d has no descriptor", int(k)))
	}
	return d
}

// Code returns the stable API code of k.
func (k Kind) Code() uint8 { return k.Lookup().Code }

// HTTPStatus returns the HTTP status used when k reaches a client.
func (k Kind) HTTPStatus() int { return k.Lookup().HTTPStatus }

// Title returns the short headline of k.
func (k Kind) Title() string { return k.Lookup().Title }

// Message returns the message template of k.
func (k Kind) Message() string { return k.Lookup().Message }

// Retryable reports whether a caller may repeat the request later.
func (k Kind) Retryable() bool { return retryable[k] }

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every member of the taxonomy in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(names))
	for k := range names {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
