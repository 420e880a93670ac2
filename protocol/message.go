package protocol

import (
	"fmt"
)

// MessageType tags the content of a Message.
type MessageType int32

// Client API requests and responses occupy the 100 range. Each response type
// is its request type plus one.
const (
	DefaultMessageType MessageType = 0

	ClientBatchSubmitRequest      MessageType = 100
	ClientBatchSubmitResponse     MessageType = 101
	ClientBatchStatusRequest      MessageType = 102
	ClientBatchStatusResponse     MessageType = 103
	ClientStateListRequest        MessageType = 104
	ClientStateListResponse       MessageType = 105
	ClientStateGetRequest         MessageType = 106
	ClientStateGetResponse        MessageType = 107
	ClientBlockListRequest        MessageType = 108
	ClientBlockListResponse       MessageType = 109
	ClientBlockGetRequest         MessageType = 110
	ClientBlockGetResponse        MessageType = 111
	ClientBatchListRequest        MessageType = 112
	ClientBatchListResponse       MessageType = 113
	ClientBatchGetRequest         MessageType = 114
	ClientBatchGetResponse        MessageType = 115
	ClientTransactionListRequest  MessageType = 116
	ClientTransactionListResponse MessageType = 117
	ClientTransactionGetRequest   MessageType = 118
	ClientTransactionGetResponse  MessageType = 119
	ClientReceiptGetRequest       MessageType = 120
	ClientReceiptGetResponse      MessageType = 121

	PingRequest  MessageType = 200
	PingResponse MessageType = 201

	// ValidatorNotReady is broadcast by the validator without a correlation id
	// while it has no usable chain state.
	ValidatorNotReady MessageType = 300
)

var messageTypeNames = map[MessageType]string{
	DefaultMessageType:            "DEFAULT",
	ClientBatchSubmitRequest:      "CLIENT_BATCH_SUBMIT_REQUEST",
	ClientBatchSubmitResponse:     "CLIENT_BATCH_SUBMIT_RESPONSE",
	ClientBatchStatusRequest:      "CLIENT_BATCH_STATUS_REQUEST",
	ClientBatchStatusResponse:     "CLIENT_BATCH_STATUS_RESPONSE",
	ClientStateListRequest:        "CLIENT_STATE_LIST_REQUEST",
	ClientStateListResponse:       "CLIENT_STATE_LIST_RESPONSE",
	ClientStateGetRequest:         "CLIENT_STATE_GET_REQUEST",
	ClientStateGetResponse:        "CLIENT_STATE_GET_RESPONSE",
	ClientBlockListRequest:        "CLIENT_BLOCK_LIST_REQUEST",
	ClientBlockListResponse:       "CLIENT_BLOCK_LIST_RESPONSE",
	ClientBlockGetRequest:         "CLIENT_BLOCK_GET_REQUEST",
	ClientBlockGetResponse:        "CLIENT_BLOCK_GET_RESPONSE",
	ClientBatchListRequest:        "CLIENT_BATCH_LIST_REQUEST",
	ClientBatchListResponse:       "CLIENT_BATCH_LIST_RESPONSE",
	ClientBatchGetRequest:         "CLIENT_BATCH_GET_REQUEST",
	ClientBatchGetResponse:        "CLIENT_BATCH_GET_RESPONSE",
	ClientTransactionListRequest:  "CLIENT_TRANSACTION_LIST_REQUEST",
	ClientTransactionListResponse: "CLIENT_TRANSACTION_LIST_RESPONSE",
	ClientTransactionGetRequest:   "CLIENT_TRANSACTION_GET_REQUEST",
	ClientTransactionGetResponse:  "CLIENT_TRANSACTION_GET_RESPONSE",
	ClientReceiptGetRequest:       "CLIENT_RECEIPT_GET_REQUEST",
	ClientReceiptGetResponse:      "CLIENT_RECEIPT_GET_RESPONSE",
	PingRequest:                   "PING_REQUEST",
	PingResponse:                  "PING_RESPONSE",
	ValidatorNotReady:             "VALIDATOR_NOT_READY",
}

func (t MessageType) String() string {
	if n, ok := messageTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("MessageType(%d)", int32(t))
}

// IsClientRequest reports whether t is a request of the client API.
func (t MessageType) IsClientRequest() bool {
	return t >= ClientBatchSubmitRequest && t <= ClientReceiptGetRequest && t%2 == 0
}

// ResponseType returns the response type paired with request type t.
func (t MessageType) ResponseType() MessageType {
	if t.IsClientRequest() || t == PingRequest {
		return t + 1
	}
	return DefaultMessageType
}

// Message is the envelope of every frame exchanged with the validator.
type Message struct {
	MessageType   MessageType
	CorrelationID string
	Content       []byte
}

// Marshal encodes m in protobuf wire format.
func (m *Message) Marshal() []byte {
	var b []byte
	b = appendUint(b, 1, uint64(m.MessageType))
	b = appendString(b, 2, m.CorrelationID)
	b = appendBytes(b, 3, m.Content)
	return b
}

// Unmarshal decodes data into m, replacing its contents.
func (m *Message) Unmarshal(data []byte) error {
	*m = Message{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var v uint64
			v, err = f.uint()
			m.MessageType = MessageType(int32(v))
		case 2:
			m.CorrelationID, err = f.str()
		case 3:
			m.Content, err = f.raw()
		}
		return err
	})
}

// Reply builds the response envelope for m carrying content.
func (m *Message) Reply(content []byte) *Message {
	return &Message{
		MessageType:   m.MessageType.ResponseType(),
		CorrelationID: m.CorrelationID,
		Content:       content,
	}
}
