// Package protocol defines the binary envelope exchanged with the validator and
// the client request/response messages carried inside it.
//
// Messages use the protobuf wire format, encoded and decoded by hand with
// protowire. Every client response carries its ResponseStatus in field 1, so
// PeekStatus can classify a response without knowing its concrete type.
//
//	msg := &protocol.Message{
//	    MessageType:   protocol.ClientBatchStatusRequest,
//	    CorrelationID: id,
//	    Content:       (&protocol.BatchStatusRequest{BatchIDs: ids}).Marshal(),
//	}
//	frame := msg.Marshal()
package protocol
