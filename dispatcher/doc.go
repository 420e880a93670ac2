// Package dispatcher turns the asynchronous validator channel into
// request/response calls.
//
// Every attempt gets a fresh correlation id and an entry in a pending table.
// The entry is resolved exactly once, by whichever comes first: the matching
// response, the per-attempt timer, or a disconnect of the channel. Responses
// that find no entry are discarded.
//
//	d := dispatcher.New(channel, dispatcher.DefaultRetryPolicy(), log)
//	resp, err := d.Send(ctx, protocol.ClientBatchStatusRequest, req.Marshal())
package dispatcher
