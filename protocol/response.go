package protocol

// Response is a correlated reply as handed back by the dispatcher: its status
// has been peeked, the rest of the content is still encoded.
type Response struct {
	Type    MessageType
	Status  ResponseStatus
	Content []byte
}

// StatusOnlyResponse is the reply to a batch submission.
type StatusOnlyResponse struct {
	Status ResponseStatus
}

func (r *StatusOnlyResponse) Marshal() []byte {
	return appendUint(nil, 1, uint64(r.Status))
}

func (r *StatusOnlyResponse) Unmarshal(data []byte) error {
	status, err := PeekStatus(data)
	r.Status = status
	return err
}

// InvalidTransaction explains why a batch was rejected.
type InvalidTransaction struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	ExtendedData []byte `json:"extended_data,omitempty"`
}

func (t *InvalidTransaction) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, t.ID)
	b = appendString(b, 2, t.Message)
	b = appendBytes(b, 3, t.ExtendedData)
	return b
}

func (t *InvalidTransaction) Unmarshal(data []byte) error {
	*t = InvalidTransaction{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			t.ID, err = f.str()
		case 2:
			t.Message, err = f.str()
		case 3:
			t.ExtendedData, err = f.raw()
		}
		return err
	})
}

// BatchStatus is the commit state of one batch.
type BatchStatus struct {
	BatchID             string                `json:"id"`
	Status              BatchStatusKind       `json:"status"`
	InvalidTransactions []*InvalidTransaction `json:"invalid_transactions"`
}

func (s *BatchStatus) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, s.BatchID)
	b = appendUint(b, 2, uint64(s.Status))
	for _, t := range s.InvalidTransactions {
		b = appendMessage(b, 3, t)
	}
	return b
}

func (s *BatchStatus) Unmarshal(data []byte) error {
	*s = BatchStatus{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			s.BatchID, err = f.str()
		case 2:
			var v uint64
			v, err = f.uint()
			s.Status = BatchStatusKind(int32(v))
		case 3:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				raws = append(raws, raw)
			}
		}
		return err
	})
	if err != nil {
		return err
	}
	s.InvalidTransactions, err = DecodeAll[InvalidTransaction](raws)
	return err
}

// BatchStatusResponse is the reply to a BatchStatusRequest.
type BatchStatusResponse struct {
	Status        ResponseStatus
	BatchStatuses []*BatchStatus
}

func (r *BatchStatusResponse) Marshal() []byte {
	b := appendUint(nil, 1, uint64(r.Status))
	for _, s := range r.BatchStatuses {
		b = appendMessage(b, 2, s)
	}
	return b
}

func (r *BatchStatusResponse) Unmarshal(data []byte) error {
	*r = BatchStatusResponse{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var v uint64
			v, err = f.uint()
			r.Status = ResponseStatus(int32(v))
		case 2:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				raws = append(raws, raw)
			}
		}
		return err
	})
	if err != nil {
		return err
	}
	r.BatchStatuses, err = DecodeAll[BatchStatus](raws)
	return err
}

// GetResponse is the reply to a fetch of one resource. Item holds the encoded
// Block, Batch or Transaction, or the raw state value.
type GetResponse struct {
	Status ResponseStatus
	Item   []byte
	HeadID string
}

func (r *GetResponse) Marshal() []byte {
	var b []byte
	b = appendUint(b, 1, uint64(r.Status))
	b = appendBytes(b, 2, r.Item)
	b = appendString(b, 3, r.HeadID)
	return b
}

func (r *GetResponse) Unmarshal(data []byte) error {
	*r = GetResponse{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var v uint64
			v, err = f.uint()
			r.Status = ResponseStatus(int32(v))
		case 2:
			r.Item, err = f.raw()
		case 3:
			r.HeadID, err = f.str()
		}
		return err
	})
}

// PagingResponse describes the page a listing returned.
type PagingResponse struct {
	Next  string `json:"next,omitempty"`
	Start string `json:"start,omitempty"`
	Limit int32  `json:"limit,omitempty"`
}

func (p *PagingResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, p.Next)
	b = appendString(b, 2, p.Start)
	b = appendUint(b, 3, uint64(p.Limit))
	return b
}

func (p *PagingResponse) Unmarshal(data []byte) error {
	*p = PagingResponse{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			p.Next, err = f.str()
		case 2:
			p.Start, err = f.str()
		case 3:
			var v uint64
			v, err = f.uint()
			p.Limit = int32(v)
		}
		return err
	})
}

// ListResponse is the reply to a ListRequest. Items hold encoded resources of
// the listed kind.
type ListResponse struct {
	Status ResponseStatus
	Items  [][]byte
	HeadID string
	Paging *PagingResponse
}

func (r *ListResponse) Marshal() []byte {
	b := appendUint(nil, 1, uint64(r.Status))
	for _, item := range r.Items {
		b = appendElem(b, 2, item)
	}
	b = appendString(b, 3, r.HeadID)
	if r.Paging != nil {
		b = appendMessage(b, 4, r.Paging)
	}
	return b
}

func (r *ListResponse) Unmarshal(data []byte) error {
	*r = ListResponse{}
	var paging []byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var v uint64
			v, err = f.uint()
			r.Status = ResponseStatus(int32(v))
		case 2:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				r.Items = append(r.Items, raw)
			}
		case 3:
			r.HeadID, err = f.str()
		case 4:
			paging, err = f.raw()
		}
		return err
	})
	if err != nil {
		return err
	}
	if paging != nil {
		r.Paging, err = DecodeOne[PagingResponse](paging)
	}
	return err
}

// StateChange records a write or delete performed by a transaction.
type StateChange struct {
	Address string `json:"address"`
	Value   []byte `json:"value,omitempty"`
	Type    string `json:"type"`
}

func (c *StateChange) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, c.Address)
	b = appendBytes(b, 2, c.Value)
	b = appendString(b, 3, c.Type)
	return b
}

func (c *StateChange) Unmarshal(data []byte) error {
	*c = StateChange{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			c.Address, err = f.str()
		case 2:
			c.Value, err = f.raw()
		case 3:
			c.Type, err = f.str()
		}
		return err
	})
}

// EventAttribute is a key/value pair attached to an Event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (a *EventAttribute) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, a.Key)
	b = appendString(b, 2, a.Value)
	return b
}

func (a *EventAttribute) Unmarshal(data []byte) error {
	*a = EventAttribute{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			a.Key, err = f.str()
		case 2:
			a.Value, err = f.str()
		}
		return err
	})
}

// Event is emitted by a transaction during execution.
type Event struct {
	EventType  string            `json:"event_type"`
	Attributes []*EventAttribute `json:"attributes"`
	Data       []byte            `json:"data,omitempty"`
}

func (e *Event) Marshal() []byte {
	b := appendString(nil, 1, e.EventType)
	for _, a := range e.Attributes {
		b = appendMessage(b, 2, a)
	}
	return appendBytes(b, 3, e.Data)
}

func (e *Event) Unmarshal(data []byte) error {
	*e = Event{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			e.EventType, err = f.str()
		case 2:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				raws = append(raws, raw)
			}
		case 3:
			e.Data, err = f.raw()
		}
		return err
	})
	if err != nil {
		return err
	}
	e.Attributes, err = DecodeAll[EventAttribute](raws)
	return err
}

// TransactionReceipt is the execution record of a committed transaction.
type TransactionReceipt struct {
	StateChanges  []*StateChange `json:"state_changes"`
	Events        []*Event       `json:"events"`
	Data          [][]byte       `json:"data"`
	TransactionID string         `json:"id"`
}

func (r *TransactionReceipt) Marshal() []byte {
	var b []byte
	for _, c := range r.StateChanges {
		b = appendMessage(b, 1, c)
	}
	for _, e := range r.Events {
		b = appendMessage(b, 2, e)
	}
	for _, d := range r.Data {
		b = appendElem(b, 3, d)
	}
	return appendString(b, 4, r.TransactionID)
}

func (r *TransactionReceipt) Unmarshal(data []byte) error {
	*r = TransactionReceipt{}
	var changes, events [][]byte
	err := walk(data, func(f field) error {
		var err error
		var raw []byte
		switch f.num {
		case 1:
			if raw, err = f.raw(); err == nil {
				changes = append(changes, raw)
			}
		case 2:
			if raw, err = f.raw(); err == nil {
				events = append(events, raw)
			}
		case 3:
			if raw, err = f.raw(); err == nil {
				r.Data = append(r.Data, raw)
			}
		case 4:
			r.TransactionID, err = f.str()
		}
		return err
	})
	if err != nil {
		return err
	}
	if r.StateChanges, err = DecodeAll[StateChange](changes); err != nil {
		return err
	}
	r.Events, err = DecodeAll[Event](events)
	return err
}

// ReceiptGetResponse is the reply to a ReceiptGetRequest.
type ReceiptGetResponse struct {
	Status   ResponseStatus
	Receipts []*TransactionReceipt
}

func (r *ReceiptGetResponse) Marshal() []byte {
	b := appendUint(nil, 1, uint64(r.Status))
	for _, rc := range r.Receipts {
		b = appendMessage(b, 2, rc)
	}
	return b
}

func (r *ReceiptGetResponse) Unmarshal(data []byte) error {
	*r = ReceiptGetResponse{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var v uint64
			v, err = f.uint()
			r.Status = ResponseStatus(int32(v))
		case 2:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				raws = append(raws, raw)
			}
		}
		return err
	})
	if err != nil {
		return err
	}
	r.Receipts, err = DecodeAll[TransactionReceipt](raws)
	return err
}
