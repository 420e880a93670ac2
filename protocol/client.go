package protocol

// BatchSubmitRequest submits batches for inclusion in the chain.
type BatchSubmitRequest struct {
	Batches []*Batch
}

func (r *BatchSubmitRequest) Marshal() []byte {
	return (&BatchList{Batches: r.Batches}).Marshal()
}

func (r *BatchSubmitRequest) Unmarshal(data []byte) error {
	var l BatchList
	if err := l.Unmarshal(data); err != nil {
		return err
	}
	r.Batches = l.Batches
	return nil
}

// BatchStatusRequest asks for the commit state of batches. With Wait set the
// validator holds the reply until every batch leaves PENDING or Timeout
// seconds pass.
type BatchStatusRequest struct {
	BatchIDs []string
	Wait     bool
	Timeout  uint32
}

func (r *BatchStatusRequest) Marshal() []byte {
	var b []byte
	b = appendStrings(b, 1, r.BatchIDs)
	b = appendBool(b, 2, r.Wait)
	b = appendUint(b, 3, uint64(r.Timeout))
	return b
}

func (r *BatchStatusRequest) Unmarshal(data []byte) error {
	*r = BatchStatusRequest{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var id string
			if id, err = f.str(); err == nil {
				r.BatchIDs = append(r.BatchIDs, id)
			}
		case 2:
			r.Wait, err = f.boolean()
		case 3:
			var v uint64
			v, err = f.uint()
			r.Timeout = uint32(v)
		}
		return err
	})
}

// StateGetRequest fetches the data at one full address.
type StateGetRequest struct {
	HeadID  string
	Address string
}

func (r *StateGetRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, r.HeadID)
	b = appendString(b, 2, r.Address)
	return b
}

func (r *StateGetRequest) Unmarshal(data []byte) error {
	*r = StateGetRequest{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			r.HeadID, err = f.str()
		case 2:
			r.Address, err = f.str()
		}
		return err
	})
}

// PagingControls selects a page of a listing.
type PagingControls struct {
	Start string
	Limit int32
}

func (p *PagingControls) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, p.Start)
	b = appendUint(b, 2, uint64(p.Limit))
	return b
}

func (p *PagingControls) Unmarshal(data []byte) error {
	*p = PagingControls{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			p.Start, err = f.str()
		case 2:
			var v uint64
			v, err = f.uint()
			p.Limit = int32(v)
		}
		return err
	})
}

// SortControls orders a listing by a key path.
type SortControls struct {
	Keys    []string
	Reverse bool
}

func (s *SortControls) Marshal() []byte {
	var b []byte
	b = appendStrings(b, 1, s.Keys)
	b = appendBool(b, 2, s.Reverse)
	return b
}

func (s *SortControls) Unmarshal(data []byte) error {
	*s = SortControls{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			var k string
			if k, err = f.str(); err == nil {
				s.Keys = append(s.Keys, k)
			}
		case 2:
			s.Reverse, err = f.boolean()
		}
		return err
	})
}

// ListRequest is shared by the block, batch, transaction and state listings.
// Address is a prefix and only meaningful for state.
type ListRequest struct {
	HeadID  string
	IDs     []string
	Paging  *PagingControls
	Sorting []*SortControls
	Address string
}

func (r *ListRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, r.HeadID)
	b = appendStrings(b, 2, r.IDs)
	if r.Paging != nil {
		b = appendMessage(b, 3, r.Paging)
	}
	for _, s := range r.Sorting {
		b = appendMessage(b, 4, s)
	}
	b = appendString(b, 5, r.Address)
	return b
}

func (r *ListRequest) Unmarshal(data []byte) error {
	*r = ListRequest{}
	var paging []byte
	var sorts [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			r.HeadID, err = f.str()
		case 2:
			var id string
			if id, err = f.str(); err == nil {
				r.IDs = append(r.IDs, id)
			}
		case 3:
			paging, err = f.raw()
		case 4:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				sorts = append(sorts, raw)
			}
		case 5:
			r.Address, err = f.str()
		}
		return err
	})
	if err != nil {
		return err
	}
	if paging != nil {
		if r.Paging, err = DecodeOne[PagingControls](paging); err != nil {
			return err
		}
	}
	if len(sorts) > 0 {
		r.Sorting, err = DecodeAll[SortControls](sorts)
	}
	return err
}

// GetByIDRequest fetches one block, batch or transaction.
type GetByIDRequest struct {
	ID string
}

func (r *GetByIDRequest) Marshal() []byte {
	return appendString(nil, 1, r.ID)
}

func (r *GetByIDRequest) Unmarshal(data []byte) error {
	*r = GetByIDRequest{}
	return walk(data, func(f field) error {
		if f.num != 1 {
			return nil
		}
		var err error
		r.ID, err = f.str()
		return err
	})
}

// ReceiptGetRequest fetches the receipts of committed transactions.
type ReceiptGetRequest struct {
	TransactionIDs []string
}

func (r *ReceiptGetRequest) Marshal() []byte {
	return appendStrings(nil, 1, r.TransactionIDs)
}

func (r *ReceiptGetRequest) Unmarshal(data []byte) error {
	*r = ReceiptGetRequest{}
	return walk(data, func(f field) error {
		if f.num != 1 {
			return nil
		}
		id, err := f.str()
		r.TransactionIDs = append(r.TransactionIDs, id)
		return err
	})
}
