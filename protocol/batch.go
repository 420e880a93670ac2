package protocol

// Ledger payloads are carried opaquely: headers stay encoded and are only
// checked for a signature, never interpreted.

// Transaction is a signed ledger transaction.
type Transaction struct {
	Header          []byte `json:"header"`
	HeaderSignature string `json:"header_signature"`
	Payload         []byte `json:"payload"`
}

func (t *Transaction) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, t.Header)
	b = appendString(b, 2, t.HeaderSignature)
	b = appendBytes(b, 3, t.Payload)
	return b
}

func (t *Transaction) Unmarshal(data []byte) error {
	*t = Transaction{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			t.Header, err = f.raw()
		case 2:
			t.HeaderSignature, err = f.str()
		case 3:
			t.Payload, err = f.raw()
		}
		return err
	})
}

// Batch groups transactions that must be committed together.
type Batch struct {
	Header          []byte         `json:"header"`
	HeaderSignature string         `json:"header_signature"`
	Transactions    []*Transaction `json:"transactions"`
	Trace           bool           `json:"trace,omitempty"`
}

func (bt *Batch) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, bt.Header)
	b = appendString(b, 2, bt.HeaderSignature)
	for _, txn := range bt.Transactions {
		b = appendMessage(b, 3, txn)
	}
	b = appendBool(b, 4, bt.Trace)
	return b
}

func (bt *Batch) Unmarshal(data []byte) error {
	*bt = Batch{}
	var txns [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			bt.Header, err = f.raw()
		case 2:
			bt.HeaderSignature, err = f.str()
		case 3:
			var raw []byte
			if raw, err = f.raw(); err == nil {
				txns = append(txns, raw)
			}
		case 4:
			bt.Trace, err = f.boolean()
		}
		return err
	})
	if err != nil {
		return err
	}
	bt.Transactions, err = DecodeAll[Transaction](txns)
	return err
}

// BatchIDs returns the header signatures of batches, which identify them.
func BatchIDs(batches []*Batch) []string {
	ids := make([]string, len(batches))
	for i, b := range batches {
		ids[i] = b.HeaderSignature
	}
	return ids
}

// BatchList is the body accepted by the batch submission endpoint.
type BatchList struct {
	Batches []*Batch
}

func (l *BatchList) Marshal() []byte {
	var b []byte
	for _, bt := range l.Batches {
		b = appendMessage(b, 1, bt)
	}
	return b
}

func (l *BatchList) Unmarshal(data []byte) error {
	*l = BatchList{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		if f.num != 1 {
			return nil
		}
		raw, err := f.raw()
		raws = append(raws, raw)
		return err
	})
	if err != nil {
		return err
	}
	l.Batches, err = DecodeAll[Batch](raws)
	return err
}

// Block is a committed set of batches.
type Block struct {
	Header          []byte   `json:"header"`
	HeaderSignature string   `json:"header_signature"`
	Batches         []*Batch `json:"batches"`
}

func (bl *Block) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, bl.Header)
	b = appendString(b, 2, bl.HeaderSignature)
	for _, bt := range bl.Batches {
		b = appendMessage(b, 3, bt)
	}
	return b
}

func (bl *Block) Unmarshal(data []byte) error {
	*bl = Block{}
	var raws [][]byte
	err := walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			bl.Header, err = f.raw()
		case 2:
			bl.HeaderSignature, err = f.str()
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
	bl.Batches, err = DecodeAll[Batch](raws)
	return err
}

// StateEntry is one address and its data in a state listing.
type StateEntry struct {
	Address string `json:"address"`
	Data    []byte `json:"data"`
}

func (e *StateEntry) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, e.Address)
	b = appendBytes(b, 2, e.Data)
	return b
}

func (e *StateEntry) Unmarshal(data []byte) error {
	*e = StateEntry{}
	return walk(data, func(f field) error {
		var err error
		switch f.num {
		case 1:
			e.Address, err = f.str()
		case 2:
			e.Data, err = f.raw()
		}
		return err
	})
}
