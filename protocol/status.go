package protocol

import "fmt"

// ResponseStatus is field 1 of every client API response.
type ResponseStatus int32

const (
	StatusUnset ResponseStatus = iota
	StatusOK
	StatusInternalError
	StatusNotReady
	StatusNoRoot
	StatusNoResource
	StatusInvalidPaging
	StatusInvalidSort
	StatusInvalidID
	StatusInvalidAddress
	StatusInvalidBatch
	StatusQueueFull
)

var statusNames = [...]string{
	StatusUnset:          "STATUS_UNSET",
	StatusOK:             "OK",
	StatusInternalError:  "INTERNAL_ERROR",
	StatusNotReady:       "NOT_READY",
	StatusNoRoot:         "NO_ROOT",
	StatusNoResource:     "NO_RESOURCE",
	StatusInvalidPaging:  "INVALID_PAGING",
	StatusInvalidSort:    "INVALID_SORT",
	StatusInvalidID:      "INVALID_ID",
	StatusInvalidAddress: "INVALID_ADDRESS",
	StatusInvalidBatch:   "INVALID_BATCH",
	StatusQueueFull:      "QUEUE_FULL",
}

func (s ResponseStatus) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("ResponseStatus(%d)", int32(s))
}

// PeekStatus reads the status of any client response without decoding the
// rest of it. A response without field 1 reports StatusUnset.
func PeekStatus(content []byte) (ResponseStatus, error) {
	status := StatusUnset
	err := walk(content, func(f field) error {
		if f.num != 1 {
			return nil
		}
		v, err := f.uint()
		status = ResponseStatus(int32(v))
		return err
	})
	if err != nil {
		return StatusUnset, err
	}
	return status, nil
}

// BatchStatusKind is the commit state of one batch.
type BatchStatusKind int32

const (
	BatchStatusUnset BatchStatusKind = iota
	BatchStatusPending
	BatchStatusCommitted
	BatchStatusInvalid
	BatchStatusUnknown
)

var batchStatusNames = [...]string{
	BatchStatusUnset:     "STATUS_UNSET",
	BatchStatusPending:   "PENDING",
	BatchStatusCommitted: "COMMITTED",
	BatchStatusInvalid:   "INVALID",
	BatchStatusUnknown:   "UNKNOWN",
}

func (s BatchStatusKind) String() string {
	if s >= 0 && int(s) < len(batchStatusNames) {
		return batchStatusNames[s]
	}
	return fmt.Sprintf("BatchStatusKind(%d)", int32(s))
}

// MarshalText renders the status name in JSON bodies.
func (s BatchStatusKind) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
