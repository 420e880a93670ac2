package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestKinds_LookupIsTotal(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != len(descriptors) {
		t.Fatalf("expected %d kinds with descriptors, got %d names", len(descriptors), len(kinds))
	}
	for _, k := range kinds {
		d := k.Lookup()
		if d.Title == "" || d.Message == "" {
			t.Errorf("%s: empty title or message", k)
		}
		if d.HTTPStatus < 400 || d.HTTPStatus > 503 {
			t.Errorf("%s: status %d outside 400-503", k, d.HTTPStatus)
		}
	}
}

func TestKinds_APICodesAreUnique(t *testing.T) {
	seen := make(map[uint8]Kind)
	for _, k := range Kinds() {
		code := k.Code()
		if prev, ok := seen[code]; ok {
			t.Errorf("api code %d shared by %s and %s", code, prev, k)
		}
		seen[code] = k
	}
}

func TestKind_LookupMissPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered kind")
		}
	}()
	Kind(-1).Lookup()
}

func TestKind_PublishedCodes(t *testing.T) {
	tests := []struct {
		kind   Kind
		code   uint8
		status int
	}{
		{UnknownValidator, 10, http.StatusInternalServerError},
		{ValidatorNotReady, 15, http.StatusServiceUnavailable},
		{ValidatorTimedOut, 17, http.StatusServiceUnavailable},
		{ValidatorDisconnected, 18, http.StatusServiceUnavailable},
		{SendBackoffTimeout, 19, http.StatusRequestTimeout},
		{ValidatorResponseInvalid, 20, http.StatusInternalServerError},
		{BatchQueueFull, 31, http.StatusTooManyRequests},
		{NoBatchesSubmitted, 34, http.StatusBadRequest},
		{BadProtobufSubmitted, 35, http.StatusBadRequest},
		{RequestBodyTooLarge, 36, http.StatusRequestEntityTooLarge},
		{SubmissionWrongContentType, 42, http.StatusBadRequest},
		{InvalidResourceId, 60, http.StatusBadRequest},
		{InvalidStateAddress, 62, http.StatusBadRequest},
		{BlockNotFound, 70, http.StatusNotFound},
		{ReceiptIdQueryInvalid, 83, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Code(); got != tc.code {
				t.Errorf("expected code %d, got %d", tc.code, got)
			}
			if got := tc.kind.HTTPStatus(); got != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, got)
			}
		})
	}
}

func TestKind_Retryable(t *testing.T) {
	for _, k := range []Kind{ValidatorNotReady, ValidatorTimedOut, ValidatorDisconnected, SendBackoffTimeout, BatchQueueFull} {
		if !k.Retryable() {
			t.Errorf("expected %s to be retryable", k)
		}
	}
	for _, k := range []Kind{ValidatorResponseInvalid, InvalidResourceId, UnknownValidator, BlockNotFound} {
		if k.Retryable() {
			t.Errorf("expected %s to NOT be retryable", k)
		}
	}
}

func TestGatewayError_RenderAppendsDetail(t *testing.T) {
	id := strings.Repeat("z", 128)
	resp := New(InvalidResourceId).WithDetail(id).Render()
	if resp.Code != 60 {
		t.Errorf("expected code 60, got %d", resp.Code)
	}
	if resp.Title != "Invalid Resource Id" {
		t.Errorf("unexpected title %q", resp.Title)
	}
	want := InvalidResourceId.Message() + id
	if resp.Message != want {
		t.Errorf("expected message %q, got %q", want, resp.Message)
	}
}

func TestGatewayError_RenderWithoutDetail(t *testing.T) {
	resp := New(BatchQueueFull).Render()
	if resp.Message != BatchQueueFull.Message() {
		t.Errorf("expected bare template, got %q", resp.Message)
	}
}

func TestGatewayError_Newf(t *testing.T) {
	err := Newf(RequestBodyTooLarge, "%d", 1024)
	if err.Detail != "1024" {
		t.Errorf("expected detail 1024, got %q", err.Detail)
	}
}

func TestErrorResponse_JSONShape(t *testing.T) {
	b, err := json.Marshal(New(ValidatorTimedOut).Render())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body) != 3 {
		t.Errorf("expected exactly code/title/message, got %v", body)
	}
	if body["code"] != float64(17) {
		t.Errorf("expected code 17, got %v", body["code"])
	}
}

func TestGatewayError_CauseChain(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := New(ValidatorDisconnected).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "ValidatorDisconnected") {
		t.Errorf("Error() should contain kind, got %q", err.Error())
	}
}

func TestAsGatewayError_Wrapped(t *testing.T) {
	orig := New(BlockNotFound)
	wrapped := fmt.Errorf("fetch block: %w", orig)

	got, ok := AsGatewayError(wrapped)
	if !ok || got != orig {
		t.Fatal("expected AsGatewayError to find the original error")
	}
	if !Is(wrapped, BlockNotFound) {
		t.Error("expected Is to match BlockNotFound")
	}
	if Is(wrapped, BatchNotFound) {
		t.Error("expected Is to reject BatchNotFound")
	}
	if _, ok := AsGatewayError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error to not be a GatewayError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := New(StateNotFound)
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original GatewayError unchanged")
	}

	plain := fmt.Errorf("boom")
	got := Wrap(plain)
	if got.Kind != UnknownValidator {
		t.Errorf("expected UnknownValidator, got %s", got.Kind)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
