package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/veller/retrofoot-sub002/internal/domain/simulation"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_DomainSentinels(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"not found", fmt.Errorf("%w: match=x", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"dependency", fmt.Errorf("%w: feed down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"match setup", fmt.Errorf("%w: same team twice", simulation.ErrMatchSetup), http.StatusBadRequest, "invalidMatchSetup"},
		{"bad params", fmt.Errorf("%w: trigger chance", simulation.ErrInvalidParams), http.StatusBadRequest, "invalidMatchSetup"},
		{"bad tactics", fmt.Errorf("%w: got 10", tactics.ErrInvalidLineupSize), http.StatusBadRequest, "invalidTactics"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(ctx, tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("unexpected reason: got=%s want=%s", mapped.Reason, tc.wantReason)
			}
		})
	}
}
