package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_List(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	svc.Record(context.Background(), "RelatorioVigilancia", "7", ActionGenerate, nil, "Relatório de vigilância gerado para zona 7")
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auditoria?entity=RelatorioVigilancia", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data  []Entry `json:"data"`
		Total int     `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Data) != 1 || body.Data[0].EntityID != "7" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_List_EmptyIsArray(t *testing.T) {
	h := NewHandler(NewService(NewMemoryRepo()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auditoria", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]json.RawMessage
	json.Unmarshal(rec.Body.Bytes(), &body)
	if string(body["data"]) != "[]" {
		t.Errorf("expected empty array, got %s", body["data"])
	}
}
