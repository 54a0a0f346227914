package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"receipts/internal/core"
)

func TestParseAddForm(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want core.AddRequest
	}{
		{
			name: "all fields",
			form: url.Values{"type": {" court "}, "date": {"2024-02-01"}, "amount": {"600"}, "quantity": {"3"}},
			want: core.AddRequest{Type: "court", Date: "2024-02-01", Amount: "600", Quantity: 3},
		},
		{
			name: "missing quantity defaults to one",
			form: url.Values{"type": {"food"}, "date": {"2024-02-01"}, "amount": {"300"}},
			want: core.AddRequest{Type: "food", Date: "2024-02-01", Amount: "300", Quantity: 1},
		},
		{
			name: "unparseable quantity becomes zero",
			form: url.Values{"type": {"food"}, "date": {"2024-02-01"}, "amount": {"300"}, "quantity": {"two"}},
			want: core.AddRequest{Type: "food", Date: "2024-02-01", Amount: "300", Quantity: 0},
		},
		{
			name: "control characters stripped from type",
			form: url.Values{"type": {"cou\x00rt"}, "quantity": {"1"}},
			want: core.AddRequest{Type: "court", Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAddForm(tt.form); got != tt.want {
				t.Errorf("ParseAddForm() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAddRequest_JSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    core.AddRequest
		wantErr bool
	}{
		{
			name: "numeric amount",
			body: `{"type":"court","date":"2024-02-01","amount":600,"quantity":2}`,
			want: core.AddRequest{Type: "court", Date: "2024-02-01", Amount: "600", Quantity: 2},
		},
		{
			name: "string amount and default quantity",
			body: `{"type":"food","date":"2024-02-01","amount":"12.50"}`,
			want: core.AddRequest{Type: "food", Date: "2024-02-01", Amount: "12.50", Quantity: 1},
		},
		{
			name: "null amount",
			body: `{"type":"food","date":"2024-02-01","amount":null}`,
			want: core.AddRequest{Type: "food", Date: "2024-02-01", Amount: "", Quantity: 1},
		},
		{
			name:    "unknown field",
			body:    `{"type":"food","price":1}`,
			wantErr: true,
		},
		{
			name:    "truncated body",
			body:    `{"type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
			got, err := ParseAddRequest(req)
			if tt.wantErr {
				if !errors.Is(err, errBadRequest) {
					t.Fatalf("expected errBadRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddRequest() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAddRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAddRequest_Form(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("type=court&date=2024-02-01&amount=600"))
	req.Header.Set("Content-Type", formType)
	got, err := ParseAddRequest(req)
	if err != nil {
		t.Fatalf("ParseAddRequest() error = %v", err)
	}
	if got.Type != "court" || got.Quantity != 1 {
		t.Errorf("unexpected request: %+v", got)
	}
}

func TestParseRecipients(t *testing.T) {
	rc := ParseRecipients(url.Values{"from": {" Asha "}, "to": {"Ravi"}})
	if rc.From != "Asha" || rc.To != "Ravi" {
		t.Errorf("ParseRecipients() = %+v", rc)
	}
	if rc := ParseRecipients(url.Values{}); rc.From != "" || rc.To != "" {
		t.Errorf("expected empty recipients, got %+v", rc)
	}
}
