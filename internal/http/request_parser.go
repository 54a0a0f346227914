// Package http provides HTTP server and handler implementations.
//
// This file implements parsing of add-entry requests and receipt query
// parameters, for both form posts and JSON bodies.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"receipts/internal/core"
	"receipts/internal/report"
)

const maxBodyBytes = 1 << 16

var errBadRequest = errors.New("malformed request")

// addEntryJSON is the JSON form of an add action. Amount may be sent as a
// number or a string.
type addEntryJSON struct {
	Type     string          `json:"type"`
	Date     string          `json:"date"`
	Amount   json.RawMessage `json:"amount"`
	Quantity *int            `json:"quantity"`
}

// ParseAddRequest reads an add action from a form post or a JSON body.
// A missing quantity means 1; a present but unparseable quantity is passed
// on as 0 so validation rejects it.
func ParseAddRequest(r *http.Request) (core.AddRequest, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if isJSONRequest(r) {
		return parseAddJSON(r.Body)
	}
	if err := r.ParseForm(); err != nil {
		return core.AddRequest{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return ParseAddForm(r.PostForm), nil
}

func ParseAddForm(form url.Values) core.AddRequest {
	req := core.AddRequest{
		Type:     sanitizeInput(form.Get("type")),
		Date:     strings.TrimSpace(form.Get("date")),
		Amount:   strings.TrimSpace(form.Get("amount")),
		Quantity: 1,
	}
	if v := strings.TrimSpace(form.Get("quantity")); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			q = 0
		}
		req.Quantity = q
	}
	return req
}

func parseAddJSON(body io.Reader) (core.AddRequest, error) {
	var in addEntryJSON
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return core.AddRequest{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	req := core.AddRequest{
		Type:     sanitizeInput(in.Type),
		Date:     strings.TrimSpace(in.Date),
		Amount:   strings.Trim(strings.TrimSpace(string(in.Amount)), `"`),
		Quantity: 1,
	}
	if req.Amount == "null" {
		req.Amount = ""
	}
	if in.Quantity != nil {
		req.Quantity = *in.Quantity
	}
	return req, nil
}

// ParseRecipients reads the optional sender ("from") and receiver ("to").
func ParseRecipients(q url.Values) report.Recipients {
	return report.Recipients{
		From: sanitizeInput(q.Get("from")),
		To:   sanitizeInput(q.Get("to")),
	}
}
