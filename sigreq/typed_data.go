package sigreq

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
)

// TypedPayload is a decoded typed-data request. Legacy (V1) payloads are a
// flat list of rows; V3/V4 payloads carry domain and message trees.
type TypedPayload struct {
	Rows    []cmn.Row
	Domain  any
	Message any
}

type v1Row struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func ParseTypedData(data string) (*TypedPayload, error) {
	s := strings.TrimSpace(data)

	if strings.HasPrefix(s, "[") {
		var rows []v1Row
		if err := decodeJSON(s, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTypedData, err)
		}

		p := &TypedPayload{Rows: make([]cmn.Row, 0, len(rows))}
		for _, r := range rows {
			p.Rows = append(p.Rows, cmn.Row{Name: r.Name, Value: r.Value})
		}
		return p, nil
	}

	var td struct {
		Domain  any `json:"domain"`
		Message any `json:"message"`
	}
	if err := decodeJSON(s, &td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTypedData, err)
	}

	return &TypedPayload{Domain: td.Domain, Message: td.Message}, nil
}

// decodeJSON keeps numbers as json.Number so uint256 values survive display.
func decodeJSON(s string, v any) error {
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	if err := d.Decode(v); err != nil {
		return err
	}
	if _, err := d.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
