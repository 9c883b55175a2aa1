package dailymotion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// responseDecoder accepts a JSON object, or a JSON string holding an encoded
// object as some upload hosts answer.
type responseDecoder struct{}

func (responseDecoder) Decode(resp *http.Response, v any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return decodeBody(data, v)
}

func decodeBody(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("decode string response: %w", err)
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return nil
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type formBody struct {
	values url.Values
}

func (f formBody) ContentType() string {
	return "application/x-www-form-urlencoded"
}

func (f formBody) Body() (io.Reader, error) {
	return strings.NewReader(f.values.Encode()), nil
}

type tokenQuery struct {
	AccessToken string `url:"access_token"`
}

// fieldsQuery restricts a response to a comma separated list of fields.
type fieldsQuery struct {
	Fields string `url:"fields,omitempty"`
}
