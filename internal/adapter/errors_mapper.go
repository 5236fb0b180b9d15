package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody covers both PostgREST ({code, message}) and GoTrue
// ({error_code, msg} or {error, error_description}) error payloads.
type errorBody struct {
	Code             string `json:"code"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}

	body := strings.TrimSpace(string(resp.Body()))
	var parsed errorBody
	if json.Unmarshal(resp.Body(), &parsed) == nil {
		apiErr.Code = firstNonEmpty(parsed.Code, parsed.ErrorCode, parsed.Error)
		apiErr.Message = firstNonEmpty(parsed.Message, parsed.Msg, parsed.ErrorDescription)
	}
	if apiErr.Message == "" {
		apiErr.Message = body
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		apiErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusConflict:
		apiErr.kind = ErrConflict
	case http.StatusUnprocessableEntity:
		apiErr.kind = ErrUnprocessable
	case http.StatusInternalServerError:
		apiErr.kind = ErrInternalServerError
	default:
		apiErr.kind = ErrUnexpectedStatus
	}

	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
