package requests

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"datashare/shared/constants"
)

// Client is used for every request sent by the CLI. No timeout is set; the
// server is expected to close long-running requests itself.
var Client = &http.Client{}

func GetRequest(token, url string) (*http.Response, error) {
	return sendRequest(token, http.MethodGet, url, nil)
}

func PostRequest(token, url string, data []byte) (*http.Response, error) {
	return sendRequest(token, http.MethodPost, url, data)
}

func PutRequest(token, url string, data []byte) (*http.Response, error) {
	return sendRequest(token, http.MethodPut, url, data)
}

func DeleteRequest(token, url string) (*http.Response, error) {
	return sendRequest(token, http.MethodDelete, url, nil)
}

func sendRequest(token, method, url string, data []byte) (*http.Response, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return do(token, req)
}

// do attaches the common headers (auth, user agent, request id) and sends the
// request.
func do(token string, req *http.Request) (*http.Response, error) {
	if len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", constants.CLIUserAgent)
	req.Header.Set(constants.RequestIDHeader, requestID)

	resp, err := Client.Do(req)
	if err != nil {
		log.Printf("%s %s [%s] failed: %v\n", req.Method, req.URL.Path, requestID, err)
		return nil, err
	}

	log.Printf("%s %s [%s] -> %d\n", req.Method, req.URL.Path, requestID, resp.StatusCode)
	return resp, nil
}
