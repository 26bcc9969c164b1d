package requests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"datashare/shared/constants"
)

// ProgressFunc receives the number of file bytes sent so far and the file size.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	reader   io.Reader
	sent     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}

	return n, err
}

// UploadFile streams the file at path to url as a multipart form, with the
// file under the "file" field alongside any extra form fields. The body length
// is computed up front so that the request is not sent chunked.
func UploadFile(
	token, url, path string,
	fields map[string]string,
	progress ProgressFunc,
) (*http.Response, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	var head bytes.Buffer
	writer := multipart.NewWriter(&head)
	for key, val := range fields {
		if err = writer.WriteField(key, val); err != nil {
			return nil, err
		}
	}

	_, err = writer.CreateFormFile(constants.UploadFieldName, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	// Close writes the trailing boundary, which has to come after the file
	// contents, so it's split off from the header portion here.
	headLen := head.Len()
	if err = writer.Close(); err != nil {
		return nil, err
	}

	tail := bytes.Clone(head.Bytes()[headLen:])
	head.Truncate(headLen)

	body := io.MultiReader(
		&head,
		&progressReader{reader: file, total: stat.Size(), progress: progress},
		bytes.NewReader(tail))

	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.ContentLength = int64(headLen) + stat.Size() + int64(len(tail))
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return do(token, req)
}
