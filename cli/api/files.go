package api

import (
	"io"
	"net/url"
	"strconv"

	"datashare/cli/requests"
	"datashare/shared"
	"datashare/shared/constants"
	"datashare/shared/endpoints"
)

// Download is the raw body of a binary response, along with the
// Content-Disposition header the server sent for it.
type Download struct {
	Contents    []byte
	Disposition string
}

func (ctx *Context) fetchFiles(query url.Values) ([]shared.File, error) {
	var filesResponse shared.FilesResponse
	err := ctx.get(endpoints.Files.WithQuery(ctx.Server, query), &filesResponse)
	if err != nil {
		return nil, err
	}

	return filesResponse.Files, nil
}

// GetFiles returns the files uploaded by the current user.
func (ctx *Context) GetFiles() ([]shared.File, error) {
	return ctx.fetchFiles(nil)
}

// GetSharedFiles returns every file that has been shared by any user.
func (ctx *Context) GetSharedFiles() ([]shared.File, error) {
	return ctx.fetchFiles(url.Values{"shared": {"true"}})
}

// GetAllFiles returns every file on the server. Admin only.
func (ctx *Context) GetAllFiles() ([]shared.File, error) {
	return ctx.fetchFiles(url.Values{"all": {"true"}})
}

// UploadFile uploads the file at path, reporting the number of bytes sent as
// the upload progresses.
func (ctx *Context) UploadFile(
	path string,
	isShared bool,
	progress requests.ProgressFunc,
) (shared.FilesResponse, error) {
	fields := map[string]string{
		constants.UploadSharedField: strconv.FormatBool(isShared),
	}

	resp, err := requests.UploadFile(
		ctx.Token(),
		endpoints.Files.Format(ctx.Server),
		path,
		fields,
		progress)
	if err != nil {
		return shared.FilesResponse{}, err
	}

	var uploadResponse shared.FilesResponse
	if err = ctx.decode(resp, &uploadResponse); err != nil {
		return shared.FilesResponse{}, err
	}

	return uploadResponse, nil
}

func (ctx *Context) DeleteFile(id int) error {
	endpoint := endpoints.File.Format(ctx.Server, strconv.Itoa(id))
	return ctx.delete(endpoint, nil)
}

func (ctx *Context) ShareFile(id int, isShared bool) (shared.ShareFileResponse, error) {
	var shareResponse shared.ShareFileResponse
	endpoint := endpoints.ShareFile.Format(ctx.Server, strconv.Itoa(id))
	err := ctx.put(endpoint, shared.ShareFile{IsShared: isShared}, &shareResponse)
	if err != nil {
		return shared.ShareFileResponse{}, err
	}

	return shareResponse, nil
}

func (ctx *Context) RenameFile(id int, filename string) (shared.FileResponse, error) {
	var fileResponse shared.FileResponse
	endpoint := endpoints.RenameFile.Format(ctx.Server, strconv.Itoa(id))
	err := ctx.put(endpoint, shared.RenameFile{Filename: filename}, &fileResponse)
	if err != nil {
		return shared.FileResponse{}, err
	}

	return fileResponse, nil
}

// CopyFile copies a shared file into the current user's own files.
func (ctx *Context) CopyFile(id int) (shared.FileResponse, error) {
	var fileResponse shared.FileResponse
	endpoint := endpoints.CopyFile.Format(ctx.Server, strconv.Itoa(id))
	err := ctx.post(endpoint, struct{}{}, &fileResponse)
	if err != nil {
		return shared.FileResponse{}, err
	}

	return fileResponse, nil
}

func (ctx *Context) DownloadFile(id int) (Download, error) {
	return ctx.download(endpoints.File.Format(ctx.Server, strconv.Itoa(id)))
}

func (ctx *Context) download(endpoint string) (Download, error) {
	resp, err := requests.GetRequest(ctx.Token(), endpoint)
	if err != nil {
		return Download{}, err
	}

	defer resp.Body.Close()
	if err = ctx.checkResponse(resp); err != nil {
		return Download{}, err
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return Download{}, err
	}

	return Download{
		Contents:    contents,
		Disposition: resp.Header.Get("Content-Disposition"),
	}, nil
}
