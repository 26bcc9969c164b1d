package files

import (
	"fmt"
	"sync"

	"datashare/cli/api"
	"datashare/cli/utils"
	"datashare/shared"
)

// Store holds the current user's files and the list of shared files. Every
// mutation re-fetches both lists from the server.
type Store struct {
	api *api.Context

	mu             sync.RWMutex
	files          []shared.File
	sharedFiles    []shared.File
	allFiles       []shared.File
	loading        bool
	err            string
	uploadProgress int
}

func New(ctx *api.Context) *Store {
	return &Store{api: ctx}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Store) fail(err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = utils.ErrorMessage(err, fallback)
}

func (s *Store) fetchFiles() ([]shared.File, error) {
	files, err := s.api.GetFiles()
	if err != nil {
		s.fail(err, "Failed to fetch files")
		return nil, err
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
	return files, nil
}

func (s *Store) fetchShared() ([]shared.File, error) {
	files, err := s.api.GetSharedFiles()
	if err != nil {
		s.fail(err, "Failed to fetch shared files")
		return nil, err
	}

	s.mu.Lock()
	s.sharedFiles = files
	s.mu.Unlock()
	return files, nil
}

// refresh re-fetches both lists after a successful mutation.
func (s *Store) refresh() error {
	if _, err := s.fetchFiles(); err != nil {
		return err
	}

	_, err := s.fetchShared()
	return err
}

func (s *Store) Fetch() ([]shared.File, error) {
	s.begin()
	defer s.done()
	return s.fetchFiles()
}

func (s *Store) FetchShared() ([]shared.File, error) {
	s.begin()
	defer s.done()
	return s.fetchShared()
}

// FetchAll fetches every file on the server (admin only).
func (s *Store) FetchAll() ([]shared.File, error) {
	s.begin()
	defer s.done()

	files, err := s.api.GetAllFiles()
	if err != nil {
		s.fail(err, "Failed to fetch files")
		return nil, err
	}

	s.mu.Lock()
	s.allFiles = files
	s.mu.Unlock()
	return files, nil
}

// Upload uploads the file at path. UploadProgress reports the percentage sent
// while the upload is running and is reset to 0 once it has finished.
func (s *Store) Upload(path string, isShared bool) (shared.FilesResponse, error) {
	s.begin()
	defer s.done()

	s.setProgress(0)
	defer s.setProgress(0)

	resp, err := s.api.UploadFile(path, isShared, func(sent, total int64) {
		if total > 0 {
			s.setProgress(int(sent * 100 / total))
		}
	})
	if err != nil {
		s.fail(err, "File upload failed")
		return shared.FilesResponse{}, err
	}

	return resp, s.refresh()
}

func (s *Store) Delete(id int) error {
	s.begin()
	defer s.done()

	if err := s.api.DeleteFile(id); err != nil {
		s.fail(err, "Failed to delete file")
		return err
	}

	return s.refresh()
}

func (s *Store) ToggleShare(id int, isShared bool) (shared.ShareFileResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.ShareFile(id, isShared)
	if err != nil {
		s.fail(err, "Failed to update sharing")
		return shared.ShareFileResponse{}, err
	}

	return resp, s.refresh()
}

func (s *Store) Rename(id int, filename string) (shared.FileResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.RenameFile(id, filename)
	if err != nil {
		s.fail(err, "Failed to rename file")
		return shared.FileResponse{}, err
	}

	return resp, s.refresh()
}

// Copy copies a shared file into the user's own files.
func (s *Store) Copy(id int) (shared.FileResponse, error) {
	s.begin()
	defer s.done()

	resp, err := s.api.CopyFile(id)
	if err != nil {
		s.fail(err, "Failed to copy file")
		return shared.FileResponse{}, err
	}

	return resp, s.refresh()
}

// Download saves a file into dir, without overwriting any existing file of
// the same name. Returns the path the file was written to.
func (s *Store) Download(id int, dir string) (string, error) {
	s.begin()
	defer s.done()

	download, err := s.api.DownloadFile(id)
	if err != nil {
		s.fail(err, "Failed to download file")
		return "", err
	}

	fallback := fmt.Sprintf("file_%d", id)
	if file, ok := s.find(id); ok {
		fallback = file.Filename
	}

	name := utils.FilenameFromDisposition(download.Disposition, fallback)
	path, err := utils.SaveToDir(dir, name, download.Contents)
	if err != nil {
		s.fail(err, "Failed to save file")
		return "", err
	}

	return path, nil
}

func (s *Store) find(id int) (shared.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range [][]shared.File{s.files, s.sharedFiles, s.allFiles} {
		for _, file := range list {
			if file.ID == id {
				return file, true
			}
		}
	}

	return shared.File{}, false
}

func (s *Store) setProgress(progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadProgress = progress
}

func (s *Store) Files() []shared.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.File(nil), s.files...)
}

func (s *Store) SharedFiles() []shared.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.File(nil), s.sharedFiles...)
}

func (s *Store) AllFiles() []shared.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shared.File(nil), s.allFiles...)
}

func (s *Store) TotalFiles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *Store) TotalSharedFiles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sharedFiles)
}

func (s *Store) UploadProgress() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploadProgress
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
