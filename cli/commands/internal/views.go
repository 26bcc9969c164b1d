package internal

type View int

const (
	NullView View = iota
	FilePickerView
	ConfirmationView
	InputView
	PreviewView
	UserFormView
	SortView
	ExportView
)

type RequestType int

const (
	InvalidRequest RequestType = iota
	UploadFileRequest
	DeleteFileRequest
	RenameFileRequest
	PreviewFileRequest
	NewUserRequest
	EditUserRequest
	DeleteUserRequest
	SearchRequest
	SortRequest
	ExportRequest
)

// ViewRequest is set by a table view right before it quits, telling the
// view loop which subview to run before resuming the table.
type ViewRequest struct {
	View  View
	Type  RequestType
	ID    int
	Name  string
	Value string
}
