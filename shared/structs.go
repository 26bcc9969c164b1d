package shared

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type Register struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

type UsersResponse struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// UserUpdate only sends the fields that are set, since the server treats an
// absent key as "leave unchanged".
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserPatch is the user echoed back by an update. A field is nil when its key
// was missing from the reply, so an empty value still counts as a change.
type UserPatch struct {
	ID        *int    `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Role      *Role   `json:"role"`
	Status    *string `json:"status"`
	CreatedAt *string `json:"created_at"`
}

type UserPatchResponse struct {
	Message string    `json:"message,omitempty"`
	User    UserPatch `json:"user"`
}

// Apply overwrites every field of user that is present in the patch.
func (p UserPatch) Apply(user User) User {
	if p.ID != nil {
		user.ID = *p.ID
	}

	if p.Username != nil {
		user.Username = *p.Username
	}

	if p.Email != nil {
		user.Email = *p.Email
	}

	if p.Role != nil {
		user.Role = *p.Role
	}

	if p.Status != nil {
		user.Status = *p.Status
	}

	if p.CreatedAt != nil {
		user.CreatedAt = *p.CreatedAt
	}

	return user
}

type File struct {
	ID        int    `json:"id"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	IsShared  bool   `json:"is_shared"`
	CreatedAt string `json:"created_at,omitempty"`
	Uploader  string `json:"uploader,omitempty"`
}

type FilesResponse struct {
	Message string `json:"message"`
	Files   []File `json:"files"`
}

type FileResponse struct {
	Message string `json:"message"`
	File    File   `json:"file"`
}

type ShareFile struct {
	IsShared bool `json:"is_shared"`
}

type ShareFileResponse struct {
	Message  string `json:"message"`
	IsShared bool   `json:"is_shared"`
}

type RenameFile struct {
	Filename string `json:"filename"`
}

type Column struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Null    string `json:"null,omitempty"`
	Key     string `json:"key,omitempty"`
	Default any    `json:"default,omitempty"`
	Extra   string `json:"extra,omitempty"`
}

type Table struct {
	ID          int      `json:"id"`
	TableName   string   `json:"table_name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Columns     []Column `json:"columns,omitempty"`
	CanEdit     bool     `json:"can_edit,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

type TablesResponse struct {
	Message string  `json:"message"`
	Tables  []Table `json:"tables"`
}

type TableResponse struct {
	Message string `json:"message"`
	Table   Table  `json:"table"`
}

type Pagination struct {
	Page          int `json:"page"`
	PerPage       int `json:"per_page"`
	Total         int `json:"total"`
	RealTotal     int `json:"real_total"`
	FilteredTotal int `json:"filtered_total"`
	Pages         int `json:"pages"`
}

type Row map[string]any

type TableDataResponse struct {
	Message    string     `json:"message"`
	Data       []Row      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TableQuery describes one page request against a table. Zero values fall
// back to the first page, ten rows per page, ascending order.
type TableQuery struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder SortOrder
	Search    string
}

type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)

func (f ExportFormat) Valid() bool {
	return f == ExportCSV || f == ExportExcel
}
