package ramvfs

// NodeRequest has common fields embedded in concrete request types
type NodeRequest struct {
	Path string
	Type NodeCreateRequestType
	UUID string // Request id used to correlate loader logs
	// Perms are optional; zero means the kind's default
	Perms Perm
}

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType "dir"
type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeRequest
	// Source is optional; files without one start empty
	Source ContentProvider
}

type DirCreateRequest struct {
	NodeRequest
}
