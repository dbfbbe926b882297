// Package ramvfs contains core domain types and interfaces for the in-memory
// filesystem and the shells built on top of it.
package ramvfs

// Ino is the process-lifetime unique identity of a node.
type Ino uint32

// RootIno is reserved for the root directory
const RootIno Ino = 0

// NodeKind identifies the variant of a node. Only File and Directory nodes are
// created today; the remaining kinds are reserved for future backing stores.
type NodeKind uint8

const (
	FileKind NodeKind = iota + 1
	DirKind
	CharDeviceKind
	BlockDeviceKind
	PipeKind
	SymlinkKind
	MountpointKind
)

func (k NodeKind) String() string {
	switch k {
	case FileKind:
		return "file"
	case DirKind:
		return "directory"
	case CharDeviceKind:
		return "char device"
	case BlockDeviceKind:
		return "block device"
	case PipeKind:
		return "pipe"
	case SymlinkKind:
		return "symlink"
	case MountpointKind:
		return "mountpoint"
	default:
		return "unknown"
	}
}

// Perm is an advisory permission bit set. It is stored but never enforced.
type Perm uint8

const (
	PermRead Perm = 1 << iota
	PermWrite
	PermExec
)

// Default permissions by kind
const (
	DefaultDirPerm  = PermRead | PermWrite | PermExec
	DefaultFilePerm = PermRead | PermWrite
)

// String renders the bits as "rwx" with dashes for missing bits
func (p Perm) String() string {
	b := []byte("---")
	if p&PermRead != 0 {
		b[0] = 'r'
	}
	if p&PermWrite != 0 {
		b[1] = 'w'
	}
	if p&PermExec != 0 {
		b[2] = 'x'
	}
	return string(b)
}

// NodeInfo is a read-only snapshot of a node's metadata handed to callers
// outside the filesystem. It never aliases the node's content.
type NodeInfo struct {
	Name     string
	Ino      Ino
	Kind     NodeKind
	Perm     Perm
	Length   uint32
	Created  uint32 // logical timestamp
	Modified uint32 // logical timestamp
	// Parent is meaningless when HasParent is false (root)
	Parent    Ino
	HasParent bool
}

// IsDir reports whether the node is a directory
func (n NodeInfo) IsDir() bool {
	return n.Kind == DirKind
}

// DirEntry binds a child name to its inode under a directory
type DirEntry struct {
	Name string
	Ino  Ino
	Kind NodeKind
}

// Stats holds aggregate filesystem statistics
type Stats struct {
	TotalFiles       int
	TotalDirectories int
	TotalBytes       uint64
	UsedNodes        int
	MaxNodes         int
	// FreeSpace is an approximation: unused node slots times a fixed unit.
	// It is unrelated to content bytes.
	FreeSpace uint64
}
