package filesystem

import "github.com/brettbedarf/ramvfs"

const (
	readmeContent = "Welcome to ramvfs!\n\n" +
		"This is a small in-memory filesystem with:\n" +
		"- A fixed-size node pool\n" +
		"- Nested directories\n" +
		"- Absolute and relative paths\n" +
		"- A command shell\n\n" +
		"Use 'help' for available commands."
	helloContent = "Hello, World!\n" +
		"This is a test file in the ramvfs filesystem.\n\n" +
		"You can create, read and overwrite files from the shell."
	systemInfoContent = "ramvfs v1.0\n" +
		"Storage: in-memory ramdisk\n" +
		"Memory: bump arena\n" +
		"Persistence: none"
	notesContent = "Personal notes file.\n" +
		"You can write your thoughts here."
)

type seedFile struct {
	dir     string // "" is root
	name    string
	content string
}

// Seed entries in creation order. Root files come before the directories.
var (
	seedRootFiles = []seedFile{
		{name: "readme.txt", content: readmeContent},
		{name: "hello.txt", content: helloContent},
		{name: "system.info", content: systemInfoContent},
	}
	seedDirs   = []string{"documents", "bin"}
	seedNested = []seedFile{
		{dir: "documents", name: "notes.txt", content: notesContent},
	}
)

// Seed populates the startup tree:
//
//	/
//	├── readme.txt
//	├── hello.txt
//	├── system.info
//	├── documents/
//	│   └── notes.txt
//	└── bin/
//
// It expects a freshly built filesystem and fails with ErrExist otherwise.
func (fs *FileSystem) Seed() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dirs := map[string]ramvfs.Ino{"": fs.root.ino}
	for _, f := range seedRootFiles {
		if _, err := fs.createLocked(fs.root.ino, f.name, []byte(f.content), fileCaps{}); err != nil {
			return err
		}
	}
	for _, name := range seedDirs {
		n, err := fs.mkdirLocked(fs.root.ino, name)
		if err != nil {
			return err
		}
		dirs[name] = n.ino
	}
	for _, f := range seedNested {
		if _, err := fs.createLocked(dirs[f.dir], f.name, []byte(f.content), fileCaps{}); err != nil {
			return err
		}
	}
	return nil
}
