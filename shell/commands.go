package shell

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/brettbedarf/ramvfs"
)

// catLimit bounds the bytes cat prints from one file
const catLimit = 64 * 1024

type command struct {
	name  string
	usage string
	desc  string
	run   func(s *Shell, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"help", "help", "Show available commands", cmdHelp},
		{"ls", "ls [path]", "List directory contents", cmdLs},
		{"cat", "cat <file>", "Display file contents", cmdCat},
		{"cd", "cd [path]", "Change directory", cmdCd},
		{"pwd", "pwd", "Print working directory", cmdPwd},
		{"mkdir", "mkdir [-p] <path>", "Create directory", cmdMkdir},
		{"touch", "touch <file>", "Create empty file", cmdTouch},
		{"echo", "echo <text> [> file]", "Display text or create a file with it", cmdEcho},
		{"write", "write <file> <offset> <text>", "Overwrite file bytes in place", cmdWrite},
		{"clear", "clear", "Clear screen", cmdClear},
		{"tree", "tree [path]", "Show directory tree", cmdTree},
		{"stat", "stat <path>", "Show file/directory info", cmdStat},
		{"mem", "mem", "Show memory information", cmdMem},
		{"df", "df", "Show filesystem usage", cmdDf},
		{"history", "history", "Show recent commands", cmdHistory},
		{"exit", "exit", "Exit the shell", cmdExit},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(name string) error {
	c, _ := lookupCommand(name)
	return fmt.Errorf("%w: %s", ErrUsage, c.usage)
}

// splitParent separates the final component from its parent directory path.
// An empty parent means the current directory.
func splitParent(p string) (dir, name string) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return p, ""
	}
	dir, name = path.Split(trimmed)
	return dir, name
}

// createIn resolves the parent of p and runs create with its inode
func (s *Shell) createIn(p string, create func(dir ramvfs.Ino, name string) error) error {
	dir, name := splitParent(p)
	parent, err := s.session.Resolve(dir)
	if err != nil {
		return err
	}
	return create(parent.Ino, name)
}

func cmdHelp(s *Shell, _ []string) error {
	s.println("Available commands:")
	s.println("==================")
	for _, c := range commands {
		s.printf("%-12s- %s\n", c.name, c.desc)
	}
	return nil
}

func cmdLs(s *Shell, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	dir, err := s.session.Resolve(target)
	if err != nil {
		return err
	}
	if !dir.IsDir() {
		return ramvfs.NewError("ls", target, ramvfs.ErrNotDir)
	}
	entries, err := s.fs.Entries(dir.Ino)
	if err != nil {
		return err
	}

	name := dir.Name
	if !dir.HasParent {
		name = "/"
	}
	s.printf("Contents of %s:\n", name)
	for _, e := range entries {
		if e.Kind == ramvfs.DirKind {
			s.printf("[DIR]  %s\n", e.Name)
			continue
		}
		info, err := s.fs.Lookup(e.Ino)
		if err != nil {
			s.printf("[???]  %s\n", e.Name)
			continue
		}
		s.printf("[FILE] %s (%d bytes)\n", e.Name, info.Length)
	}
	return nil
}

func cmdCat(s *Shell, args []string) error {
	if len(args) < 1 {
		return usage("cat")
	}
	for _, p := range args {
		info, err := s.session.Resolve(p)
		if err != nil {
			return err
		}
		data, err := s.fs.Read(info.Ino, 0, min(info.Length, catLimit))
		if err != nil {
			return err
		}
		s.println(string(data))
	}
	return nil
}

func cmdCd(s *Shell, args []string) error {
	target := "/"
	if len(args) > 0 {
		target = args[0]
	}
	_, err := s.session.Chdir(target)
	return err
}

func cmdPwd(s *Shell, _ []string) error {
	s.println(s.session.Path())
	return nil
}

func cmdMkdir(s *Shell, args []string) error {
	parents := len(args) > 0 && args[0] == "-p"
	if parents {
		args = args[1:]
	}
	if len(args) < 1 {
		return usage("mkdir")
	}

	for _, p := range args {
		if parents {
			abs := p
			if !strings.HasPrefix(p, "/") {
				abs = path.Join(s.session.Path(), p)
			}
			if _, err := s.fs.AddDirNode(&ramvfs.DirCreateRequest{
				NodeRequest: ramvfs.NodeRequest{Path: abs, Type: ramvfs.DirNodeType},
			}); err != nil {
				return err
			}
			continue
		}
		err := s.createIn(p, func(dir ramvfs.Ino, name string) error {
			_, err := s.fs.Mkdir(dir, name)
			return err
		})
		if err != nil {
			return err
		}
	}
	s.println("Directory created")
	return nil
}

func cmdTouch(s *Shell, args []string) error {
	if len(args) < 1 {
		return usage("touch")
	}
	for _, p := range args {
		err := s.createIn(p, func(dir ramvfs.Ino, name string) error {
			_, err := s.fs.CreateFile(dir, name, nil)
			return err
		})
		if err != nil {
			return err
		}
	}
	s.println("File created")
	return nil
}

// cmdEcho prints its arguments. With a trailing "> file" it creates the file
// holding the text instead; files cannot grow, so the target must not exist.
func cmdEcho(s *Shell, args []string) error {
	if n := len(args); n >= 2 && args[n-2] == ">" {
		text := strings.Join(args[:n-2], " ")
		return s.createIn(args[n-1], func(dir ramvfs.Ino, name string) error {
			_, err := s.fs.CreateFile(dir, name, []byte(text))
			return err
		})
	}
	s.println(strings.Join(args, " "))
	return nil
}

func cmdWrite(s *Shell, args []string) error {
	if len(args) < 3 {
		return usage("write")
	}
	off, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("%w: invalid offset %q", ErrUsage, args[1])
	}
	info, err := s.session.Resolve(args[0])
	if err != nil {
		return err
	}
	n, err := s.fs.Write(info.Ino, uint32(off), []byte(strings.Join(args[2:], " ")))
	if err != nil {
		return err
	}
	s.printf("Wrote %d bytes\n", n)
	return nil
}

func cmdClear(s *Shell, _ []string) error {
	s.printf("\033[H\033[2J")
	return nil
}

func cmdStat(s *Shell, args []string) error {
	if len(args) < 1 {
		return usage("stat")
	}
	info, err := s.session.Resolve(args[0])
	if err != nil {
		return err
	}
	backend, err := s.fs.Backend(info.Ino)
	if err != nil {
		return err
	}
	p, err := s.fs.PathOf(info.Ino)
	if err != nil {
		return err
	}

	name := info.Name
	if !info.HasParent {
		name = "/"
	}
	s.printf("Name: %s\n", name)
	s.printf("Path: %s\n", p)
	s.printf("Type: %s\n", info.Kind)
	s.printf("Backend: %s\n", backend)
	s.printf("Inode: %d\n", info.Ino)
	s.printf("Perms: %s\n", info.Perm)
	if !info.IsDir() {
		s.printf("Size: %d bytes\n", info.Length)
	}
	s.printf("Created: %d\n", info.Created)
	s.printf("Modified: %d\n", info.Modified)
	return nil
}

func cmdMem(s *Shell, _ []string) error {
	st := s.fs.Allocator().Stats()
	s.println("Memory Information:")
	s.println("==================")
	s.printf("Total allocated: %d bytes\n", st.TotalAllocated)
	s.printf("Allocations: %d\n", st.Allocations)
	s.printf("Frees: %d\n", st.Frees)
	s.printf("Peak usage: %d bytes\n", st.PeakUsage)
	return nil
}

func cmdDf(s *Shell, _ []string) error {
	st := s.fs.Stats()
	s.println("Filesystem Information:")
	s.println("======================")
	s.printf("Files: %d\n", st.TotalFiles)
	s.printf("Directories: %d\n", st.TotalDirectories)
	s.printf("Used bytes: %d\n", st.TotalBytes)
	s.printf("Nodes: %d/%d\n", st.UsedNodes, st.MaxNodes)
	s.printf("Free space: %d bytes\n", st.FreeSpace)
	return nil
}

func cmdHistory(s *Shell, _ []string) error {
	for i, line := range s.history {
		s.printf("%4d  %s\n", i+1, line)
	}
	return nil
}

func cmdExit(_ *Shell, _ []string) error {
	return ErrExit
}
