package shell

import (
	"strings"

	"github.com/brettbedarf/ramvfs"
)

type treeLine struct {
	depth int
	info  ramvfs.NodeInfo
}

func cmdTree(s *Shell, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	start, err := s.session.Resolve(target)
	if err != nil {
		return err
	}

	var lines []treeLine
	err = s.fs.Walk(start.Ino, func(depth int, info ramvfs.NodeInfo) error {
		lines = append(lines, treeLine{depth: depth, info: info})
		return nil
	})
	if err != nil {
		return err
	}
	p, err := s.fs.PathOf(start.Ino)
	if err != nil {
		return err
	}

	s.println(renderTree(p, lines))
	return nil
}

// renderTree draws a pre-order listing with box characters. lines[0] is the
// starting node at depth 0.
func renderTree(rootLabel string, lines []treeLine) string {
	var b strings.Builder
	if rootLabel == "/" {
		rootLabel = "/ (root)"
	}
	b.WriteString(rootLabel)

	// last[d] reports whether the most recent node at depth d was the last
	// of its siblings
	last := make([]bool, 1)
	for i := 1; i < len(lines); i++ {
		d := lines[i].depth
		isLast := true
		for _, next := range lines[i+1:] {
			if next.depth <= d {
				isLast = next.depth < d
				break
			}
		}
		for len(last) <= d {
			last = append(last, false)
		}
		last[d] = isLast

		b.WriteByte('\n')
		for level := 1; level < d; level++ {
			if last[level] {
				b.WriteString("    ")
			} else {
				b.WriteString("│   ")
			}
		}
		if isLast {
			b.WriteString("└── ")
		} else {
			b.WriteString("├── ")
		}
		b.WriteString(lines[i].info.Name)
		if lines[i].info.IsDir() {
			b.WriteByte('/')
		}
	}
	return b.String()
}
