package filesystem

import "github.com/brettbedarf/ramvfs"

// dirIndex keeps one fixed-capacity entry table per directory inode.
// Entries are kept in insertion order and never removed.
type dirIndex struct {
	tables map[ramvfs.Ino][]ramvfs.DirEntry
	slots  int
}

func newDirIndex(slots int) *dirIndex {
	return &dirIndex{
		tables: make(map[ramvfs.Ino][]ramvfs.DirEntry),
		slots:  slots,
	}
}

// init claims an empty table for a new directory
func (d *dirIndex) init(dir ramvfs.Ino) {
	d.tables[dir] = make([]ramvfs.DirEntry, 0, d.slots)
}

func (d *dirIndex) hasRoom(dir ramvfs.Ino) bool {
	return len(d.tables[dir]) < d.slots
}

// addEntry records name -> child under dir
func (d *dirIndex) addEntry(dir ramvfs.Ino, name string, child ramvfs.Ino, kind ramvfs.NodeKind) error {
	table, ok := d.tables[dir]
	if !ok {
		return ramvfs.ErrNotDir
	}
	if _, exists := d.lookup(dir, name); exists {
		return ramvfs.ErrExist
	}
	if len(table) >= d.slots {
		return ramvfs.ErrDirFull
	}
	d.tables[dir] = append(table, ramvfs.DirEntry{Name: name, Ino: child, Kind: kind})
	return nil
}

// at returns the i-th entry of dir or false past the end
func (d *dirIndex) at(dir ramvfs.Ino, i int) (ramvfs.DirEntry, bool) {
	table := d.tables[dir]
	if i < 0 || i >= len(table) {
		return ramvfs.DirEntry{}, false
	}
	return table[i], true
}

// list returns a copy of dir's entries
func (d *dirIndex) list(dir ramvfs.Ino) []ramvfs.DirEntry {
	table := d.tables[dir]
	out := make([]ramvfs.DirEntry, len(table))
	copy(out, table)
	return out
}

func (d *dirIndex) count(dir ramvfs.Ino) int {
	return len(d.tables[dir])
}

// lookup is an exact, case-sensitive linear scan
func (d *dirIndex) lookup(dir ramvfs.Ino, name string) (ramvfs.DirEntry, bool) {
	for _, e := range d.tables[dir] {
		if e.Name == name {
			return e, true
		}
	}
	return ramvfs.DirEntry{}, false
}
