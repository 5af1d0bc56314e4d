package mergefs

// Exists reports whether any readable entry has the path. A per-entry
// failure during the check counts as "does not exist on that entry" and
// never aborts the scan; an empty registry returns false.
func (u *FS) Exists(name string) bool {
	name = cleanPath(name)

	entries := u.snapshot()
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		if !a.readable {
			continue
		}
		if a.exists != nil {
			if ok, err := a.exists(name); err == nil && ok {
				return true
			}
			continue
		}
		if _, err := a.backend.Stat(name); err == nil {
			return true
		}
	}
	return false
}
