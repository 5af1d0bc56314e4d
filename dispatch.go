package mergefs

// resolve1 executes one single-target operation against the entry list,
// attempting entries from last-attached (highest priority) to first,
// stopping at the first success.
//
// On failure the previous attempt's error is linked into the chain and the
// next (lower-priority) entry is tried; if the last entry also fails, its
// failure is returned carrying the full chain. An empty registry fails with
// ErrNoBackends, distinct from every attached backend failing.
func resolve1[T any](u *FS, op, path string, attempt func(*adapter) (T, error)) (T, error) {
	var zero T

	entries := u.snapshot()
	if len(entries) == 0 {
		return zero, opError(op, path, ErrNoBackends)
	}

	var prev *Error
	for i := len(entries) - 1; i >= 0; i-- {
		v, err := attempt(entries[i])
		if err == nil {
			return v, nil
		}
		u.log.Trace().
			Str("op", op).
			Str("path", path).
			Int("priority", i).
			Err(err).
			Msg("backend attempt failed")
		prev = link(op, path, err, prev)
	}
	return zero, prev
}

// resolve is resolve1 for operations without a result value.
func resolve(u *FS, op, path string, attempt func(*adapter) error) error {
	_, err := resolve1(u, op, path, func(a *adapter) (struct{}, error) {
		return struct{}{}, attempt(a)
	})
	return err
}
