package workflow

// MockFinder implements [Finder] without touching the filesystem.
type MockFinder struct {
	// ResolvedPath, when non-empty, is returned by Resolve.
	ResolvedPath string

	// ResolveErr, when set, is returned by Resolve.
	ResolveErr error

	// Discovered is returned by Discover.
	Discovered []string

	// DiscoverErr, when set, is returned by Discover.
	DiscoverErr error

	// ResolveCalls records the (explicit, workspace) pairs passed to
	// Resolve, in order.
	ResolveCalls [][2]string
}

func (m *MockFinder) Resolve(explicit, workspace string) (string, error) {
	m.ResolveCalls = append(m.ResolveCalls, [2]string{explicit, workspace})
	if m.ResolveErr != nil {
		return "", m.ResolveErr
	}
	if m.ResolvedPath != "" {
		return m.ResolvedPath, nil
	}
	// Echo the explicit path so most tests need no setup.
	if explicit != "" {
		return explicit, nil
	}
	return "", ErrNotFound
}

func (m *MockFinder) Discover(root string) ([]string, error) {
	if m.DiscoverErr != nil {
		return nil, m.DiscoverErr
	}
	return m.Discovered, nil
}
