package registry

import (
	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
)

// PackCurrentProvider serializes the current provider selection. Returns
// errkind.InvalidArgument if nothing has been selected yet.
func (m *Mc) PackCurrentProvider() ([]byte, error) {
	p, ok := m.CurrentProvider()
	if !ok {
		return nil, errkind.New(errkind.InvalidArgument, "no current provider selected")
	}
	return p.Pack()
}

// UnpackCurrentProvider parses buf and installs the result as the current
// provider selection.
func (m *Mc) UnpackCurrentProvider(buf []byte) error {
	p, err := mc.UnpackProvider(buf)
	if err != nil {
		return err
	}
	m.SetCurrentProvider(p)
	return nil
}

// PackCurrentLoader serializes the current loader selection.
func (m *Mc) PackCurrentLoader() ([]byte, error) {
	l, ok := m.CurrentLoader()
	if !ok {
		return nil, errkind.New(errkind.InvalidArgument, "no current loader selected")
	}
	return l.Pack()
}

// UnpackCurrentLoader parses buf and installs the result as the current
// loader selection.
func (m *Mc) UnpackCurrentLoader(buf []byte) error {
	l, err := mc.UnpackLoader(buf)
	if err != nil {
		return err
	}
	m.SetCurrentLoader(l)
	return nil
}

// PackCurrentVersionFamily serializes the current version family
// selection.
func (m *Mc) PackCurrentVersionFamily() ([]byte, error) {
	vf, ok := m.CurrentVersionFamily()
	if !ok {
		return nil, errkind.New(errkind.InvalidArgument, "no current version family selected")
	}
	return vf.Pack()
}

// UnpackCurrentVersionFamily parses buf and installs the result as the
// current version family selection.
func (m *Mc) UnpackCurrentVersionFamily(buf []byte) error {
	vf, err := mc.UnpackVersionFamily(buf)
	if err != nil {
		return err
	}
	m.SetCurrentVersionFamily(vf)
	return nil
}
