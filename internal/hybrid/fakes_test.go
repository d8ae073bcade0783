package hybrid

import (
	"context"
	"errors"
	"sync"
)

// fakeWindowAPI implements WindowAPI for testing, recording every call and
// letting tests inject per-label failures.
type fakeWindowAPI struct {
	mu sync.Mutex

	windows map[string]fakeWindow

	createErr   map[string]error
	navigateErr map[string]error
	closeErr    map[string]error
	evalErr     map[string]error

	createCalls   []string
	navigateCalls []string
	closeCalls    []string
	evalCalls     []string // "label\x00script"
	boundsCalls   []string
}

type fakeWindow struct {
	url     string
	bounds  Bounds
	visible bool
	focused bool
	title   string
}

func newFakeWindowAPI() *fakeWindowAPI {
	return &fakeWindowAPI{
		windows:     make(map[string]fakeWindow),
		createErr:   make(map[string]error),
		navigateErr: make(map[string]error),
		closeErr:    make(map[string]error),
		evalErr:     make(map[string]error),
	}
}

func (f *fakeWindowAPI) CreateWindow(_ context.Context, label, url string, bounds Bounds) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, label)
	if err := f.createErr[label]; err != nil {
		return err
	}
	f.windows[label] = fakeWindow{url: url, bounds: bounds, visible: true}
	return nil
}

func (f *fakeWindowAPI) Navigate(_ context.Context, label, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigateCalls = append(f.navigateCalls, label)
	if err := f.navigateErr[label]; err != nil {
		return err
	}
	w, ok := f.windows[label]
	if !ok {
		return errors.New("window not found")
	}
	w.url = url
	f.windows[label] = w
	return nil
}

func (f *fakeWindowAPI) CloseWindow(_ context.Context, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls = append(f.closeCalls, label)
	if err := f.closeErr[label]; err != nil {
		return err
	}
	delete(f.windows, label)
	return nil
}

func (f *fakeWindowAPI) SetBounds(_ context.Context, label string, bounds Bounds) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundsCalls = append(f.boundsCalls, label)
	w, ok := f.windows[label]
	if !ok {
		return errors.New("window not found")
	}
	w.bounds = bounds
	f.windows[label] = w
	return nil
}

func (f *fakeWindowAPI) SetVisible(_ context.Context, label string, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[label]
	if !ok {
		return errors.New("window not found")
	}
	w.visible = visible
	f.windows[label] = w
	return nil
}

func (f *fakeWindowAPI) Focus(_ context.Context, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[label]
	if !ok {
		return errors.New("window not found")
	}
	w.focused = true
	f.windows[label] = w
	return nil
}

func (f *fakeWindowAPI) WindowURL(_ context.Context, label string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[label]
	if !ok {
		return "", errors.New("window not found")
	}
	return w.url, nil
}

func (f *fakeWindowAPI) WindowTitle(_ context.Context, label string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[label]
	if !ok {
		return "", errors.New("window not found")
	}
	return w.title, nil
}

func (f *fakeWindowAPI) EvalScript(_ context.Context, label, script string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evalCalls = append(f.evalCalls, label+"\x00"+script)
	if err := f.evalErr[label]; err != nil {
		return err
	}
	if _, ok := f.windows[label]; !ok {
		return errors.New("window not found")
	}
	return nil
}

func (f *fakeWindowAPI) window(label string) (fakeWindow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[label]
	return w, ok
}

func (f *fakeWindowAPI) liveWindows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.windows)
}

func (f *fakeWindowAPI) closeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.closeCalls)
}

// fakeHostWindow implements HostWindow with fixed geometry.
type fakeHostWindow struct {
	geo Bounds
	err error
}

func (h *fakeHostWindow) Geometry(_ context.Context) (Bounds, error) {
	if h.err != nil {
		return Bounds{}, h.err
	}
	return h.geo, nil
}
