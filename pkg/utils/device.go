package utils

import "sync"

// DeviceLocks tracks which capture devices are held by this process. A
// device has at most one holder at a time.
type DeviceLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var Devices = &DeviceLocks{}

// TryLock claims key. The returned unlock is idempotent.
func (d *DeviceLocks) TryLock(key string) (unlock func(), ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held == nil {
		d.held = make(map[string]struct{})
	}
	if _, busy := d.held[key]; busy {
		return nil, false
	}
	d.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.held, key)
			d.mu.Unlock()
		})
	}, true
}
