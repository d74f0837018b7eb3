package models

// DeviceSet is an insertion-ordered set of device identifiers.
// It only ever grows.
type DeviceSet struct {
	order []string
	seen  map[string]struct{}
}

// NewDeviceSet creates an empty device set
func NewDeviceSet() *DeviceSet {
	return &DeviceSet{seen: make(map[string]struct{})}
}

// Add records a device, returning true if it was not already present
func (s *DeviceSet) Add(device string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[device]; ok {
		return false
	}
	s.seen[device] = struct{}{}
	s.order = append(s.order, device)
	return true
}

// Contains reports whether the device has been recorded
func (s *DeviceSet) Contains(device string) bool {
	_, ok := s.seen[device]
	return ok
}

// Len returns the number of recorded devices
func (s *DeviceSet) Len() int {
	return len(s.order)
}

// List returns the devices in the order they were first recorded
func (s *DeviceSet) List() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
