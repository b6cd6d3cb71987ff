package vm

import "sync"

var machinePool = sync.Pool{
	New: func() any {
		return &Machine{Env: NewEnvironment()}
	},
}

// GetMachine returns a reset machine from the pool.
func GetMachine() *Machine {
	return machinePool.Get().(*Machine)
}

// PutMachine resets m and returns it to the pool.
func PutMachine(m *Machine) {
	m.Reset()
	machinePool.Put(m)
}
