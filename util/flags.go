package util

//*******************************************
// flags
//*******************************************

type flag_entry[T any] struct {
	value   T
	version int32
}

// Flags stores per-node search state with O(1) reset.
// Get returns a pointer to the stored value, lazily re-initialized to the
// default whenever the flags have been reset since the last access.
type Flags[T any] struct {
	entries  Array[flag_entry[T]]
	_default T
	version  int32
}

func NewFlags[T any](size int32, _default T) Flags[T] {
	return Flags[T]{
		entries:  NewArray[flag_entry[T]](int(size)),
		_default: _default,
		version:  1,
	}
}

func (self *Flags[T]) Get(index int32) *T {
	entry := &self.entries[index]
	if entry.version != self.version {
		entry.value = self._default
		entry.version = self.version
	}
	return &entry.value
}

func (self *Flags[T]) Reset() {
	self.version += 1
}
