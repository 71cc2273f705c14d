package gltfasset

// ReferenceIndex is an identifier assigned by the glTF document itself.
// It is stable only inside one document and is not dense with respect to
// any subset of elements (e.g. meshes referenced by only some nodes).
type ReferenceIndex uint32

// StorageIndex is a dense zero-based slot in this package's own storage.
type StorageIndex uint32

// ElementList keeps assembled elements in document order while remembering
// which document index produced each slot. Document indices never leak
// outside the asset table that owns the list.
type ElementList[T any] struct {
	refToStorage map[ReferenceIndex]StorageIndex
	elements     []T
}

func (l *ElementList[T]) Push(ref ReferenceIndex, element T) StorageIndex {
	if l.refToStorage == nil {
		l.refToStorage = make(map[ReferenceIndex]StorageIndex)
	}
	storage := StorageIndex(len(l.elements))
	l.refToStorage[ref] = storage
	l.elements = append(l.elements, element)
	return storage
}

// Resolve translates a document index into a storage slot.
func (l *ElementList[T]) Resolve(ref ReferenceIndex) (StorageIndex, bool) {
	storage, ok := l.refToStorage[ref]
	return storage, ok
}

// Get returns the element read from the given document index, or nil.
func (l *ElementList[T]) Get(ref ReferenceIndex) *T {
	storage, ok := l.refToStorage[ref]
	if !ok {
		return nil
	}
	return &l.elements[storage]
}

func (l *ElementList[T]) At(storage StorageIndex) *T {
	return &l.elements[storage]
}

func (l *ElementList[T]) Len() int {
	return len(l.elements)
}
