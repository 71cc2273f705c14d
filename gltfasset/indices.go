package gltfasset

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// IndexRange locates one primitive's indices inside the shared index
// buffer. ElementWidth is the byte size the values were converted to.
type IndexRange struct {
	FirstElement uint32
	ElementCount uint32
	ByteOffset   uint32
	ElementWidth uint32
}

// IndicesData accumulates the index values of every primitive of a load
// into one contiguous buffer. Each primitive's values are stored at the
// narrowest width in {1,2,4} bytes that holds its largest index, floored at
// minWidth (graphics APIs without an 8-bit index format load with floor 2).
type IndicesData struct {
	minWidth     uint32
	elementCount uint32
	buffer       []byte
}

func NewIndicesData(minWidth uint32) (*IndicesData, error) {
	if minWidth == 0 {
		minWidth = 1
	}
	switch minWidth {
	case 1, 2, 4:
		return &IndicesData{minWidth: minWidth}, nil
	}
	return nil, errors.Errorf("invalid index element width %d", minWidth)
}

// IndexWidthFor returns the narrowest element width in bytes that can
// represent the given index value. The ceiling is 32 bits.
func IndexWidthFor(max uint32) uint32 {
	switch {
	case max <= 0xff:
		return 1
	case max <= 0xffff:
		return 2
	default:
		return 4
	}
}

func (id *IndicesData) Extend(doc *Document, prim *gltf.Primitive) (IndexRange, error) {
	if prim.Indices == nil {
		return IndexRange{}, errors.Wrap(ErrMissingIndices, "primitive has no index accessor")
	}
	acc, err := doc.accessor(*prim.Indices)
	if err != nil {
		return IndexRange{}, errors.Wrap(err, "indices")
	}
	values, err := modeler.ReadIndices(doc.Doc, acc, nil)
	if err != nil {
		return IndexRange{}, errors.Wrap(err, "Failed to read index accessor")
	}

	var max uint32
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	width := IndexWidthFor(max)
	if width < id.minWidth {
		width = id.minWidth
	}

	r := IndexRange{
		FirstElement: id.elementCount,
		ElementCount: uint32(len(values)),
		ByteOffset:   uint32(len(id.buffer)),
		ElementWidth: width,
	}
	for _, v := range values {
		switch width {
		case 1:
			id.buffer = append(id.buffer, byte(v))
		case 2:
			var b [2]byte
			binary.LittleEndian.PutUint16(b[:], uint16(v))
			id.buffer = append(id.buffer, b[:]...)
		default:
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], v)
			id.buffer = append(id.buffer, b[:]...)
		}
	}
	id.elementCount += uint32(len(values))
	return r, nil
}
