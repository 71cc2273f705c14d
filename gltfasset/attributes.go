package gltfasset

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// AttributeFlag selects which per-vertex channels a load extracts. The set
// is fixed for the lifetime of one load: every primitive produces records
// with exactly these channels, and a channel absent from the document fails
// the load instead of being silently defaulted.
type AttributeFlag uint32

const (
	AttrPosition AttributeFlag = 1 << iota
	AttrNormal
	AttrTangent
	AttrTexCoord0
	AttrTexCoord1
	AttrColor0
	AttrJoints0
	AttrWeights0
)

// Common channel combinations.
const (
	AttrLayoutP    = AttrPosition
	AttrLayoutPN   = AttrPosition | AttrNormal
	AttrLayoutPT   = AttrPosition | AttrTexCoord0
	AttrLayoutPNT  = AttrPosition | AttrNormal | AttrTexCoord0
	AttrLayoutFull = AttrPosition | AttrNormal | AttrTangent | AttrTexCoord0 |
		AttrTexCoord1 | AttrColor0 | AttrJoints0 | AttrWeights0
)

// AttributeChannel describes one vertex channel: the flag bit that selects
// it, the accessor name in the document, and its interleaved byte width.
type AttributeChannel struct {
	Flag AttributeFlag
	Name string
	Size uint32
}

// Channel order is the ascending flag-bit order; the interleaved record
// layout follows it exactly.
var attributeChannels = []AttributeChannel{
	{AttrPosition, "POSITION", 12},
	{AttrNormal, "NORMAL", 12},
	{AttrTangent, "TANGENT", 16},
	{AttrTexCoord0, "TEXCOORD_0", 8},
	{AttrTexCoord1, "TEXCOORD_1", 8},
	{AttrColor0, "COLOR_0", 16},
	{AttrJoints0, "JOINTS_0", 8},
	{AttrWeights0, "WEIGHTS_0", 16},
}

// Channels returns the selected channels in record layout order.
func (f AttributeFlag) Channels() []AttributeChannel {
	selected := make([]AttributeChannel, 0, len(attributeChannels))
	for _, ch := range attributeChannels {
		if f&ch.Flag != 0 {
			selected = append(selected, ch)
		}
	}
	return selected
}

// VertexStride returns the byte size of one interleaved vertex record.
func (f AttributeFlag) VertexStride() uint32 {
	var stride uint32
	for _, ch := range f.Channels() {
		stride += ch.Size
	}
	return stride
}

func (f AttributeFlag) String() string {
	names := make([]string, 0, len(attributeChannels))
	for _, ch := range f.Channels() {
		names = append(names, ch.Name)
	}
	return strings.Join(names, ",")
}

// ParseAttributeFlags converts channel names ("POSITION", "NORMAL", ...)
// into a flag set.
func ParseAttributeFlags(names []string) (AttributeFlag, error) {
	var flags AttributeFlag
next:
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		for _, ch := range attributeChannels {
			if ch.Name == name {
				flags |= ch.Flag
				continue next
			}
		}
		return 0, errors.Errorf("unknown vertex attribute %q", name)
	}
	return flags, nil
}

// AttributeRange locates one primitive's vertices inside the shared
// interleaved buffer.
type AttributeRange struct {
	FirstVertex uint32
	VertexCount uint32
	ByteOffset  uint32
	ByteLength  uint32
}

// AttributesData accumulates the interleaved vertex records of every
// primitive of a load into one contiguous buffer.
type AttributesData struct {
	flags       AttributeFlag
	stride      uint32
	vertexCount uint32
	buffer      []byte
}

func NewAttributesData(flags AttributeFlag) (*AttributesData, error) {
	if flags&AttrPosition == 0 {
		// the vertex count of a primitive is defined by its POSITION accessor
		return nil, errors.Errorf("attribute flags %#x miss POSITION", uint32(flags))
	}
	return &AttributesData{flags: flags, stride: flags.VertexStride()}, nil
}

// Extend reads every requested channel of the primitive and appends the
// interleaved records to the shared buffer. All channels are decoded before
// the first byte is written, so a failed call leaves the buffer untouched.
func (ad *AttributesData) Extend(doc *Document, prim *gltf.Primitive) (AttributeRange, error) {
	channels := ad.flags.Channels()
	decoded := make([][]byte, len(channels))

	var vertexCount uint32
	for i, ch := range channels {
		data, count, err := readChannel(doc, prim, ch)
		if err != nil {
			return AttributeRange{}, err
		}
		if ch.Flag == AttrPosition {
			vertexCount = uint32(count)
		} else if uint32(count) != vertexCount {
			return AttributeRange{}, errors.Wrapf(ErrSizeMismatch,
				"channel %s has %d elements, POSITION has %d", ch.Name, count, vertexCount)
		}
		decoded[i] = data
	}

	r := AttributeRange{
		FirstVertex: ad.vertexCount,
		VertexCount: vertexCount,
		ByteOffset:  uint32(len(ad.buffer)),
		ByteLength:  vertexCount * ad.stride,
	}
	for v := uint32(0); v < vertexCount; v++ {
		for i, ch := range channels {
			ad.buffer = append(ad.buffer, decoded[i][v*ch.Size:(v+1)*ch.Size]...)
		}
	}
	ad.vertexCount += vertexCount
	return r, nil
}

// readChannel decodes one accessor into little-endian per-vertex chunks of
// the channel's interleaved width.
func readChannel(doc *Document, prim *gltf.Primitive, ch AttributeChannel) ([]byte, int, error) {
	accIndex, ok := prim.Attributes[ch.Name]
	if !ok {
		return nil, 0, errors.Wrapf(ErrMissingAttribute, "channel %s", ch.Name)
	}
	acc, err := doc.accessor(accIndex)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "channel %s", ch.Name)
	}

	switch ch.Flag {
	case AttrPosition:
		vals, err := modeler.ReadPosition(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf, v[0], v[1], v[2])
		}
		return buf, len(vals), nil
	case AttrNormal:
		vals, err := modeler.ReadNormal(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf, v[0], v[1], v[2])
		}
		return buf, len(vals), nil
	case AttrTangent:
		vals, err := modeler.ReadTangent(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf, v[0], v[1], v[2], v[3])
		}
		return buf, len(vals), nil
	case AttrTexCoord0, AttrTexCoord1:
		vals, err := modeler.ReadTextureCoord(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf, v[0], v[1])
		}
		return buf, len(vals), nil
	case AttrColor0:
		vals, err := modeler.ReadColor(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf,
				float32(v[0])/255, float32(v[1])/255, float32(v[2])/255, float32(v[3])/255)
		}
		return buf, len(vals), nil
	case AttrJoints0:
		vals, err := modeler.ReadJoints(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendUint16(buf, v[0], v[1], v[2], v[3])
		}
		return buf, len(vals), nil
	case AttrWeights0:
		vals, err := modeler.ReadWeights(doc.Doc, acc, nil)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "Failed to read %s", ch.Name)
		}
		buf := make([]byte, 0, len(vals)*int(ch.Size))
		for _, v := range vals {
			buf = appendFloat32(buf, v[0], v[1], v[2], v[3])
		}
		return buf, len(vals), nil
	}
	return nil, 0, errors.Errorf("unhandled vertex channel %s", ch.Name)
}

func appendFloat32(dst []byte, values ...float32) []byte {
	for _, v := range values {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		dst = append(dst, b[:]...)
	}
	return dst
}

func appendUint16(dst []byte, values ...uint16) []byte {
	for _, v := range values {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		dst = append(dst, b[:]...)
	}
	return dst
}
