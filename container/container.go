package container

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go4.org/media/heif"
	"go4.org/media/heif/bmff"

	"github.com/kpfaulkner/avif-go/avifio"
	"github.com/kpfaulkner/avif-go/color"
)

const (
	ItemTypeAV01 = "av01"
	ItemTypeGrid = "grid"
	ItemTypeExif = "Exif"

	MirrorNone = -1
)

// ContentLightLevel is the clli property.
type ContentLightLevel struct {
	MaxCLL  uint16
	MaxPALL uint16
}

// Container is everything the header-only pass learns about an AVIF file.
type Container struct {
	MajorBrand       string
	CompatibleBrands []string

	PrimaryItemID uint32
	PrimaryType   string

	Width  uint32
	Height uint32
	Depth  uint8

	// CICP triple. Unspecified (2/2/2) unless an nclx colr box is present.
	Primaries color.ColorPrimaries
	Transfer  color.TransferCharacteristics
	Matrix    color.MatrixCoefficients
	FullRange bool
	HasNCLX   bool

	ICC  []byte
	Exif []byte

	AV1C     *AV1C
	Rotation int // degrees anti-clockwise
	Mirror   int // MirrorNone, 0 (vertical axis) or 1 (horizontal axis)
	CLLI     *ContentLightLevel

	// ImageCount is 1 for a still image and the sample count of the
	// image track for sequences.
	ImageCount int
	IsSequence bool
}

type extent struct {
	offset uint64
	length uint64
}

type itemLocation struct {
	constructionMethod uint16
	extents            []extent
}

// property is a box attached to the image, kept undecoded until
// applyProperties.
type property struct {
	boxType string
	payload []byte
}

type parser struct {
	br   *avifio.ByteReader
	data []byte

	ftypBox BoxHeader
	metaBox BoxHeader
	hasMeta bool

	primaryItemID uint32
	hasPitm       bool
	items         []*bmff.ItemInfoEntry
	locations     map[uint32]itemLocation
	idat          []byte

	trackFound bool
	track      trackInfo
}

type trackInfo struct {
	width       uint32
	height      uint32
	sampleCount uint32
	properties  []property
}

// Parse walks the top level boxes of an AVIF file and collects the primary
// image's properties. No AV1 data is decoded.
func Parse(data []byte) (*Container, error) {
	p := &parser{
		br:        avifio.NewByteReader(data),
		data:      data,
		locations: make(map[uint32]itemLocation),
	}

	c := &Container{
		Primaries: color.PRI_UNSPECIFIED,
		Transfer:  color.TF_UNSPECIFIED,
		Matrix:    color.MC_UNSPECIFIED,
		Mirror:    MirrorNone,
	}

	ftypSeen := false
	err := readChildBoxes(p.br, p.br.Len(), func(bh BoxHeader) error {
		if !ftypSeen && bh.BoxType != BoxFtyp {
			return fmt.Errorf("first box is %q, expected ftyp: %w", bh.BoxType, ErrInvalidContainer)
		}
		switch bh.BoxType {
		case BoxFtyp:
			if ftypSeen {
				return nil
			}
			ftypSeen = true
			p.ftypBox = bh
			ft, err := readFileType(p.br, bh)
			if err != nil {
				return err
			}
			c.MajorBrand = ft.majorBrand
			c.CompatibleBrands = ft.compatibleBrands
		case BoxMeta:
			if p.hasMeta {
				return nil
			}
			p.hasMeta = true
			p.metaBox = bh
			return p.readMeta()
		case BoxMoov:
			return p.readMoov(bh)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ftypSeen {
		return nil, fmt.Errorf("no ftyp box: %w", ErrInvalidContainer)
	}

	if err := p.resolve(c); err != nil {
		return nil, err
	}
	return c, nil
}

// readMeta collects the item list and item locations. Item properties are
// resolved later through heif, see primaryItem.
func (p *parser) readMeta() error {
	r := bmff.NewReader(bytes.NewReader(p.data[p.metaBox.Start:p.metaBox.End]))
	box, err := r.ReadAndParseBox(bmff.TypeMeta)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidContainer)
	}

	for _, child := range box.(*bmff.MetaBox).Children {
		switch child.Type().String() {
		case BoxHdlr, BoxPitm, BoxIinf:
			parsed, err := child.Parse()
			if err != nil {
				return fmt.Errorf("%s: %v: %w", child.Type(), err, ErrInvalidContainer)
			}
			switch v := parsed.(type) {
			case *bmff.HandlerBox:
				if v.HandlerType != "pict" {
					return fmt.Errorf("meta handler %q is not pict: %w", v.HandlerType, ErrInvalidContainer)
				}
			case *bmff.PrimaryItemBox:
				p.primaryItemID = uint32(v.ItemID)
				p.hasPitm = true
			case *bmff.ItemInfoBox:
				p.items = v.ItemInfos
			}

		case BoxIloc:
			// bmff drops the base offset, which libavif sets for every
			// item, so the extents are read here.
			body, err := io.ReadAll(child.Body())
			if err != nil {
				return err
			}
			if err := p.readItemLocation(avifio.NewByteReader(body)); err != nil {
				return fmt.Errorf("iloc: %w", err)
			}

		case BoxIdat:
			if p.idat, err = io.ReadAll(child.Body()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *parser) readItemLocation(br *avifio.ByteReader) error {
	version, _, err := br.ReadFullBoxHeader()
	if err != nil {
		return err
	}
	if version > 2 {
		return fmt.Errorf("iloc version %d: %w", version, ErrInvalidContainer)
	}

	b1, err := br.ReadU8()
	if err != nil {
		return err
	}
	b2, err := br.ReadU8()
	if err != nil {
		return err
	}
	offsetSize := int(b1 >> 4)
	lengthSize := int(b1 & 0x0F)
	baseOffsetSize := int(b2 >> 4)
	indexSize := 0
	if version == 1 || version == 2 {
		indexSize = int(b2 & 0x0F)
	}

	var count uint32
	if version < 2 {
		c16, err := br.ReadU16()
		if err != nil {
			return err
		}
		count = uint32(c16)
	} else if count, err = br.ReadU32(); err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		var itemID uint32
		if version < 2 {
			id, err := br.ReadU16()
			if err != nil {
				return err
			}
			itemID = uint32(id)
		} else if itemID, err = br.ReadU32(); err != nil {
			return err
		}

		var loc itemLocation
		if version == 1 || version == 2 {
			cm, err := br.ReadU16()
			if err != nil {
				return err
			}
			loc.constructionMethod = cm & 0x0F
		}
		if err := br.Skip(2); err != nil { // data reference index
			return err
		}
		baseOffset, err := br.ReadUintN(baseOffsetSize)
		if err != nil {
			return err
		}
		extentCount, err := br.ReadU16()
		if err != nil {
			return err
		}
		for j := uint16(0); j < extentCount; j++ {
			if _, err := br.ReadUintN(indexSize); err != nil {
				return err
			}
			off, err := br.ReadUintN(offsetSize)
			if err != nil {
				return err
			}
			length, err := br.ReadUintN(lengthSize)
			if err != nil {
				return err
			}
			loc.extents = append(loc.extents, extent{offset: baseOffset + off, length: length})
		}
		p.locations[itemID] = loc
	}
	return nil
}

func (p *parser) readMoov(bh BoxHeader) error {
	return readChildBoxes(p.br, bh.End, func(child BoxHeader) error {
		if child.BoxType != BoxTrak || p.trackFound {
			return nil
		}
		var t trackInfo
		found := false
		err := p.walkTrack(child, &t, &found)
		if err != nil {
			return err
		}
		if found {
			p.track = t
			p.trackFound = true
		}
		return nil
	})
}

// walkTrack descends trak/mdia/minf/stbl looking for the sample count and
// the av01 sample entry.
func (p *parser) walkTrack(bh BoxHeader, t *trackInfo, found *bool) error {
	return readChildBoxes(p.br, bh.End, func(child BoxHeader) error {
		switch child.BoxType {
		case BoxMdia, BoxMinf, BoxStbl:
			return p.walkTrack(child, t, found)
		case BoxStsd:
			return p.readSampleDescription(child, t, found)
		case BoxStsz:
			if _, _, err := p.br.ReadFullBoxHeader(); err != nil {
				return err
			}
			if err := p.br.Skip(4); err != nil { // sample size
				return err
			}
			count, err := p.br.ReadU32()
			if err != nil {
				return err
			}
			t.sampleCount = count
		}
		return nil
	})
}

// visualSampleEntrySize is the fixed part of a VisualSampleEntry before
// its child boxes.
const visualSampleEntrySize = 78

func (p *parser) readSampleDescription(bh BoxHeader, t *trackInfo, found *bool) error {
	if _, _, err := p.br.ReadFullBoxHeader(); err != nil {
		return err
	}
	if err := p.br.Skip(4); err != nil { // entry count
		return err
	}
	return readChildBoxes(p.br, bh.End, func(entry BoxHeader) error {
		if entry.BoxType != BoxAv01 || *found {
			return nil
		}
		if entry.PayloadSize() < visualSampleEntrySize {
			return fmt.Errorf("av01 sample entry too short: %w", ErrInvalidContainer)
		}
		if err := p.br.Skip(24); err != nil {
			return err
		}
		w, err := p.br.ReadU16()
		if err != nil {
			return err
		}
		h, err := p.br.ReadU16()
		if err != nil {
			return err
		}
		t.width, t.height = uint32(w), uint32(h)
		if _, err := p.br.Seek(entry.Offset+visualSampleEntrySize, io.SeekStart); err != nil {
			return err
		}
		*found = true
		return readChildBoxes(p.br, entry.End, func(prop BoxHeader) error {
			payload, err := p.br.ReadBytes(prop.PayloadSize())
			if err != nil {
				return err
			}
			t.properties = append(t.properties, property{boxType: prop.BoxType, payload: payload})
			return nil
		})
	})
}

// resolve fills the container from the primary item (or the image track
// when there is no meta box).
func (p *parser) resolve(c *Container) error {

	var props []property
	switch {
	case p.hasMeta:
		item, err := p.primaryItem()
		if err != nil {
			return err
		}
		if item.Info.ItemType != ItemTypeAV01 && item.Info.ItemType != ItemTypeGrid {
			return fmt.Errorf("primary item type %q: %w", item.Info.ItemType, ErrUnsupported)
		}
		c.PrimaryItemID = item.ID
		c.PrimaryType = item.Info.ItemType
		if w, h, ok := item.SpatialExtents(); ok {
			c.Width, c.Height = uint32(w), uint32(h)
		}
		c.Rotation = item.Rotations() * 90
		if props, err = rawProperties(item.Properties); err != nil {
			return err
		}
		c.ImageCount = 1

		exif, err := p.exifPayload()
		if err != nil {
			return err
		}
		c.Exif = exif

	case p.trackFound:
		c.Width, c.Height = p.track.width, p.track.height
		props = p.track.properties
		c.ImageCount = int(p.track.sampleCount)

	default:
		return fmt.Errorf("neither meta nor image track present: %w", ErrInvalidContainer)
	}

	if p.trackFound {
		c.IsSequence = true
		c.ImageCount = int(p.track.sampleCount)
	}

	if err := applyProperties(c, props); err != nil {
		return err
	}

	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("image has no dimensions: %w", ErrInvalidContainer)
	}
	if c.Depth == 0 {
		c.Depth = 8
	}
	return nil
}

// primaryItem resolves the primary item and its associated properties.
// Without a pitm box the first visible av01 item is used.
func (p *parser) primaryItem() (*heif.Item, error) {
	id := p.primaryItemID
	if !p.hasPitm {
		for _, info := range p.items {
			if info.ItemType == ItemTypeAV01 && info.Flags&1 == 0 {
				id = uint32(info.ItemID)
				break
			}
		}
	}

	// heif expects meta straight after ftyp, other top level boxes may sit
	// between them in the file.
	header := make([]byte, 0, p.ftypBox.End-p.ftypBox.Start+p.metaBox.End-p.metaBox.Start)
	header = append(header, p.data[p.ftypBox.Start:p.ftypBox.End]...)
	header = append(header, p.data[p.metaBox.Start:p.metaBox.End]...)

	item, err := heif.Open(bytes.NewReader(header)).ItemByID(id)
	if errors.Is(err, heif.ErrUnknownItem) {
		return nil, fmt.Errorf("primary item %d not found: %w", id, ErrInvalidContainer)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidContainer)
	}
	return item, nil
}

// rawProperties keeps the payload of every property heif does not decode
// itself.
func rawProperties(boxes []bmff.Box) ([]property, error) {
	var props []property
	for _, b := range boxes {
		switch b.(type) {
		case *bmff.ImageSpatialExtentsProperty, *bmff.ImageRotation:
			continue
		}
		payload, err := io.ReadAll(b.Body())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Type(), ErrTruncated)
		}
		props = append(props, property{boxType: b.Type().String(), payload: payload})
	}
	return props, nil
}

func (p *parser) exifPayload() ([]byte, error) {
	for _, info := range p.items {
		if info.ItemType != ItemTypeExif {
			continue
		}
		loc, ok := p.locations[uint32(info.ItemID)]
		if !ok {
			return nil, nil
		}
		return p.itemData(loc)
	}
	return nil, nil
}

// itemData concatenates the extents of an item. Construction method 0
// addresses the file, 1 addresses the idat box.
func (p *parser) itemData(loc itemLocation) ([]byte, error) {
	var src []byte
	switch loc.constructionMethod {
	case 0:
		src = p.data
	case 1:
		src = p.idat
	default:
		return nil, fmt.Errorf("iloc construction method %d: %w", loc.constructionMethod, ErrUnsupported)
	}

	var out []byte
	for _, e := range loc.extents {
		end := e.offset + e.length
		if e.length == 0 {
			end = uint64(len(src))
		}
		if e.offset > uint64(len(src)) || end > uint64(len(src)) || end < e.offset {
			return nil, fmt.Errorf("item extent %d+%d outside data: %w", e.offset, e.length, ErrTruncated)
		}
		out = append(out, src[e.offset:end]...)
	}
	return out, nil
}
