package testcommon

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Box builds an ISOBMFF box from its type and payload parts.
func Box(boxType string, payload ...[]byte) []byte {
	size := 8
	for _, p := range payload {
		size += len(p)
	}
	b := make([]byte, 8, size)
	binary.BigEndian.PutUint32(b[0:4], uint32(size))
	copy(b[4:8], boxType)
	for _, p := range payload {
		b = append(b, p...)
	}
	return b
}

// FullBox builds a box with a version/flags header.
func FullBox(boxType string, version uint8, flags uint32, payload ...[]byte) []byte {
	vf := U32(uint32(version)<<24 | flags&0xFFFFFF)
	return Box(boxType, append([][]byte{vf}, payload...)...)
}

func U16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func U32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// NCLX is the colour triple written into a colr box.
type NCLX struct {
	Primaries uint16
	Transfer  uint16
	Matrix    uint16
	FullRange bool
}

// AVIFSpec describes a synthetic AVIF file. Only the container is real,
// the av01 item holds placeholder bytes.
type AVIFSpec struct {
	MajorBrand       string
	CompatibleBrands []string
	Width            uint32
	Height           uint32
	Depth            uint8 // 8, 10 or 12, encoded into av1C
	NCLX             *NCLX
	ICC              []byte
	EmptyICC         bool // writes a prof colr box with no profile bytes
	Exif             []byte
	Rotation         uint8
	WithPixi         bool
	OmitAV1C         bool
	OmitPitm         bool
	PrimaryItemType  string
	SampleCount      uint32 // > 0 adds a moov with an image track
	OmitMeta         bool
}

func av1CPayload(depth uint8) []byte {
	profile := byte(0)
	b2 := byte(0x0C) // 4:2:0
	switch depth {
	case 10:
		b2 |= 0x40
	case 12:
		profile = 2
		b2 |= 0x60
	}
	return []byte{0x81, profile << 5, b2, 0x00}
}

func (s AVIFSpec) properties() ([][]byte, []byte) {
	var props [][]byte
	props = append(props, FullBox("ispe", 0, 0, U32(s.Width), U32(s.Height)))
	if !s.OmitAV1C {
		props = append(props, Box("av1C", av1CPayload(s.Depth)))
	}
	if s.WithPixi {
		props = append(props, FullBox("pixi", 0, 0, []byte{3, s.Depth, s.Depth, s.Depth}))
	}
	if s.NCLX != nil {
		r := byte(0)
		if s.NCLX.FullRange {
			r = 0x80
		}
		props = append(props, Box("colr", []byte("nclx"), U16(s.NCLX.Primaries), U16(s.NCLX.Transfer), U16(s.NCLX.Matrix), []byte{r}))
	}
	if len(s.ICC) > 0 || s.EmptyICC {
		props = append(props, Box("colr", []byte("prof"), s.ICC))
	}
	if s.Rotation > 0 {
		props = append(props, Box("irot", []byte{s.Rotation}))
	}

	var indices []byte
	for i := range props {
		indices = append(indices, byte(0x80|(i+1)))
	}
	return props, indices
}

// BuildAVIF serialises s into a complete file.
func BuildAVIF(s AVIFSpec) []byte {
	if s.MajorBrand == "" {
		s.MajorBrand = "avif"
	}
	if s.CompatibleBrands == nil {
		s.CompatibleBrands = []string{"mif1", "miaf"}
	}
	if s.Depth == 0 {
		s.Depth = 8
	}
	if s.PrimaryItemType == "" {
		s.PrimaryItemType = "av01"
	}

	ftypPayload := Concat([]byte(s.MajorBrand), U32(0))
	for _, b := range s.CompatibleBrands {
		ftypPayload = append(ftypPayload, []byte(b)...)
	}
	ftyp := Box("ftyp", ftypPayload)

	props, indices := s.properties()

	var out []byte
	out = append(out, ftyp...)

	if !s.OmitMeta {
		hdlr := FullBox("hdlr", 0, 0, U32(0), []byte("pict"), make([]byte, 12), []byte{0})
		pitm := FullBox("pitm", 0, 0, U16(1))

		infes := [][]byte{FullBox("infe", 2, 0, U16(1), U16(0), []byte(s.PrimaryItemType), []byte("Color\x00"))}
		itemCount := uint16(1)
		if len(s.Exif) > 0 {
			infes = append(infes, FullBox("infe", 2, 1, U16(2), U16(0), []byte("Exif"), []byte{0}))
			itemCount++
		}
		iinf := FullBox("iinf", 0, 0, append([][]byte{U16(itemCount)}, infes...)...)

		ipco := Box("ipco", props...)
		ipma := FullBox("ipma", 0, 0, U32(1), U16(1), []byte{byte(len(indices))}, indices)
		iprp := Box("iprp", ipco, ipma)

		mdatPayload := []byte{0x12, 0x00, 0x0A, 0x0B}
		// iloc v0 with 4 byte offsets and lengths, offsets patched below.
		ilocFor := func(mdatStart uint32) []byte {
			entries := [][]byte{U16(itemCount),
				U16(1), U16(0), U16(1), U32(mdatStart), U32(uint32(len(mdatPayload)))}
			if len(s.Exif) > 0 {
				entries = append(entries, U16(2), U16(0), U16(1), U32(mdatStart+uint32(len(mdatPayload))), U32(uint32(len(s.Exif))))
			}
			return FullBox("iloc", 0, 0, append([][]byte{{0x44, 0x00}}, entries...)...)
		}

		children := [][]byte{hdlr}
		if !s.OmitPitm {
			children = append(children, pitm)
		}
		children = append(children, iinf, ilocFor(0), iprp)
		meta := FullBox("meta", 0, 0, children...)

		mdatStart := uint32(len(out) + len(meta) + 8)
		children[len(children)-2] = ilocFor(mdatStart)
		meta = FullBox("meta", 0, 0, children...)

		out = append(out, meta...)
		out = append(out, Box("mdat", mdatPayload, s.Exif)...)
	}

	if s.SampleCount > 0 {
		out = append(out, buildMoov(s, props)...)
	}
	return out
}

func buildMoov(s AVIFSpec, props [][]byte) []byte {
	fixed := make([]byte, 78)
	binary.BigEndian.PutUint16(fixed[6:8], 1)
	binary.BigEndian.PutUint16(fixed[24:26], uint16(s.Width))
	binary.BigEndian.PutUint16(fixed[26:28], uint16(s.Height))

	var sampleProps [][]byte
	for _, p := range props {
		// ispe is an item property only.
		if string(p[4:8]) != "ispe" {
			sampleProps = append(sampleProps, p)
		}
	}
	av01 := Box("av01", append([][]byte{fixed}, sampleProps...)...)
	stsd := FullBox("stsd", 0, 0, U32(1), av01)
	stsz := FullBox("stsz", 0, 0, U32(4), U32(s.SampleCount))
	stbl := Box("stbl", stsd, stsz)
	minf := Box("minf", stbl)
	mdia := Box("mdia", minf)
	trak := Box("trak", mdia)
	return Box("moov", trak)
}

// WriteTempAVIF writes data into a temporary .avif file and returns its path.
func WriteTempAVIF(t *testing.T, name string, data []byte) string {
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("unable to write test avif : %v", err)
	}
	return p
}

// MakeICC returns a minimal ICC profile that passes header checks.
func MakeICC(size int) []byte {
	data := make([]byte, size)
	binary.BigEndian.PutUint32(data[0:4], uint32(size))
	copy(data[4:8], "test")
	binary.BigEndian.PutUint32(data[8:12], 0x02100000)
	copy(data[12:16], "mntr")
	copy(data[16:20], "RGB ")
	copy(data[20:24], "XYZ ")
	copy(data[36:40], "acsp")
	return data
}
