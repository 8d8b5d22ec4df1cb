package container

import (
	"errors"
	"fmt"
	"io"

	"github.com/kpfaulkner/avif-go/avifio"
)

var (
	ErrInvalidContainer = errors.New("invalid container")
	ErrTruncated        = errors.New("truncated box")
	ErrUnsupported      = errors.New("unsupported image item")
)

const (
	BoxFtyp = "ftyp"
	BoxMeta = "meta"
	BoxMoov = "moov"
	BoxHdlr = "hdlr"
	BoxPitm = "pitm"
	BoxIinf = "iinf"
	BoxIloc = "iloc"
	BoxIdat = "idat"
	BoxPixi = "pixi"
	BoxAv1C = "av1C"
	BoxColr = "colr"
	BoxImir = "imir"
	BoxClli = "clli"
	BoxTrak = "trak"
	BoxMdia = "mdia"
	BoxMinf = "minf"
	BoxStbl = "stbl"
	BoxStsd = "stsd"
	BoxStsz = "stsz"
	BoxAv01 = "av01"

	BrandAVIF = "avif"
	BrandAVIS = "avis"
)

// BoxHeader locates a box within the file. Offset is where the payload
// starts, End is the first byte after the box.
type BoxHeader struct {
	BoxType string
	BoxSize uint64
	Start   int64
	Offset  int64
	End     int64
}

func (bh BoxHeader) PayloadSize() int64 {
	return bh.End - bh.Offset
}

// readBoxHeader reads the header at the current position. A box size of 0
// extends to limit and a size of 1 means a 64 bit size follows the type.
func readBoxHeader(br *avifio.ByteReader, limit int64) (BoxHeader, error) {
	start := br.Pos()
	size32, err := br.ReadU32()
	if err != nil {
		return BoxHeader{}, err
	}
	boxType, err := br.ReadFourCC()
	if err != nil {
		return BoxHeader{}, err
	}

	boxSize := uint64(size32)
	switch size32 {
	case 0:
		boxSize = uint64(limit - start)
	case 1:
		if boxSize, err = br.ReadU64(); err != nil {
			return BoxHeader{}, err
		}
	}

	headerSize := br.Pos() - start
	if boxSize < uint64(headerSize) {
		return BoxHeader{}, fmt.Errorf("box %q size %d smaller than its header: %w", boxType, boxSize, ErrInvalidContainer)
	}
	if boxSize > uint64(limit-start) {
		return BoxHeader{}, fmt.Errorf("box %q size %d exceeds parent: %w", boxType, boxSize, ErrTruncated)
	}

	return BoxHeader{
		BoxType: boxType,
		BoxSize: boxSize,
		Start:   start,
		Offset:  br.Pos(),
		End:     start + int64(boxSize),
	}, nil
}

// readChildBoxes walks the boxes between the current position and end,
// calling fn for each one. The reader is repositioned after every child so
// fn does not need to consume the whole payload.
func readChildBoxes(br *avifio.ByteReader, end int64, fn func(bh BoxHeader) error) error {
	for br.Pos()+8 <= end {
		bh, err := readBoxHeader(br, end)
		if err != nil {
			return err
		}
		if err := fn(bh); err != nil {
			return err
		}
		if _, err := br.Seek(bh.End, io.SeekStart); err != nil {
			return err
		}
	}
	return nil
}

// PeekCompatibleFileType reports whether data starts with an ftyp box
// advertising an AVIF brand, either as the major brand or a compatible one.
func PeekCompatibleFileType(data []byte) bool {
	br := avifio.NewByteReader(data)
	bh, err := readBoxHeader(br, br.Len())
	if err != nil || bh.BoxType != BoxFtyp {
		return false
	}
	ft, err := readFileType(br, bh)
	if err != nil {
		return false
	}
	return ft.hasBrand(BrandAVIF) || ft.hasBrand(BrandAVIS)
}

type fileType struct {
	majorBrand       string
	minorVersion     uint32
	compatibleBrands []string
}

func (ft fileType) hasBrand(brand string) bool {
	if ft.majorBrand == brand {
		return true
	}
	for _, b := range ft.compatibleBrands {
		if b == brand {
			return true
		}
	}
	return false
}

func readFileType(br *avifio.ByteReader, bh BoxHeader) (fileType, error) {
	if bh.PayloadSize() < 8 || bh.PayloadSize()%4 != 0 {
		return fileType{}, fmt.Errorf("ftyp payload of %d bytes: %w", bh.PayloadSize(), ErrInvalidContainer)
	}

	var ft fileType
	var err error
	if ft.majorBrand, err = br.ReadFourCC(); err != nil {
		return fileType{}, err
	}
	if ft.minorVersion, err = br.ReadU32(); err != nil {
		return fileType{}, err
	}
	for br.Pos() < bh.End {
		brand, err := br.ReadFourCC()
		if err != nil {
			return fileType{}, err
		}
		ft.compatibleBrands = append(ft.compatibleBrands, brand)
	}
	return ft, nil
}
