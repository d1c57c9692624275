package pe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Image Section
//
// The raw on-disk record of one entry in the section table. Field order and
// widths match the file format exactly so the struct can be read and written
// with encoding/binary in little-endian byte order.
//noinspection GoSnakeCaseUsage
type ImageSectionHeader struct {
	Name                             [IMAGE_SIZEOF_SHORT_NAME]uint8
	Misc_VirtualSize_PhysicalAddress uint32
	VirtualAddress                   uint32
	SizeOfRawData                    uint32
	PointerToRawData                 uint32
	PointerToRelocations             uint32
	PointerToLinenumbers             uint32
	NumberOfRelocations              uint16
	NumberOfLinenumbers              uint16
	Characteristics                  uint32
}

// Bytes serializes the header into its fixed 40-byte on-disk layout.
func (h *ImageSectionHeader) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, IMAGE_SIZEOF_SECTION_HEADER))
	// Writing a fixed-size struct of integer fields cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// WriteTo writes the 40-byte on-disk record to w.
func (h *ImageSectionHeader) WriteTo(w io.Writer) (int64, error) {
	data := h.Bytes()
	n, err := w.Write(data)
	return int64(n), err
}

// SetName stores name into the fixed-width name field, truncating past
// IMAGE_SIZEOF_SHORT_NAME bytes and NUL-padding shorter names. A name of
// exactly eight significant characters is stored without a terminator.
func (h *ImageSectionHeader) SetName(name string) {
	h.Name = [IMAGE_SIZEOF_SHORT_NAME]uint8{}
	copy(h.Name[:], name)
}

// NameString decodes the fixed-width name field. Trailing NUL padding is
// stripped; embedded NULs and non-ASCII bytes are preserved as-is since
// malformed files carry arbitrary bytes here.
func (h *ImageSectionHeader) NameString() string {
	return string(bytes.TrimRight(h.Name[:], "\x00"))
}

type SectionHeader struct {
	ImageSectionHeader

	fileOffset int
	size       int
	flags      map[string]bool
}

func NewSectionHeader(fileOffset int) (header *SectionHeader) {
	header = new(SectionHeader)
	header.size = IMAGE_SIZEOF_SECTION_HEADER
	header.flags = make(map[string]bool)
	header.fileOffset = fileOffset
	return header
}

// ReadSectionHeader reads one section-table entry at the given absolute file
// offset. It decodes a single record only; walking the section table is the
// caller's job.
func ReadSectionHeader(rs io.ReadSeeker, fileOffset int) (*SectionHeader, error) {
	header := NewSectionHeader(fileOffset)

	if _, err := rs.Seek(int64(fileOffset), io.SeekStart); err != nil {
		return nil, err
	}
	if err := binary.Read(rs, binary.LittleEndian, &header.ImageSectionHeader); err != nil {
		return nil, fmt.Errorf("reading section header at offset 0x%x: %w", fileOffset, err)
	}

	SetFlags(header.flags, SectionCharacteristics, header.Characteristics)
	return header, nil
}

// FileOffset returns the offset this header was read from, or 0 if it was
// built in memory.
func (s *SectionHeader) FileOffset() int {
	return s.fileOffset
}

// Flags returns the decoded characteristics flag set.
func (s *SectionHeader) Flags() map[string]bool {
	return s.flags
}

func (s *SectionHeader) String() string {
	return structString(s.fileOffset, "SECTION_HEADER", s.ImageSectionHeader) + flagString(s.flags)
}

// Helper functions

func structString(fileOffset int, structName string, iface interface{}) string {
	sType := reflect.TypeOf(iface)
	sValue := reflect.ValueOf(iface)
	values := "[" + structName + "]\n"
	for i := 0; i < sType.NumField(); i++ {
		sField := sType.Field(i)
		vField := sValue.Field(i)
		kind := vField.Kind()

		fieldOffset := uint64(fileOffset) + uint64(sField.Offset)
		if kind == reflect.Uint8 || kind == reflect.Uint16 || kind == reflect.Uint32 {
			values += fmt.Sprintf("0x%-4X\t\t0x%-4X\t%-24s\t0x%X"+
				"\n", fieldOffset, sField.Offset, sField.Name, vField.Interface())
		}

		if kind == reflect.Array || kind == reflect.Slice || kind == reflect.String {
			values += fmt.Sprintf("0x%-4X\t\t0x%-4X\t%-24s\t%s"+
				"\n", fieldOffset, sField.Offset, sField.Name, vField.Interface())
		}

		if kind == reflect.Bool {
			values += fmt.Sprintf("0x%-4X\t\t0x%-4X\t%-24s\t%t"+
				"\n", fieldOffset, sField.Offset, sField.Name, vField.Interface())
		}
	}
	return values
}

func flagString(flagMap map[string]bool) string {
	if len(flagMap) == 0 {
		return "No Flags\n"
	}

	values := ""
	for key, value := range flagMap {
		if value == true {
			values += key + " | "
		}
	}

	return "Flags: " + strings.TrimSuffix(values, " | ") + "\n"
}

// Call this function after the data has been parsed
func SetFlags(flagMap map[string]bool, charMap map[string]uint32, flags uint32) {
	for key, value := range charMap {
		if (flags & value) == value {
			flagMap[key] = true
		} else {
			flagMap[key] = false
		}
	}
}
