package pe

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageSectionHeaderSize(t *testing.T) {
	require.Equal(t, IMAGE_SIZEOF_SECTION_HEADER, binary.Size(ImageSectionHeader{}))

	header := makeHeader(".text", 0x100, 0x1000, 0x200, 0x400, IMAGE_SCN_CNT_CODE)
	require.Len(t, header.Bytes(), IMAGE_SIZEOF_SECTION_HEADER)
}

func TestImageSectionHeaderName(t *testing.T) {
	t.Run("Short name is NUL padded", func(t *testing.T) {
		var header ImageSectionHeader
		header.SetName(".text")
		require.Equal(t, [IMAGE_SIZEOF_SHORT_NAME]uint8{'.', 't', 'e', 'x', 't', 0, 0, 0}, header.Name)
		require.Equal(t, ".text", header.NameString())
	})

	t.Run("Eight significant characters carry no terminator", func(t *testing.T) {
		var header ImageSectionHeader
		header.SetName(".textbss")
		require.Equal(t, [IMAGE_SIZEOF_SHORT_NAME]uint8{'.', 't', 'e', 'x', 't', 'b', 's', 's'}, header.Name)
		require.Equal(t, ".textbss", header.NameString())
	})

	t.Run("Overlong name is truncated", func(t *testing.T) {
		var header ImageSectionHeader
		header.SetName(".morethan8bytes")
		require.Equal(t, ".moretha", header.NameString())
	})

	t.Run("SetName clears previous contents", func(t *testing.T) {
		var header ImageSectionHeader
		header.SetName(".textbss")
		header.SetName(".a")
		require.Equal(t, ".a", header.NameString())
	})

	t.Run("Garbled bytes survive the round trip", func(t *testing.T) {
		var header ImageSectionHeader
		header.Name = [IMAGE_SIZEOF_SHORT_NAME]uint8{0x01, 0xFF, 'x', 0, 0, 0, 0, 0}
		require.Equal(t, "\x01\xffx", header.NameString())
	})
}

func TestImageSectionHeaderBytes(t *testing.T) {
	header := makeHeader(".rdata", 0x1234, 0x5000, 0x1400, 0x800,
		IMAGE_SCN_CNT_INITIALIZED_DATA|IMAGE_SCN_MEM_READ)
	data := header.Bytes()

	// Spot-check the little-endian field layout.
	require.Equal(t, []byte(".rdata\x00\x00"), data[0:8])
	require.Equal(t, uint32(0x1234), binary.LittleEndian.Uint32(data[8:12]))
	require.Equal(t, uint32(0x5000), binary.LittleEndian.Uint32(data[12:16]))
	require.Equal(t, uint32(0x1400), binary.LittleEndian.Uint32(data[16:20]))
	require.Equal(t, uint32(0x800), binary.LittleEndian.Uint32(data[20:24]))
	require.Equal(t, header.Characteristics, binary.LittleEndian.Uint32(data[36:40]))
}

func TestReadSectionHeader(t *testing.T) {
	t.Run("Round trip at an offset", func(t *testing.T) {
		original := makeHeader(".text", 0x100, 0x1000, 0x200, 0x400,
			IMAGE_SCN_CNT_CODE|IMAGE_SCN_MEM_EXECUTE|IMAGE_SCN_MEM_READ)

		// Lay the record down mid-stream, as in a real section table.
		stream := append(make([]byte, 0x30), original.Bytes()...)

		header, err := ReadSectionHeader(bytes.NewReader(stream), 0x30)
		require.NoError(t, err)
		require.Equal(t, *original, header.ImageSectionHeader)
		require.Equal(t, 0x30, header.FileOffset())

		require.True(t, header.Flags()["IMAGE_SCN_CNT_CODE"])
		require.True(t, header.Flags()["IMAGE_SCN_MEM_EXECUTE"])
		require.False(t, header.Flags()["IMAGE_SCN_MEM_WRITE"])
	})

	t.Run("Truncated record", func(t *testing.T) {
		_, err := ReadSectionHeader(bytes.NewReader(make([]byte, 0x10)), 0)
		require.Error(t, err)
	})
}

func TestSectionHeaderString(t *testing.T) {
	original := makeHeader(".text", 0x100, 0x1000, 0x200, 0x400, IMAGE_SCN_CNT_CODE)
	stream := original.Bytes()

	header, err := ReadSectionHeader(bytes.NewReader(stream), 0)
	require.NoError(t, err)

	dump := header.String()
	require.Contains(t, dump, "SECTION_HEADER")
	require.Contains(t, dump, "VirtualAddress")
	require.Contains(t, dump, "IMAGE_SCN_CNT_CODE")
}

func TestImageSectionHeaderWriteTo(t *testing.T) {
	header := makeHeader(".data", 0x10, 0x2000, 0x10, 0x600, 0)

	var out bytes.Buffer
	n, err := header.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(IMAGE_SIZEOF_SECTION_HEADER), n)
	require.Equal(t, header.Bytes(), out.Bytes())
}
