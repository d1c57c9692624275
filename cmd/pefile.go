package cmd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"os"

	"github.com/edsrzf/mmap-go"

	"pesection/pkg/pe"
)

const (
	dosMagic      = 0x5A4D     // "MZ"
	ntSignature   = 0x00004550 // "PE\0\0"
	lfanewOffset  = 0x3c
	fileHeaderLen = 20
)

// mappedFile is a PE file mapped read-only into memory, exposed through a
// bytes.Reader so section loads can seek and read it like any stream.
type mappedFile struct {
	handle *os.File
	data   mmap.MMap
	reader *bytes.Reader
}

func openMapped(filename string) (*mappedFile, error) {
	handle, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(handle, mmap.RDONLY, 0)
	if err != nil {
		_ = handle.Close()
		return nil, err
	}

	return &mappedFile{
		handle: handle,
		data:   data,
		reader: bytes.NewReader(data),
	}, nil
}

func (m *mappedFile) Close() {
	_ = m.data.Unmap()
	_ = m.handle.Close()
}

// locateSectionTable walks the DOS and NT headers just far enough to find
// the section table. It deliberately avoids a full PE parse so damaged
// optional headers or data directories do not get in the way.
func locateSectionTable(data []byte) (offset, count int, err error) {
	if len(data) < lfanewOffset+4 {
		return 0, 0, errors.New("file too small for a DOS header")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != dosMagic {
		return 0, 0, errors.New("DOS header magic not found")
	}

	lfanew := int(binary.LittleEndian.Uint32(data[lfanewOffset : lfanewOffset+4]))
	if lfanew <= 0 || lfanew+4+fileHeaderLen > len(data) {
		return 0, 0, errors.New("invalid e_lfanew value, probably not a PE file")
	}
	if binary.LittleEndian.Uint32(data[lfanew:lfanew+4]) != ntSignature {
		return 0, 0, errors.New("invalid NT headers signature")
	}

	fileHeader := lfanew + 4
	numberOfSections := int(binary.LittleEndian.Uint16(data[fileHeader+2 : fileHeader+4]))
	sizeOfOptionalHeader := int(binary.LittleEndian.Uint16(data[fileHeader+16 : fileHeader+18]))

	return fileHeader + fileHeaderLen + sizeOfOptionalHeader, numberOfSections, nil
}

// loadSections reads every section-table entry and pulls in its raw data.
// Sections with a zero virtual size are skipped with a warning; the rest of
// the table is still processed.
func loadSections(m *mappedFile) ([]*pe.Section, error) {
	tableOffset, count, err := locateSectionTable(m.data)
	if err != nil {
		return nil, err
	}

	var sections []*pe.Section
	for i := 0; i < count; i++ {
		header, err := pe.ReadSectionHeader(m.reader, tableOffset+i*pe.IMAGE_SIZEOF_SECTION_HEADER)
		if err != nil {
			// Truncated section tables are common; keep what was readable.
			log.Printf("section table entry %d unreadable: %v", i, err)
			break
		}

		section, err := pe.NewSection(&header.ImageSectionHeader, nil, pe.LogSink)
		if err != nil {
			log.Printf("skipping section %d (%q): %v", i, header.NameString(), err)
			continue
		}

		section.LoadDataFromStream(m.reader)
		sections = append(sections, section)
	}
	return sections, nil
}
