package pe

import (
	"errors"
	"io"
	"log"
	"math"
	"os"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// ErrZeroVirtualSize is returned when a section header declares a virtual
// size of zero but section data was requested. A zero-sized section with
// data is not representable and marks the file as structurally invalid.
var ErrZeroVirtualSize = errors.New("section has zero virtual size")

// DiagnosticSink receives formatted messages about non-fatal anomalies
// (missing or short raw data, save with no data). A nil sink is a no-op.
type DiagnosticSink func(format string, args ...interface{})

// LogSink is a DiagnosticSink writing through the standard logger.
func LogSink(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Section models one PE section: the mapping between its on-disk byte range
// and its in-memory image, plus the buffer holding that data.
//
// The buffer is exclusively owned by the Section. Its length is the
// allocated size and is tracked independently of SizeOfRawData and
// VirtualSize; load operations never grow it. Stream and file handles passed
// in are owned and closed by the caller.
type Section struct {
	name            string
	virtualSize     uint32
	rva             uint32
	rawSize         uint32
	rawOffset       uint32
	characteristics uint32

	data []byte
	sink DiagnosticSink
}

// NewSection builds a section from an on-disk header. If sourceData is
// non-nil it must hold at least header.Misc_VirtualSize_PhysicalAddress
// bytes, which are copied into the freshly allocated buffer.
func NewSection(header *ImageSectionHeader, sourceData []byte, sink DiagnosticSink) (*Section, error) {
	s := &Section{sink: sink}
	if err := s.SetHeader(header, sourceData, true); err != nil {
		return nil, err
	}
	return s, nil
}

// SetHeader copies the six metadata fields from header. With changeData set,
// the buffer is reallocated to VirtualSize bytes, zero-initialized, and
// filled from sourceData if supplied; a zero VirtualSize is rejected with
// ErrZeroVirtualSize and the buffer is released. With changeData unset only
// the metadata is updated, so a section can be re-tagged without touching
// its bytes.
func (s *Section) SetHeader(header *ImageSectionHeader, sourceData []byte, changeData bool) error {
	s.name = header.NameString()
	s.virtualSize = header.Misc_VirtualSize_PhysicalAddress
	s.rva = header.VirtualAddress
	s.rawSize = header.SizeOfRawData
	s.rawOffset = header.PointerToRawData
	s.characteristics = header.Characteristics

	if !changeData {
		return nil
	}

	if s.virtualSize == 0 {
		s.data = nil
		return ErrZeroVirtualSize
	}

	s.data = make([]byte, s.virtualSize)
	if sourceData != nil {
		copy(s.data, sourceData)
	}
	return nil
}

// LoadDataFromStreamEx reads the section's raw bytes from rs.
//
// A zero rawOffset or rawSize means there is nothing to load and yields
// false without touching the stream; a failed seek also yields false. The
// read is clamped to the allocated buffer so a lying header can never reach
// past it. Short reads are tolerated: truncated section tables are routine
// in real-world and hostile binaries and must not abort the wider parse. An
// empty read clears the section (no raw data at all); both cases report
// through the diagnostic sink and still count as a completed load.
func (s *Section) LoadDataFromStreamEx(rs io.ReadSeeker, rawOffset, rawSize uint32) bool {
	if rawOffset == 0 || rawSize == 0 {
		return false
	}

	if _, err := rs.Seek(int64(rawOffset), io.SeekStart); err != nil {
		return false
	}

	toRead := MinUInt32(rawSize, uint32(len(s.data)))

	n, _ := io.ReadFull(rs, s.data[:toRead])
	switch {
	case n == 0:
		s.ClearData()
		s.diag("section %q has no raw data at offset 0x%x", s.name, rawOffset)
	case uint32(n) < toRead:
		s.diag("section %q: only 0x%x of 0x%x raw bytes available, using actual count", s.name, n, toRead)
	}
	return true
}

// LoadDataFromStream loads the raw bytes using the section's own stored
// offset and size.
func (s *Section) LoadDataFromStream(rs io.ReadSeeker) bool {
	return s.LoadDataFromStreamEx(rs, s.rawOffset, s.rawSize)
}

// SaveDataToStream writes the on-disk slice, exactly SizeOfRawData bytes
// from the buffer start. It fails when there is nothing to write, or when
// the full count could not be written; the write never reads past the
// allocated buffer even if the header claims more.
func (s *Section) SaveDataToStream(w io.Writer) bool {
	if len(s.data) == 0 || s.rawSize == 0 {
		s.diag("section %q has no data to save", s.name)
		return false
	}

	toWrite := s.rawSize
	if allocated := uint32(len(s.data)); toWrite > allocated {
		s.diag("section %q: raw size 0x%x exceeds allocated 0x%x, writing allocated bytes only",
			s.name, s.rawSize, allocated)
		toWrite = allocated
	}

	n, err := w.Write(s.data[:toWrite])
	return err == nil && uint32(n) == s.rawSize
}

// SaveToFile dumps the mapped image, VirtualSize bytes, to a newly created
// (or truncated) file. Note the asymmetry with SaveDataToStream: this call
// writes the in-memory image, not the on-disk slice. Failures are reported
// through the diagnostic sink but collapse into the boolean result.
func (s *Section) SaveToFile(path string) bool {
	if len(s.data) == 0 {
		s.diag("section %q has no data to save", s.name)
		return false
	}

	toWrite := MinUInt32(s.virtualSize, uint32(len(s.data)))

	f, err := os.Create(path)
	if err != nil {
		s.diag("section %q: creating %s: %v", s.name, path, err)
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	n, err := f.Write(s.data[:toWrite])
	if err != nil {
		s.diag("section %q: writing %s: %v", s.name, path, err)
		return false
	}
	return uint32(n) == s.virtualSize
}

// ClearData releases the buffer and resets the raw location. The virtual
// size, RVA, characteristics and name are kept.
func (s *Section) ClearData() {
	s.data = nil
	s.rawSize = 0
	s.rawOffset = 0
}

// Resize sets both SizeOfRawData and VirtualSize to newSize and reallocates
// the buffer accordingly. The existing prefix up to min(old, new) is
// preserved; any added tail is zero-filled.
func (s *Section) Resize(newSize uint32) {
	data := make([]byte, newSize)
	copy(data, s.data)
	s.data = data
	s.rawSize = newSize
	s.virtualSize = newSize
}

// FillData overwrites the whole buffer with value, leaving sizes and
// metadata alone. Stripping tools wipe discardable sections this way before
// writing the file back out.
func (s *Section) FillData(value byte) {
	MemsetRepeat(s.data, value)
}

// ContainsRVA reports whether rva falls within [RVA, RVA+VirtualSize).
func (s *Section) ContainsRVA(rva uint32) bool {
	return rva >= s.rva && rva < s.rva+s.virtualSize
}

// EndRVA returns the first RVA past the section.
func (s *Section) EndRVA() uint32 {
	return s.rva + s.virtualSize
}

// LastRVA returns the last RVA inside the section. Must not be called on a
// section with zero virtual size.
func (s *Section) LastRVA() uint32 {
	return s.rva + s.virtualSize - 1
}

// EndRawOffset returns the file offset just past the raw data region.
func (s *Section) EndRawOffset() uint32 {
	return s.rawOffset + s.rawSize
}

// IsNameSafe reports whether the name is non-empty, printable ASCII. Headers
// of hostile files embed control characters and garbage here, so check
// before surfacing the name in UI, filenames or reports.
func (s *Section) IsNameSafe() bool {
	return printableNameRegex.MatchString(s.name)
}

// IsCode reports whether the section is marked as containing executable code.
func (s *Section) IsCode() bool {
	return s.characteristics&IMAGE_SCN_CNT_CODE != 0
}

// IsExecutable reports whether the section memory is marked executable.
func (s *Section) IsExecutable() bool {
	return s.characteristics&IMAGE_SCN_MEM_EXECUTE != 0
}

// Header serializes the section back into the fixed on-disk layout. The
// name is truncated or NUL-padded to the fixed field width; numeric fields
// are packed verbatim.
func (s *Section) Header() *ImageSectionHeader {
	header := new(ImageSectionHeader)
	header.SetName(s.name)
	header.Misc_VirtualSize_PhysicalAddress = s.virtualSize
	header.VirtualAddress = s.rva
	header.SizeOfRawData = s.rawSize
	header.PointerToRawData = s.rawOffset
	header.Characteristics = s.characteristics
	return header
}

func (s *Section) Name() string            { return s.name }
func (s *Section) VirtualSize() uint32     { return s.virtualSize }
func (s *Section) RVA() uint32             { return s.rva }
func (s *Section) RawSize() uint32         { return s.rawSize }
func (s *Section) RawOffset() uint32       { return s.rawOffset }
func (s *Section) Characteristics() uint32 { return s.characteristics }

// Data exposes the owned buffer for in-place edits by the surrounding
// toolkit. The slice stays valid until the next SetHeader, Resize or
// ClearData call.
func (s *Section) Data() []byte {
	return s.data
}

// AllocatedSize returns the current buffer length.
func (s *Section) AllocatedSize() int {
	return len(s.data)
}

// Hash returns the xxhash64 digest of the buffer contents, for quick
// comparison of section data across files or edits.
func (s *Section) Hash() uint64 {
	return xxhash.Sum64(s.data)
}

// Entropy returns the Shannon entropy of the buffer in bits per byte.
// Values close to 8 usually mean packed or encrypted content.
func (s *Section) Entropy() float64 {
	if len(s.data) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range s.data {
		counts[b]++
	}

	entropy := 0.0
	total := float64(len(s.data))
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func (s *Section) String() string {
	header := s.Header()
	flags := make(map[string]bool)
	SetFlags(flags, SectionCharacteristics, s.characteristics)
	return structString(int(s.rawOffset), "SECTION", *header) + flagString(flags)
}

func (s *Section) diag(format string, args ...interface{}) {
	if s.sink != nil {
		s.sink(format, args...)
	}
}

// Anything outside printable ASCII is treated as unsafe.
var printableNameRegex = regexp.MustCompile(`^[\x20-\x7e]+$`)
