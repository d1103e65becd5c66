package waveform

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// SAC header layout (version 6): 70 float32 words, 40 int32 words and
// 192 bytes of fixed-width strings.
const (
	sacFloatWords  = 70
	sacIntWords    = 40
	sacStringBytes = 192
	sacHeaderBytes = 4*(sacFloatWords+sacIntWords) + sacStringBytes

	// SACUndefined marks an unset header value.
	SACUndefined = -12345

	sacVersion = 6
)

// Float header words.
const (
	sacDelta = 0
	sacB     = 5
	sacE     = 6
	sacO     = 7
	sacA     = 8
	sacT0    = 10
	sacF     = 20
)

// Int and logical header words, indexed from the first int word.
const (
	sacNVHDR  = 76 - sacFloatWords
	sacNPTS   = 79 - sacFloatWords
	sacIFTYPE = 85 - sacFloatWords
	sacLEVEN  = 105 - sacFloatWords

	sacITIME = 1
)

// String fields: byte offset within the string block and width.
var (
	sacKSTNM  = [2]int{0, 8}
	sacKEVNM  = [2]int{8, 16}
	sacKCMPNM = [2]int{160, 8}
	sacKNETWK = [2]int{168, 8}
)

// SAC is a SAC binary time series.
type SAC struct {
	Floats  [sacFloatWords]float32
	Ints    [sacIntWords]int32
	Strings [sacStringBytes]byte
	Data    []float32
}

// NewSAC returns an evenly sampled time series with every other header
// value undefined.
func NewSAC(station string, delta, begin float64, data []float64) *SAC {
	s := &SAC{Data: make([]float32, len(data))}
	for i := range s.Floats {
		s.Floats[i] = SACUndefined
	}
	for i := range s.Ints {
		s.Ints[i] = SACUndefined
	}
	for i := range s.Strings {
		s.Strings[i] = ' '
	}
	for i := 0; i < sacStringBytes; i += 8 {
		copy(s.Strings[i:], "-12345")
	}
	copy(s.Strings[sacKEVNM[0]:sacKEVNM[0]+sacKEVNM[1]], "-12345          ")

	for i, v := range data {
		s.Data[i] = float32(v)
	}
	s.Floats[sacDelta] = float32(delta)
	s.Floats[sacB] = float32(begin)
	s.Floats[sacE] = float32(begin + delta*float64(max(len(data)-1, 0)))
	s.Ints[sacNVHDR] = sacVersion
	s.Ints[sacNPTS] = int32(len(data))
	s.Ints[sacIFTYPE] = sacITIME
	s.Ints[sacLEVEN] = 1
	s.setString(sacKSTNM, station)
	return s
}

// Delta returns the sampling interval in seconds.
func (s *SAC) Delta() float64 { return float64(s.Floats[sacDelta]) }

// Begin returns the time of the first sample.
func (s *SAC) Begin() float64 { return float64(s.Floats[sacB]) }

// Station returns the station name.
func (s *SAC) Station() string { return s.getString(sacKSTNM) }

// Network returns the network code.
func (s *SAC) Network() string { return s.getString(sacKNETWK) }

// Component returns the component name.
func (s *SAC) Component() string { return s.getString(sacKCMPNM) }

// SetNetwork sets the network code.
func (s *SAC) SetNetwork(v string) { s.setString(sacKNETWK, v) }

// SetComponent sets the component name.
func (s *SAC) SetComponent(v string) { s.setString(sacKCMPNM, v) }

// Marker returns the time marker name ("b", "e", "o", "a", "f",
// "t0".."t9") and whether it is defined.
func (s *SAC) Marker(name string) (float64, bool) {
	idx, ok := markerWord(name)
	if !ok {
		return 0, false
	}
	v := s.Floats[idx]
	if v == SACUndefined {
		return 0, false
	}
	return float64(v), true
}

// SetMarker sets a time marker. Unknown names are ignored and reported.
func (s *SAC) SetMarker(name string, t float64) bool {
	idx, ok := markerWord(name)
	if !ok {
		return false
	}
	s.Floats[idx] = float32(t)
	return true
}

var markerNames = []string{"b", "e", "o", "a", "f", "t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9"}

func markerWord(name string) (int, bool) {
	switch name = strings.ToLower(name); name {
	case "b":
		return sacB, true
	case "e":
		return sacE, true
	case "o":
		return sacO, true
	case "a":
		return sacA, true
	case "f":
		return sacF, true
	}
	if len(name) == 2 && name[0] == 't' && name[1] >= '0' && name[1] <= '9' {
		return sacT0 + int(name[1]-'0'), true
	}
	return 0, false
}

// Trace converts s into a Trace with every defined marker as a pick.
func (s *SAC) Trace() Trace {
	tr := Trace{
		Station:    s.Station(),
		SampleRate: 1 / s.Delta(),
		Begin:      s.Begin(),
		Picks:      make(map[string]float64),
		Data:       make([]float64, len(s.Data)),
	}
	if net := s.Network(); net != "" {
		tr.Station = net + "." + tr.Station
	}
	for _, name := range markerNames {
		if v, ok := s.Marker(name); ok {
			tr.Picks[name] = v
		}
	}
	for i, v := range s.Data {
		tr.Data[i] = float64(v)
	}
	return tr
}

func (s *SAC) getString(f [2]int) string {
	v := strings.TrimRight(string(s.Strings[f[0]:f[0]+f[1]]), " \x00")
	if v == "-12345" {
		return ""
	}
	return v
}

func (s *SAC) setString(f [2]int, v string) {
	field := s.Strings[f[0] : f[0]+f[1]]
	for i := range field {
		field[i] = ' '
	}
	copy(field, v)
}

// ReadSAC decodes an evenly sampled SAC binary time series in either byte
// order.
func ReadSAC(r io.Reader) (*SAC, error) {
	header := make([]byte, sacHeaderBytes)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}

	order, err := detectByteOrder(header)
	if err != nil {
		return nil, err
	}

	s := &SAC{}
	if err := binary.Read(bytes.NewReader(header), order, &s.Floats); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	ints := header[4*sacFloatWords:]
	if err := binary.Read(bytes.NewReader(ints), order, &s.Ints); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	copy(s.Strings[:], header[4*(sacFloatWords+sacIntWords):])

	switch {
	case s.Ints[sacLEVEN] == 0:
		return nil, fmt.Errorf("%w: unevenly sampled data", ErrFormat)
	case s.Ints[sacIFTYPE] != sacITIME && s.Ints[sacIFTYPE] != SACUndefined:
		return nil, fmt.Errorf("%w: file type %d is not a time series", ErrFormat, s.Ints[sacIFTYPE])
	case s.Ints[sacNPTS] < 0:
		return nil, fmt.Errorf("%w: negative sample count %d", ErrFormat, s.Ints[sacNPTS])
	case !(s.Floats[sacDelta] > 0):
		return nil, fmt.Errorf("%w: sampling interval %g", ErrFormat, s.Floats[sacDelta])
	}

	// NPTS is untrusted until the data bytes are present.
	want := 4 * int64(s.Ints[sacNPTS])
	raw, err := io.ReadAll(io.LimitReader(r, want))
	if err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrFormat, err)
	}
	if int64(len(raw)) != want {
		return nil, fmt.Errorf("%w: data: %d bytes, header declares %d samples", ErrFormat, len(raw), s.Ints[sacNPTS])
	}

	s.Data = make([]float32, s.Ints[sacNPTS])
	if err := binary.Read(bytes.NewReader(raw), order, s.Data); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrFormat, err)
	}

	return s, nil
}

// ReadSACFile reads a SAC file from disk.
func ReadSACFile(path string) (*SAC, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	s, err := ReadSAC(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteSAC encodes s in little-endian byte order. The sample count is
// taken from len(s.Data).
func WriteSAC(w io.Writer, s *SAC) error {
	ints := s.Ints
	ints[sacNPTS] = int32(len(s.Data))
	if ints[sacNVHDR] == SACUndefined || ints[sacNVHDR] == 0 {
		ints[sacNVHDR] = sacVersion
	}

	for _, v := range []any{&s.Floats, &ints, &s.Strings, s.Data} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("waveform: write SAC: %w", err)
		}
	}
	return nil
}

func detectByteOrder(header []byte) (binary.ByteOrder, error) {
	off := 4 * (sacFloatWords + sacNVHDR)
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		if v := int32(order.Uint32(header[off:])); v >= 1 && v <= 20 {
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot determine byte order from header version", ErrFormat)
}
