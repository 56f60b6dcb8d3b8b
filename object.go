package joosym

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/blacktop/go-dwarf"
	"github.com/blacktop/go-macho"

	"github.com/appsworld/go-joosym/types/joos"
)

// ErrUnknownFormat is returned by NewFile for data that is neither ELF nor Mach-O.
var ErrUnknownFormat = errors.New("joosym: unrecognized object file format")

// DW_AT_linkage_name
const attrLinkageName = dwarf.Attr(0x6e)

// ObjectFormat is the container format of an opened object file.
type ObjectFormat uint8

const (
	FormatELF ObjectFormat = iota + 1
	FormatMachO
)

func (f ObjectFormat) String() string {
	switch f {
	case FormatELF:
		return "ELF"
	case FormatMachO:
		return "Mach-O"
	}
	return fmt.Sprintf("ObjectFormat(%d)", f)
}

var machoMagics = [][]byte{
	{0xfe, 0xed, 0xfa, 0xce},
	{0xce, 0xfa, 0xed, 0xfe},
	{0xfe, 0xed, 0xfa, 0xcf},
	{0xcf, 0xfa, 0xed, 0xfe},
}

// Symbol is one entry of an object file's symbol table.
type Symbol struct {
	Name  string
	Value uint64

	// Set when Name carries a Joos prefix. Exactly one of Entity and Err is non-nil.
	Entity    joos.Entity
	Demangled string
	Err       error
}

// Display returns the demangled name when there is one and the raw name otherwise.
func (s Symbol) Display() string {
	if s.Entity != nil {
		return s.Demangled
	}
	return s.Name
}

// Function is a subprogram described by DWARF debug info.
type Function struct {
	Name  string
	LowPC uint64

	Entity    joos.Entity
	Demangled string
	Err       error
}

// File is an open object file produced by the Joos toolchain.
type File struct {
	Format ObjectFormat

	elf    *elf.File
	macho  *macho.File
	closer io.Closer
}

// Open opens the named object file.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	ff, err := NewFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ff.closer = f
	return ff, nil
}

// Close closes the File if it was opened with Open.
func (f *File) Close() error {
	var err error
	if f.closer != nil {
		err = f.closer.Close()
		f.closer = nil
	}
	return err
}

// NewFile detects the object format of r and parses its headers.
func NewFile(r io.ReaderAt) (*File, error) {
	var magic [4]byte
	if _, err := r.ReadAt(magic[:], 0); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	switch {
	case bytes.Equal(magic[:], []byte(elf.ELFMAG)):
		ef, err := elf.NewFile(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ELF: %w", err)
		}
		if debug {
			log.Printf("joosym: opened %s %s object", ef.Class, ef.Machine)
		}
		return &File{Format: FormatELF, elf: ef}, nil
	case isMachOMagic(magic[:]):
		mf, err := macho.NewFile(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Mach-O: %w", err)
		}
		if debug {
			log.Printf("joosym: opened Mach-O %s object", mf.CPU)
		}
		return &File{Format: FormatMachO, macho: mf}, nil
	}
	return nil, fmt.Errorf("%w: magic %x", ErrUnknownFormat, magic)
}

func isMachOMagic(magic []byte) bool {
	for _, m := range machoMagics {
		if bytes.Equal(magic, m) {
			return true
		}
	}
	return false
}

// Symbols returns the symbol table. Joos symbols are demangled; a symbol that
// looks mangled but fails to decode keeps its decode error in Err.
func (f *File) Symbols() ([]Symbol, error) {
	var syms []Symbol
	switch f.Format {
	case FormatELF:
		esyms, err := f.elf.Symbols()
		if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("failed to read ELF symbols: %w", err)
		}
		for _, s := range esyms {
			syms = append(syms, newSymbol(s.Name, s.Value))
		}
	case FormatMachO:
		if f.macho.Symtab == nil {
			break
		}
		for _, s := range f.macho.Symtab.Syms {
			syms = append(syms, newSymbol(machoSymbolName(s.Name), s.Value))
		}
	}
	if debug {
		log.Printf("joosym: read %d symbols", len(syms))
	}
	return syms, nil
}

// machoSymbolName undoes the C-level underscore Mach-O toolchains prepend.
func machoSymbolName(name string) string {
	if strings.HasPrefix(name, "__J") || strings.HasPrefix(name, "_jcf.") {
		return name[1:]
	}
	return name
}

func newSymbol(name string, value uint64) Symbol {
	sym := Symbol{Name: name, Value: value}
	if !IsMangled(name) {
		return sym
	}
	e, err := DemangleSymbol(name)
	if err != nil {
		sym.Err = err
		return sym
	}
	sym.Entity = e
	sym.Demangled = e.String()
	return sym
}

// DWARF returns the DWARF debug data of the file.
func (f *File) DWARF() (*dwarf.Data, error) {
	switch f.Format {
	case FormatMachO:
		return f.macho.DWARF()
	case FormatELF:
		return f.elfDWARF()
	}
	return nil, ErrUnknownFormat
}

func (f *File) elfDWARF() (*dwarf.Data, error) {
	// These are the sections the dwarf package reads.
	var dat = map[string][]byte{"abbrev": nil, "info": nil, "str": nil, "line": nil, "ranges": nil}
	for suffix := range dat {
		s := f.elf.Section(".debug_" + suffix)
		if s == nil {
			continue
		}
		b, err := s.Data()
		if err != nil {
			return nil, fmt.Errorf("failed to read section %s: %w", s.Name, err)
		}
		dat[suffix] = b
	}
	if dat["info"] == nil {
		return nil, fmt.Errorf("no DWARF debug info")
	}
	return dwarf.New(dat["abbrev"], nil, nil, dat["info"], dat["line"], nil, dat["ranges"], dat["str"])
}

// Functions walks the DWARF subprogram entries and demangles their linkage names.
func (f *File) Functions() ([]Function, error) {
	d, err := f.DWARF()
	if err != nil {
		return nil, fmt.Errorf("failed to load DWARF: %w", err)
	}
	var funcs []Function
	r := d.Reader()
	for {
		entry, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read DWARF entry: %w", err)
		}
		if entry == nil {
			break
		}
		if entry.Tag != dwarf.TagSubprogram {
			continue
		}
		name, _ := entry.Val(attrLinkageName).(string)
		if name == "" {
			name, _ = entry.Val(dwarf.AttrName).(string)
		}
		if name == "" {
			continue
		}
		fn := Function{Name: name}
		fn.LowPC, _ = entry.Val(dwarf.AttrLowpc).(uint64)
		if IsMangled(name) {
			if e, err := DemangleSymbol(name); err != nil {
				fn.Err = err
			} else {
				fn.Entity = e
				fn.Demangled = e.String()
			}
		}
		funcs = append(funcs, fn)
	}
	return funcs, nil
}
