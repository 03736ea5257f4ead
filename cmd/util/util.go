// Package util provides the shared plumbing of the contact tools: common
// flags, fatal-error helpers and file helpers. Errors here terminate the
// process; library packages never do that.
package util

import (
	"fmt"
	"log"
	"os"

	"github.com/SanjiKun-Santhosh/PCMN/contact"
	"github.com/SanjiKun-Santhosh/PCMN/pdb"
)

func init() {
	log.SetFlags(0)
}

func Warnf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func Warning(err error, v ...interface{}) bool {
	if err != nil {
		if len(v) == 0 {
			Warnf("WARNING: %s.", err)
		} else {
			format := v[0].(string)
			v = v[1:]
			Warnf("%s: %s.", fmt.Sprintf(format, v...), err)
		}
		return true
	}
	return false
}

func Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

func Assert(err error, v ...interface{}) {
	if err != nil {
		if len(v) == 0 {
			Fatalf("ERROR: %s.", err)
		} else {
			format := v[0].(string)
			v = v[1:]
			Fatalf("%s: %s.", fmt.Sprintf(format, v...), err)
		}
	}
}

// StructureRead parses a PDB file and flattens it into a contact Structure,
// exiting on any parse error.
func StructureRead(path string) *contact.Structure {
	entry, err := pdb.ReadFile(path)
	Assert(err, "Could not read PDB file '%s'", path)
	return contact.FromPDB(entry)
}

// WriteFile writes data to path, exiting on failure.
func WriteFile(path string, data []byte) {
	Assert(os.WriteFile(path, data, 0644), "Could not write '%s'", path)
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}
