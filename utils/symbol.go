package utils

import (
	"unsafe"

	"github.com/exascience/pargo/sync"

	"github.com/seqtools/seqtext/internal"
)

// A Symbol is a unique pointer to a string. Two Symbols obtained from
// Intern are == if and only if the underlying strings are equal.
type Symbol *string

type symbolName string

func (s symbolName) Hash() uint64 {
	return internal.StringHash(string(s))
}

// SymbolHash computes a hash value for the given Symbol.
func SymbolHash(s Symbol) uint64 {
	return uint64(uintptr(unsafe.Pointer(s)))
}

var symbolTable = sync.NewMap(0)

// Intern returns the canonical Symbol for the given string.
//
// It always returns the same pointer for strings that are equal, and
// different pointers for strings that are not equal, and *Intern(s) == s
// always holds. It is safe for multiple goroutines to call Intern
// concurrently.
func Intern(s string) Symbol {
	entry, _ := symbolTable.LoadOrStore(symbolName(s), Symbol(&s))
	return entry.(Symbol)
}
