package modcache

import (
	_ "crypto/sha256" // registers sha256 for go-digest
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/opencontainers/go-digest"
)

// Key is the content address of a module's compile-relevant bytes: a SHA-256
// digest in canonical "sha256:<hex>" form. The zero value means "no key"
// (caching disabled for the compile that would have produced it).
//
// A Key deliberately excludes the target triple, compiler identity and
// debug-info flag; those are folded in by EntryPath, so one module's key is
// reused across targets and compilers without rehashing.
type Key digest.Digest

// keyPreamble domain-separates cache keys from any other use of SHA-256 over
// module bytes and versions the hash layout itself.
const keyPreamble = "modcache/key/v1\x00"

// Digest returns the key as a typed digest.
func (k Key) Digest() digest.Digest { return digest.Digest(k) }

// IsZero reports whether the key is unset.
func (k Key) IsZero() bool { return k == "" }

func (k Key) String() string { return string(k) }

// Filename renders the raw digest bytes in URL-safe unpadded base64 (43
// characters for SHA-256). Standard base64 uses '/', which cannot appear in
// a path segment.
func (k Key) Filename() string {
	if err := digest.Digest(k).Validate(); err != nil {
		return ""
	}
	raw, err := hex.DecodeString(digest.Digest(k).Encoded())
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Module is the collaborator interface a compiler's module representation
// implements for cache keying. WriteContent must feed every compile-relevant
// byte to w in a stable order, independent of incidental in-memory
// representation (map iteration order and the like), and must skip metadata
// that does not affect codegen (source positions, names kept only for
// diagnostics). Two modules that would compile identically must write
// identical bytes.
type Module interface {
	WriteContent(w io.Writer) error
}

// FunctionBody is one function's input to the compiler.
type FunctionBody struct {
	// Code is the function's body bytes; hashed.
	Code []byte
	// Offset is the body's position in the source container. Kept for
	// diagnostics only and excluded from the key.
	Offset uint64
}

// BytesModule adapts a raw module binary whose entire contents are
// compile-relevant.
type BytesModule []byte

// WriteContent implements Module.
func (m BytesModule) WriteContent(w io.Writer) error {
	_, err := w.Write(m)
	return err
}

// DeriveKey hashes a module and its function bodies into a cache key.
// The only error source is the module's own WriteContent.
func DeriveKey(mod Module, bodies []FunctionBody) (Key, error) {
	digester := digest.SHA256.Digester()
	h := digester.Hash()

	// hash.Hash writes never fail.
	_, _ = io.WriteString(h, keyPreamble)
	if err := mod.WriteContent(h); err != nil {
		return "", err
	}

	// Length-prefix each body so adjacent bodies cannot alias across a
	// boundary shift.
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(bodies)))
	_, _ = h.Write(n[:])
	for _, body := range bodies {
		binary.LittleEndian.PutUint64(n[:], uint64(len(body.Code)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(body.Code)
	}

	return Key(digester.Digest()), nil
}
