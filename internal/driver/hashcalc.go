package driver

import (
	"crypto/sha256"
	"fmt"

	"lockweak/internal/version"
)

// Digest is a SHA-256 content key.
type Digest [32]byte

// cacheKey: H(schema || tool version || fingerprint(opts) || content). Любая
// смена версии, имён, политики или отступов даёт новый ключ.
func cacheKey(content []byte, opts Options) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "lockweak/%d\x00%s\x00%s\x00%s\x00%s\x00%s\x00%s\x00%d\x00%t\x00%q\x00",
		diskCacheSchemaVersion, version.Version,
		opts.Names.Locked, opts.Names.Register, opts.Names.Wrapper, opts.Names.Lock,
		opts.Policy,
		opts.Format.IndentWidth, opts.Format.UseTabs, opts.Format.Indent,
	)
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
