package compress

// None is the identity compressor. Intended for debugging cache contents;
// the level is ignored.
type None struct{}

// Compress implements Compressor.
func (None) Compress(data []byte, _ int) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Decompress implements Compressor.
func (None) Decompress(data []byte, _ int) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Name implements Compressor.
func (None) Name() string { return "none" }
