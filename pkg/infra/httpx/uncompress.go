package httpx

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

var ErrDecodedTooLarge = errors.New("decoded content exceeds the size limit")

const (
	EncodingIdentity = ""
	EncodingGzip     = "gzip"
	EncodingBrotli   = "br"
	EncodingZstd     = "zstd"
)

var suffixEncodings = map[string]string{
	".gz":   EncodingGzip,
	".gzip": EncodingGzip,
	".br":   EncodingBrotli,
	".zst":  EncodingZstd,
	".zstd": EncodingZstd,
}

// SplitEncoding strips a compression suffix from fileName. "app.log.gz"
// gives ("app.log", "gzip"); a name without one is returned unchanged with
// EncodingIdentity.
func SplitEncoding(fileName string) (string, string) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if enc, ok := suffixEncodings[ext]; ok {
		return strings.TrimSuffix(fileName, fileName[len(fileName)-len(ext):]), enc
	}
	return fileName, EncodingIdentity
}

// Decode inflates data with the given encoding. At most limit decoded bytes
// are accepted; a larger output fails with ErrDecodedTooLarge without
// reading the rest of the stream. A limit <= 0 disables the check.
func Decode(encoding string, data []byte, limit int) ([]byte, error) {
	var (
		r   io.Reader
		err error
	)
	switch encoding {
	case EncodingIdentity:
		if limit > 0 && len(data) > limit {
			return nil, ErrDecodedTooLarge
		}
		return data, nil
	case EncodingGzip:
		gr, gerr := gzip.NewReader(bytes.NewReader(data))
		if gerr != nil {
			return nil, fmt.Errorf("invalid gzip stream: %w", gerr)
		}
		defer func() { _ = gr.Close() }()
		r = gr
	case EncodingBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case EncodingZstd:
		dec, zerr := zstd.NewReader(bytes.NewReader(data))
		if zerr != nil {
			return nil, fmt.Errorf("invalid zstd stream: %w", zerr)
		}
		defer dec.Close()
		r = dec
	default:
		return nil, fmt.Errorf("unsupported encoding: %q", encoding)
	}

	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s content: %w", encoding, err)
	}
	if limit > 0 && len(out) > limit {
		return nil, ErrDecodedTooLarge
	}
	return out, nil
}
