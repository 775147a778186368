// pkg/utils/decoding.go
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Decompress wraps r according to a Content-Encoding header value. A body
// without a declared encoding that starts with the gzip magic number is
// gunzipped anyway, some servers compress without saying so.
//
// The returned reader must be closed; closing it does not close r.
func Decompress(r io.Reader, contentEncoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return zr, nil

	case "deflate":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating deflate reader: %w", err)
		}
		return zr, nil

	case "br":
		return io.NopCloser(brotli.NewReader(r)), nil

	case "", "identity":
		br := bufio.NewReader(r)
		magic, err := br.Peek(2)
		if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
			zr, err := gzip.NewReader(br)
			if err != nil {
				return nil, fmt.Errorf("creating gzip reader for unlabeled body: %w", err)
			}
			return zr, nil
		}
		return io.NopCloser(br), nil

	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
}

// LookupEncoding resolves a WHATWG encoding label such as "windows-1250".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Transcode decodes r from enc into UTF-8. A nil encoding passes r through.
func Transcode(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil || enc == encoding.Nop {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// DecodeBody runs both transforms over a response body and returns the
// complete text.
func DecodeBody(body io.Reader, contentEncoding string, enc encoding.Encoding) (string, error) {
	plain, err := Decompress(body, contentEncoding)
	if err != nil {
		return "", err
	}
	defer plain.Close()

	text, err := io.ReadAll(Transcode(plain, enc))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(text), nil
}
