package providers

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Bodies below this size are sent uncompressed.
const compressionMinSize = 512

func CompressionMiddleware(next http.Handler) (http.Handler, error) {
	wrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(compressionMinSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}
	return wrapper(next), nil
}
