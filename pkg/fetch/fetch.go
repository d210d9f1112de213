package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

// Some download hosts reject requests that identify as a generic HTTP
// library, so every request goes out with a browser user-agent.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/83.0.4103.97 Safari/537.36"

// copyChunkSize is the buffer size for metered streaming writes.
const copyChunkSize = 32 * 1024

// Progress receives cumulative transfer updates. done never exceeds total
// and equals total exactly when the operation succeeds. It is only called
// when the total is known up front.
type Progress func(done, total int64)

// Fetcher downloads artifacts over HTTP(S).
//
// The zero http.Client carries no timeout on purpose: SDK archives run to
// multiple gigabytes, so cancellation is the caller's job via context.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithUserAgent overrides the default browser user-agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher creates a Fetcher with the default client and user-agent.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url to dest, creating missing parent directories.
//
// The body is streamed to a uniquely named ".part" file beside dest and
// renamed into place once complete, so no failure mode leaves a truncated
// file at dest. When the server reports a content length the body is
// copied in fixed-size chunks with progress callbacks; otherwise it is
// written in a single unmetered copy.
//
// Network, HTTP-status, and I/O failures remove the partial file and
// return a NETWORK_ERROR. Fetch never retries.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string, progress Progress) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeNetwork, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeNetwork, err, "download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return xerrors.New(xerrors.CodeNetwork, "unexpected status %d for %s", resp.StatusCode, url)
	}

	part := fmt.Sprintf("%s.part-%s", dest, uuid.NewString())
	out, err := os.Create(part)
	if err != nil {
		return err
	}

	werr := writeBody(out, resp.Body, resp.ContentLength, progress)
	if cerr := out.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(part)
		return xerrors.Wrap(xerrors.CodeNetwork, werr, "download %s", url)
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return err
	}
	return nil
}

// Extract unpacks an archive beside itself. It delegates to the package
// function and exists so callers can depend on a single fetcher interface.
func (f *Fetcher) Extract(archive string, kind Kind, deleteAfter bool, progress Progress) error {
	return Extract(archive, kind, deleteAfter, progress)
}

func writeBody(w io.Writer, body io.Reader, total int64, progress Progress) error {
	if total < 0 || progress == nil {
		_, err := io.Copy(w, body)
		return err
	}

	buf := make([]byte, copyChunkSize)
	var done int64
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			done += int64(n)
			progress(min(done, total), total)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	// An early EOF would otherwise look like success; the declared length
	// is the contract.
	if done < total {
		return fmt.Errorf("truncated body: got %d of %d bytes", done, total)
	}
	return nil
}
