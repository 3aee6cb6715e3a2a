// Package download runs mod downloads through a bounded worker pool and
// hands each caller a future to wait on, grounded on the teacher's
// connection-pool shutdown idiom (a closing signal plus sync.Once) rather
// than its idle-connection reuse, since mcpkg has no long-lived connections
// to pool — every job is a one-shot GET verified against a digest.
package download

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"sync"
	"time"

	"mcpkg/internal/errkind"
	"mcpkg/internal/fsutil"
	"mcpkg/internal/mc"
	"mcpkg/internal/metrics"
)

// Result describes a completed download.
type Result struct {
	Path     string
	Bytes    int64
	Digest   mc.Digest
	HTTPCode int
}

// Future is returned by Fetch; the download runs in the background and
// Wait blocks until it completes or ctx is done.
type Future struct {
	done   chan struct{}
	result Result
	err    error
}

// Wait blocks until the download this future tracks finishes, or ctx is
// done first.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return Result{}, errkind.Wrap(errkind.Timeout, ctx.Err(), "wait for download")
	}
}

type job struct {
	ctx        context.Context
	url        string
	destPath   string
	wantDigest *mc.Digest
	future     *Future
}

// Downloader runs Fetch requests across a fixed-size worker pool with a
// bounded job queue; once the queue is full, Fetch reports
// errkind.RateLimit rather than blocking the caller.
type Downloader struct {
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	jobs      chan *job
	wg        sync.WaitGroup
	client    *http.Client
	metrics   *metrics.Downloads
}

// SetMetrics attaches a counter/histogram set that every subsequent Fetch
// job reports into. Passing nil (the default) disables instrumentation
// entirely rather than recording into an unregistered collector.
func (d *Downloader) SetMetrics(m *metrics.Downloads) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metrics = m
}

// NewDownloader starts a pool of workers workers wide backed by a queue
// that can hold queueSize pending jobs, using http.DefaultClient.
func NewDownloader(workers, queueSize int) *Downloader {
	return NewDownloaderWithClient(http.DefaultClient, workers, queueSize)
}

// NewDownloaderWithClient is NewDownloader with an explicit *http.Client,
// for tests that point at an httptest.Server or production callers that
// need custom timeouts/transport.
func NewDownloaderWithClient(client *http.Client, workers, queueSize int) *Downloader {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	d := &Downloader{client: client, jobs: make(chan *job, queueSize)}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

func (d *Downloader) work() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

// Fetch enqueues a GET of url into destPath, verified against wantDigest if
// non-nil. It returns a Future immediately; the work happens on a pool
// worker. Fetch never blocks waiting for a free worker: if the queue is
// already full it returns errkind.RateLimit.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string, wantDigest *mc.Digest) (*Future, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errkind.New(errkind.InvalidState, "downloader is closed")
	}
	fut := &Future{done: make(chan struct{})}
	j := &job{ctx: ctx, url: url, destPath: destPath, wantDigest: wantDigest, future: fut}
	select {
	case d.jobs <- j:
		return fut, nil
	default:
		return nil, errkind.New(errkind.RateLimit, "download queue is full")
	}
}

// Close stops the pool: no further Fetch calls are accepted, then Close
// blocks until every already-queued and in-flight job has finished. Safe to
// call more than once.
func (d *Downloader) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.jobs)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

func (d *Downloader) run(j *job) {
	defer close(j.future.done)

	m := d.metrics
	start := time.Now()
	if m != nil {
		m.FetchesStarted.Inc()
	}
	recordFailure := func() {
		if m != nil {
			m.FetchesFailed.Inc()
			m.FetchDuration.Observe(time.Since(start).Seconds())
		}
	}

	req, err := http.NewRequestWithContext(j.ctx, http.MethodGet, j.url, nil)
	if err != nil {
		j.future.err = errkind.Wrap(errkind.InvalidArgument, err, "build download request")
		recordFailure()
		return
	}
	resp, err := d.client.Do(req)
	if err != nil {
		j.future.err = errkind.Wrap(errkind.Offline, err, "perform download request")
		recordFailure()
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		j.future.err = errkind.New(errkind.Protocol, fmt.Sprintf("unexpected status %d", resp.StatusCode))
		recordFailure()
		return
	}

	var hasher hash.Hash
	if j.wantDigest != nil {
		hasher = newHasher(j.wantDigest.Algo)
		if hasher == nil {
			j.future.err = errkind.New(errkind.Unsupported, "unsupported digest algorithm")
			recordFailure()
			return
		}
	}

	var buf bytes.Buffer
	var body io.Reader = resp.Body
	if hasher != nil {
		body = io.TeeReader(resp.Body, hasher)
	}
	n, err := io.Copy(&buf, body)
	if err != nil {
		j.future.err = errkind.Wrap(errkind.IO, err, "read download body")
		recordFailure()
		return
	}

	// Verify before touching the filesystem: a corrupted download must
	// never leave a partial or mismatched file at destPath.
	if hasher != nil {
		got := hex.EncodeToString(hasher.Sum(nil))
		if got != j.wantDigest.Hex {
			j.future.err = errkind.New(errkind.Protocol, "downloaded content digest mismatch")
			if m != nil {
				m.DigestMismatches.Inc()
			}
			recordFailure()
			return
		}
	}

	if err := fsutil.WriteAtomicBytes(j.destPath, buf.Bytes()); err != nil {
		j.future.err = err
		recordFailure()
		return
	}

	result := Result{Path: j.destPath, Bytes: n, HTTPCode: resp.StatusCode}
	if j.wantDigest != nil {
		result.Digest = *j.wantDigest
	}
	j.future.result = result

	if m != nil {
		m.FetchesSucceeded.Inc()
		m.FetchDuration.Observe(time.Since(start).Seconds())
		m.BytesWritten.Observe(float64(n))
	}
}

func newHasher(algo mc.DigestAlgo) hash.Hash {
	switch algo {
	case mc.DigestAlgoSHA1:
		return sha1.New()
	case mc.DigestAlgoSHA256:
		return sha256.New()
	case mc.DigestAlgoSHA512:
		return sha512.New()
	case mc.DigestAlgoMD5:
		return md5.New()
	default:
		return nil
	}
}
