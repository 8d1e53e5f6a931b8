package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/hupe1980/centroids"
	"github.com/hupe1980/centroids/event"
)

// Record is one published event.
type Record struct {
	Event string          `json:"event"`
	State centroids.State `json:"state"`
}

// Writer appends records to a trace. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	file   io.Closer
	buf    *bufio.Writer
	zw     io.WriteCloser
	enc    *json.Encoder
	count  int
	err    error
	closed bool
}

// NewWriter writes a trace to w using the given compression. Close flushes
// the stream but does not close w.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	zw, err := compressWriter(w, c)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewWriter(zw)
	return &Writer{
		buf: buf,
		zw:  zw,
		enc: json.NewEncoder(buf),
	}, nil
}

// Create creates the file at path and picks the compression from its
// extension. Close also closes the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := NewWriter(f, CompressionFromPath(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.file = f

	return w, nil
}

// Write appends one record.
func (w *Writer) Write(name string, s centroids.State) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	if w.err != nil {
		return w.err
	}

	if err := w.enc.Encode(Record{Event: name, State: s}); err != nil {
		w.err = err
		return err
	}
	w.count++

	return nil
}

// Attach subscribes the writer to the iteration and end events of bus.
// Write errors are kept and returned by Err and Close.
func (w *Writer) Attach(bus *event.Bus[centroids.State]) ([]event.Subscription, error) {
	var subs []event.Subscription

	for _, name := range []string{centroids.EventIteration, centroids.EventEnd} {
		sub, err := bus.Subscribe(name, func(s centroids.State) {
			_ = w.Write(name, s)
		})
		if err != nil {
			for _, s := range subs {
				bus.Unsubscribe(s)
			}
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.count
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.err
}

// Close flushes buffered records and closes the compressor and, for
// writers from Create, the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	errs := []error{w.err, w.buf.Flush(), w.zw.Close()}
	if w.file != nil {
		errs = append(errs, w.file.Close())
	}

	return errors.Join(errs...)
}

// Reader reads records from a trace.
type Reader struct {
	file io.Closer
	zr   io.ReadCloser
	dec  *json.Decoder
}

// NewReader reads a trace from r using the given compression.
func NewReader(r io.Reader, c Compression) (*Reader, error) {
	zr, err := decompressReader(r, c)
	if err != nil {
		return nil, err
	}

	return &Reader{
		zr:  zr,
		dec: json.NewDecoder(bufio.NewReader(zr)),
	}, nil
}

// Open opens the trace at path and picks the compression from its
// extension.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, CompressionFromPath(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.file = f

	return r, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// All reads the remaining records.
func (r *Reader) All() ([]Record, error) {
	var records []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

// Close releases the decompressor and, for readers from Open, the file.
func (r *Reader) Close() error {
	errs := []error{r.zr.Close()}
	if r.file != nil {
		errs = append(errs, r.file.Close())
	}
	return errors.Join(errs...)
}
